// Package mmap provides read-only memory-mapped file access.
//
// Rating and catalog files are scanned once from start to end. Mapping them
// avoids copying the file through an intermediate buffer and lets the kernel
// read ahead:
//
//	f, err := mmap.Open("Ratings.csv")
//	if err != nil { ... }
//	defer f.Close()
//
//	r := f.Reader() // io.Reader over the mapped bytes
//
// On platforms without mmap support the file is read into memory instead.
package mmap
