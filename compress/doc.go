// Package compress wraps artifact streams with optional compression.
//
// The compression algorithm is chosen from the blob name:
//
//	users.libsvm       -> none
//	users.libsvm.zst   -> zstd (better ratio, good for archived artifacts)
//	users.libsvm.lz4   -> lz4  (fast, good for scratch artifacts)
//
// Writers must be closed to flush the compressed frame; closing a writer does
// not close the underlying stream.
package compress
