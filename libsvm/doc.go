// Package libsvm reads and writes sparse rating vectors in LIBSVM format.
//
// Each line holds one user's vector as space-separated `item:rating` pairs in
// ascending item order. No label or user id is written: line n (1-based) is
// the vector of user index n. Users without ratings are written as empty
// lines so the line number stays aligned with the user index.
//
//	1:5 2:3
//	1:4 2:4 3:5
//	1:1
package libsvm
