// Package blobstore abstracts where input and output files live.
//
// Ratings, catalogs, LIBSVM artifacts, index maps and suggestion tables are
// all read and written as named blobs. The same pipeline can therefore run
// against a local directory, an S3 bucket or any S3-compatible server.
//
// # Built-in Implementations
//
//   - LocalStore: local file system; reads are memory-mapped
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 (aws-sdk-go-v2)
//   - minio.Store: MinIO and other S3-compatible servers (minio-go)
//
// Implementations must be safe for concurrent use.
package blobstore
