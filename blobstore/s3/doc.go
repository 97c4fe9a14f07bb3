// Package s3 provides a BlobStore implementation backed by Amazon S3.
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil { ... }
//	store := s3.NewStore(s3sdk.NewFromConfig(cfg), "my-bucket", "recgo/")
//
// Streaming writes go through the s3 manager Uploader, so large suggestion
// tables are uploaded as multipart uploads.
package s3
