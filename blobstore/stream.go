package blobstore

import (
	"context"
	"errors"
	"io"

	"github.com/hupe1980/recgo/compress"
)

// OpenStream opens name for reading and transparently decompresses it when
// the name ends in a compression extension (.zst, .zstd, .lz4).
func OpenStream(ctx context.Context, store BlobStore, name string) (io.ReadCloser, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}

	t := compress.FromName(name)
	if t == compress.None {
		return b, nil
	}

	r, err := compress.NewReader(b, t)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return &stackedReadCloser{Reader: r, closers: []io.Closer{r, b}}, nil
}

// CreateStream creates name for writing, compressing by extension like
// OpenStream. The blob becomes visible once Close returns without error.
func CreateStream(ctx context.Context, store BlobStore, name string) (io.WriteCloser, error) {
	b, err := store.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	t := compress.FromName(name)
	if t == compress.None {
		return b, nil
	}

	w, err := compress.NewWriter(b, t)
	if err != nil {
		_ = b.Close()
		return nil, err
	}
	return &stackedWriteCloser{Writer: w, closers: []io.Closer{w, b}}, nil
}

type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReadCloser) Close() error {
	return closeAll(s.closers)
}

type stackedWriteCloser struct {
	io.Writer
	closers []io.Closer
}

// Close flushes the compressor before closing the blob.
func (s *stackedWriteCloser) Close() error {
	return closeAll(s.closers)
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
