package ident

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
)

var mapHeader = []string{"index", "key"}

// FromKeys rebuilds an Indexer where keys[i] holds index i+1.
// Duplicate keys are rejected because they would break the bijection.
func FromKeys[K comparable](keys []K) (*Indexer[K], error) {
	x := NewWithCapacity[K](len(keys))
	for i, k := range keys {
		if prev, dup := x.byKey[k]; dup {
			return nil, fmt.Errorf("ident: duplicate key %v at index %d (first seen at %d)", k, i+1, prev)
		}
		x.Assign(k)
	}
	return x, nil
}

// WriteMap writes the index table of x as CSV (`index,key`) in index order.
func WriteMap(w io.Writer, x *Indexer[string]) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mapHeader); err != nil {
		return err
	}
	var werr error
	x.Range(func(idx uint32, key string) bool {
		werr = cw.Write([]string{strconv.FormatUint(uint64(idx), 10), key})
		return werr == nil
	})
	if werr != nil {
		return werr
	}
	cw.Flush()
	return cw.Error()
}

// ReadMap reads a table written by WriteMap. Indices must be exactly 1..N in
// order.
func ReadMap(r io.Reader) (*Indexer[string], error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return New[string](), nil
	}
	if err != nil {
		return nil, fmt.Errorf("ident: read map header: %w", err)
	}
	if header[0] != mapHeader[0] || header[1] != mapHeader[1] {
		return nil, fmt.Errorf("ident: unexpected map header %v", header)
	}

	var keys []string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ident: read map: %w", err)
		}
		idx, err := strconv.ParseUint(rec[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("ident: invalid index %q: %w", rec[0], err)
		}
		if want := uint64(len(keys) + 1); idx != want {
			return nil, fmt.Errorf("ident: index %d out of sequence, want %d", idx, want)
		}
		keys = append(keys, rec[1])
	}
	return FromKeys(keys)
}
