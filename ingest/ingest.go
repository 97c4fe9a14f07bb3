package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// Rating is a raw (user, item, rating) triple.
type Rating struct {
	User  string
	Item  string
	Value float64
}

// Title is a raw catalog record.
type Title struct {
	// Ordinal is the 1-based position of the record in the source.
	Ordinal uint32
	Item    string
	Title   string
}

// Stats counts records seen by a reader.
type Stats struct {
	Records int
	Skipped int
}

// RatingSource yields rating triples in arrival order.
type RatingSource interface {
	// Each calls fn for every rating until the source is exhausted, fn
	// returns an error, or ctx is done.
	Each(ctx context.Context, fn func(Rating) error) error
}

// CatalogSource yields catalog records in source order.
type CatalogSource interface {
	Each(ctx context.Context, fn func(Title) error) error
}

// Ratings is an in-memory RatingSource.
type Ratings []Rating

// Each implements RatingSource.
func (rs Ratings) Each(ctx context.Context, fn func(Rating) error) error {
	for _, r := range rs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

// Titles is an in-memory CatalogSource.
type Titles []Title

// Each implements CatalogSource.
func (ts Titles) Each(ctx context.Context, fn func(Title) error) error {
	for _, t := range ts {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(t); err != nil {
			return err
		}
	}
	return nil
}

// Dialect describes the delimited text layout of an input file.
type Dialect struct {
	Comma      rune
	SkipHeader bool
}

// DefaultDialect is `;`-separated with a header line.
var DefaultDialect = Dialect{Comma: ';', SkipHeader: true}

// checkCtxEvery bounds how often readers poll ctx.
const checkCtxEvery = 4096

func newReader(r io.Reader, d Dialect) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = d.Comma
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	return cr
}

// eachRecord drives cr, skipping the header and records the csv parser
// rejects. fn reports whether the record was usable.
func eachRecord(ctx context.Context, cr *csv.Reader, d Dialect, stats *Stats, fn func(rec []string) (bool, error)) error {
	first := true
	for n := 0; ; n++ {
		if n%checkCtxEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		var pe *csv.ParseError
		if err != nil && !errors.As(err, &pe) {
			return err
		}
		if first && d.SkipHeader {
			// A broken header line is still a header line.
			first = false
			continue
		}
		first = false
		stats.Records++
		if err != nil {
			stats.Skipped++
			continue
		}
		ok, err := fn(rec)
		if err != nil {
			return err
		}
		if !ok {
			stats.Skipped++
		}
	}
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// CSVRatings reads `user;item;rating` records.
type CSVRatings struct {
	r       io.Reader
	dialect Dialect
	stats   Stats
}

// NewCSVRatings creates a RatingSource over r.
func NewCSVRatings(r io.Reader, d Dialect) *CSVRatings {
	return &CSVRatings{r: r, dialect: d}
}

// Each implements RatingSource. It may be called only once.
func (c *CSVRatings) Each(ctx context.Context, fn func(Rating) error) error {
	cr := newReader(c.r, c.dialect)
	return eachRecord(ctx, cr, c.dialect, &c.stats, func(rec []string) (bool, error) {
		user, item := field(rec, 0), field(rec, 1)
		if user == "" || item == "" {
			return false, nil
		}
		v, err := strconv.ParseFloat(field(rec, 2), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return false, nil
		}
		return true, fn(Rating{User: user, Item: item, Value: v})
	})
}

// Stats returns counters for the completed read.
func (c *CSVRatings) Stats() Stats {
	return c.stats
}

// CSVCatalog reads `item;title;...` records. Extra columns are ignored.
type CSVCatalog struct {
	r       io.Reader
	dialect Dialect
	stats   Stats
}

// NewCSVCatalog creates a CatalogSource over r.
func NewCSVCatalog(r io.Reader, d Dialect) *CSVCatalog {
	return &CSVCatalog{r: r, dialect: d}
}

// Each implements CatalogSource. Ordinals count every data record, including
// skipped ones, so they match the physical record position.
func (c *CSVCatalog) Each(ctx context.Context, fn func(Title) error) error {
	cr := newReader(c.r, c.dialect)
	return eachRecord(ctx, cr, c.dialect, &c.stats, func(rec []string) (bool, error) {
		ordinal := uint32(c.stats.Records)
		if len(rec) < 2 {
			return false, nil
		}
		item := field(rec, 0)
		if item == "" {
			return false, nil
		}
		return true, fn(Title{Ordinal: ordinal, Item: item, Title: field(rec, 1)})
	})
}

// Stats returns counters for the completed read.
func (c *CSVCatalog) Stats() Stats {
	return c.stats
}
