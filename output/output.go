package output

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/recgo/codec"
)

// Row is one suggestion for one user.
type Row struct {
	// User is the user key as it appeared in the input.
	User      string  `json:"user"`
	ItemIndex uint32  `json:"item"`
	ItemKey   string  `json:"item_key,omitempty"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`
	RawScore  float64 `json:"raw_score,omitempty"`
}

// Writer consumes rows.
type Writer interface {
	Write(Row) error
	// Flush writes any buffered data. It must be called once after the last
	// row.
	Flush() error
}

// Format names an output format.
type Format string

const (
	// FormatCSV writes the fixed-header CSV report.
	FormatCSV Format = "csv"
	// FormatJSONL writes one JSON object per row.
	FormatJSONL Format = "jsonl"
)

// NewWriter returns a Writer for format f. c is only used for JSONL and may
// be nil.
func NewWriter(w io.Writer, f Format, c codec.Codec) (Writer, error) {
	switch f {
	case FormatCSV, "":
		return NewCSVWriter(w), nil
	case FormatJSONL:
		return NewJSONLWriter(w, c), nil
	default:
		return nil, fmt.Errorf("output: unknown format %q", f)
	}
}

// FormatFromName picks a format from a file name, ignoring a trailing
// compression extension.
func FormatFromName(name string) Format {
	name = strings.TrimSuffix(name, ".zst")
	name = strings.TrimSuffix(name, ".zstd")
	name = strings.TrimSuffix(name, ".lz4")
	if strings.HasSuffix(name, ".jsonl") || strings.HasSuffix(name, ".ndjson") {
		return FormatJSONL
	}
	return FormatCSV
}

// Header is the CSV column line.
const Header = "User_ID,Book_ID,Book_Title,Recommendation_Score"

// CSVWriter writes rows as CSV. Titles are always quoted.
type CSVWriter struct {
	w          *bufio.Writer
	buf        []byte
	headerDone bool
}

// NewCSVWriter creates a CSVWriter.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: bufio.NewWriter(w)}
}

func (cw *CSVWriter) header() error {
	if cw.headerDone {
		return nil
	}
	cw.headerDone = true
	_, err := cw.w.WriteString(Header + "\n")
	return err
}

// Write implements Writer.
func (cw *CSVWriter) Write(r Row) error {
	if err := cw.header(); err != nil {
		return err
	}

	b := cw.buf[:0]
	b = appendField(b, r.User)
	b = append(b, ',')
	b = strconv.AppendUint(b, uint64(r.ItemIndex), 10)
	b = append(b, ',', '"')
	b = append(b, strings.ReplaceAll(r.Title, `"`, `""`)...)
	b = append(b, '"', ',')
	b = AppendScore(b, r.Score)
	b = append(b, '\n')
	cw.buf = b

	_, err := cw.w.Write(b)
	return err
}

// Flush implements Writer.
func (cw *CSVWriter) Flush() error {
	if err := cw.header(); err != nil {
		return err
	}
	return cw.w.Flush()
}

// appendField quotes s only if it would otherwise break the row.
func appendField(b []byte, s string) []byte {
	if !strings.ContainsAny(s, ",\"\r\n") {
		return append(b, s...)
	}
	b = append(b, '"')
	b = append(b, strings.ReplaceAll(s, `"`, `""`)...)
	return append(b, '"')
}

// AppendScore formats a score with the shortest exact representation and
// always keeps a decimal point, so 10 renders as "10.0".
func AppendScore(b []byte, v float64) []byte {
	start := len(b)
	b = strconv.AppendFloat(b, v, 'f', -1, 64)
	for _, c := range b[start:] {
		if c == '.' || c == 'N' || c == 'I' {
			return b
		}
	}
	return append(b, '.', '0')
}

// JSONLWriter writes one JSON object per line.
type JSONLWriter struct {
	w     *bufio.Writer
	codec codec.Codec
	buf   []byte
}

// NewJSONLWriter creates a JSONLWriter. A nil codec selects codec.Default.
func NewJSONLWriter(w io.Writer, c codec.Codec) *JSONLWriter {
	if c == nil {
		c = codec.Default
	}
	return &JSONLWriter{w: bufio.NewWriter(w), codec: c}
}

// Write implements Writer.
func (jw *JSONLWriter) Write(r Row) error {
	b, err := codec.AppendLine(jw.codec, jw.buf[:0], r)
	if err != nil {
		return err
	}
	jw.buf = b
	_, err = jw.w.Write(b)
	return err
}

// Flush implements Writer.
func (jw *JSONLWriter) Flush() error {
	return jw.w.Flush()
}
