package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/recgo/codec"
)

func TestCSVWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)

	require.NoError(t, w.Write(Row{User: "1", ItemIndex: 3, Title: "Classical Mythology", Score: 10}))
	require.NoError(t, w.Write(Row{User: "2", ItemIndex: 7, Title: `Say "Hi"`, Score: 4.975}))
	require.NoError(t, w.Write(Row{User: "a,b", ItemIndex: 1, Title: "T", Score: 1}))
	require.NoError(t, w.Flush())

	want := Header + "\n" +
		`1,3,"Classical Mythology",10.0` + "\n" +
		`2,7,"Say ""Hi""",4.975` + "\n" +
		`"a,b",1,"T",1.0` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestCSVWriterHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	w := NewCSVWriter(&buf)
	require.NoError(t, w.Flush())
	assert.Equal(t, Header+"\n", buf.String())
}

func TestJSONLWriter(t *testing.T) {
	for _, c := range []codec.Codec{codec.JSON{}, codec.GoJSON{}} {
		t.Run(c.Name(), func(t *testing.T) {
			var buf bytes.Buffer
			w := NewJSONLWriter(&buf, c)

			require.NoError(t, w.Write(Row{User: "u1", ItemIndex: 2, Title: "B", Score: 5}))
			require.NoError(t, w.Write(Row{User: "u2", ItemIndex: 3, ItemKey: "isbn", Title: "C", Score: 10, RawScore: 2.5}))
			require.NoError(t, w.Flush())

			lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
			require.Len(t, lines, 2)
			assert.JSONEq(t, `{"user":"u1","item":2,"title":"B","score":5}`, lines[0])

			var got Row
			require.NoError(t, c.Unmarshal([]byte(lines[1]), &got))
			assert.Equal(t, Row{User: "u2", ItemIndex: 3, ItemKey: "isbn", Title: "C", Score: 10, RawScore: 2.5}, got)
		})
	}
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer

	w, err := NewWriter(&buf, FormatCSV, nil)
	require.NoError(t, err)
	assert.IsType(t, &CSVWriter{}, w)

	w, err = NewWriter(&buf, FormatJSONL, nil)
	require.NoError(t, err)
	assert.IsType(t, &JSONLWriter{}, w)

	_, err = NewWriter(&buf, "xml", nil)
	require.Error(t, err)
}

func TestFormatFromName(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"suggestions.csv", FormatCSV},
		{"suggestions.csv.zst", FormatCSV},
		{"suggestions.jsonl", FormatJSONL},
		{"suggestions.ndjson.lz4", FormatJSONL},
		{"suggestions", FormatCSV},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFromName(tt.name), tt.name)
	}
}

func TestAppendScore(t *testing.T) {
	tests := map[float64]string{
		1:      "1.0",
		10:     "10.0",
		4.975:  "4.975",
		2.5:    "2.5",
		0.0001: "0.0001",
	}
	for in, want := range tests {
		assert.Equal(t, want, string(AppendScore(nil, in)))
	}
}
