package libsvm

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hupe1980/recgo/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	s := sparse.NewStore()
	s.Set(1, 2, 3)
	s.Set(1, 1, 5)
	s.Set(2, 3, 5)
	s.Set(2, 1, 4)
	s.Set(2, 2, 4.5)
	s.Set(3, 1, 0)

	var buf bytes.Buffer
	n, err := Encode(&buf, s)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, "1:5 2:3\n1:4 2:4.5 3:5\n1:0\n", buf.String())
}

func TestEncode_GapsKeepLineAlignment(t *testing.T) {
	s := sparse.NewStore()
	s.Set(1, 1, 1)
	s.Set(4, 2, 2)

	var buf bytes.Buffer
	n, err := Encode(&buf, s)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "1:1\n\n\n2:2\n", buf.String())

	back, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 4}, back.Users())
}

func TestRoundTrip(t *testing.T) {
	s := sparse.NewStore()
	for u := uint32(1); u <= 20; u++ {
		for i := uint32(1); i <= u%7+1; i++ {
			s.Set(u, i*3, float64(u+i)/2)
		}
	}

	var buf bytes.Buffer
	_, err := Encode(&buf, s)
	require.NoError(t, err)

	back, err := Read(&buf)
	require.NoError(t, err)

	require.Equal(t, s.Users(), back.Users())
	for _, u := range s.Users() {
		assert.Equal(t, s.Get(u), back.Get(u), "user %d", u)
	}
}

func TestDecode_FloatIndices(t *testing.T) {
	back, err := Read(strings.NewReader("1.0:5.0 7:2\n\n3:1\n"))
	require.NoError(t, err)

	assert.Equal(t, sparse.Vector{1: 5, 7: 2}, back.Get(1))
	assert.False(t, back.Has(2))
	assert.Equal(t, sparse.Vector{3: 1}, back.Get(3))
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"MissingColon", "1:5\n2 3\n", 2},
		{"BadRating", "1:x\n", 1},
		{"BadIndex", "a:1\n", 1},
		{"ZeroIndex", "0:1\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)

			var syn *ErrSyntax
			require.True(t, errors.As(err, &syn))
			assert.Equal(t, tt.line, syn.Line)
		})
	}
}

func TestFormatVector(t *testing.T) {
	assert.Equal(t, "", FormatVector(sparse.Vector{}))
	assert.Equal(t, "2:1 10:0.25", FormatVector(sparse.Vector{10: 0.25, 2: 1}))
}
