package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	User  string  `json:"user"`
	Item  uint32  `json:"item"`
	Score float64 `json:"score"`
}

func TestByName(t *testing.T) {
	for _, name := range Names() {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	c, ok := ByName("")
	require.True(t, ok)
	assert.Equal(t, Default.Name(), c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestCodecsAgree(t *testing.T) {
	v := row{User: "276725", Item: 42, Score: 7.5}

	a, err := JSON{}.Marshal(v)
	require.NoError(t, err)
	b, err := GoJSON{}.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))

	var got row
	require.NoError(t, GoJSON{}.Unmarshal(a, &got))
	assert.Equal(t, v, got)
}

func TestAppendLine(t *testing.T) {
	for _, c := range []Codec{JSON{}, GoJSON{}, nil} {
		buf, err := AppendLine(c, []byte("x"), row{User: "u", Item: 1, Score: 1})
		require.NoError(t, err)
		assert.Equal(t, "x{\"user\":\"u\",\"item\":1,\"score\":1}\n", string(buf))
	}
}

func TestAppendLineError(t *testing.T) {
	_, err := AppendLine(GoJSON{}, nil, func() {})
	require.Error(t, err)

	_, err = AppendLine(JSON{}, nil, make(chan int))
	require.Error(t, err)
}
