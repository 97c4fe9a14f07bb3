package ident

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssign_Idempotent(t *testing.T) {
	x := New[string]()

	a := x.Assign("alice")
	b := x.Assign("bob")

	assert.Equal(t, uint32(1), a)
	assert.Equal(t, uint32(2), b)
	assert.Equal(t, a, x.Assign("alice"))
	assert.Equal(t, b, x.Assign("bob"))
	assert.Equal(t, 2, x.Len())
}

func TestAssign_DenseNoGaps(t *testing.T) {
	x := NewWithCapacity[int](64)

	const n = 100
	seen := make(map[uint32]bool, n)
	for i := 0; i < n; i++ {
		// Interleave repeats to make sure they never consume an index.
		idx := x.Assign(i * 7)
		x.Assign((i / 2) * 7)
		require.False(t, seen[idx], "index %d assigned twice", idx)
		seen[idx] = true
	}

	require.Equal(t, n, x.Len())
	for i := uint32(1); i <= n; i++ {
		assert.True(t, seen[i], "missing index %d", i)
	}
}

func TestIndexer_Reverse(t *testing.T) {
	x := New[string]()
	for _, k := range []string{"c", "a", "b", "a"} {
		x.Assign(k)
	}

	assert.Equal(t, []string{"c", "a", "b"}, x.Keys())

	k, ok := x.Key(2)
	require.True(t, ok)
	assert.Equal(t, "a", k)

	_, ok = x.Key(0)
	assert.False(t, ok)
	_, ok = x.Key(4)
	assert.False(t, ok)

	idx, ok := x.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, uint32(3), idx)

	_, ok = x.Lookup("z")
	assert.False(t, ok)
}

func TestIndexer_IndependentCounters(t *testing.T) {
	users := New[string]()
	items := New[string]()

	users.Assign("u1")
	users.Assign("u2")

	assert.Equal(t, uint32(1), items.Assign("i1"))
	assert.Equal(t, uint32(3), users.Assign("u3"))
}

func TestIndexer_Range(t *testing.T) {
	x := New[int]()
	for i := 10; i < 15; i++ {
		x.Assign(i)
	}

	var got []string
	x.Range(func(idx uint32, key int) bool {
		got = append(got, fmt.Sprintf("%d=%d", idx, key))
		return idx < 3
	})

	assert.Equal(t, []string{"1=10", "2=11", "3=12"}, got)
}
