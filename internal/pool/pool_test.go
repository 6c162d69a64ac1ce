package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAbsentKey(t *testing.T) {
	p := New()

	v, ok := p.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestSetOverwrites(t *testing.T) {
	p := New()

	p.Set("number", 19)
	p.Set("number", 42)

	v, ok := p.Get("number")
	require.True(t, ok)
	assert.Equal(t, 42, v)
}

func TestMergeOverwritesAndAdds(t *testing.T) {
	p := FromMap(map[string]any{"a": 1, "b": "old"})

	p.Merge(map[string]any{"b": "new", "c": true})

	a, _ := p.Get("a")
	b, _ := p.Get("b")
	c, _ := p.Get("c")
	assert.Equal(t, 1, a)
	assert.Equal(t, "new", b)
	assert.Equal(t, true, c)
	assert.Equal(t, 3, p.Len())
}

func TestFromMapCopiesSeed(t *testing.T) {
	seed := map[string]any{"a": 1}
	p := FromMap(seed)

	seed["a"] = 99

	v, _ := p.Get("a")
	assert.Equal(t, 1, v, "pool must not alias the seed map")
}

func TestKeysSorted(t *testing.T) {
	p := FromMap(map[string]any{"zeta": 1, "alpha": 2, "mid": 3})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, p.Keys())
}

// Phases may write any value type under any key; the pool performs no type
// checking, so the last writer silently wins.
func TestUntypedLastWriteWins(t *testing.T) {
	p := New()

	p.Set("result", 200)
	p.Set("result", "two hundred")

	v, ok := p.Get("result")
	require.True(t, ok)
	assert.Equal(t, "two hundred", v)
}
