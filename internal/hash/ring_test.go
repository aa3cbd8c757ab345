package hash

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/splitkit/types"
)

func blocks(n int) []types.Block {
	out := make([]types.Block, n)
	for i := range out {
		out[i] = types.Block{Keys: []string{"trt", fmt.Sprint(i)}, Weight: 1}
	}

	return out
}

func TestNewRing(t *testing.T) {
	ring := NewRing([]string{"w0", "w1", "w0", "w2"}, 50, 0)

	require.Equal(t, []string{"w0", "w1", "w2"}, ring.Workers())
	require.Equal(t, 150, ring.Size())

	t.Run("vnodes clamp to one", func(t *testing.T) {
		require.Equal(t, 2, NewRing([]string{"a", "b"}, 0, 0).Size())
	})
}

func TestRing_Empty(t *testing.T) {
	ring := NewRing(nil, 100, 0)

	assert.Empty(t, ring.Lookup("anything"))
	assert.Empty(t, ring.LookupBlock(types.Block{Keys: []string{"x"}}))
	assert.Equal(t, -1, ring.BlockIndex(types.Block{Keys: []string{"x"}}))
}

func TestRing_LookupBlock(t *testing.T) {
	workers := []string{"w0", "w1", "w2"}
	ring := NewRing(workers, 150, 7)

	t.Run("stable", func(t *testing.T) {
		for _, b := range blocks(50) {
			w := ring.LookupBlock(b)
			require.Contains(t, workers, w)
			require.Equal(t, w, ring.LookupBlock(b))
			require.Equal(t, w, workers[ring.BlockIndex(b)])
		}
	})

	t.Run("keyless block has no owner", func(t *testing.T) {
		require.Empty(t, ring.LookupBlock(types.Block{Weight: 3}))
	})

	t.Run("weight does not affect routing", func(t *testing.T) {
		b := types.Block{Keys: []string{"Active Shallow Crust", "3"}, Weight: 1}
		heavy := b
		heavy.Weight = 1000
		require.Equal(t, ring.LookupBlock(b), ring.LookupBlock(heavy))
	})
}

func TestRing_Distribution(t *testing.T) {
	workers := []string{"w0", "w1", "w2"}
	ring := NewRing(workers, 150, 0)

	counts := make(map[string]int)
	for _, b := range blocks(3000) {
		counts[ring.LookupBlock(b)]++
	}

	for _, w := range workers {
		assert.InDelta(t, 1000, counts[w], 250, "worker %s", w)
	}
}

func TestRing_Affinity(t *testing.T) {
	bs := blocks(1000)
	before := NewRing([]string{"w0", "w1", "w2"}, 150, 42)
	after := NewRing([]string{"w0", "w1"}, 150, 42)

	kept, checked := 0, 0
	for _, b := range bs {
		prev := before.LookupBlock(b)
		if prev == "w2" {
			continue
		}
		checked++
		if after.LookupBlock(b) == prev {
			kept++
		}
	}

	require.Positive(t, checked)
	require.Equal(t, checked, kept, "blocks on surviving workers must not move")
}

func TestRing_Seeds(t *testing.T) {
	workers := []string{"w0", "w1", "w2"}
	a := NewRing(workers, 150, 1)
	b := NewRing(workers, 150, 1)

	for _, blk := range blocks(100) {
		require.Equal(t, a.LookupBlock(blk), b.LookupBlock(blk))
	}
	require.Equal(t, a.Lookup("key"), b.Lookup("key"))
}
