// Package hash implements the consistent hash ring used to route chunk
// blocks to workers.
package hash

import (
	"cmp"
	"encoding/binary"
	"slices"

	"github.com/zeebo/xxh3"

	"github.com/arloliu/splitkit/types"
)

// Ring places worker ids on a 64-bit xxh3 circle with a fixed number of
// virtual nodes each. A block is owned by the first virtual node clockwise
// from the hash of its keys.
type Ring struct {
	nodes   []vnode
	workers []string
	seed    uint64
}

type vnode struct {
	pos    uint64
	worker int
}

// NewRing builds a ring for the given workers.
//
// Duplicate worker ids are ignored; the first occurrence fixes the worker
// index. A vnodes value below one is treated as one.
//
// Parameters:
//   - workers: Worker ids to place on the ring
//   - vnodes: Virtual nodes per worker
//   - seed: Hash seed, 0 for the unseeded xxh3 variant
//
// Returns:
//   - *Ring: Ring ready for lookups
func NewRing(workers []string, vnodes int, seed uint64) *Ring {
	vnodes = max(vnodes, 1)

	r := &Ring{seed: seed}
	seen := make(map[string]struct{}, len(workers))
	for _, w := range workers {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		r.workers = append(r.workers, w)
	}

	r.nodes = make([]vnode, 0, len(r.workers)*vnodes)
	for idx, w := range r.workers {
		base := r.hashString(w)
		for i := range vnodes {
			var buf [8]byte
			binary.LittleEndian.PutUint64(buf[:], uint64(i)) //nolint:gosec
			r.nodes = append(r.nodes, vnode{pos: xxh3.HashSeed(buf[:], base), worker: idx})
		}
	}

	slices.SortFunc(r.nodes, func(a, b vnode) int {
		if c := cmp.Compare(a.pos, b.pos); c != 0 {
			return c
		}

		return cmp.Compare(a.worker, b.worker)
	})

	return r
}

// Lookup returns the worker owning an arbitrary string key, or "" on an
// empty ring.
func (r *Ring) Lookup(key string) string {
	idx := r.indexOf(r.hashString(key))
	if idx < 0 {
		return ""
	}

	return r.workers[idx]
}

// LookupBlock returns the worker owning the block, or "" when the ring is
// empty or the block has no keys.
func (r *Ring) LookupBlock(b types.Block) string {
	idx := r.BlockIndex(b)
	if idx < 0 {
		return ""
	}

	return r.workers[idx]
}

// BlockIndex returns the index into Workers of the owner of b, or -1.
func (r *Ring) BlockIndex(b types.Block) int {
	if len(b.Keys) == 0 {
		return -1
	}

	return r.indexOf(b.HashIDSeed(r.seed))
}

// Workers returns a copy of the deduplicated worker ids in ring index order.
func (r *Ring) Workers() []string {
	return slices.Clone(r.workers)
}

// Size returns the number of virtual nodes on the ring.
func (r *Ring) Size() int {
	return len(r.nodes)
}

func (r *Ring) hashString(s string) uint64 {
	if r.seed != 0 {
		return xxh3.HashStringSeed(s, r.seed)
	}

	return xxh3.HashString(s)
}

// indexOf finds the first virtual node at or after h, wrapping to the start
// of the ring.
func (r *Ring) indexOf(h uint64) int {
	if len(r.nodes) == 0 {
		return -1
	}

	i, _ := slices.BinarySearchFunc(r.nodes, h, func(n vnode, t uint64) int {
		return cmp.Compare(n.pos, t)
	})
	if i == len(r.nodes) {
		i = 0
	}

	return r.nodes[i].worker
}
