package types

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/zeebo/xxh3"
)

// Block describes one chunk produced by the splitter for assignment purposes.
//
// A block is the unit of work assignment: the chunk items stay with the
// caller, only the identifying keys and the total weight travel to the
// assignment strategy.
type Block struct {
	// Keys uniquely identify this block.
	// The splitter uses [classification key, chunk ordinal].
	Keys []string `json:"keys"`

	// Weight is the total weight of the chunk (sum of item weights).
	Weight float64 `json:"weight"`

	// Size is the number of items in the chunk.
	Size int `json:"size"`
}

// ID returns the canonical identifier of the block by joining the Keys with a dash ("-").
//
// Returns:
//   - string: Dash-joined key sequence ("" if no keys)
func (b Block) ID() string {
	if len(b.Keys) == 0 {
		return ""
	}

	return strings.Join(b.Keys, "-")
}

// Compare performs a lexicographic comparison of block key sequences.
//
// Ordering rules:
//   - Compare Keys element-wise using string order
//   - If all shared elements are equal, the shorter Keys slice sorts first
//   - Returns 0 when both key sequences are identical (weight is not considered)
//
// Returns:
//   - int: -1 if b < o, 0 if equal, +1 if b > o
func (b Block) Compare(o Block) int {
	al, bl := len(b.Keys), len(o.Keys)
	n := min(al, bl)

	for i := range n {
		if b.Keys[i] == o.Keys[i] {
			continue
		}
		if b.Keys[i] < o.Keys[i] {
			return -1
		}

		return 1
	}
	if al == bl {
		return 0
	}
	if al < bl {
		return -1
	}

	return 1
}

// HashIDSeed folds every key into a single xxh3 64-bit hash.
//
// Earlier keys become the seed for later ones, so no joined string is built.
// A key boundary marker is mixed in between keys, which keeps ["ab","c"] and
// ["a","bc"] apart.
//
// Parameters:
//   - seed: Initial seed (0 means unseeded for the first key)
//
// Returns:
//   - uint64: Stable hash of the key sequence
func (b Block) HashIDSeed(seed uint64) uint64 {
	h := seed
	for i, key := range b.Keys {
		if i == 0 && seed == 0 {
			h = xxh3.HashString(key)
		} else {
			h = xxh3.HashStringSeed(key, h)
		}

		var lb [8]byte
		binary.LittleEndian.PutUint64(lb[:], uint64(len(key))) //nolint:gosec
		h = xxh3.HashSeed(lb[:], h)
	}

	return h
}

// EffectiveWeight returns the block weight, or fallback when the weight is
// zero, negative or not a number.
func (b Block) EffectiveWeight(fallback float64) float64 {
	if b.Weight > 0 && !math.IsInf(b.Weight, 0) {
		return b.Weight
	}

	return fallback
}

// Assignment maps worker ids to the blocks they should process.
type Assignment struct {
	// Blocks is the list of blocks assigned to each worker.
	Blocks map[string][]Block `json:"blocks"`

	// Load is the total block weight assigned to each worker.
	Load map[string]float64 `json:"load"`
}

// NewAssignment builds an Assignment from a strategy result, computing the
// per-worker load.
func NewAssignment(blocks map[string][]Block) Assignment {
	load := make(map[string]float64, len(blocks))
	for worker, assigned := range blocks {
		total := 0.0
		for _, b := range assigned {
			total += b.Weight
		}
		load[worker] = total
	}

	return Assignment{Blocks: blocks, Load: load}
}
