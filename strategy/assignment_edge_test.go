package strategy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/splitkit/types"
)

func allStrategies() map[string]types.AssignmentStrategy {
	return map[string]types.AssignmentStrategy{
		"ConsistentHash":         NewConsistentHash(),
		"WeightedConsistentHash": NewWeightedConsistentHash(),
		"RoundRobin":             NewRoundRobin(),
	}
}

func makeBlocks(n int, weight func(i int) float64) []types.Block {
	out := make([]types.Block, n)
	for i := range out {
		out[i] = types.Block{Keys: []string{"trt", fmt.Sprint(i)}, Weight: weight(i)}
	}

	return out
}

func unit(int) float64 { return 1 }

func countAssigned(assignments map[string][]types.Block) int {
	total := 0
	for _, bs := range assignments {
		total += len(bs)
	}

	return total
}

func TestAssignmentStrategy_NoWorkers(t *testing.T) {
	for name, s := range allStrategies() {
		t.Run(name, func(t *testing.T) {
			_, err := s.Assign(nil, makeBlocks(3, unit))
			require.ErrorIs(t, err, ErrNoWorkers)
		})
	}
}

func TestAssignmentStrategy_ZeroBlocks(t *testing.T) {
	for name, s := range allStrategies() {
		t.Run(name, func(t *testing.T) {
			assignments, err := s.Assign([]string{"w0", "w1"}, nil)
			require.NoError(t, err)
			require.Len(t, assignments, 2)
			require.Zero(t, countAssigned(assignments))
		})
	}
}

func TestAssignmentStrategy_SingleWorker(t *testing.T) {
	for name, s := range allStrategies() {
		t.Run(name, func(t *testing.T) {
			assignments, err := s.Assign([]string{"w0"}, makeBlocks(5, func(i int) float64 { return float64(i + 1) }))
			require.NoError(t, err)
			require.Len(t, assignments["w0"], 5)
		})
	}
}

func TestAssignmentStrategy_EveryWorkerListed(t *testing.T) {
	workers := []string{"w0", "w1", "w2", "w3", "w4"}
	for name, s := range allStrategies() {
		t.Run(name, func(t *testing.T) {
			assignments, err := s.Assign(workers, makeBlocks(2, unit))
			require.NoError(t, err)
			require.Len(t, assignments, len(workers))
			require.Equal(t, 2, countAssigned(assignments))
		})
	}
}

func TestAssignmentStrategy_ExactlyOnce(t *testing.T) {
	blocks := makeBlocks(200, func(i int) float64 { return float64(i%7 + 1) })
	blocks = append(blocks, types.Block{Keys: []string{"zero"}, Weight: 0})

	for name, s := range allStrategies() {
		t.Run(name, func(t *testing.T) {
			assignments, err := s.Assign([]string{"w0", "w1", "w2"}, blocks)
			require.NoError(t, err)

			seen := make(map[string]int)
			for _, bs := range assignments {
				for _, b := range bs {
					seen[b.ID()]++
				}
			}
			require.Len(t, seen, len(blocks))
			for id, n := range seen {
				require.Equal(t, 1, n, "block %s assigned %d times", id, n)
			}
		})
	}
}

func TestAssignmentStrategy_Deterministic(t *testing.T) {
	blocks := makeBlocks(100, func(i int) float64 { return float64(i%5 + 1) })

	for name, s := range allStrategies() {
		t.Run(name, func(t *testing.T) {
			a, err := s.Assign([]string{"w0", "w1", "w2"}, blocks)
			require.NoError(t, err)
			b, err := s.Assign([]string{"w0", "w1", "w2"}, blocks)
			require.NoError(t, err)
			require.Equal(t, a, b)
		})
	}
}

func TestAssignmentStrategy_KeylessBlocks(t *testing.T) {
	blocks := []types.Block{{Weight: 1}, {Weight: 1}, {Weight: 1}}

	for name, s := range allStrategies() {
		t.Run(name, func(t *testing.T) {
			assignments, err := s.Assign([]string{"w0", "w1"}, blocks)
			require.NoError(t, err)
			require.Equal(t, 3, countAssigned(assignments))
		})
	}
}
