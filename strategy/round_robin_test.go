package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/splitkit/types"
)

func TestRoundRobin_Assign(t *testing.T) {
	blocks := makeBlocks(7, unit)

	assignments, err := NewRoundRobin().Assign([]string{"w0", "w1", "w2"}, blocks)
	require.NoError(t, err)

	require.Equal(t, []types.Block{blocks[0], blocks[3], blocks[6]}, assignments["w0"])
	require.Equal(t, []types.Block{blocks[1], blocks[4]}, assignments["w1"])
	require.Equal(t, []types.Block{blocks[2], blocks[5]}, assignments["w2"])
}
