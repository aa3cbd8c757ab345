package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/splitkit/registry"
)

// resetFlags restores flag defaults; cobra keeps parsed values between
// Execute calls on the same command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		c.Flags().VisitAll(reset)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.Execute()

	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"split", "slices", "filter", "plan"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
	assert.Equal(t, "splitkit", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
}

const itemsJSON = `[
	{"id": "a", "weight": 1, "key": "x"},
	{"id": "b", "weight": 1, "key": "x"},
	{"id": "c", "weight": 3, "key": "x"},
	{"id": "d", "weight": 1, "key": "y"},
	{"id": "e", "weight": 1, "key": "y"}
]`

func TestSplitCommand(t *testing.T) {
	t.Run("max weight", func(t *testing.T) {
		out, _, err := execute(t, itemsJSON, "split", "-", "--max-weight", "2", "-o", "json")
		require.NoError(t, err)

		var r splitReport
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		require.Len(t, r.Chunks, 3)
		assert.Equal(t, []string{"a", "b"}, r.Chunks[0].IDs)
		assert.Equal(t, []string{"c"}, r.Chunks[1].IDs)
		assert.Equal(t, []string{"d", "e"}, r.Chunks[2].IDs)
		assert.InDelta(t, 7.0, r.Weight, 1e-9)
	})

	t.Run("hint", func(t *testing.T) {
		out, _, err := execute(t, itemsJSON, "split", "-", "--hint", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "2 chunks, total weight 7")
	})

	t.Run("bad input", func(t *testing.T) {
		_, _, err := execute(t, "{", "split", "-")
		require.Error(t, err)
	})
}

func TestSlicesCommand(t *testing.T) {
	out, _, err := execute(t, "", "slices", "--start", "1", "--stop", "7", "--blocksize", "3")
	require.NoError(t, err)
	assert.Equal(t, "[1, 4)\t3\n[4, 7)\t3\n", out)

	out, _, err = execute(t, "", "slices", "--stop", "10", "--count", "3", "-o", "json")
	require.NoError(t, err)
	var r slicesReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	require.Len(t, r.Slices, 3)
	assert.Equal(t, 0, r.Slices[0].Start)
	assert.Equal(t, 10, r.Slices[2].Stop)
}

func TestFilterCommand(t *testing.T) {
	sites := writeFile(t, "sites.json", `{"ids": [10, 20], "lons": [0, 10], "lats": [0, 0]}`)
	sources := writeFile(t, "sources.json", `[
		{"type": "point", "id": "near", "trt": "Active Shallow Crust", "minMag": 5, "maxMag": 7, "lon": 0.5, "lat": 0},
		{"type": "point", "id": "far", "trt": "Active Shallow Crust", "minMag": 5, "maxMag": 7, "lon": 50, "lat": 50},
		{"type": "area", "id": "zone", "trt": "Stable Crust", "minMag": 5, "maxMag": 6,
		 "ring": [[9, -1], [11, -1], [11, 1], [9, 1]]}
	]`)

	for _, extra := range [][]string{nil, {"--no-index"}} {
		args := append([]string{"filter", "--sites", sites, "--sources", sources, "--distance", "100", "--with-sites", "-o", "json"}, extra...)
		out, _, err := execute(t, "", args...)
		require.NoError(t, err)

		var r filterReport
		require.NoError(t, json.Unmarshal([]byte(out), &r))
		require.Len(t, r.Kept, 2, "mode %s", r.Mode)
		assert.Equal(t, "near", r.Kept[0].ID)
		assert.Equal(t, []int{10}, r.Kept[0].SiteIDs)
		assert.Equal(t, "zone", r.Kept[1].ID)
		assert.Equal(t, []int{20}, r.Kept[1].SiteIDs)
		assert.Equal(t, 1, r.Dropped)
	}

	t.Run("unknown source type", func(t *testing.T) {
		bad := writeFile(t, "bad.json", `[{"type": "fault", "id": "f"}]`)
		_, _, err := execute(t, "", "filter", "--sites", sites, "--sources", bad)
		require.ErrorContains(t, err, "unknown type")
	})
}

func TestPlanCommand(t *testing.T) {
	config := writeFile(t, "splitkit.yaml", `
workers: [w0, w1]
split:
  hint: 3
  maxWeight: 2
assignment:
  strategy: round-robin
`)

	for _, mode := range []string{"hint", "weight"} {
		t.Run(mode, func(t *testing.T) {
			out, _, err := execute(t, itemsJSON, "plan", "-", "--config", config, "--mode", mode, "-o", "json")
			require.NoError(t, err)

			var r planReport
			require.NoError(t, json.Unmarshal([]byte(out), &r))
			assert.Equal(t, "round-robin", r.Strategy)
			require.Len(t, r.Workers, 2)
			load := 0.0
			blocks := 0
			for _, w := range r.Workers {
				load += w.Load
				blocks += len(w.Blocks)
			}
			assert.InDelta(t, 7.0, load, 1e-9)
			assert.Equal(t, r.Chunks, blocks)
		})
	}

	t.Run("unknown mode", func(t *testing.T) {
		_, _, err := execute(t, itemsJSON, "plan", "-", "--mode", "magic")
		require.ErrorIs(t, err, registry.ErrUnhandledKey)
	})
}

func TestOutputFormat_Unknown(t *testing.T) {
	_, _, err := execute(t, "", "slices", "--stop", "3", "-o", "xml")
	require.ErrorIs(t, err, registry.ErrUnhandledKey)
}

func TestMetricsFlag(t *testing.T) {
	_, stderr, err := execute(t, itemsJSON, "split", "-", "--max-weight", "2", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, stderr, "splitkit_splitter_chunks_total")
}
