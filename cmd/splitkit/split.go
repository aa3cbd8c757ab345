package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arloliu/splitkit/split"
	"github.com/arloliu/splitkit/weighted"
)

// item is one input record of the split and plan commands.
type item struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
	Key    string  `json:"key,omitempty"`
}

func itemWeight(it item) float64 { return it.Weight }

func itemKey(it item) string { return it.Key }

type chunkView struct {
	Key    string   `json:"key"`
	Weight float64  `json:"weight"`
	IDs    []string `json:"ids"`
}

type splitReport struct {
	Chunks []chunkView `json:"chunks"`
	Weight float64     `json:"weight"`
}

func (r splitReport) WriteText(w io.Writer) error {
	for i, c := range r.Chunks {
		if _, err := fmt.Fprintf(w, "%4d  key=%-24q weight=%-12s items=%d  [%s]\n",
			i, c.Key, weightString(c.Weight), len(c.IDs), strings.Join(c.IDs, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d chunks, total weight %s\n", len(r.Chunks), weightString(r.Weight))

	return err
}

func newSplitReport(chunks []*weighted.Sequence[item]) splitReport {
	r := splitReport{Chunks: make([]chunkView, 0, len(chunks))}
	for _, c := range chunks {
		view := chunkView{Key: c.At(0).Key, Weight: c.Weight()}
		for _, it := range c.Items() {
			view.IDs = append(view.IDs, it.ID)
		}
		r.Chunks = append(r.Chunks, view)
		r.Weight += c.Weight()
	}

	return r
}

var splitCmd = &cobra.Command{
	Use:   "split <items.json|->",
	Short: "Split weighted items into chunks",
	Long: "Reads a JSON array of {id, weight, key} items. With --hint the items are sorted " +
		"by key and weight and split into about hint balanced chunks; otherwise they are " +
		"cut in input order whenever --max-weight would be exceeded or the key changes.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var items []item
		if err := readJSON(cmd, args[0], &items); err != nil {
			return err
		}

		f := cmd.Flags()
		opts := []split.Option{split.WithLogger(logger), split.WithMetrics(collector)}

		var (
			chunks split.Chunks[item]
			err    error
		)
		if f.Changed("hint") {
			hint, _ := f.GetInt("hint")
			chunks, err = split.SplitInBlocks(items, hint, itemWeight, itemKey, opts...)
		} else {
			maxWeight, _ := f.GetFloat64("max-weight")
			if !f.Changed("max-weight") {
				maxWeight = cfg.Split.MaxWeight
			}
			chunks, err = split.BlockSplitter(slices.Values(items), maxWeight, itemWeight, itemKey, opts...)
		}
		if err != nil {
			return err
		}

		all, err := split.Collect(chunks)
		if err != nil {
			return err
		}

		return render(cmd, newSplitReport(all))
	},
}

func init() {
	f := splitCmd.Flags()
	f.Float64("max-weight", 0, "maximum chunk weight (default from config)")
	f.Int("hint", 0, "split into about this many balanced chunks")
	rootCmd.AddCommand(splitCmd)
}
