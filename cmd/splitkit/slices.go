package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/arloliu/splitkit/split"
)

type slicesReport struct {
	Slices []split.Slice `json:"slices"`
}

func (r slicesReport) WriteText(w io.Writer) error {
	for _, s := range r.Slices {
		if _, err := fmt.Fprintf(w, "%s\t%d\n", s, s.Len()); err != nil {
			return err
		}
	}

	return nil
}

var slicesCmd = &cobra.Command{
	Use:   "slices",
	Short: "Slice an integer range",
	Long: "With --blocksize, cuts [start, stop) into consecutive slices of that size. " +
		"With --count, splits [0, stop) into that many slices of near-equal length.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()
		start, _ := f.GetInt("start")
		stop, _ := f.GetInt("stop")

		var r slicesReport
		switch {
		case f.Changed("count"):
			count, _ := f.GetInt("count")
			out, err := split.SplitInSlices(stop, count)
			if err != nil {
				return err
			}
			r.Slices = out
		default:
			size, _ := f.GetInt("blocksize")
			seq, err := split.GenSlices(start, stop, size)
			if err != nil {
				return err
			}
			for s := range seq {
				r.Slices = append(r.Slices, s)
			}
		}
		if r.Slices == nil {
			r.Slices = []split.Slice{}
		}

		return render(cmd, r)
	},
}

func init() {
	f := slicesCmd.Flags()
	f.Int("start", 0, "range start (inclusive)")
	f.Int("stop", 0, "range stop (exclusive)")
	f.Int("blocksize", 1000, "slice length")
	f.Int("count", 0, "number of slices over [0, stop)")
	slicesCmd.MarkFlagsMutuallyExclusive("blocksize", "count")
	rootCmd.AddCommand(slicesCmd)
}
