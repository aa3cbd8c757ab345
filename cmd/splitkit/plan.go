package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arloliu/splitkit"
	"github.com/arloliu/splitkit/registry"
)

type workerView struct {
	Worker string   `json:"worker"`
	Load   float64  `json:"load"`
	Blocks []string `json:"blocks"`
}

type planReport struct {
	Strategy string       `json:"strategy"`
	Chunks   int          `json:"chunks"`
	Weight   float64      `json:"weight"`
	Workers  []workerView `json:"workers"`
}

func (r planReport) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "strategy=%s chunks=%d weight=%s\n", r.Strategy, r.Chunks, weightString(r.Weight)); err != nil {
		return err
	}
	for _, wv := range r.Workers {
		if _, err := fmt.Fprintf(w, "%-16s load=%-12s blocks=%d %v\n",
			wv.Worker, weightString(wv.Load), len(wv.Blocks), wv.Blocks); err != nil {
			return err
		}
	}

	return nil
}

type planFunc func(p *splitkit.Planner, items []item) (*splitkit.Plan[item], error)

var planModes = registry.New[string, planFunc]("plan mode").
	MustRegister(func(p *splitkit.Planner, items []item) (*splitkit.Plan[item], error) {
		return splitkit.PlanBlocks(p, items, itemWeight, itemKey)
	}, "hint", "blocks").
	MustRegister(func(p *splitkit.Planner, items []item) (*splitkit.Plan[item], error) {
		return splitkit.PlanWeight(p, slices.Values(items), itemWeight, itemKey)
	}, "weight")

var planCmd = &cobra.Command{
	Use:   "plan <items.json|->",
	Short: "Split items and assign the chunks to workers",
	Long: "Splits a JSON array of {id, weight, key} items by split.hint (--mode hint) or " +
		"split.maxWeight (--mode weight) and assigns the chunks with the configured strategy.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var items []item
		if err := readJSON(cmd, args[0], &items); err != nil {
			return err
		}

		f := cmd.Flags()
		c := cfg
		if workers, _ := f.GetStringSlice("workers"); len(workers) > 0 {
			c.Workers = workers
		}
		if f.Changed("strategy") {
			c.Assignment.Strategy, _ = f.GetString("strategy")
		}

		mode, _ := f.GetString("mode")
		run, err := planModes.Lookup(mode)
		if err != nil {
			return err
		}

		planner, err := splitkit.NewPlanner(c, splitkit.WithLogger(logger), splitkit.WithMetrics(collector))
		if err != nil {
			return err
		}
		plan, err := run(planner, items)
		if err != nil {
			return err
		}

		r := planReport{
			Strategy: planner.Config().Assignment.Strategy,
			Chunks:   len(plan.Chunks),
			Weight:   plan.TotalWeight(),
		}
		for _, w := range plan.Workers() {
			wv := workerView{Worker: w, Load: plan.Assignment.Load[w], Blocks: []string{}}
			for _, b := range plan.Assignment.Blocks[w] {
				wv.Blocks = append(wv.Blocks, b.ID())
			}
			r.Workers = append(r.Workers, wv)
		}

		return render(cmd, r)
	},
}

func init() {
	f := planCmd.Flags()
	f.String("mode", "hint", "split mode (hint, weight)")
	f.StringSlice("workers", nil, "worker ids (default from config)")
	f.String("strategy", "", "assignment strategy (default from config)")
	rootCmd.AddCommand(planCmd)
}
