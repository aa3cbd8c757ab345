// Command splitkit splits weighted work, slices ranges and pre-filters
// seismic sources from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/arloliu/splitkit"
	"github.com/arloliu/splitkit/internal/logging"
	"github.com/arloliu/splitkit/internal/metrics"
	"github.com/arloliu/splitkit/types"
)

var (
	cfg          splitkit.Config
	logger       types.Logger = logging.NewNop()
	promRegistry *prometheus.Registry
	collector    *metrics.PrometheusCollector
)

var rootCmd = &cobra.Command{
	Use:   "splitkit",
	Short: "Split weighted work into balanced chunks",
	Long: "Splits weighted items into chunks, slices integer ranges, plans chunk-to-worker " +
		"assignments and pre-filters seismic sources against a site collection.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()

		level := slog.LevelWarn
		if verbose, _ := f.GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		logger = logging.NewSlog(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

		path, _ := f.GetString("config")
		if path == "" {
			cfg = splitkit.DefaultConfig()
		} else {
			c, err := splitkit.LoadConfig(path)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = c
		}

		promRegistry = prometheus.NewRegistry()
		collector = metrics.NewPrometheus(promRegistry, "splitkit")

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		if dump, _ := cmd.Flags().GetBool("metrics"); !dump {
			return nil
		}

		return writeMetrics(cmd, promRegistry)
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringP("config", "c", "", "YAML configuration file")
	f.StringP("output", "o", "text", "output format (text, json)")
	f.BoolP("verbose", "v", false, "debug logging on stderr")
	f.Bool("metrics", false, "print collected Prometheus metrics to stderr on exit")
}

// writeMetrics renders the registry in the Prometheus text exposition format.
func writeMetrics(cmd *cobra.Command, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(cmd.ErrOrStderr(), expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
