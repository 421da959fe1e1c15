package commands

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ajroetker/rshwy/cts"
	"github.com/ajroetker/rshwy/hwy"
	"github.com/ajroetker/rshwy/internal/logging"
	"github.com/ajroetker/rshwy/rs"
)

// errConformance is returned when any lane fails, so the process exits 1.
var errConformance = errors.New("conformance failures")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the hypot conformance suite",
	Long: `Run generates inputs for each selected vector width, dispatches the
matching hypot kernel with gAllocInY bound to the second operand, and
verifies every output lane.

Examples:
  hypotcts run
  hypotcts run --widths 3,4 --elements 100000
  hypotcts run --relaxed --seed 42`,
	RunE: runConformance,
}

func init() {
	def := cts.DefaultConfig()
	f := runCmd.Flags()
	f.Int("elements", def.Elements, "invocations per kernel")
	f.Uint64("seed", def.Seed, "input generator seed")
	f.IntSlice("widths", def.Widths, "vector widths to run (1-4)")
	f.Bool("relaxed", false, "check against the relaxed precision budget")
	f.Bool("extremes", def.IncludeExtremes, "mix special values (0, Inf, NaN, denormals) into the inputs")
	f.Int("workers", 0, "worker goroutines (0 uses GOMAXPROCS)")
	f.Int("max-failures", def.MaxFailures, "failing lanes to print per kernel")

	for _, name := range []string{"elements", "seed", "widths", "relaxed", "extremes", "workers", "max-failures"} {
		viper.BindPFlag(name, f.Lookup(name))
	}

	rootCmd.AddCommand(runCmd)
}

// configFromViper assembles the suite configuration from the merged
// flag, environment and file settings.
func configFromViper(log logrus.FieldLogger) cts.Config {
	cfg := cts.DefaultConfig()
	cfg.Elements = viper.GetInt("elements")
	cfg.Seed = viper.GetUint64("seed")
	cfg.Widths = viper.GetIntSlice("widths")
	cfg.IncludeExtremes = viper.GetBool("extremes")
	cfg.MaxFailures = viper.GetInt("max-failures")
	if viper.GetBool("relaxed") {
		cfg.Precision = cts.Relaxed
	}
	cfg.Logger = log
	return cfg
}

func runConformance(cmd *cobra.Command, args []string) error {
	log := logging.Get()
	cfg := configFromViper(log)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := rs.NewContext(rs.WithWorkers(viper.GetInt("workers")), rs.WithLogger(log))
	defer ctx.Close()

	log.WithFields(logrus.Fields{
		"simd":      hwy.CurrentName(),
		"workers":   ctx.Workers(),
		"elements":  cfg.Elements,
		"widths":    cfg.Widths,
		"precision": cfg.Precision,
	}).Info("starting hypot conformance run")

	report, err := cts.Run(ctx, cfg)
	if err != nil {
		return err
	}
	if _, err := report.WriteTo(cmd.OutOrStdout()); err != nil {
		return err
	}

	if !report.Passed() {
		return fmt.Errorf("%w: %d lanes", errConformance, report.FailCount())
	}
	fmt.Fprintln(cmd.OutOrStdout(), "all kernels passed")
	return nil
}
