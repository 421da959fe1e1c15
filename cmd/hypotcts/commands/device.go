package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ajroetker/rshwy/hwy"
	"github.com/ajroetker/rshwy/rs"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Show the compute target the kernels run on",
	Long: `Display the SIMD level selected at startup, the detected CPU features
and the worker count the run command would use.

Set HWY_NO_SIMD=1 to force the scalar level.`,
	RunE: runDevice,
}

func init() {
	rootCmd.AddCommand(deviceCmd)
}

func runDevice(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	ctx := rs.NewContext(rs.WithWorkers(viper.GetInt("workers")))
	defer ctx.Close()

	features := hwy.CPUFeatures()
	if len(features) == 0 {
		features = []string{"none"}
	}

	fmt.Fprintf(out, "SIMD level:   %s\n", hwy.CurrentName())
	fmt.Fprintf(out, "Width:        %d bytes (%d float lanes)\n", hwy.CurrentWidth(), hwy.MaxLanes[float32]())
	fmt.Fprintf(out, "CPU features: %s\n", strings.Join(features, " "))
	fmt.Fprintf(out, "HWY_NO_SIMD:  %v\n", hwy.NoSimdEnv())
	fmt.Fprintf(out, "Platform:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Fprintf(out, "CPUs:         %d\n", runtime.NumCPU())
	fmt.Fprintf(out, "Workers:      %d\n", ctx.Workers())
	return nil
}
