package cli

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/internal/scenario"
	"github.com/Ikarus0013/PLC-CodesysMimicing-DesktopAppExample/pkg/logger"
)

// ScenarioOptions holds flags for the scenario command.
type ScenarioOptions struct {
	*RootOptions
	scenario.Config
}

// NewScenarioCommand creates the scenario command.
func NewScenarioCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScenarioOptions{RootOptions: rootOpts, Config: *scenario.NewConfig()}

	cmd := &cobra.Command{
		Use:   "scenario",
		Short: "Self-check the reference controller",
		Long: `Start an in-process reference controller and drive it through the
timed latch, parity counter, analog scaling, snapshot consistency and
restart retention checks. The latch preset is scaled down so the run takes
about a second.

Example:
  plcsim scenario
  plcsim scenario --preset 3s --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Preset, "preset", scenario.DefaultPreset, "timed latch preset")
	cmd.Flags().DurationVar(&opts.ScanPeriod, "scan-period", scenario.DefaultScanPeriod, "engine scan period")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", scenario.DefaultTimeout, "upper bound for each wait")
	cmd.Flags().IntVar(&opts.Pulses, "pulses", scenario.DefaultPulses, "rising edges fed to the parity counter")
	cmd.Flags().IntVar(&opts.Samples, "samples", scenario.DefaultSamples, "snapshots taken by the consistency check")

	return cmd
}

func runScenario(cmd *cobra.Command, opts *ScenarioOptions) error {
	if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr())); err != nil {
		return err
	}
	logger.SetLevel(slog.LevelWarn)
	if opts.Verbose {
		logger.SetLevel(slog.LevelDebug)
	}

	report, runErr := scenario.Run(cmd.Context(), &opts.Config)

	out := cmd.OutOrStdout()
	var err error
	if opts.Format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		err = enc.Encode(report)
	} else {
		err = report.WriteText(out)
	}
	if runErr != nil {
		return runErr
	}
	return err
}

