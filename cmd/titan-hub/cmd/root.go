package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/oshokin/titan-hub/internal/config"
	"github.com/oshokin/titan-hub/internal/service/runner"
	"github.com/oshokin/titan-hub/internal/version"
)

var (
	// configPath stores the path to the configuration YAML file.
	configPath string
	// logFile overrides the journal destination from the configuration.
	logFile string
	// logLevel overrides the diagnostics level from the configuration.
	logLevel string
	// policy overrides the arming policy from the configuration.
	policy string
	// scenarioPath selects a scenario file for the run command.
	scenarioPath string
	// interval overrides the poll interval for the watch command.
	interval time.Duration

	// rootCmd represents the base command of the security hub.
	rootCmd = &cobra.Command{
		Use:   "titan-hub",
		Short: "Simulated home-security controller.",
		Long: `Titan Security System keeps a small set of door, motion and heat sensors,
evaluates their readings against the operating mode and raises alarms.

Every alarm plays a sound, notifies the recipient and is appended to the
journal file. Diagnostics go to stderr, status lines go to stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// runCmd plays a scenario against a fresh hub.
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Play the demo or a scenario file.",
		Long: `Initialize the default sensors and play a scenario step by step.

Without --scenario the built-in demo runs: initial report, Away mode, an
intruder at the front door, motion in the living room, a kitchen fire, the
final report and motion in Day mode.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return runner.Run(ctx, newOptions())
		},
	}

	// watchCmd polls the sensors until interrupted.
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Poll the sensors on a fixed interval.",
		Long: `Poll every sensor immediately and then once per interval until SIGINT or SIGTERM.
The interval comes from the configuration file unless --interval is given.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			opts := newOptions()
			opts.Interval = interval

			return runner.Watch(ctx, opts)
		},
	}
)

// Execute runs the titan-hub CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if code := execute(rootCmd, os.Stderr); code != 0 {
		os.Exit(code)
	}
}

// execute runs root and turns a returned error or a panic into a CRITICAL ERROR line and exit code 1.
func execute(root *cobra.Command, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintln(stderr, "CRITICAL ERROR:", r)

			code = 1
		}
	}()

	if err := root.Execute(); err != nil {
		_, _ = fmt.Fprintln(stderr, "CRITICAL ERROR:", err)

		return 1
	}

	return 0
}

// newOptions collects the shared flags.
func newOptions() *runner.Options {
	return &runner.Options{
		ConfigPath:   configPath,
		LogFile:      logFile,
		LogLevel:     logLevel,
		Policy:       policy,
		ScenarioPath: scenarioPath,
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup shared flags with consistent naming and descriptions.
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVar(&logFile, "log-file", "", "journal file (overrides configuration)")
	flags.StringVar(&logLevel, "log-level", "", "diagnostics level: debug, info, warn, error")
	flags.StringVar(&policy, "policy", "", "arming policy: clearing or sticky")

	runCmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "scenario YAML file (default: built-in demo)")
	watchCmd.Flags().DurationVarP(&interval, "interval", "i", 0, "poll interval, e.g. 5s (default: configuration)")

	rootCmd.AddCommand(runCmd, watchCmd)
}
