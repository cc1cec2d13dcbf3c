package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/oshokin/titan-hub/internal/config"
	"github.com/oshokin/titan-hub/internal/console"
	"github.com/oshokin/titan-hub/internal/domain/arming"
	"github.com/oshokin/titan-hub/internal/logger"
	"github.com/oshokin/titan-hub/internal/repository/journal"
	"github.com/oshokin/titan-hub/internal/repository/registry"
	"github.com/oshokin/titan-hub/internal/service/common"
	"github.com/oshokin/titan-hub/internal/service/dispatcher"
	"github.com/oshokin/titan-hub/internal/service/guard"
	"github.com/oshokin/titan-hub/internal/service/hub"
	"github.com/oshokin/titan-hub/internal/service/scenario"
	"github.com/oshokin/titan-hub/internal/service/sinks"
	"github.com/oshokin/titan-hub/internal/version"
)

// Options controls how the hub is assembled. Empty fields fall back to the configuration file.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// LogFile overrides the journal destination.
	LogFile string
	// LogLevel overrides the diagnostics level.
	LogLevel string
	// Policy overrides the arming policy.
	Policy string
	// ScenarioPath selects a scenario file for Run. Empty runs the built-in demo.
	ScenarioPath string
	// Interval overrides the poll interval for Watch.
	Interval time.Duration
	// Output receives the operator console. Defaults to stdout.
	Output io.Writer
	// ProcessFinder replaces the process table lookup of the instance guard.
	ProcessFinder guard.ProcessFinder
}

// completionLine closes a scenario run.
const completionLine = "--- System Test Complete ---"

// system is a fully wired hub with its resources.
type system struct {
	// cfg is the effective configuration.
	cfg *config.Config
	// console is the operator output.
	console *console.Console
	// hub is the poll orchestrator.
	hub *hub.Hub
	// actor is recorded with mode changes.
	actor *arming.Actor
	// guard owns the log destination, nil when disabled.
	guard *guard.Guard
}

// Run plays a scenario against a freshly initialized hub.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "titan-hub")

	// Resolve the scenario before touching the log destination.
	script := scenario.Demo()

	if opts.ScenarioPath != "" {
		loaded, err := scenario.Load(opts.ScenarioPath)
		if err != nil {
			return fmt.Errorf("load scenario: %w", err)
		}

		script = loaded
	}

	sys, err := setup(ctx, opts)
	if err != nil {
		return err
	}

	defer sys.close(ctx)

	env := &scenario.Env{
		Target:  sys.hub,
		Printer: sys.console,
		Actor:   sys.actor,
	}

	if err = scenario.Run(ctx, env, script); err != nil {
		return fmt.Errorf("run scenario: %w", err)
	}

	sys.console.Heading(completionLine)

	return nil
}

// Watch polls the sensors until ctx is canceled.
func Watch(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "titan-hub")

	sys, err := setup(ctx, opts)
	if err != nil {
		return err
	}

	defer sys.close(ctx)

	interval := sys.cfg.PollInterval
	if opts.Interval > 0 {
		interval = opts.Interval
	}

	return sys.hub.Watch(ctx, interval)
}

// setup loads the configuration and wires every component.
func setup(ctx context.Context, opts *Options) (*system, error) {
	// Load settings and apply command line overrides.
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	level, _ := logger.ParseLogLevel(cfg.LogLevel)
	logger.SetLevel(level)

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	sys := &system{
		cfg:     cfg,
		console: console.New(out),
	}

	// Claim the log destination.
	if cfg.SingleInstance {
		if err = sys.acquireGuard(ctx, opts); err != nil {
			return nil, err
		}
	}

	// Build the alarm path: console sinks plus the file journal.
	fileJournal, err := journal.NewFileJournal(cfg.LogFile)
	if err != nil {
		sys.close(ctx)

		return nil, fmt.Errorf("open journal: %w", err)
	}

	alarmDispatcher, err := dispatcher.New(sinks.NewSiren(sys.console), sinks.NewNotifier(sys.console), fileJournal)
	if err != nil {
		sys.close(ctx)

		return nil, fmt.Errorf("create dispatcher: %w", err)
	}

	reg := registry.New(cfg.StarterSensors(), registry.WithStrictIndex(cfg.StrictIndex))

	sys.hub, err = hub.New(reg, arming.NewState(cfg.Policy()), alarmDispatcher, sys.console)
	if err != nil {
		sys.close(ctx)

		return nil, fmt.Errorf("create hub: %w", err)
	}

	// Detect current system actor for the mode audit trail.
	sys.actor, err = common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Unable to detect actor", "error", err)
	}

	sys.console.Banner(version.Banner())

	logger.InfoKV(ctx, "Hub initialized",
		"sensors", reg.Len(),
		"policy", cfg.ArmingPolicy,
		"strict_index", cfg.StrictIndex,
		"journal", fileJournal.Path(),
	)

	return sys, nil
}

// loadConfig reads the settings file and applies overrides from opts.
func loadConfig(opts *Options) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	if opts.LogFile != "" {
		cfg.LogFile = opts.LogFile
	}

	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	if opts.Policy != "" {
		cfg.ArmingPolicy = opts.Policy
	}

	if err = config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}

	return cfg, nil
}

// acquireGuard claims the journal for this process.
func (s *system) acquireGuard(ctx context.Context, opts *Options) error {
	var guardOptions []guard.Option
	if opts.ProcessFinder != nil {
		guardOptions = append(guardOptions, guard.WithProcessFinder(opts.ProcessFinder))
	}

	g, err := guard.New(s.cfg.LogFile, guardOptions...)
	if err != nil {
		return fmt.Errorf("create instance guard: %w", err)
	}

	if err = g.Acquire(ctx); err != nil {
		if errors.Is(err, guard.ErrAlreadyRunning) {
			return err
		}

		return fmt.Errorf("acquire instance guard: %w", err)
	}

	s.guard = g

	return nil
}

// close releases the instance guard.
func (s *system) close(ctx context.Context) {
	if s.guard == nil {
		return
	}

	if err := s.guard.Release(ctx); err != nil {
		logger.ErrorKV(ctx, "Release instance guard failed", "error", err)
	}
}
