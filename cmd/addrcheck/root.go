package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bft-labs/addrcheck/internal/cliconfig"
	"github.com/bft-labs/addrcheck/internal/menu"
	"github.com/bft-labs/addrcheck/internal/metrics"
	"github.com/bft-labs/addrcheck/pkg/log"
	"github.com/bft-labs/addrcheck/pkg/validate"
)

// errRejected signals a candidate that failed validation. The verdict has
// already been printed, so main exits non-zero without logging.
var errRejected = errors.New("candidate rejected")

const longHelp = `
Strict, offline validation of IPv6 and email address literals.

Run without a subcommand for the interactive menu, or validate single
candidates and whole files from scripts. Configure via file
($HOME/.addrcheck/config.toml), ADDRCHECK_* environment variables, or flags.
`

var exampleUsage = strings.TrimSpace(`
  addrcheck
  addrcheck ipv6 2001:db8::8a2e:370:7334
  addrcheck email user.name+tag@example.co.uk
  addrcheck check --kind email --format json emails.txt
  addrcheck watch --kind ipv6 --metrics-addr :9102 addrs.txt
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// app carries the resolved configuration into subcommands.
type app struct {
	cfg     cliconfig.Config
	cfgPath string

	zlog     zerolog.Logger
	logger   log.Logger
	registry *prometheus.Registry
	metrics  *metrics.Recorder
}

func newRootCmd() *cobra.Command {
	a := &app{cfg: cliconfig.DefaultConfig()}

	root := &cobra.Command{
		Use:               "addrcheck",
		Short:             "Validate IPv6 and email address literals",
		Long:              strings.TrimSpace(longHelp),
		Example:           exampleUsage,
		Version:           fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.load,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.serveMetrics(ctx)

			var prompter menu.Prompter = menu.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if a.cfg.Fancy {
				prompter = menu.NewPromptUIPrompter()
			}

			s := &menu.Session{
				Prompter: prompter,
				Out:      cmd.OutOrStdout(),
				Gravity:  a.cfg.Gravity(),
				Logger:   a.logger,
				Metrics:  a.metrics,
			}
			if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "path to config file (default: $HOME/.addrcheck/config.toml)")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&a.cfg.LogFormat, "log-format", a.cfg.LogFormat, "log format (console, json)")
	pf.StringVar(&a.cfg.MetricsAddr, "metrics-addr", a.cfg.MetricsAddr, "serve Prometheus metrics on this address (interactive and watch)")

	root.Flags().BoolVar(&a.cfg.Fancy, "fancy", a.cfg.Fancy, "use arrow-key menus (requires a terminal)")
	addGravityFlags(root.Flags(), &a.cfg)

	root.AddCommand(
		newValidateCmd(a, validate.KindIPv6),
		newValidateCmd(a, validate.KindEmail),
		newCheckCmd(a),
		newWatchCmd(a),
		newForceCmd(a),
	)
	return root
}

func addGravityFlags(fs *pflag.FlagSet, cfg *cliconfig.Config) {
	fs.Float64Var(&cfg.Mass1, "mass1", cfg.Mass1, "mass of the first body (kg)")
	fs.Float64Var(&cfg.Mass2, "mass2", cfg.Mass2, "mass of the second body (kg)")
	fs.Float64Var(&cfg.GravityConstant, "gravity-constant", cfg.GravityConstant, "gravitational constant (N·m²/kg²)")
	fs.Float64Var(&cfg.DistanceStart, "distance-start", cfg.DistanceStart, "first distance (m)")
	fs.Float64Var(&cfg.DistanceStop, "distance-stop", cfg.DistanceStop, "last distance (m)")
	fs.Float64Var(&cfg.DistanceStep, "distance-step", cfg.DistanceStep, "distance step (m)")
}

// load resolves configuration: defaults, then config file, then ADDRCHECK_*
// environment, with explicitly set flags taking precedence over both.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	cfgFile := a.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if a.cfgPath != "" && !cliconfig.FileExists(a.cfgPath) {
		return fmt.Errorf("config file %s not found", a.cfgPath)
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&a.cfg, fc, changed); err != nil {
			return err
		}
	}

	if err := cliconfig.ApplyEnvConfig(&a.cfg, changed); err != nil {
		return fmt.Errorf("load env: %w", err)
	}

	if err := a.cfg.Validate(); err != nil {
		return err
	}

	zl, err := a.cfg.Logger()
	if err != nil {
		return err
	}
	a.zlog = zl
	a.logger = log.NewZerologAdapterWithLogger(zl)
	a.zlog.Debug().Interface("config", a.cfg).Str("file", cfgFile).Msg("configuration")

	if a.cfg.MetricsAddr != "" {
		a.registry = prometheus.NewRegistry()
		rec, err := metrics.NewRecorder(a.registry)
		if err != nil {
			return fmt.Errorf("register metrics: %w", err)
		}
		a.metrics = rec
	}
	return nil
}

// serveMetrics starts the /metrics endpoint in the background if configured.
func (a *app) serveMetrics(ctx context.Context) {
	if a.registry == nil {
		return
	}
	go func() {
		a.zlog.Info().Str("addr", a.cfg.MetricsAddr).Msg("serving metrics")
		if err := metrics.Serve(ctx, a.cfg.MetricsAddr, a.registry); err != nil {
			a.zlog.Error().Err(err).Msg("metrics server")
		}
	}()
}
