package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/addrcheck/internal/batch"
	"github.com/bft-labs/addrcheck/internal/domain"
	"github.com/bft-labs/addrcheck/internal/gravity"
	"github.com/bft-labs/addrcheck/internal/menu"
	"github.com/bft-labs/addrcheck/internal/watch"
	"github.com/bft-labs/addrcheck/pkg/log"
	"github.com/bft-labs/addrcheck/pkg/validate"
)

// newValidateCmd builds "addrcheck ipv6" and "addrcheck email".
func newValidateCmd(a *app, kind validate.Kind) *cobra.Command {
	return &cobra.Command{
		Use:     string(kind) + " <candidate>",
		Short:   fmt.Sprintf("Validate a single %s (exit status 1 if invalid)", kind.Label()),
		Example: validateExample(kind),
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidate := strings.TrimSpace(args[0])
			res, err := validate.Validate(kind, candidate)
			if err != nil {
				return err
			}
			a.metrics.ObserveValidation(string(kind), res.Bool())

			fmt.Fprintln(cmd.OutOrStdout(), menu.Verdict(kind, candidate, res))
			if !res.Bool() {
				return errRejected
			}
			return nil
		},
	}
}

// validateExample shows "--" for candidates that begin with a dash.
func validateExample(kind validate.Kind) string {
	if kind == validate.KindEmail {
		return "  addrcheck email user.name+tag@example.co.uk\n" +
			"  addrcheck email -- -x@example.com"
	}
	return "  addrcheck ipv6 2001:db8::8a2e:370:7334"
}

type batchFlags struct {
	kind          string
	failOnInvalid bool
}

func addBatchFlags(cmd *cobra.Command, a *app, bf *batchFlags) {
	kinds := make([]string, 0, 2)
	for _, k := range validate.Kinds() {
		kinds = append(kinds, string(k))
	}

	cmd.Flags().StringVar(&bf.kind, "kind", "", "validator to apply ("+strings.Join(kinds, ", ")+")")
	cmd.Flags().StringVar(&a.cfg.Format, "format", a.cfg.Format, "report format ("+strings.Join(batch.Formats(), ", ")+")")
	cmd.Flags().IntVar(&a.cfg.Workers, "workers", a.cfg.Workers, "concurrent validators (0 = number of CPUs)")
	cmd.Flags().BoolVar(&bf.failOnInvalid, "fail-on-invalid", false, "exit with status 1 if any candidate is invalid")
	_ = cmd.MarkFlagRequired("kind")
}

// runBatch reads candidates from r, validates them and writes the report.
func (a *app) runBatch(ctx context.Context, r io.Reader, w io.Writer, kind validate.Kind) (domain.Report, error) {
	records, err := batch.ReadCandidatesContext(ctx, r)
	if err != nil {
		return domain.Report{}, err
	}

	runner := &batch.Runner{Workers: a.cfg.Workers, Logger: a.logger, Metrics: a.metrics}
	rep, err := runner.Run(ctx, kind, records)
	if err != nil {
		return domain.Report{}, err
	}
	return rep, batch.WriteReport(w, rep, a.cfg.Format)
}

func newCheckCmd(a *app) *cobra.Command {
	var bf batchFlags

	cmd := &cobra.Command{
		Use:   "check --kind KIND [FILE|-]",
		Short: "Validate one candidate per line from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := validate.ParseKind(bf.kind)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rep, err := a.runBatch(ctx, in, cmd.OutOrStdout(), kind)
			if err != nil {
				return err
			}
			if bf.failOnInvalid && rep.Summary.Invalid > 0 {
				return errRejected
			}
			return nil
		},
	}
	addBatchFlags(cmd, a, &bf)
	return cmd
}

func newWatchCmd(a *app) *cobra.Command {
	var bf batchFlags

	cmd := &cobra.Command{
		Use:   "watch --kind KIND FILE",
		Short: "Re-validate a file every time it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := validate.ParseKind(bf.kind)
			if err != nil {
				return err
			}
			path := args[0]
			if path == "-" {
				return fmt.Errorf("%w: watch needs a file, not stdin", domain.ErrNoInput)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.serveMetrics(ctx)

			job := func(ctx context.Context) error {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()

				rep, err := a.runBatch(ctx, f, cmd.OutOrStdout(), kind)
				if err != nil {
					return err
				}
				a.logger.Info("file validated",
					log.String("path", path),
					log.Int("valid", rep.Summary.Valid),
					log.Int("invalid", rep.Summary.Invalid),
				)
				return nil
			}

			w, err := watch.New(watch.Config{Path: path, Debounce: a.cfg.Debounce}, job, a.logger)
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	}
	addBatchFlags(cmd, a, &bf)
	cmd.Flags().DurationVar(&a.cfg.Debounce, "debounce", a.cfg.Debounce, "quiet period after a change before re-validating")
	return cmd
}

func newForceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "force",
		Short: "Print gravitational force between two bodies over a range of distances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			points, err := gravity.Table(a.cfg.Gravity())
			if err != nil {
				return err
			}
			return gravity.WriteTable(cmd.OutOrStdout(), points)
		},
	}
	addGravityFlags(cmd.Flags(), &a.cfg)
	return cmd
}
