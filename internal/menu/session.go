// Package menu implements the interactive addrcheck session: a loop that
// offers IPv6 validation, email validation and a gravitational force table
// until the user exits.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bft-labs/addrcheck/internal/gravity"
	"github.com/bft-labs/addrcheck/internal/metrics"
	"github.com/bft-labs/addrcheck/pkg/log"
	"github.com/bft-labs/addrcheck/pkg/validate"
)

const (
	welcome      = "Welcome to the Validation and Gravitational Force Tool!"
	menuLabel    = "Please choose an option"
	goodbye      = "Exiting the tool. Goodbye!"
	invalidInput = "Invalid choice. Please select 1, 2, 3, or 4."
)

// Menu items, in display order.
const (
	choiceIPv6 = iota
	choiceEmail
	choiceForce
	choiceExit
)

var items = []string{
	choiceIPv6:  "Validate an IPv6 address",
	choiceEmail: "Validate an email address",
	choiceForce: "Calculate gravitational force table",
	choiceExit:  "Exit",
}

// Session is one interactive run.
type Session struct {
	Prompter Prompter
	Out      io.Writer
	Gravity  gravity.Params
	Logger   log.Logger
	Metrics  *metrics.Recorder
}

// Run loops until the user picks Exit, input ends, or ctx is done.
// End of input is a normal exit.
func (s *Session) Run(ctx context.Context) error {
	logger := log.OrNoop(s.Logger)
	fmt.Fprintln(s.Out, welcome)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := ask(ctx, func() (int, error) { return s.Prompter.Select(menuLabel, items) })
		if err != nil {
			return s.endOfInput(err)
		}

		switch choice {
		case choiceIPv6:
			err = s.validate(ctx, validate.KindIPv6)
		case choiceEmail:
			err = s.validate(ctx, validate.KindEmail)
		case choiceForce:
			err = s.forceTable()
		case choiceExit:
			fmt.Fprintln(s.Out, goodbye)
			return nil
		default:
			fmt.Fprintln(s.Out, invalidInput)
			continue
		}

		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return s.endOfInput(err)
			}
			logger.Error("menu action failed", log.Int("choice", choice+1), log.Err(err))
		}
	}
}

func (s *Session) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(s.Out)
		fmt.Fprintln(s.Out, goodbye)
		return nil
	}
	return err
}

// ask runs a blocking prompt but gives up when ctx is done. The prompt
// goroutine is abandoned in that case; it ends when its reader does.
func ask[T any](ctx context.Context, prompt func() (T, error)) (T, error) {
	type answer struct {
		v   T
		err error
	}
	ch := make(chan answer, 1)
	go func() {
		v, err := prompt()
		ch <- answer{v, err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case a := <-ch:
		return a.v, a.err
	}
}

func (s *Session) validate(ctx context.Context, kind validate.Kind) error {
	label := fmt.Sprintf("Enter an %s to validate", kind.Label())
	raw, err := ask(ctx, func() (string, error) { return s.Prompter.Input(label) })
	if err != nil {
		return err
	}

	candidate := strings.TrimSpace(raw)
	res, err := validate.Validate(kind, candidate)
	if err != nil {
		return err
	}
	s.Metrics.ObserveValidation(string(kind), res.Bool())

	fmt.Fprintln(s.Out, Verdict(kind, candidate, res))
	return nil
}

func (s *Session) forceTable() error {
	p := s.Gravity
	fmt.Fprintf(s.Out, "Calculating gravitational force between two bodies (m1=%gkg, m2=%gkg) from %gm to %gm...\n",
		p.M1, p.M2, p.Start, p.Stop)

	points, err := gravity.Table(p)
	if err != nil {
		return err
	}
	return gravity.WriteTable(s.Out, points)
}

// Verdict formats the message shown for a validation result, e.g.
// "The IPv6 address '::1' is VALID."
func Verdict(kind validate.Kind, candidate string, res validate.Result) string {
	return fmt.Sprintf("The %s '%s' is %s.", kind.Label(), candidate, res)
}
