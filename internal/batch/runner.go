// Package batch validates many candidates at once and renders the results.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/bft-labs/addrcheck/internal/domain"
	"github.com/bft-labs/addrcheck/internal/metrics"
	"github.com/bft-labs/addrcheck/pkg/log"
	"github.com/bft-labs/addrcheck/pkg/validate"
)

// maxLineBytes bounds a single candidate line.
const maxLineBytes = 1 << 20

// ReadCandidates reads one candidate per line. Each line is trimmed of
// surrounding whitespace; blank lines and lines starting with '#' are
// skipped. Line numbers are 1-based and refer to the raw input.
func ReadCandidates(r io.Reader) ([]domain.Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var records []domain.Record
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		records = append(records, domain.Record{Line: line, Candidate: s})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}
	return records, nil
}

// ReadCandidatesContext is ReadCandidates that returns ctx.Err() as soon
// as ctx is done, even while r is blocked (for example on a terminal).
func ReadCandidatesContext(ctx context.Context, r io.Reader) ([]domain.Record, error) {
	type result struct {
		records []domain.Record
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		records, err := ReadCandidates(r)
		ch <- result{records, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.records, res.err
	}
}

// Runner validates batches of candidates on a worker pool.
type Runner struct {
	// Workers is the pool size. Zero or less means runtime.NumCPU().
	Workers int
	Logger  log.Logger
	Metrics *metrics.Recorder
}

// Run validates every record with the validator for kind and returns a
// report whose records are in input order. The input slice is not modified.
func (r *Runner) Run(ctx context.Context, kind validate.Kind, records []domain.Record) (domain.Report, error) {
	fn, err := validate.Func(kind)
	if err != nil {
		return domain.Report{}, fmt.Errorf("%w: %q", err, kind)
	}
	logger := log.OrNoop(r.Logger)

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	out := make([]domain.Record, len(records))
	copy(out, records)

	start := time.Now()
	pool := pond.NewPool(workers)
	for i := range out {
		i := i
		pool.Submit(func() {
			if ctx.Err() != nil {
				return
			}
			// Each task owns out[i]; validators are stateless.
			out[i].Kind = string(kind)
			out[i].Valid = fn(out[i].Candidate)
		})
	}
	pool.StopAndWait()
	took := time.Since(start)

	if err := ctx.Err(); err != nil {
		return domain.Report{}, err
	}

	for _, rec := range out {
		r.Metrics.ObserveValidation(string(kind), rec.Valid)
	}
	r.Metrics.ObserveBatch(string(kind), took)

	summary := domain.Summarize(string(kind), out, took)
	logger.Debug("batch validated",
		log.String("kind", string(kind)),
		log.Int("total", summary.Total),
		log.Int("valid", summary.Valid),
		log.Int("workers", workers),
		log.Duration("took", took),
	)

	return domain.Report{Summary: summary, Records: out}, nil
}
