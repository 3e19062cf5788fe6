package menu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/addrcheck/internal/gravity"
	"github.com/bft-labs/addrcheck/internal/metrics"
	"github.com/bft-labs/addrcheck/pkg/validate"
)

func runScript(t *testing.T, script string) string {
	t.Helper()
	var out bytes.Buffer
	s := &Session{
		Prompter: NewLinePrompter(strings.NewReader(script), &out),
		Out:      &out,
		Gravity:  gravity.DefaultParams(),
	}
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func TestSession_ValidatesAndExits(t *testing.T) {
	out := runScript(t, strings.Join([]string{
		"1", "  2001:db8::8a2e:370:7334  ",
		"1", "2001:db8:::1",
		"2", "user.name+tag@example.co.uk",
		"2", "a..b@example.com",
		"4",
	}, "\n")+"\n")

	assert.True(t, strings.HasPrefix(out, welcome+"\n"))
	assert.Contains(t, out, "The IPv6 address '2001:db8::8a2e:370:7334' is VALID.")
	assert.Contains(t, out, "The IPv6 address '2001:db8:::1' is INVALID.")
	assert.Contains(t, out, "The email address 'user.name+tag@example.co.uk' is VALID.")
	assert.Contains(t, out, "The email address 'a..b@example.com' is INVALID.")
	assert.True(t, strings.HasSuffix(out, goodbye+"\n"))
}

func TestSession_InvalidChoice(t *testing.T) {
	out := runScript(t, "9\nabc\n4\n")
	assert.Equal(t, 2, strings.Count(out, invalidInput))
}

func TestSession_EndOfInputExitsCleanly(t *testing.T) {
	out := runScript(t, "1\n::1\n")
	assert.Contains(t, out, "The IPv6 address '::1' is VALID.")
	assert.True(t, strings.HasSuffix(out, goodbye+"\n"))
}

func TestSession_EOFWhileAskingForCandidate(t *testing.T) {
	out := runScript(t, "2\n")
	assert.NotContains(t, out, "VALID")
	assert.True(t, strings.HasSuffix(out, goodbye+"\n"))
}

func TestSession_LastLineWithoutNewline(t *testing.T) {
	out := runScript(t, "2\na@b.co")
	assert.Contains(t, out, "The email address 'a@b.co' is VALID.")
}

func TestSession_ForceTable(t *testing.T) {
	out := runScript(t, "3\n4\n")
	assert.Contains(t, out, "m1=0.5kg, m2=1.5kg) from 100m to 1000m")
	assert.Contains(t, out, "Distance (m)")
	assert.Contains(t, out, "1000")
}

func TestSession_ForceTableErrorKeepsRunning(t *testing.T) {
	var out bytes.Buffer
	p := gravity.DefaultParams()
	p.Step = 0
	s := &Session{
		Prompter: NewLinePrompter(strings.NewReader("3\n1\n::1\n4\n"), &out),
		Out:      &out,
		Gravity:  p,
	}
	require.NoError(t, s.Run(context.Background()))
	assert.Contains(t, out.String(), "The IPv6 address '::1' is VALID.")
}

func TestSession_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	s := &Session{Prompter: NewLinePrompter(strings.NewReader("4\n"), &out), Out: &out}
	require.ErrorIs(t, s.Run(ctx), context.Canceled)
}

type failingPrompter struct{ err error }

func (f failingPrompter) Select(string, []string) (int, error) { return NoChoice, f.err }
func (f failingPrompter) Input(string) (string, error)         { return "", f.err }

func TestSession_PrompterError(t *testing.T) {
	boom := errors.New("terminal gone")
	s := &Session{Prompter: failingPrompter{err: boom}, Out: io.Discard}
	require.ErrorIs(t, s.Run(context.Background()), boom)
}

func TestSession_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(reg)
	require.NoError(t, err)

	var out bytes.Buffer
	s := &Session{
		Prompter: NewLinePrompter(strings.NewReader("1\n::1\n2\na@b.c\n4\n"), &out),
		Out:      &out,
		Metrics:  rec,
	}
	require.NoError(t, s.Run(context.Background()))

	count, err := testutil.GatherAndCount(reg, "addrcheck_validations_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestLinePrompter_Select(t *testing.T) {
	var out bytes.Buffer
	p := NewLinePrompter(strings.NewReader("2\n"), &out)

	idx, err := p.Select("Pick", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Contains(t, out.String(), "Pick:\n1. a\n2. b\n3. c\n")
	assert.Contains(t, out.String(), "Enter your choice (1/2/3): ")
}

func TestLinePrompter_InputCRLF(t *testing.T) {
	p := NewLinePrompter(strings.NewReader("a@b.co\r\n"), io.Discard)
	s, err := p.Input("x")
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", s)

	_, err = p.Input("x")
	assert.ErrorIs(t, err, io.EOF)
}

func TestVerdict(t *testing.T) {
	assert.Equal(t, "The IPv6 address '::1' is VALID.", Verdict(validate.KindIPv6, "::1", validate.Valid))
	assert.Equal(t, "The email address 'a@b.c' is INVALID.", Verdict(validate.KindEmail, "a@b.c", validate.Invalid))
}

func TestSession_CancelWhileWaitingForInput(t *testing.T) {
	for _, script := range []string{"", "1\n"} {
		t.Run(fmt.Sprintf("after %q", script), func(t *testing.T) {
			pr, pw := io.Pipe()
			defer pw.Close()

			s := &Session{Prompter: NewLinePrompter(pr, io.Discard), Out: io.Discard}

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- s.Run(ctx) }()

			if script != "" {
				_, err := io.WriteString(pw, script)
				require.NoError(t, err)
			}
			time.Sleep(50 * time.Millisecond)
			cancel()

			select {
			case err := <-done:
				require.ErrorIs(t, err, context.Canceled)
			case <-time.After(2 * time.Second):
				t.Fatal("Run still blocked after cancel")
			}
		})
	}
}
