// Package solver wraps an external Answer Set Programming solver. The
// heavy combinatorial search happens inside the solver process; this
// package only builds the invocation, runs it, and parses the answer
// atoms back into Go values.
package solver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrTimeout is returned when the solver ran out of time before
// producing a model.
var ErrTimeout = errors.New("solver timed out")

// Job describes one solver invocation.
type Job struct {
	// Files are paths to the rule programs to load.
	Files []string
	// Facts is optional instance text appended as an extra input file.
	Facts string
	// Constants override #const definitions via -c flags.
	Constants map[string]int
	// Models is the number of models to compute (0 means solver default).
	Models int
	// Seed randomizes the search when non-zero.
	Seed int64
	// SignDef sets the solver's sign heuristic, e.g. "rnd".
	SignDef string
	// RandFreq sets the random decision frequency when positive.
	RandFreq float64
	// OptMode selects the optimization mode, e.g. "optN".
	OptMode string
	// TimeLimit is passed to the solver as its own soft limit.
	TimeLimit time.Duration
	// Timeout is the hard deadline for the whole process.
	Timeout time.Duration
}

// Runner solves ASP jobs. The pipeline depends on this interface so it
// can be exercised without a solver binary installed.
type Runner interface {
	Solve(ctx context.Context, job Job) (*Result, error)
}

// Clingo runs jobs through the clingo executable.
type Clingo struct {
	binary string
	log    *zap.Logger
}

// NewClingo returns a runner using the given clingo binary.
func NewClingo(binary string, log *zap.Logger) *Clingo {
	if binary == "" {
		binary = "clingo"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Clingo{binary: binary, log: log}
}

// Solve runs one clingo invocation and parses its last answer set.
// Clingo signals satisfiability through its exit status (10 SAT, 20
// UNSAT, 30 optimum found), so a non-zero exit is not by itself an
// error.
func (c *Clingo) Solve(ctx context.Context, job Job) (*Result, error) {
	args, cleanup, err := c.buildArgs(job)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, c.binary, args...)
	out, runErr := cmd.CombinedOutput()
	output := string(out)

	c.log.Debug("solver finished",
		zap.String("binary", c.binary),
		zap.Strings("args", args),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("output_bytes", len(output)))

	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w after %s", ErrTimeout, time.Since(start).Round(time.Millisecond))
	}
	if runErr != nil && !expectedExit(runErr) && !hasVerdict(output) {
		return nil, fmt.Errorf("solver failed: %w: %s", runErr, tail(output, 400))
	}

	return ParseOutput(output)
}

// buildArgs assembles the command line and writes the facts temp file
// if the job carries one. The returned cleanup removes it.
func (c *Clingo) buildArgs(job Job) ([]string, func(), error) {
	cleanup := func() {}

	args := append([]string{}, job.Files...)
	if job.Facts != "" {
		f, err := os.CreateTemp("", "dungeonforge-facts-*.lp")
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to write facts file: %w", err)
		}
		if _, err := f.WriteString(job.Facts); err != nil {
			f.Close()
			os.Remove(f.Name())
			return nil, cleanup, fmt.Errorf("failed to write facts file: %w", err)
		}
		f.Close()
		cleanup = func() { os.Remove(f.Name()) }
		args = append(args, f.Name())
	}

	if job.Models > 0 {
		args = append(args, fmt.Sprintf("--models=%d", job.Models))
	}

	names := make([]string, 0, len(job.Constants))
	for name := range job.Constants {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, "-c", fmt.Sprintf("%s=%d", name, job.Constants[name]))
	}

	if job.Seed != 0 {
		args = append(args, fmt.Sprintf("--seed=%d", job.Seed))
	}
	if job.SignDef != "" {
		args = append(args, "--sign-def="+job.SignDef)
	}
	if job.RandFreq > 0 {
		args = append(args, fmt.Sprintf("--rand-freq=%g", job.RandFreq))
	}
	if job.OptMode != "" {
		args = append(args, "--opt-mode="+job.OptMode)
	}
	if job.TimeLimit > 0 {
		secs := int((job.TimeLimit + time.Second - 1) / time.Second)
		args = append(args, fmt.Sprintf("--time-limit=%d", secs))
	}

	return args, cleanup, nil
}

func expectedExit(err error) bool {
	var exit *exec.ExitError
	if !errors.As(err, &exit) {
		return false
	}
	switch exit.ExitCode() {
	case 10, 20, 30: // SAT, UNSAT, SAT with exhausted/optimal search
		return true
	}
	return false
}

func hasVerdict(output string) bool {
	return strings.Contains(output, "SATISFIABLE") || strings.Contains(output, "OPTIMUM FOUND")
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return "..." + s[len(s)-n:]
}
