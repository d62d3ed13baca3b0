// Package validator invokes PackCC on a formatted grammar and reports
// whether it was accepted, alongside a byte/line/rule/term comparison
// between the grammar source and PackCC's generated C. Grounded on
// original_source/checker.cc's Checker: a scratch directory acquired at
// construction and removed unconditionally at Close, and stderr
// captured by redirecting the subprocess's error stream through a pipe.
// Unlike the original's fixed 100 KB buffer, io.ReadAll on the pipe
// drains PackCC's stderr completely regardless of size (DESIGN.md open
// question 4).
package validator

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pegformat/pegof/ast"
	"github.com/pegformat/pegof/config"
	"github.com/pegformat/pegof/pegerr"
)

// Result is the outcome of validating one formatted grammar.
type Result struct {
	Input     Stats
	Generated Stats
	// Err is a *pegerr.ValidationError when PackCC rejected the
	// grammar. It is not a Go error returned from Validate: validation
	// failure is reported, not fatal (spec.md §7).
	Err error
}

// Validator owns a scratch directory for the lifetime of a single
// formatting run.
type Validator struct {
	cfg        config.Snapshot
	log        zerolog.Logger
	scratchDir string
}

// New creates the scratch directory immediately, matching
// original_source/checker.cc's constructor.
func New(cfg config.Snapshot, logger zerolog.Logger) (*Validator, error) {
	dir := filepath.Join(os.TempDir(), "pegof-"+uuid.NewString())
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, &pegerr.IoError{Op: "create validator scratch directory", Err: err}
	}
	return &Validator{cfg: cfg, log: logger, scratchDir: dir}, nil
}

// Close removes the scratch directory unconditionally. Callers defer it
// immediately after New succeeds, so it runs on every exit path
// (spec.md §5).
func (v *Validator) Close() error {
	return os.RemoveAll(v.scratchDir)
}

// Validate writes formatted to the scratch directory, runs PackCC over
// it, and compares formatted's own stats against the generated C's.
func (v *Validator) Validate(ctx context.Context, g *ast.Grammar, formatted string) (*Result, error) {
	result := &Result{Input: ComputeStats(g, formatted)}

	inputPath := filepath.Join(v.scratchDir, "grammar.peg")
	if err := os.WriteFile(inputPath, []byte(formatted), 0o644); err != nil {
		return nil, &pegerr.IoError{Op: "write validator scratch input", Err: err}
	}
	outputBase := filepath.Join(v.scratchDir, "output")

	cmd := exec.CommandContext(ctx, v.cfg.PackccPath, "-o", outputBase, inputPath)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, &pegerr.IoError{Op: "open packcc stderr pipe", Err: err}
	}
	if err := cmd.Start(); err != nil {
		return nil, &pegerr.IoError{Op: "start packcc", Err: err}
	}
	captured, _ := io.ReadAll(stderr)
	runErr := cmd.Wait()

	if runErr != nil {
		result.Err = &pegerr.ValidationError{Stderr: string(captured)}
		v.log.Warn().Str("stderr", string(captured)).Msg("packcc rejected the formatted grammar")
		return result, nil
	}

	generatedSrc, err := os.ReadFile(outputBase + ".c")
	if err != nil {
		return nil, &pegerr.IoError{Op: "read packcc generated source", Err: err}
	}
	result.Generated = computeTextStats(string(generatedSrc))
	return result, nil
}
