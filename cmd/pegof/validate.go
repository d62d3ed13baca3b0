package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/pegformat/pegof/ast"
	"github.com/pegformat/pegof/config"
	"github.com/pegformat/pegof/validator"
)

// runValidate invokes PackCC on the formatted grammar and prints the
// comparison report to stderr. A PackCC rejection is reported, not
// fatal: the formatted output was already written by runFormat before
// this is called (spec.md §7).
func runValidate(ctx context.Context, cfg config.Snapshot, logger zerolog.Logger, g *ast.Grammar, formatted string) error {
	vd, err := validator.New(cfg, logger)
	if err != nil {
		return err
	}
	defer vd.Close()

	result, err := vd.Validate(ctx, g, formatted)
	if err != nil {
		return err
	}
	result.Report(os.Stderr)
	return nil
}
