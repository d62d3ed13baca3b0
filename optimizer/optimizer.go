// Package optimizer implements pegof's fixed-point grammar rewriter: five
// passes, run in a fixed order until a full round makes zero changes.
// Four of them can be disabled through config.Snapshot;
// remove_unnecessary_groups has no flag and always runs. The pass bodies
// and their ordering are grounded directly on original_source/optimizer.cc;
// the fixed-point driver and per-pass gating follow spec.md §4.3.
package optimizer

import (
	"github.com/pegformat/pegof/ast"
	"github.com/pegformat/pegof/config"
	"github.com/rs/zerolog"
)

// Optimizer rewrites a single Grammar in place according to cfg.
type Optimizer struct {
	g   *ast.Grammar
	cfg config.Snapshot
	log zerolog.Logger
}

// New builds an Optimizer targeting g. g is mutated in place by Optimize
// and the individual pass methods.
func New(g *ast.Grammar, cfg config.Snapshot, logger zerolog.Logger) *Optimizer {
	return &Optimizer{g: g, cfg: cfg, log: logger}
}

// Optimize runs the five passes, in the fixed order spec.md §4.3 names,
// repeating full rounds until one makes zero changes. It returns the
// total number of individual rewrites performed across every round.
func (o *Optimizer) Optimize() int {
	total := 0
	for round := 1; ; round++ {
		changed := 0
		changed += o.NormalizeCharacterClasses()
		changed += o.InlineRules()
		changed += o.RemoveUnnecessaryGroups()
		changed += o.SingleCharCharacterClasses()
		changed += o.ConcatStrings()

		total += changed
		o.log.Debug().Int("round", round).Int("changed", changed).Msg("optimizer round")
		if o.cfg.Debug {
			if err := ast.CheckInvariants(o.g); err != nil {
				o.log.Error().Err(err).Int("round", round).Msg("invariant violated after optimizer round")
			}
		}
		if changed == 0 {
			return total
		}
	}
}
