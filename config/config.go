// Package config binds the CLI's optimizer knobs through viper and
// freezes them into an immutable Snapshot before the pipeline starts,
// following spec.md §5's "process-wide read-only snapshot, no writer
// after initialization" model and the env-var-plus-flag binding pattern
// open-policy-agent-opa/cmd/internal/env uses for its own cobra
// commands.
package config

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "PEGOF"

// Snapshot is the read-only view of configuration the optimizer
// consumes. It is passed by value so nothing can observe a
// partially-updated configuration, even though the core is
// single-threaded today (spec.md §5).
type Snapshot struct {
	WrapLimit           int
	InlineLimit         int
	TerminalInlineLimit int
	NoConcat            bool
	NoCharClass         bool
	NoSingleChar        bool
	NoInline            bool
	Debug               bool
	Validate            bool
	Output              string
	PackccPath          string
}

// Defaults returns the Snapshot used when no flag or environment
// variable overrides a key, matching spec.md §6's table.
func Defaults() Snapshot {
	return Snapshot{
		WrapLimit:           4,
		InlineLimit:         1,
		TerminalInlineLimit: 3,
		PackccPath:          "packcc",
	}
}

// BindFlags registers every optimizer/CLI flag spec.md §6 names on cmd
// and binds them into v, with PEGOF_-prefixed environment variables
// taking precedence over unset flags — the same AutomaticEnv +
// SetEnvPrefix idiom open-policy-agent-opa/cmd/internal/env uses for
// its own cobra commands.
func BindFlags(cmd *cobra.Command, v *viper.Viper) {
	d := Defaults()

	cmd.Flags().Int("wrap-limit", d.WrapLimit, "alternative-count threshold above which a rule's alternatives wrap to multiple lines")
	cmd.Flags().Int("inline-limit", d.InlineLimit, "max reference count for a non-terminal rule to be inlined")
	cmd.Flags().Int("terminal-inline-limit", d.TerminalInlineLimit, "max reference count for a terminal-class rule to be inlined")
	cmd.Flags().Bool("no-concat", false, "disable the concat_strings pass")
	cmd.Flags().Bool("no-char-class", false, "disable the normalize_character_classes pass")
	cmd.Flags().Bool("no-single-char", false, "disable the single_char_character_classes pass")
	cmd.Flags().Bool("no-inline", false, "disable the inline_rules pass")
	cmd.Flags().Bool("debug", false, "dump the AST before and after optimization")
	cmd.Flags().Bool("validate", false, "invoke packcc on the formatted output and report diagnostics")
	cmd.Flags().StringP("output", "o", "", "output path (default: stdout)")
	cmd.Flags().String("packcc-path", d.PackccPath, "path to the packcc executable")

	v.AutomaticEnv()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	_ = v.BindPFlags(cmd.Flags())
}

// FromViper materializes a Snapshot from v's current state, resolving
// each key through viper's flag > env > default precedence.
func FromViper(v *viper.Viper) Snapshot {
	d := Defaults()
	return Snapshot{
		WrapLimit:           viperIntOr(v, "wrap-limit", d.WrapLimit),
		InlineLimit:         viperIntOr(v, "inline-limit", d.InlineLimit),
		TerminalInlineLimit: viperIntOr(v, "terminal-inline-limit", d.TerminalInlineLimit),
		NoConcat:            v.GetBool("no-concat"),
		NoCharClass:         v.GetBool("no-char-class"),
		NoSingleChar:        v.GetBool("no-single-char"),
		NoInline:            v.GetBool("no-inline"),
		Debug:               v.GetBool("debug"),
		Validate:            v.GetBool("validate"),
		Output:              v.GetString("output"),
		PackccPath:          viperStringOr(v, "packcc-path", d.PackccPath),
	}
}

func viperIntOr(v *viper.Viper, key string, fallback int) int {
	if !v.IsSet(key) {
		return fallback
	}
	return v.GetInt(key)
}

func viperStringOr(v *viper.Viper, key string, fallback string) string {
	if !v.IsSet(key) {
		return fallback
	}
	return v.GetString(key)
}
