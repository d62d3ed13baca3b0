package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pegformat/pegof/ast"
	"github.com/pegformat/pegof/config"
	"github.com/pegformat/pegof/internal/log"
	"github.com/pegformat/pegof/optimizer"
	"github.com/pegformat/pegof/parser"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "pegof [grammar-file]",
	Short: "Format and optimize a PEG grammar",
	Long: `pegof parses a PEG grammar, rewrites it through a fixed-point
suite of semantics-preserving optimizations (character-class
normalization, string concatenation, group elision, single-char-class
demotion, and rule inlining), and prints the result in canonical form.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runFormat,
}

func init() {
	config.BindFlags(rootCmd, v)
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		return err
	}
	return nil
}

func runFormat(cmd *cobra.Command, args []string) error {
	cfg := config.FromViper(v)
	logger := log.New(os.Stderr, cfg.Debug)

	var inputPath string
	if len(args) > 0 {
		inputPath = args[0]
	}

	src, err := readInput(inputPath)
	if err != nil {
		return err
	}

	g, err := parser.ParseString(src)
	if err != nil {
		return err
	}

	if cfg.Debug {
		logger.Debug().Msg("AST before optimization:\n" + g.Dump(""))
	}

	opt := optimizer.New(g, cfg, logger)
	changed := opt.Optimize()
	logger.Debug().Int("total_changes", changed).Msg("optimizer converged")

	if cfg.Debug {
		logger.Debug().Msg("AST after optimization:\n" + g.Dump(""))
	}

	if err := ast.CheckInvariants(g); err != nil {
		return err
	}

	formatted := g.Format(ast.Options{WrapLimit: cfg.WrapLimit})

	if err := writeOutput(cfg.Output, formatted); err != nil {
		return err
	}

	if cfg.Validate {
		if err := runValidate(cmd.Context(), cfg, logger, g, formatted); err != nil {
			return err
		}
	}

	return nil
}

func readInput(path string) (string, error) {
	var r io.Reader
	if path == "" || path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open grammar file %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read grammar source: %w", err)
	}
	return string(b), nil
}

func writeOutput(path string, formatted string) error {
	if path == "" || path == "-" {
		_, err := fmt.Fprint(os.Stdout, formatted)
		return err
	}
	return os.WriteFile(path, []byte(formatted), 0o644)
}
