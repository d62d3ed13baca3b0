package config_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pegformat/pegof/config"
)

func TestDefaults(t *testing.T) {
	d := config.Defaults()
	if d.WrapLimit != 4 || d.InlineLimit != 1 || d.TerminalInlineLimit != 3 {
		t.Fatalf("unexpected defaults: %+v", d)
	}
	if d.PackccPath != "packcc" {
		t.Fatalf("PackccPath default = %q, want %q", d.PackccPath, "packcc")
	}
	if d.NoConcat || d.NoCharClass || d.NoSingleChar || d.NoInline || d.Debug || d.Validate {
		t.Fatalf("bool flags should default to false: %+v", d)
	}
}

func newTestCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	// An explicit empty argument list keeps Execute from falling back to
	// os.Args, which holds the test binary's own -test.* flags.
	cmd.SetArgs([]string{})
	config.BindFlags(cmd, v)
	return cmd
}

func TestBindFlagsAndFromViperRoundTripDefaults(t *testing.T) {
	v := viper.New()
	cmd := newTestCommand(v)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := config.FromViper(v)
	want := config.Defaults()
	if got != want {
		t.Fatalf("FromViper with no flags set = %+v, want defaults %+v", got, want)
	}
}

func TestBindFlagsAndFromViperRoundTripOverrides(t *testing.T) {
	v := viper.New()
	cmd := newTestCommand(v)
	cmd.SetArgs([]string{
		"--wrap-limit=8",
		"--inline-limit=0",
		"--terminal-inline-limit=10",
		"--no-concat",
		"--no-char-class",
		"--no-single-char",
		"--no-inline",
		"--debug",
		"--validate",
		"--output=out.peg",
		"--packcc-path=/usr/local/bin/packcc",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := config.FromViper(v)
	want := config.Snapshot{
		WrapLimit:           8,
		InlineLimit:         0,
		TerminalInlineLimit: 10,
		NoConcat:            true,
		NoCharClass:         true,
		NoSingleChar:        true,
		NoInline:            true,
		Debug:               true,
		Validate:            true,
		Output:              "out.peg",
		PackccPath:          "/usr/local/bin/packcc",
	}
	if got != want {
		t.Fatalf("FromViper with every flag set = %+v, want %+v", got, want)
	}
}

func TestBindFlagsEnvOverridesDefault(t *testing.T) {
	t.Setenv("PEGOF_WRAP_LIMIT", "12")

	v := viper.New()
	cmd := newTestCommand(v)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := config.FromViper(v)
	if got.WrapLimit != 12 {
		t.Fatalf("WrapLimit = %d, want 12 from PEGOF_WRAP_LIMIT", got.WrapLimit)
	}
}
