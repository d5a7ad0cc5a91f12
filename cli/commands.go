package cli

import (
	"github.com/robinvdvleuten/muzzle/config"
	"github.com/robinvdvleuten/muzzle/rewrite"
)

// Globals defines global flags available to all commands.
type Globals struct {
	Config    string `help:"Configuration file (default: nearest .muzzle.toml, .muzzle.yaml or .muzzle.yml)." type:"path" placeholder:"PATH"`
	Telemetry bool   `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Run    RunCmd    `cmd:"" default:"withargs" help:"Comment out statements in place (default command)."`
	Check  CheckCmd  `cmd:"" help:"Report statements that would be commented out; exits 1 if there are any."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging detection."`
	Watch  WatchCmd  `cmd:"" help:"Watch the roots and comment out statements as files change."`
}

// MatchOptions are the flags that control detection and rewriting.
type MatchOptions struct {
	Policy      string `help:"Match policy: strict (statement starts the line) or contains (anywhere on the line)." placeholder:"POLICY"`
	Target      string `help:"Call to neutralize (default: IO.puts)." placeholder:"CALL"`
	Marker      string `help:"Line comment marker (default: #)." placeholder:"MARKER"`
	Placeholder string `help:"Replacement for embedded calls (default: :ok)." placeholder:"EXPR"`
	Fallback    string `help:"Handling of embedded calls spanning lines: span or line." placeholder:"MODE"`
}

func (o *MatchOptions) overlay(f *config.File) {
	setString(&f.Policy, o.Policy)
	setString(&f.Target, o.Target)
	setString(&f.Marker, o.Marker)
	setString(&f.Placeholder, o.Placeholder)
	setString(&f.Fallback, o.Fallback)
}

// Options are the flags shared by commands that walk the roots.
type Options struct {
	MatchOptions

	Roots    []string `arg:"" optional:"" help:"Directories or files to scan (default: lib test)."`
	Ext      []string `help:"File extensions to include (default: .ex,.exs)." placeholder:"EXT"`
	Exclude  []string `help:"Glob patterns, relative to each root, to leave alone." placeholder:"GLOB"`
	Jobs     int      `help:"Number of files to process concurrently." short:"j" default:"0"`
	FailFast bool     `help:"Stop at the first file that cannot be read or written."`
}

func (o *Options) overlay(f *config.File) {
	o.MatchOptions.overlay(f)
	if len(o.Roots) > 0 {
		f.Roots = &o.Roots
	}
	if len(o.Ext) > 0 {
		f.Extensions = &o.Ext
	}
	if len(o.Exclude) > 0 {
		f.Excludes = &o.Exclude
	}
	if o.Jobs > 0 {
		f.Jobs = &o.Jobs
	}
	if o.FailFast {
		f.FailFast = &o.FailFast
	}
}

// resolveConfig layers defaults, the configuration file and flags.
func resolveConfig(globals *Globals, overlay func(*config.File)) (config.Config, error) {
	cfg, err := config.Resolve(".", globals.Config)
	if err != nil {
		return cfg, err
	}

	var flags config.File
	overlay(&flags)

	cfg, err = cfg.Apply(flags)
	if err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func rewriteOptions(cfg config.Config) []rewrite.Option {
	opts := []rewrite.Option{
		rewrite.WithCommenter(cfg.Commenter()),
		rewrite.WithWalker(cfg.Walker()),
		rewrite.WithJobs(cfg.Jobs),
	}
	if cfg.FailFast {
		opts = append(opts, rewrite.WithFailFast())
	}
	return opts
}

func setString(dst **string, value string) {
	if value != "" {
		*dst = &value
	}
}
