// Package config resolves the settings of a muzzle run.
//
// Settings come from three layers, later ones winning: built-in defaults
// (matching a Mix project: lib and test, .ex and .exs, IO.puts), an optional
// configuration file, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/robinvdvleuten/muzzle/commenter"
	"github.com/robinvdvleuten/muzzle/walker"
)

// File is the on-disk configuration. Nil fields are unset and keep the value
// of the layer below.
type File struct {
	Roots       *[]string `toml:"roots" yaml:"roots"`
	Extensions  *[]string `toml:"extensions" yaml:"extensions"`
	Excludes    *[]string `toml:"excludes" yaml:"excludes"`
	Target      *string   `toml:"target" yaml:"target"`
	Marker      *string   `toml:"marker" yaml:"marker"`
	Placeholder *string   `toml:"placeholder" yaml:"placeholder"`
	Delimiter   *string   `toml:"delimiter" yaml:"delimiter"`
	Policy      *string   `toml:"policy" yaml:"policy"`
	Fallback    *string   `toml:"fallback" yaml:"fallback"`
	Jobs        *int      `toml:"jobs" yaml:"jobs"`
	FailFast    *bool     `toml:"fail_fast" yaml:"fail_fast"`
}

// Config is a fully resolved configuration.
type Config struct {
	Roots       []string
	Extensions  []string
	Excludes    []string
	Target      string
	Marker      string
	Placeholder string
	Delimiter   string
	Policy      commenter.Policy
	Fallback    commenter.Fallback
	Jobs        int
	FailFast    bool

	// Source is the configuration file that was applied, if any.
	Source string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Roots:       slices.Clone(walker.DefaultRoots),
		Extensions:  slices.Clone(walker.DefaultExtensions),
		Target:      commenter.DefaultTarget,
		Marker:      commenter.DefaultMarker,
		Placeholder: commenter.DefaultPlaceholder,
		Delimiter:   commenter.DefaultDelimiter,
		Policy:      commenter.PolicyStrict,
		Fallback:    commenter.FallbackSpan,
		Jobs:        1,
	}
}

// Apply overlays the set fields of f onto c.
func (c Config) Apply(f File) (Config, error) {
	if f.Roots != nil {
		c.Roots = normalizeList(*f.Roots)
	}
	if f.Extensions != nil {
		c.Extensions = normalizeExtensions(*f.Extensions)
	}
	if f.Excludes != nil {
		c.Excludes = normalizeList(*f.Excludes)
	}
	if f.Target != nil {
		c.Target = strings.TrimSpace(*f.Target)
	}
	if f.Marker != nil {
		c.Marker = strings.TrimSpace(*f.Marker)
	}
	if f.Placeholder != nil {
		c.Placeholder = strings.TrimSpace(*f.Placeholder)
	}
	if f.Delimiter != nil {
		c.Delimiter = *f.Delimiter
	}
	if f.Policy != nil {
		p, err := commenter.ParsePolicy(*f.Policy)
		if err != nil {
			return c, fmt.Errorf("policy: %w", err)
		}
		c.Policy = p
	}
	if f.Fallback != nil {
		fb, err := commenter.ParseFallback(*f.Fallback)
		if err != nil {
			return c, fmt.Errorf("fallback: %w", err)
		}
		c.Fallback = fb
	}
	if f.Jobs != nil {
		c.Jobs = *f.Jobs
	}
	if f.FailFast != nil {
		c.FailFast = *f.FailFast
	}
	return c, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if len(c.Roots) == 0 {
		errs = append(errs, errors.New("at least one root is required"))
	}
	if len(c.Extensions) == 0 {
		errs = append(errs, errors.New("at least one extension is required"))
	}
	if c.Target == "" {
		errs = append(errs, errors.New("target cannot be empty"))
	}
	if c.Marker == "" {
		errs = append(errs, errors.New("marker cannot be empty"))
	}
	if c.Policy == commenter.PolicyContains && c.Placeholder == "" {
		errs = append(errs, errors.New("placeholder cannot be empty with the contains policy"))
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}
	if err := c.Walker().Validate(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Commenter builds the commenter described by c.
func (c Config) Commenter() *commenter.Commenter {
	return commenter.New(
		commenter.WithPolicy(c.Policy),
		commenter.WithTarget(c.Target),
		commenter.WithMarker(c.Marker),
		commenter.WithPlaceholder(c.Placeholder),
		commenter.WithDelimiter(c.Delimiter),
		commenter.WithEmbeddedFallback(c.Fallback),
	)
}

// Walker builds the file walker described by c.
func (c Config) Walker() *walker.Walker {
	return walker.New(
		walker.WithRoots(c.Roots...),
		walker.WithExtensions(c.Extensions...),
		walker.WithExcludes(c.Excludes...),
	)
}

// UndoHint is the command that restores the configured roots from git.
func (c Config) UndoHint() string {
	dirs := make([]string, len(c.Roots))
	for i, root := range c.Roots {
		dirs[i] = strings.TrimSuffix(root, "/") + "/"
	}
	return "git checkout -- " + strings.Join(dirs, " ")
}

func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

func normalizeExtensions(values []string) []string {
	out := normalizeList(values)
	for i, ext := range out {
		if !strings.HasPrefix(ext, ".") {
			out[i] = "." + ext
		}
	}
	return out
}
