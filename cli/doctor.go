package cli

import (
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/muzzle/commenter"
)

// DoctorCmd provides doctor utilities for debugging detection.
type DoctorCmd struct {
	Spans SpansCmd `cmd:"" help:"Show the statement spans detected in a file."`
}

// SpansCmd shows the spans the commenter would rewrite.
type SpansCmd struct {
	MatchOptions

	File FileOrStdin `help:"Source filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Raw  bool        `help:"Dump the span values instead of the annotated source."`
}

// Run executes the spans command.
func (cmd *SpansCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	cfg, err := resolveConfig(globals, cmd.overlay)
	if err != nil {
		printError(ctx.Stderr, fmt.Sprintf("invalid configuration: %v", err))
		return NewCommandError(2)
	}

	doc := commenter.ParseDocument(content)
	spans := cfg.Commenter().Spans(doc)

	if cmd.Raw {
		_, _ = fmt.Fprintln(ctx.Stdout, repr.String(spans, repr.Indent("  ")))
		return nil
	}

	// Format: KIND start-end, followed by the numbered source lines
	for _, span := range spans {
		kind := span.Kind.String()
		if span.Inline {
			kind += " (inline)"
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%-20s %d-%d\n", kind, span.Start+1, span.End)

		for i := span.Start; i < span.End; i++ {
			_, _ = fmt.Fprintf(ctx.Stdout, "  %5d  %s\n", i+1, doc.Text(i))
		}
	}

	return nil
}
