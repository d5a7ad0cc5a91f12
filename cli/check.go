package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/muzzle/output"
	"github.com/robinvdvleuten/muzzle/report"
	"github.com/robinvdvleuten/muzzle/rewrite"
)

type CheckCmd struct {
	Options

	Width  int    `help:"Truncate previewed lines to this many columns (terminal width if 0)." default:"0"`
	Format string `help:"Output format: text or json." enum:"text,json" default:"text"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := resolveConfig(globals, cmd.overlay)
	if err != nil {
		printError(ctx.Stderr, fmt.Sprintf("invalid configuration: %v", err))
		return NewCommandError(2)
	}

	runCtx, reportTelemetry := startTelemetry(globals, ctx.Stderr, "check")
	defer reportTelemetry()

	opts := append(rewriteOptions(cfg), rewrite.WithDryRun())
	summary, err := rewrite.New(opts...).Run(runCtx)
	if summary == nil {
		return err
	}

	if cmd.Format == "json" {
		_, _ = fmt.Fprintln(ctx.Stdout, report.NewJSONFormatter().Format(summary))
	} else {
		width := cmd.Width
		if width <= 0 {
			width = terminalWidth(100)
		}
		writePreview(ctx.Stdout, summary, width)

		if errs := summary.Errors(); len(errs) > 0 {
			_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer().RenderAll(errs))
		}
	}

	if err != nil {
		printError(ctx.Stderr, fmt.Sprintf("check aborted: %v", err))
		return NewCommandError(1)
	}

	changed := summary.Changed()
	switch {
	case len(changed) > 0:
		if cmd.Format == "text" {
			printError(ctx.Stderr, fmt.Sprintf("%d %s statement(s) in %d file(s)", summary.Spans, cfg.Target, len(changed)))
		}
		return NewCommandError(1)
	case summary.Failed > 0:
		return NewCommandError(1)
	}

	if cmd.Format == "text" {
		printSuccess(ctx.Stdout, fmt.Sprintf("No %s statements found in %d file(s)", cfg.Target, summary.Scanned))
	}
	return nil
}

// writePreview prints every pending change as a before/after pair, each line
// truncated to width display columns.
func writePreview(w io.Writer, summary *rewrite.Summary, width int) {
	styles := output.NewStyles(w)

	// Room for the gutter: line number, sign and padding.
	const gutter = 10
	lineWidth := max(width-gutter, 20)

	for _, res := range summary.Changed() {
		_, _ = fmt.Fprintf(w, "%s %s\n",
			styles.FilePath(res.Path),
			styles.Dim(fmt.Sprintf("(%d statement(s), %d line(s))", len(res.Spans), len(res.Changes))),
		)
		for _, c := range res.Changes {
			_, _ = fmt.Fprintf(w, "  %5d %s\n", c.Line, styles.Removed("- "+runewidth.Truncate(c.Before, lineWidth, "…")))
			_, _ = fmt.Fprintf(w, "  %5s %s\n", "", styles.Added("+ "+runewidth.Truncate(c.After, lineWidth, "…")))
		}
		_, _ = fmt.Fprintln(w)
	}
}
