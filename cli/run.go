package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/muzzle/config"
	"github.com/robinvdvleuten/muzzle/report"
	"github.com/robinvdvleuten/muzzle/rewrite"
)

type RunCmd struct {
	Options

	DryRun      bool   `help:"Show what would change without writing files." short:"n"`
	Yes         bool   `help:"Skip the confirmation prompt." short:"y"`
	Interactive bool   `help:"Ask for confirmation before rewriting files." short:"i"`
	Format      string `help:"Output format: text or json." enum:"text,json" default:"text"`
}

func (cmd *RunCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := resolveConfig(globals, cmd.overlay)
	if err != nil {
		printError(ctx.Stderr, fmt.Sprintf("invalid configuration: %v", err))
		return NewCommandError(2)
	}

	if cmd.Interactive && !cmd.Yes && !cmd.DryRun {
		confirmed, err := promptYesNo(fmt.Sprintf("Comment out %s statements in %s?", cfg.Target, strings.Join(cfg.Roots, ", ")))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			printInfof(ctx.Stdout, "Nothing changed")
			return nil
		}
	}

	runCtx, reportTelemetry := startTelemetry(globals, ctx.Stderr, "run")
	defer reportTelemetry()

	opts := rewriteOptions(cfg)
	if cmd.DryRun {
		opts = append(opts, rewrite.WithDryRun())
	}
	if cmd.Format == "text" {
		opts = append(opts, rewrite.WithObserver(func(res rewrite.FileResult) {
			if res.Matched() {
				_, _ = fmt.Fprintf(ctx.Stdout, "Processing: %s\n", res.Path)
			}
		}))
	}

	summary, err := rewrite.New(opts...).Run(runCtx)
	if summary == nil {
		return err
	}

	if cmd.Format == "json" {
		_, _ = fmt.Fprintln(ctx.Stdout, report.NewJSONFormatter().Format(summary))
	} else {
		if errs := summary.Errors(); len(errs) > 0 {
			_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer().RenderAll(errs))
			_, _ = fmt.Fprintln(ctx.Stderr)
		}
		_, _ = fmt.Fprint(ctx.Stdout, textFormatter(cfg, cmd.DryRun).Format(summary))
	}

	if err != nil {
		printError(ctx.Stderr, fmt.Sprintf("run aborted: %v", err))
		return NewCommandError(1)
	}
	if summary.Failed > 0 {
		return NewCommandError(1)
	}

	return nil
}

func textFormatter(cfg config.Config, dryRun bool) *report.TextFormatter {
	opts := []report.TextFormatterOption{
		report.WithTarget(cfg.Target),
		report.WithUndoHint(cfg.UndoHint()),
	}
	if dryRun {
		opts = append(opts, report.WithDryRun())
	}
	return report.NewTextFormatter(opts...)
}
