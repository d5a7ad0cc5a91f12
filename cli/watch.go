package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/muzzle/rewrite"
	"github.com/robinvdvleuten/muzzle/watch"
)

type WatchCmd struct {
	Options

	Initial bool `help:"Process every file once before watching." default:"true" negatable:""`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := resolveConfig(globals, cmd.overlay)
	if err != nil {
		printError(ctx.Stderr, fmt.Sprintf("invalid configuration: %v", err))
		return NewCommandError(2)
	}

	runCtx, reportTelemetry := startTelemetry(globals, ctx.Stderr, "watch")
	defer reportTelemetry()

	runCtx, stop := signal.NotifyContext(runCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := append(rewriteOptions(cfg), rewrite.WithObserver(func(res rewrite.FileResult) {
		switch res.Status {
		case rewrite.StatusRewritten:
			printSuccess(ctx.Stdout, fmt.Sprintf("%s (%d statement(s))", pathStyle.Render(res.Path), len(res.Spans)))
		case rewrite.StatusFailed:
			_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer().Render(res.Err))
		}
	}))
	rw := rewrite.New(opts...)

	if cmd.Initial {
		summary, err := rw.Run(runCtx)
		if err != nil {
			return err
		}
		printInfof(ctx.Stdout, "Initial pass: %d of %d file(s) rewritten", summary.Rewritten, summary.Scanned)
	}

	w := watch.New(rw)

	printInfof(ctx.Stdout, "Watching %s for %s statements (Ctrl-C to stop)", strings.Join(cfg.Roots, ", "), cfg.Target)

	return w.Run(runCtx)
}
