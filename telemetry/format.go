package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/muzzle/output"
)

// slowThreshold marks operations that get highlighted in the report.
const slowThreshold = 100 * time.Millisecond

// formatTimingTree writes one root timer and its descendants:
//
//	muzzle run: 125ms
//	├─ walker.walk: 3ms
//	└─ rewrite.file lib/app.ex: 12ms
//	   └─ commenter.comment (240 lines): 1ms
func formatTimingTree(w io.Writer, root *timerNode) {
	styles := output.NewStyles(w)

	_, _ = fmt.Fprintf(w, "%s: %s\n", styles.Keyword(root.name), formatDuration(root.duration()))

	for i, child := range root.children {
		formatNode(w, styles, child, "", i == len(root.children)-1)
	}
}

func formatNode(w io.Writer, styles *output.Styles, node *timerNode, prefix string, isLast bool) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	d := node.duration()
	_, _ = fmt.Fprintf(w, "%s%s: %s\n",
		styles.Dim(prefix+branch),
		node.name,
		styles.Timing(formatDuration(d), d >= slowThreshold),
	)

	for i, child := range node.children {
		formatNode(w, styles, child, prefix+extension, i == len(node.children)-1)
	}
}

// formatDuration shows milliseconds below one second and seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}
