package cli

import (
	stdErrors "errors"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/muzzle/rewrite"
)

var errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})

// CommandError signals a command failure with a specific exit code.
// Commands return this after handling all output (printing errors/warnings to stderr).
// Main centralizes exit handling instead of commands calling os.Exit directly.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// ErrorRenderer renders errors with terminal styling.
type ErrorRenderer struct{}

// NewErrorRenderer creates a renderer.
func NewErrorRenderer() *ErrorRenderer {
	return &ErrorRenderer{}
}

// Render formats a single error. File errors name the operation and path,
// followed by the underlying cause on an indented line.
func (r *ErrorRenderer) Render(err error) string {
	var fileErr *rewrite.FileError
	if stdErrors.As(err, &fileErr) {
		var buf strings.Builder
		buf.WriteString(errorStyle.Render("failed to " + string(fileErr.Op)))
		buf.WriteByte(' ')
		buf.WriteString(pathStyle.Render(fileErr.Path))
		buf.WriteString("\n   ")
		buf.WriteString(errContextStyle.Render(fileErr.Err.Error()))
		return buf.String()
	}

	return errorStyle.Render(err.Error())
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}
