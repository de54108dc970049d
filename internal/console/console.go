package console

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// out is swappable so tests can capture output.
var out io.Writer = os.Stdout

var (
	// Adaptive colors for dark/light terminals
	colorAccent = lipgloss.AdaptiveColor{Light: "#2563EB", Dark: "#3B82F6"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#F59E0B"}
	colorError  = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorGreen)
)

// Infof prints a plain progress line.
func Infof(format string, args ...any) {
	fmt.Fprintf(out, format+"\n", args...)
}

// Headerf prints a bold highlighted line.
func Headerf(format string, args ...any) {
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf(format, args...)))
}

// Warnf prints an indented warning line for absorbed, non-fatal failures.
func Warnf(format string, args ...any) {
	fmt.Fprintln(out, warnStyle.Render("  [warn] "+fmt.Sprintf(format, args...)))
}

// Errorf prints a highlighted error line.
func Errorf(format string, args ...any) {
	fmt.Fprintln(out, errorStyle.Render(fmt.Sprintf(format, args...)))
}

// Successf prints a highlighted completion line.
func Successf(format string, args ...any) {
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf(format, args...)))
}
