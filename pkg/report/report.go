// Package report prints measurement results and decides pass or fail against a limit.
package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"mocsize/pkg/config"
	"mocsize/pkg/measure"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// Within reports whether r fits under limit. Always true without a limit.
func Within(r measure.Result, limit config.Limit) bool {
	return limit.Allows(r.Size)
}

// ExitCode is ExitSuccess when no limit is set or every result is within it.
func ExitCode(results []measure.Result, limit config.Limit) int {
	if !limit.IsSet() {
		return ExitSuccess
	}
	for _, r := range results {
		if !Within(r, limit) {
			return ExitFailure
		}
	}
	return ExitSuccess
}

// Printer writes human-readable results.
type Printer struct {
	Writer io.Writer
	Color  bool
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, color bool) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{Writer: w, Color: color}
}

// Print writes one block per result and returns true if any result exceeds the limit.
func (p *Printer) Print(results []measure.Result, limit config.Limit) bool {
	failed := false
	limitBytes, hasLimit := limit.Bytes()
	multiple := len(results) > 1

	for i, r := range results {
		within := Within(r, limit)
		if !within {
			failed = true
		}
		style := passStyle
		if !within {
			style = failStyle
		}

		if multiple && r.Name != "" {
			fmt.Fprintf(p.Writer, "  %s\n", p.colorize(r.Name, titleStyle))
		}
		if hasLimit {
			fmt.Fprintf(p.Writer, "  Size limit:   %s\n", p.colorize(KB(limitBytes), style))
		}

		line := "  Size:         " + p.colorize(KB(float64(r.Size)), style)
		if r.Description != "" {
			line += " " + p.colorize(r.Description, mutedStyle)
		}
		fmt.Fprintln(p.Writer, line)

		if r.LoadingTime > 0 {
			fmt.Fprintf(p.Writer, "  Loading time: %s %s\n",
				p.colorize(FormatTime(r.LoadingTime), style),
				p.colorize("on slow 3G", mutedStyle))
		}

		if !within {
			over := float64(r.Size) - limitBytes
			fmt.Fprintf(p.Writer, "  %s\n", p.colorize("Package size limit has exceeded by "+KB(over), failStyle))
		}

		if multiple && i < len(results)-1 {
			fmt.Fprintln(p.Writer)
		}
	}

	return failed
}

func (p *Printer) colorize(s string, style lipgloss.Style) string {
	if !p.Color {
		return s
	}
	return style.Render(s)
}

// KB formats bytes as decimal kilobytes with two decimals, e.g. "40.00 kB".
func KB(bytes float64) string {
	return fmt.Sprintf("%.2f kB", bytes/1000)
}

// FormatTime renders sub-second durations in milliseconds and longer ones in seconds.
func FormatTime(d time.Duration) string {
	if d >= time.Second {
		return fmt.Sprintf("%.1f s", d.Seconds())
	}
	return fmt.Sprintf("%d ms", d.Round(time.Millisecond).Milliseconds())
}
