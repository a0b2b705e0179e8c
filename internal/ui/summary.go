package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/wahlandcase/tickethook/internal/hook"
	"github.com/wahlandcase/tickethook/internal/models"
)

// Printer writes the end-of-push summary. git relays hook output to the pusher as "remote:" lines.
type Printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
}

// NewPrinter creates a Printer on w. noColor forces plain ASCII output.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	renderer := lipgloss.NewRenderer(w)
	if noColor {
		renderer.SetColorProfile(termenv.Ascii)
	}
	return &Printer{w: w, renderer: renderer}
}

// SectionHeader creates a styled section header with a title and color
// Example: "─── TITLE ───────────"
func (p *Printer) SectionHeader(title string, color lipgloss.Color) string {
	dashes := strings.Repeat("─", max(25-len(title), 0))
	headerStyle := p.renderer.NewStyle().Foreground(color)
	titleStyle := p.renderer.NewStyle().Foreground(color).Bold(true)

	return fmt.Sprintf("%s%s%s",
		headerStyle.Render("─── "),
		titleStyle.Render(title),
		headerStyle.Render(" "+dashes),
	)
}

// DeliveryLine renders one delivery with a status glyph
func (p *Printer) DeliveryLine(d models.Delivery) string {
	var glyph string
	var color lipgloss.Color
	switch {
	case models.IsStatusDelivered(d.Status):
		glyph, color = "✓", ColorGreen
	case models.IsStatusSkipped(d.Status):
		glyph, color = "-", ColorYellow
	default:
		glyph, color = "✗", ColorRed
	}

	glyphStyle := p.renderer.NewStyle().Foreground(color).Bold(true)
	dimStyle := p.renderer.NewStyle().Foreground(ColorDarkGray)

	line := fmt.Sprintf("%s %-10s %-7s %s",
		glyphStyle.Render(glyph),
		d.TicketID,
		d.Notifier,
		dimStyle.Render(shortSHA(d.SHA)),
	)
	if reason := models.GetStatusReason(d.Status); reason != "" {
		line += " " + dimStyle.Render("("+reason+")")
	}
	return line
}

// Render returns the whole summary. Nothing is rendered when no tracked ref was pushed.
func (p *Printer) Render(report hook.Report, trackedBranch string, dryRun bool) string {
	if report.RefsProcessed == 0 {
		return ""
	}

	lines := []string{p.SectionHeader(trackedBranch, BranchColor(trackedBranch))}

	if dryRun {
		warningStyle := p.renderer.NewStyle().Foreground(ColorYellow).Bold(true)
		lines = append(lines, warningStyle.Render("⚠ DRY RUN MODE"))
	}

	for _, d := range report.Deliveries {
		lines = append(lines, p.DeliveryLine(d))
	}

	failed := 0
	for _, d := range report.Deliveries {
		if models.IsStatusFailed(d.Status) {
			failed++
		}
	}

	countStyle := p.renderer.NewStyle().Foreground(ColorCyan)
	lines = append(lines, countStyle.Render(fmt.Sprintf("%d commit(s), %d notification(s), %d failed",
		report.CommitsProcessed, len(report.Deliveries), failed)))

	return strings.Join(lines, "\n")
}

// Print writes the summary followed by a newline, if there is anything to say
func (p *Printer) Print(report hook.Report, trackedBranch string, dryRun bool) error {
	out := p.Render(report, trackedBranch, dryRun)
	if out == "" {
		return nil
	}
	_, err := fmt.Fprintln(p.w, out)
	return err
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
