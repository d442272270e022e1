package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/parsetest/pkg/pattern"
	"github.com/dkoosis/parsetest/pkg/testlog"
)

// maxSourceWidth caps how far summary counts are pushed right by long paths.
const maxSourceWidth = 48

// Terminal renders patterns as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer with the given theme.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats all patterns for terminal display.
func (t *Terminal) Render(patterns []pattern.Pattern) string {
	sourceWidth := 0
	for _, p := range patterns {
		if s, ok := p.(*pattern.Summary); ok {
			sourceWidth = max(sourceWidth, runewidth.StringWidth(s.Source))
		}
	}
	sourceWidth = min(sourceWidth, maxSourceWidth)

	var sb strings.Builder
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			sb.WriteString(t.renderSummary(v, sourceWidth))
		case *pattern.TestList:
			sb.WriteString(t.renderTestList(v))
		case *pattern.Diff:
			sb.WriteString(t.renderDiff(v))
		}
	}
	return sb.String()
}

func (t *Terminal) renderSummary(s *pattern.Summary, sourceWidth int) string {
	icon, iconStyle := t.theme.Icons.Pass, t.theme.Success
	if s.Failed > 0 {
		icon, iconStyle = t.theme.Icons.Fail, t.theme.Error
	}
	source := s.Source
	if runewidth.StringWidth(source) > sourceWidth {
		source = runewidth.Truncate(source, sourceWidth, "…")
	}

	var sb strings.Builder
	sb.WriteString(iconStyle.Render(icon) + " ")
	sb.WriteString(t.theme.Bold.Render(runewidth.FillRight(source, sourceWidth)))
	sb.WriteString("  ")
	sb.WriteString(t.count(testlog.Passed, s.Passed) + t.theme.Muted.Render(", "))
	sb.WriteString(t.count(testlog.Skipped, s.Skipped) + t.theme.Muted.Render(", "))
	sb.WriteString(t.count(testlog.Failed, s.Failed))
	sb.WriteString("\n")
	return sb.String()
}

func (t *Terminal) count(o testlog.Outcome, n int) string {
	style := t.theme.OutcomeStyle(o)
	if n == 0 {
		style = t.theme.Muted
	}
	return style.Render(fmt.Sprintf("%s: %d", o, n))
}

func (t *Terminal) renderTestList(l *pattern.TestList) string {
	if len(l.Names) == 0 {
		return ""
	}
	style := t.theme.OutcomeStyle(l.Outcome)
	var sb strings.Builder
	sb.WriteString("\n")
	for _, name := range l.Names {
		sb.WriteString(style.Render(l.Outcome.Label()) + name + "\n")
	}
	return sb.String()
}

func (t *Terminal) renderDiff(d *pattern.Diff) string {
	var sb strings.Builder
	sb.WriteString(t.rule(fmt.Sprintf(" DIFF · %d changed ", len(d.Changes))))
	sb.WriteString("\n")
	if len(d.Changes) == 0 {
		sb.WriteString(t.theme.Muted.Render("None") + "\n")
		return sb.String()
	}
	arrow := t.theme.Muted.Render("=> ")
	for _, c := range d.Changes {
		sb.WriteString(t.theme.OutcomeStyle(c.Before).Render(c.Before.Label()))
		sb.WriteString(arrow)
		sb.WriteString(t.theme.OutcomeStyle(c.After).Render(c.After.Label()))
		sb.WriteString(c.Name + "\n")
	}
	return sb.String()
}

// rule centers title in a horizontal line spanning the terminal width.
func (t *Terminal) rule(title string) string {
	fill := t.width - runewidth.StringWidth(title)
	if fill < 4 {
		return t.theme.Bold.Render(title)
	}
	left := fill / 2
	right := fill - left
	line := t.theme.Muted
	return line.Render(strings.Repeat("─", left)) + t.theme.Bold.Render(title) + line.Render(strings.Repeat("─", right))
}
