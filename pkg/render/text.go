package render

import (
	"fmt"
	"strings"

	"github.com/dkoosis/parsetest/pkg/pattern"
)

// Text renders patterns as plain console text. The layout is a stable
// contract consumed by scripts, so it carries no styling or alignment.
type Text struct{}

// NewText creates a plain text renderer.
func NewText() *Text {
	return &Text{}
}

// Render formats all patterns as plain text.
func (t *Text) Render(patterns []pattern.Pattern) string {
	var sb strings.Builder
	for _, p := range patterns {
		switch v := p.(type) {
		case *pattern.Summary:
			fmt.Fprintf(&sb, ">>> Results of %s\n", v.Source)
			fmt.Fprintf(&sb, "Passed: %d, Skipped: %d, Failed: %d\n", v.Passed, v.Skipped, v.Failed)
		case *pattern.TestList:
			if len(v.Names) == 0 {
				continue
			}
			sb.WriteString("\n")
			for _, name := range v.Names {
				sb.WriteString(v.Outcome.Label() + name + "\n")
			}
		case *pattern.Diff:
			sb.WriteString(DiffHeader + "\n")
			if len(v.Changes) == 0 {
				sb.WriteString("None\n")
			}
			for _, c := range v.Changes {
				sb.WriteString(c.Before.Label() + "=> " + c.After.Label() + c.Name + "\n")
			}
		}
	}
	return sb.String()
}
