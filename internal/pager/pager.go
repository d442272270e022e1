// Package pager shows a rendered report in a scrollable terminal view.
package pager

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Run pages content until the user quits or ctx is cancelled.
func Run(ctx context.Context, title, content string, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(
		newModel(title, content),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running pager: %w", err)
	}
	return nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

// chromeHeight is the number of rows used by the title and footer.
const chromeHeight = 2

type model struct {
	title    string
	content  string
	viewport viewport.Model
	ready    bool
}

func newModel(title, content string) model {
	return model{title: title, content: strings.TrimRight(content, "\n")}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	case tea.WindowSizeMsg:
		height := max(msg.Height-chromeHeight, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "loading…"
	}
	footer := fmt.Sprintf("%3.0f%%  ↑/↓ scroll · g/G top/bottom · q quit", m.viewport.ScrollPercent()*100)
	return titleStyle.Render(m.title) + "\n" + m.viewport.View() + "\n" + footerStyle.Render(footer)
}
