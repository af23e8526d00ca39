package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/polyfold/polyfold/pkg/symmetry"
)

var browseDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// entryBrowser is the bubbletea model behind automorphisms --browse.
// Pressing z toggles between every entry and the zero-flagged ones only.
type entryBrowser struct {
	entries  []symmetry.Entry
	visible  []int // indices into entries
	zeroOnly bool
	cursor   int
	offset   int
	height   int
	width    int
}

func newEntryBrowser(entries []symmetry.Entry) entryBrowser {
	m := entryBrowser{entries: entries, height: 15, width: 48}
	m.filter()
	return m
}

func (m *entryBrowser) filter() {
	m.visible = nil
	for i, e := range m.entries {
		if !m.zeroOnly || e.Zero {
			m.visible = append(m.visible, i)
		}
	}
	m.cursor, m.offset = 0, 0
}

func (m entryBrowser) Init() tea.Cmd {
	return nil
}

func (m entryBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.visible)-1 {
				m.cursor++
			}
		case "pgup":
			m.cursor = max(0, m.cursor-m.height)
		case "pgdown":
			m.cursor = max(0, min(len(m.visible)-1, m.cursor+m.height))
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = max(0, len(m.visible)-1)
		case "z":
			m.zeroOnly = !m.zeroOnly
			m.filter()
		}
	case tea.WindowSizeMsg:
		m.height = max(5, msg.Height-8)
		m.width = max(16, (msg.Width-24)/2)
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
	return m, nil
}

func (m entryBrowser) View() string {
	var b strings.Builder

	title := "Automorphisms"
	if m.zeroOnly {
		title += " (zero-flagged)"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("↑/↓ navigate  z toggle zero-flagged  q quit"))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(browseDimStyle.Render("  no entries"))
		return b.String()
	}

	end := min(m.offset+m.height, len(m.visible))
	t := entryTable(m.entries, m.visible[m.offset:end], m.width, m.cursor-m.offset)
	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(browseDimStyle.Render(fmt.Sprintf("  [%d/%d] entry #%d", m.cursor+1, len(m.visible), m.visible[m.cursor])))
	return b.String()
}
