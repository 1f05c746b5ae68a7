package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/erfan1375er/highcharts/pkg/sink"
	"github.com/erfan1375er/highcharts/pkg/tree"
	"github.com/erfan1375er/highcharts/pkg/treegraph"
)

// List styles
var (
	listSelectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle    = lipgloss.NewStyle().Foreground(colorWhite)
	listCollapsedStyle = lipgloss.NewStyle().Foreground(colorYellow)
	listDimStyle       = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BrowseModel - Interactive collapse browser
// =============================================================================

// browseRow is one visible node as listed by the browser.
type browseRow struct {
	ID        string
	Name      string
	Level     int
	Value     float64
	Collapsed bool
	Leaf      bool
}

// BrowseModel is the bubbletea model for toggling nodes of a live series.
// Only visible nodes are listed; collapsing a node hides its subtree.
type BrowseModel struct {
	Series *treegraph.Series
	Output string // SVG path written by "w"
	Rows   []browseRow
	Cursor int
	Height int
	Offset int
	Status string
	Saved  int // number of SVG writes
}

// NewBrowseModel creates a browser over a series that already holds data.
func NewBrowseModel(s *treegraph.Series, output string) BrowseModel {
	m := BrowseModel{Series: s, Output: output, Height: 15}
	m.Rows = visibleRows(s.Tree())
	return m
}

// visibleRows lists the rendered nodes in preorder, skipping the subtrees
// of collapsed nodes.
func visibleRows(t *tree.Tree) []browseRow {
	var rows []browseRow
	t.Walk(func(n *tree.Node) bool {
		if n.Virtual {
			return true
		}
		if n.Hidden {
			return false
		}
		rows = append(rows, browseRow{
			ID:        n.ID,
			Name:      n.Record.Name,
			Level:     n.Level,
			Value:     n.Value,
			Collapsed: n.Collapsed,
			Leaf:      n.IsLeaf(),
		})
		return !n.Collapsed
	})
	return rows
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "space", "enter":
			m = m.toggle()
		case "w":
			m = m.save()
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

// toggle flips the node under the cursor and keeps the cursor on it.
func (m BrowseModel) toggle() BrowseModel {
	if len(m.Rows) == 0 {
		return m
	}
	row := m.Rows[m.Cursor]
	if row.Leaf {
		m.Status = fmt.Sprintf("%s has no children", row.ID)
		return m
	}
	if err := m.Series.Toggle(row.ID); err != nil {
		m.Status = "toggle failed: " + err.Error()
		return m
	}
	m.Rows = visibleRows(m.Series.Tree())
	for i, r := range m.Rows {
		if r.ID == row.ID {
			m.Cursor = i
			break
		}
	}
	state := "expanded"
	if !row.Collapsed {
		state = "collapsed"
	}
	m.Status = fmt.Sprintf("%s %s · %d visible", row.ID, state, m.Series.Result().Visible)
	return m
}

// save writes the current pass as SVG.
func (m BrowseModel) save() BrowseModel {
	data := sink.RenderSVG(m.Series.Result(), sink.WithLabels())
	if err := writeArtifact(m.Output, data); err != nil {
		m.Status = err.Error()
		return m
	}
	m.Saved++
	m.Status = "wrote " + m.Output
	return m
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  w write svg  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		marker := "▾"
		switch {
		case r.Leaf:
			marker = "·"
		case r.Collapsed:
			marker = "▸"
		}
		label := r.ID
		if r.Name != "" && r.Name != r.ID {
			label = fmt.Sprintf("%s (%s)", r.Name, r.ID)
		}
		rows = append(rows, []string{
			cursor,
			strings.Repeat("  ", max(r.Level, 0)) + marker + " " + label,
			fmt.Sprintf("%d", r.Level),
			fmt.Sprintf("%g", r.Value),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Level", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case m.Rows[idx].Collapsed:
				return listCollapsedStyle
			case col >= 2:
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	if m.Status != "" {
		b.WriteString("  ")
		b.WriteString(StyleSuccess.Render(m.Status))
	}

	return b.String()
}
