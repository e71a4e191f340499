package cli

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/diagvor/pkg/voronoi"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// metricDescriptions are shown next to each metric in the picker.
var metricDescriptions = map[voronoi.Metric]string{
	voronoi.Euclidean: "straight-line distance, round cells",
	voronoi.Manhattan: "sum of axis distances, diamond-shaped cells",
	voronoi.Chebyshev: "largest axis distance, square cells",
}

// =============================================================================
// MetricPickerModel - Interactive metric selection
// =============================================================================

// MetricPickerModel is the bubbletea model for interactive metric selection.
type MetricPickerModel struct {
	Metrics  []voronoi.Metric
	Cursor   int
	Selected *voronoi.Metric
}

// NewMetricPickerModel creates a picker over all supported metrics.
func NewMetricPickerModel() MetricPickerModel {
	return MetricPickerModel{Metrics: voronoi.Metrics}
}

func (m MetricPickerModel) Init() tea.Cmd {
	return nil
}

func (m MetricPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Metrics)-1 {
				m.Cursor++
			}
		case "1", "2", "3":
			if i := int(msg.String()[0] - '1'); i < len(m.Metrics) {
				m.Cursor = i
			}
		case "enter":
			selected := m.Metrics[m.Cursor]
			m.Selected = &selected
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MetricPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Distance Metric"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, metric := range m.Metrics {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%d %-10s", cursor, i+1, metric)
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("  " + listDimStyle.Render(metricDescriptions[metric]))
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// pickMetric runs the metric picker. ok is false when the user quit without
// choosing.
func pickMetric() (metric voronoi.Metric, ok bool, err error) {
	p := tea.NewProgram(NewMetricPickerModel())
	finalModel, err := p.Run()
	if err != nil {
		return 0, false, err
	}
	fm, isPicker := finalModel.(MetricPickerModel)
	if !isPicker || fm.Selected == nil {
		return 0, false, nil
	}
	return *fm.Selected, true, nil
}

// isInteractive reports whether both stdin and stdout are terminals.
func isInteractive() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
