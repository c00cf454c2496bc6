package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-pathmetrics/pkg/edgelist"
	"github.com/dd0wney/cluso-pathmetrics/pkg/graph"
	"github.com/dd0wney/cluso-pathmetrics/pkg/stats"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FFFF")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#FF00FF")).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666")).
				Padding(0, 2)

	contentStyle = lipgloss.NewStyle().
			MarginLeft(2).
			MarginTop(1)

	statsBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2).
			MarginRight(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type view int

const (
	summaryView view = iota
	distributionView
)

var denominators = []stats.Denominator{
	stats.DenomEdgeSources,
	stats.DenomReachable,
	stats.DenomDistinctNodes,
}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Enter    key.Binding
	Denom    key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
}

var keys = keyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev view"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "compute"),
	),
	Denom: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "cycle denominator"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Denom, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.ShiftTab, k.Enter, k.Denom},
		{k.Up, k.Down},
		{k.Quit},
	}
}

type model struct {
	graph       *graph.Graph
	gstats      graph.Statistics
	currentView view
	sourceInput textinput.Model
	distTable   table.Model
	help        help.Model
	keys        keyMap
	width       int
	height      int
	message     string
	messageErr  bool
	denominator stats.Denominator
	report      *stats.Report
}

func initialModel(g *graph.Graph) model {
	ti := textinput.New()
	ti.Placeholder = "0"
	ti.CharLimit = 20
	ti.Width = 24
	ti.Focus()

	columns := []table.Column{
		{Title: "Distance", Width: 10},
		{Title: "Count", Width: 12},
		{Title: "Share", Width: 10},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	return model{
		graph:       g,
		gstats:      g.GetStatistics(),
		currentView: summaryView,
		sourceInput: ti,
		distTable:   t,
		help:        help.New(),
		keys:        keys,
		denominator: stats.DenomEdgeSources,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Tab):
			m.currentView = (m.currentView + 1) % 2
			if m.currentView == summaryView {
				m.sourceInput.Focus()
			} else {
				m.sourceInput.Blur()
			}

		case key.Matches(msg, m.keys.ShiftTab):
			if m.currentView == 0 {
				m.currentView = 1
			} else {
				m.currentView--
			}
			if m.currentView == summaryView {
				m.sourceInput.Focus()
			} else {
				m.sourceInput.Blur()
			}

		case key.Matches(msg, m.keys.Denom):
			m.cycleDenominator()

		case key.Matches(msg, m.keys.Enter):
			if m.currentView == summaryView && m.sourceInput.Focused() {
				m.computeStats()
			}
		}
	}

	// Update focused component
	switch m.currentView {
	case summaryView:
		m.sourceInput, cmd = m.sourceInput.Update(msg)
		cmds = append(cmds, cmd)
	case distributionView:
		m.distTable, cmd = m.distTable.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *model) computeStats() {
	value := strings.TrimSpace(m.sourceInput.Value())
	if value == "" {
		m.message = "Enter a source node ID"
		m.messageErr = true
		return
	}

	source, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		m.message = fmt.Sprintf("Bad node ID %q", value)
		m.messageErr = true
		return
	}

	start := time.Now()
	rep, err := stats.Compute(m.graph, source, stats.Options{Denominator: m.denominator})
	if err != nil {
		m.message = fmt.Sprintf("Computation failed: %v", err)
		m.messageErr = true
		return
	}
	elapsed := time.Since(start)

	m.report = rep
	m.message = fmt.Sprintf("Computed statistics for node %d in %s", source, elapsed.Round(time.Microsecond))
	m.messageErr = false
	m.updateDistTable()
}

func (m *model) cycleDenominator() {
	for i, d := range denominators {
		if d == m.denominator {
			m.denominator = denominators[(i+1)%len(denominators)]
			break
		}
	}
	m.message = fmt.Sprintf("Denominator: %s", m.denominator)
	m.messageErr = false

	if m.report == nil {
		return
	}
	rep, err := stats.Compute(m.graph, m.report.Source, stats.Options{Denominator: m.denominator})
	if err != nil {
		m.message = fmt.Sprintf("Computation failed: %v", err)
		m.messageErr = true
		return
	}
	m.report = rep
	m.updateDistTable()
}

func (m *model) updateDistTable() {
	entries := stats.SortedDistribution(m.report.Distribution)
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		share := float64(e.Count) / float64(m.report.Reachable) * 100
		rows = append(rows, table.Row{
			strconv.Itoa(e.Distance),
			strconv.Itoa(e.Count),
			fmt.Sprintf("%.1f%%", share),
		})
	}
	m.distTable.SetRows(rows)
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	var s strings.Builder

	// Title
	s.WriteString(titleStyle.Render("🛤️  Cluso Path Metrics - Interactive Explorer"))
	s.WriteString("\n\n")

	// Tabs
	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	// Content based on current view
	switch m.currentView {
	case summaryView:
		s.WriteString(m.renderSummary())
	case distributionView:
		s.WriteString(m.renderDistribution())
	}

	// Message
	if m.message != "" {
		s.WriteString("\n\n")
		if m.messageErr {
			s.WriteString(errorStyle.Render("✗ " + m.message))
		} else {
			s.WriteString(successStyle.Render("✓ " + m.message))
		}
	}

	// Help
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func (m model) renderTabs() string {
	tabs := []string{"Summary", "Distribution"}
	var renderedTabs []string

	for i, tab := range tabs {
		if view(i) == m.currentView {
			renderedTabs = append(renderedTabs, activeTabStyle.Render(tab))
		} else {
			renderedTabs = append(renderedTabs, inactiveTabStyle.Render(tab))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, renderedTabs...)
}

func (m model) renderSummary() string {
	var s strings.Builder

	s.WriteString("Source node ID:\n\n")
	s.WriteString(m.sourceInput.View())
	s.WriteString("\n\n")

	graphContent := fmt.Sprintf(`🗺️  Graph
━━━━━━━━━━━━━━━━━━━
Sources:    %d
Distinct:   %d
Edges:      %d`,
		m.gstats.NodeCount,
		m.gstats.DistinctNodeCount,
		m.gstats.EdgeCount,
	)

	boxes := []string{statsBoxStyle.Render(graphContent)}

	if m.report != nil {
		reportContent := fmt.Sprintf(`📊 Statistics
━━━━━━━━━━━━━━━━━━━
Source:      %d
Denominator: %s
Reachable:   %d
Average:     %.4f
Std dev:     %.4f
Max:         %d
Min:         %d
Median:      %d`,
			m.report.Source,
			m.report.Denominator,
			m.report.Reachable,
			m.report.Average,
			m.report.StdDev,
			m.report.Max,
			m.report.Min,
			m.report.Median,
		)
		boxes = append(boxes, statsBoxStyle.Render(reportContent))
	}

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))

	return contentStyle.Render(s.String())
}

func (m model) renderDistribution() string {
	var s strings.Builder

	s.WriteString(headerStyle.Render("Distance Distribution"))
	s.WriteString("\n\n")

	if m.report == nil {
		s.WriteString(helpStyle.Render("No report yet\n\nCompute statistics from the Summary tab first!"))
	} else {
		s.WriteString(m.distTable.View())
		s.WriteString("\n\n")
		s.WriteString(helpStyle.Render(fmt.Sprintf("Source %d · %d distances · navigate with ↑/↓", m.report.Source, len(m.report.Distribution))))
	}

	return contentStyle.Render(s.String())
}

func main() {
	file := flag.String("file", "", "Path to the edge list file")
	skip := flag.Int("skip", 4, "Header lines to skip before edge records")
	flag.Parse()

	if *file == "" {
		fmt.Println("Usage: pathmetrics-tui -file edges.txt [-skip 4]")
		os.Exit(1)
	}

	g, err := edgelist.LoadFile(*file, edgelist.LoadOptions{SkipLines: *skip})
	if err != nil {
		log.Fatalf("Failed to load edge list: %v", err)
	}

	p := tea.NewProgram(initialModel(g), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
