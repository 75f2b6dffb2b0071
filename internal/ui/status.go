// Package ui renders the tool status dashboard.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"workspacectl/internal/system"
	"workspacectl/internal/tools"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

type item struct {
	tool   tools.ToolInfo
	res    tools.CheckResult
	latest string
	done   bool
}

type checkDoneMsg struct {
	idx    int
	res    tools.CheckResult
	latest string
}

// Model is a single-screen dashboard: one row per registry tool,
// spinner while its probe runs, then installed/latest state.
type Model struct {
	runner system.Runner
	spin   spinner.Model
	items  []item
	done   int
}

func NewModel(r system.Runner) Model {
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	items := make([]item, len(tools.Tools))
	for i, t := range tools.Tools {
		items[i] = item{tool: t}
	}
	return Model{runner: r, spin: sp, items: items}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	for i := range m.items {
		cmds = append(cmds, checkCmd(m.runner, i, m.items[i].tool))
	}
	return tea.Batch(cmds...)
}

// checkCmd probes one tool off the UI loop.
func checkCmd(r system.Runner, idx int, t tools.ToolInfo) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		res := tools.Check(ctx, r, t)
		latest := ""
		if t.Package != "" || t.LatestURL != "" || t.GithubRepo != "" {
			if v, err := tools.LatestVersion(ctx, r, t); err == nil {
				latest = tools.NormalizeVersion(v)
			}
		}
		return checkDoneMsg{idx: idx, res: res, latest: latest}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case checkDoneMsg:
		m.items[msg.idx].res = msg.res
		m.items[msg.idx].latest = msg.latest
		m.items[msg.idx].done = true
		m.done++
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("workspace tools"))
	b.WriteString("\n\n")
	for _, it := range m.items {
		b.WriteString("  ")
		b.WriteString(m.renderRow(it))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.done < len(m.items) {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d/%d checked · q to quit", m.done, len(m.items))))
	} else {
		b.WriteString(dimStyle.Render("q to quit"))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderRow(it item) string {
	name := fmt.Sprintf("%-14s", it.tool.ID)
	if !it.done {
		return m.spin.View() + " " + name + dimStyle.Render("checking…")
	}
	if !it.res.Installed {
		return badStyle.Render("✗ ") + name + dimStyle.Render("not installed")
	}
	line := okStyle.Render("✓ ") + name
	if it.res.Version != "" {
		line += it.res.Version
	} else {
		line += dimStyle.Render("(version unknown)")
	}
	if it.latest != "" && it.res.Version != "" && it.latest != it.res.Version {
		line += warnStyle.Render("  → " + it.latest + " available")
	}
	return line
}
