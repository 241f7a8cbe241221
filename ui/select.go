package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"disfork/githubclient"
	"disfork/scan"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	uselessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	keptStyle    = lipgloss.NewStyle().Faint(true)
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle    = lipgloss.NewStyle().Faint(true).PaddingLeft(2)
)

type selectItem struct {
	verdict scan.Verdict
	checked bool
}

type selectModel struct {
	items     []selectItem
	cursor    int
	confirmed bool
}

func newSelectModel(verdicts []scan.Verdict) selectModel {
	items := make([]selectItem, 0, len(verdicts))
	for _, v := range verdicts {
		items = append(items, selectItem{
			verdict: v,
			checked: v.Useless && v.Err == nil,
		})
	}

	return selectModel{items: items}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case " ":
		if len(m.items) > 0 {
			m.items[m.cursor].checked = !m.items[m.cursor].checked
		}
	case "n":
		for i := range m.items {
			m.items[i].checked = false
		}
	case "enter":
		m.confirmed = true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	}

	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Select forks to delete"))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		check := "[ ]"
		if item.checked {
			check = "[x]"
		}

		var tag string
		switch {
		case item.verdict.Err != nil:
			tag = failedStyle.Render("scan failed")
		case item.verdict.Useless:
			tag = uselessStyle.Render("useless")
		default:
			tag = keptStyle.Render(item.verdict.Reason.String())
		}

		fmt.Fprintf(&b, "%s%s %s - %s\n", cursor, check, item.verdict.Repo.FullName(), tag)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space toggle - n none - enter confirm - q abort"))
	b.WriteString("\n")

	return b.String()
}

func (m selectModel) selected() []githubclient.Repository {
	var repos []githubclient.Repository
	for _, item := range m.items {
		if item.checked {
			repos = append(repos, item.verdict.Repo)
		}
	}
	return repos
}

// SelectForks runs the interactive picker over the aggregated verdicts, with
// the useless forks pre-selected. Aborting returns an empty selection.
func SelectForks(verdicts []scan.Verdict) ([]githubclient.Repository, error) {
	program := tea.NewProgram(newSelectModel(verdicts))

	out, err := program.Run()
	if err != nil {
		return nil, err
	}

	final, ok := out.(selectModel)
	if !ok || !final.confirmed {
		return nil, nil
	}

	return final.selected(), nil
}
