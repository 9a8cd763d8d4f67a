package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxHistory = 20

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FFFF")).
			MarginLeft(2).
			MarginTop(1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF00FF")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)

	historyBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1).
			MarginLeft(2)
)

type keyMap struct {
	Enter key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run command")),
	Quit:  key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
}

type model struct {
	cli     *client
	addr    string
	input   textinput.Model
	history []string
}

func initialModel(cli *client, addr string) model {
	ti := textinput.New()
	ti.Placeholder = "add_node 3 | add_edge 3 4 | get_neighbors 3 | shortest_path 3 4"
	ti.CharLimit = 200
	ti.Width = 60
	ti.Focus()

	return model{
		cli:   cli,
		addr:  addr,
		input: ti,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Enter):
			m.runCommand(m.input.Value())
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) runCommand(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	m.log(promptStyle.Render("> " + line))

	fields := strings.Fields(line)
	op := fields[0]
	args := fields[1:]

	status, body, err := m.dispatch(op, args)
	if err != nil {
		m.log(errorStyle.Render(err.Error()))
		return
	}

	result := fmt.Sprintf("status %d  %v", status, body)
	if status >= 400 {
		m.log(errorStyle.Render(result))
	} else {
		m.log(successStyle.Render(result))
	}
}

func (m *model) dispatch(op string, args []string) (int, map[string]any, error) {
	switch op {
	case "add_node":
		if len(args) != 1 {
			return 0, nil, fmt.Errorf("add_node <id>")
		}
		return m.cli.addNode(args[0])
	case "remove_node":
		if len(args) != 1 {
			return 0, nil, fmt.Errorf("remove_node <id>")
		}
		return m.cli.removeNode(args[0])
	case "add_edge":
		if len(args) != 2 {
			return 0, nil, fmt.Errorf("add_edge <a> <b>")
		}
		return m.cli.addEdge(args[0], args[1])
	case "remove_edge":
		if len(args) != 2 {
			return 0, nil, fmt.Errorf("remove_edge <a> <b>")
		}
		return m.cli.removeEdge(args[0], args[1])
	case "get_node":
		if len(args) != 1 {
			return 0, nil, fmt.Errorf("get_node <id>")
		}
		return m.cli.getNode(args[0])
	case "get_edge":
		if len(args) != 2 {
			return 0, nil, fmt.Errorf("get_edge <a> <b>")
		}
		return m.cli.getEdge(args[0], args[1])
	case "get_neighbors":
		if len(args) != 1 {
			return 0, nil, fmt.Errorf("get_neighbors <id>")
		}
		return m.cli.getNeighbors(args[0])
	case "shortest_path":
		if len(args) != 2 {
			return 0, nil, fmt.Errorf("shortest_path <a> <b>")
		}
		return m.cli.shortestPath(args[0], args[1])
	default:
		return 0, nil, fmt.Errorf("unknown command %q", op)
	}
}

func (m *model) log(line string) {
	m.history = append(m.history, line)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("graphctl — %s", m.addr)))
	b.WriteString("\n\n")
	b.WriteString(historyBoxStyle.Render(strings.Join(m.history, "\n")))
	b.WriteString("\n\n  ")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter: run · esc/ctrl+c: quit"))
	return b.String()
}
