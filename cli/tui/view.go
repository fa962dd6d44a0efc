package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.mode == ModeHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m *Model) renderMain() string {
	sections := []string{
		m.renderTitle(),
		m.renderContent(),
		m.renderStatus(),
	}

	if m.mode == ModeInput {
		sections = append(sections, m.renderInput())
	}
	if m.resultOut != "" {
		sections = append(sections, m.renderResult())
	}

	sections = append(sections, m.renderHelpBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTitle() string {
	return m.theme.TitleStyle.Render(fmt.Sprintf("cmdargs explorer - %d commands", len(m.commands)))
}

// renderContent places the command list next to the selected command's arguments.
func (m *Model) renderContent() string {
	leftWidth := m.width / 3
	rightWidth := m.width - leftWidth - 4

	list := m.theme.BorderStyle.
		Width(leftWidth).
		Height(m.getVisibleLines() + 2).
		Render(m.renderCommandList())

	details := m.theme.DetailBorderStyle.
		Width(rightWidth).
		Height(m.getVisibleLines() + 2).
		Render(m.renderDetails())

	return lipgloss.JoinHorizontal(lipgloss.Top, list, details)
}

func (m *Model) renderCommandList() string {
	if len(m.commands) == 0 {
		return m.theme.NormalItemStyle.Render("(no commands)")
	}

	end := min(m.offset+m.getVisibleLines(), len(m.commands))

	var lines []string
	for i := m.offset; i < end; i++ {
		style := m.theme.NormalItemStyle
		if i == m.cursor {
			style = m.theme.SelectedItemStyle
		}
		lines = append(lines, style.Render(m.commands[i].Name()))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderDetails() string {
	command := m.currentCommand()
	if command == nil {
		return ""
	}

	lines := []string{m.theme.TitleStyle.Render(command.Name())}
	if command.Description() != "" {
		lines = append(lines, command.Description())
	}
	lines = append(lines, "")

	if len(m.entries) == 0 {
		lines = append(lines, m.theme.DefaultStyle.Render("(no arguments)"))
	}
	for _, entry := range m.entries {
		line := fmt.Sprintf("%s %-14s %-6s", m.theme.GroupStyle.Render(fmt.Sprintf("%-8s", entry.DisplayGroup())), entry.Arg.Name, entry.DisplayType())
		if def := entry.DisplayDefault(); def != "" {
			line += " " + m.theme.DefaultStyle.Render(def)
		}
		if entry.Arg.Description != "" {
			line += "  " + m.theme.DefaultStyle.Render(entry.Arg.Description)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	left := fmt.Sprintf("%d/%d commands", m.cursor+1, len(m.commands))

	right := m.statusMsg
	if m.errorMsg != "" {
		right = m.theme.ErrorStyle.Render(m.errorMsg)
	}

	spacing := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-4, 0)
	return m.theme.StatusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", spacing) + right)
}

func (m *Model) renderInput() string {
	prompt := "> "
	if command := m.currentCommand(); command != nil {
		prompt = command.Name() + " "
	}
	return m.theme.CommandStyle.Render(prompt + m.textInput.View())
}

func (m *Model) renderResult() string {
	return m.theme.DetailBorderStyle.
		Width(m.width - 4).
		Render(m.theme.ResultStyle.Render(m.resultOut))
}

func (m *Model) renderHelpBar() string {
	return m.theme.HelpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m *Model) renderHelp() string {
	sections := []string{
		m.theme.TitleStyle.Render("cmdargs explorer - Help"),
		"",
		m.theme.TitleStyle.Render("Navigation:"),
		"  ↑/k        Previous command",
		"  ↓/j        Next command",
		"  Home/g     First command",
		"  End/G      Last command",
		"",
		m.theme.TitleStyle.Render("Arguments:"),
		"  Enter/:    Type arguments for the selected command",
		"             (shell quoting applies, Esc cancels)",
		"  c          Clear the last result",
		"",
		m.theme.TitleStyle.Render("Application:"),
		"  ?          Toggle this help",
		"  q/Ctrl+C   Quit",
		"",
		m.help.FullHelpView(m.keys.FullHelp()),
		"",
		m.theme.HelpStyle.Render("Press ? or q to return"),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
