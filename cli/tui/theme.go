package tui

import "github.com/charmbracelet/lipgloss"

type Theme struct {
	TitleStyle        lipgloss.Style
	BorderStyle       lipgloss.Style
	DetailBorderStyle lipgloss.Style
	NormalItemStyle   lipgloss.Style
	SelectedItemStyle lipgloss.Style
	GroupStyle        lipgloss.Style
	DefaultStyle      lipgloss.Style
	ResultStyle       lipgloss.Style
	ErrorStyle        lipgloss.Style
	StatusBarStyle    lipgloss.Style
	CommandStyle      lipgloss.Style
	HelpStyle         lipgloss.Style
}

func DefaultTheme() *Theme {
	return &Theme{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1),
		BorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
		DetailBorderStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
		NormalItemStyle: lipgloss.NewStyle(),
		SelectedItemStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")),
		GroupStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		DefaultStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ResultStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		ErrorStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		StatusBarStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")),
		CommandStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
		HelpStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
