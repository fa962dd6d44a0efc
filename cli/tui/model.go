package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"

	"github.com/mwantia/cmdargs/catalog"
	"github.com/mwantia/cmdargs/cmd"
	"github.com/mwantia/cmdargs/log"
)

// Mode represents the current interaction mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeInput
	ModeHelp
)

// Model browses the commands of a catalog and resolves typed argument lines
// against the selected one.
type Model struct {
	catalog  *catalog.Catalog
	commands []*cmd.Command
	logger   *log.Logger
	theme    *Theme
	keys     KeyMap
	help     help.Model

	// Navigation state
	entries []*Entry
	cursor  int
	offset  int

	// View state
	width  int
	height int

	mode      Mode
	textInput textinput.Model

	// Status
	statusMsg string
	errorMsg  string
	resultOut string
}

func NewModel(c *catalog.Catalog, logger *log.Logger) *Model {
	ti := textinput.New()
	ti.Placeholder = "arguments after the command name..."
	ti.CharLimit = 512

	m := &Model{
		catalog:   c,
		commands:  c.List(),
		logger:    logger,
		theme:     DefaultTheme(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		textInput: ti,
	}
	m.loadEntries()
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case parsedMsg:
		if msg.err != nil {
			m.resultOut = ""
			m.errorMsg = msg.err.Error()
			m.statusMsg = ""
			return m, nil
		}

		m.resultOut = msg.output
		m.errorMsg = ""
		m.statusMsg = fmt.Sprintf("Parsed: %s", msg.line)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	if m.mode == ModeInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeInput:
		return m.handleInputMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	}

	return m.handleNormalMode(msg)
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Home):
		m.moveCursor(-len(m.commands))

	case key.Matches(msg, m.keys.End):
		m.moveCursor(len(m.commands))

	case key.Matches(msg, m.keys.Input):
		return m, m.startInput()

	case key.Matches(msg, m.keys.Clear):
		m.resultOut = ""
		m.errorMsg = ""
		m.statusMsg = ""

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.cancelInput()
		return m, nil

	case tea.KeyEnter:
		return m, m.submitInput()
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Quit) {
		m.mode = ModeNormal
	}
	return m, nil
}

func (m *Model) startInput() tea.Cmd {
	m.mode = ModeInput
	m.textInput.SetValue("")
	m.errorMsg = ""
	m.statusMsg = ""
	return m.textInput.Focus()
}

func (m *Model) cancelInput() {
	m.mode = ModeNormal
	m.textInput.Blur()
	m.textInput.SetValue("")
}

// submitInput resolves the typed line; an empty line parses the bare command.
func (m *Model) submitInput() tea.Cmd {
	line := strings.TrimSpace(m.textInput.Value())
	m.cancelInput()

	command := m.currentCommand()
	if command == nil {
		return nil
	}
	return m.parseLine(command, line)
}

func (m *Model) moveCursor(delta int) {
	if len(m.commands) == 0 {
		return
	}

	m.cursor = max(0, min(m.cursor+delta, len(m.commands)-1))

	visibleLines := m.getVisibleLines()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visibleLines {
		m.offset = m.cursor - visibleLines + 1
	}

	m.loadEntries()
}

// getVisibleLines returns how many commands can be displayed
func (m *Model) getVisibleLines() int {
	available := m.height - 8
	if available < 5 {
		return 5
	}
	return available
}

func (m *Model) currentCommand() *cmd.Command {
	if m.cursor >= 0 && m.cursor < len(m.commands) {
		return m.commands[m.cursor]
	}
	return nil
}

func (m *Model) loadEntries() {
	m.entries = nil
	m.resultOut = ""
	if command := m.currentCommand(); command != nil {
		m.entries = entriesOf(command)
	}
}

type parsedMsg struct {
	line   string
	output string
	err    error
}

func (m *Model) parseLine(command *cmd.Command, line string) tea.Cmd {
	return func() tea.Msg {
		args, err := shellquote.Split(line)
		if err != nil {
			return parsedMsg{line: line, err: fmt.Errorf("failed to tokenize line: %w", err)}
		}

		tokens := append([]string{command.Name()}, args...)
		parser, err := m.catalog.Parser(tokens)
		if err != nil {
			return parsedMsg{line: line, err: err}
		}

		result, err := parser.Parse(tokens)
		if err != nil {
			m.logger.Debug("failed to parse '%s': %v", strings.Join(tokens, " "), err)
			return parsedMsg{line: line, err: err}
		}

		var lines []string
		for _, name := range result.Names() {
			lines = append(lines, fmt.Sprintf("%s = %s", name, result[name]))
		}
		return parsedMsg{line: line, output: strings.Join(lines, "\n")}
	}
}
