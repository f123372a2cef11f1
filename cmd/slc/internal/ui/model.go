// Package ui implements the interactive screen player: a terminal view of
// the executed widget tree with a prompt for scope assignments, re-running
// the screen after every change.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Jjop12/renpy/pkg/screen"
	"github.com/Jjop12/renpy/pkg/script"
	"github.com/Jjop12/renpy/pkg/sl"
	"github.com/Jjop12/renpy/pkg/vdom"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// KeyMap defines the player's keyboard shortcuts.
type KeyMap struct {
	Apply key.Binding
	Quit  key.Binding
}

var DefaultKeyMap = KeyMap{
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "quit"),
	),
}

// Model is the player state: one screen instance, its scope, and the last
// rendered tree.
type Model struct {
	screenName string
	instance   *screen.Instance
	compiler   *script.Compiler
	scope      sl.Scope

	input   textinput.Model
	keys    KeyMap
	tree    string
	errMsg  string
	applied int

	width    int
	height   int
	quitting bool
}

// New creates a player for the given instance and initial scope.
func New(screenName string, instance *screen.Instance, compiler *script.Compiler, scope sl.Scope) Model {
	input := textinput.New()
	input.Placeholder = "name = expression"
	input.Focus()
	input.CharLimit = 200
	input.Width = 60

	m := Model{
		screenName: screenName,
		instance:   instance,
		compiler:   compiler,
		scope:      scope,
		input:      input,
		keys:       DefaultKeyMap,
	}
	m.refresh()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Apply):
			m.apply(m.input.Value())
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply parses a "name = expression" line, updates the scope, and
// re-executes the screen.
func (m *Model) apply(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		m.refresh()
		return
	}

	name, src, found := strings.Cut(line, "=")
	name = strings.TrimSpace(name)
	if !found || name == "" {
		m.errMsg = "want name = expression"
		return
	}

	unit, err := m.compiler.Compile(strings.TrimSpace(src))
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	v, err := unit.Eval(m.scope)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	m.scope[name] = v
	m.applied++
	m.refresh()
}

// refresh re-executes the screen against the current scope.
func (m *Model) refresh() {
	elements, err := m.instance.Render(m.scope)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	nodes := make([]*vdom.Node, 0, len(elements))
	for _, el := range elements {
		node, ok := el.(*vdom.Node)
		if !ok {
			m.errMsg = fmt.Sprintf("element %T is not a widget tree node", el)
			return
		}
		nodes = append(nodes, node)
	}

	m.tree = renderTree(nodes)
	m.errMsg = ""
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("screen " + m.screenName))
	b.WriteString("\n\n")
	b.WriteString(m.tree)
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(errorStyle.Render("error: " + m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("%d assignments · enter apply · esc quit", m.applied)))
	b.WriteString("\n")

	return b.String()
}
