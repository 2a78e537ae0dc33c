package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// renderModal draws a bordered box centered in the terminal.
func renderModal(theme Theme, width, height, boxWidth int, title, body string) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", boxWidth-6)))
	b.WriteString("\n\n")
	b.WriteString(body)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(boxWidth)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// fieldLabel highlights the label of the focused input.
func fieldLabel(styles Styles, label string, focused bool) string {
	if focused {
		return styles.AccentText.Render(label)
	}
	return styles.MutedText.Render(label)
}

// notice renders a one-line status inside a modal.
func notice(styles Styles, text string, danger bool) string {
	if text == "" {
		return ""
	}
	if danger {
		return styles.DangerText.Render(text)
	}
	return styles.SuccessText.Render(text)
}

// alertMsg asks the root model to show an alert.
type alertMsg struct {
	title  string
	text   string
	danger bool
}

func alertCmd(title, text string, danger bool) tea.Cmd {
	return func() tea.Msg {
		return alertMsg{title: title, text: text, danger: danger}
	}
}

// alertModal shows a message until dismissed.
type alertModal struct {
	title  string
	text   string
	danger bool
}

func (a alertModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, keys.Confirm, keys.Escape) {
		return a, nil, true
	}
	return a, nil, false
}

func (a alertModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	text := styles.Text.Render(a.text)
	if a.danger {
		text = styles.DangerText.Render(a.text)
	}
	body := text + "\n\n" + styles.MutedText.Render("enter: aceptar")
	return renderModal(theme, width, height, 50, a.title, body)
}

// confirmModal asks a yes/no question and runs onYes when accepted.
type confirmModal struct {
	title    string
	question string
	onYes    tea.Cmd
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(k, keys.Yes):
		return c, c.onYes, true
	case key.Matches(k, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := styles.Text.Render(c.question) + "\n\n" +
		styles.WarningText.Render("y") + styles.MutedText.Render(": sí   ") +
		styles.WarningText.Render("n") + styles.MutedText.Render(": no")
	return renderModal(theme, width, height, 50, c.title, body)
}

// searchMsg carries a new search term to the root model.
type searchMsg struct{ term string }

// searchModal edits the plate/cubicle filter.
type searchModal struct {
	input textinput.Model
}

func newSearchModal(current string) searchModal {
	input := textinput.New()
	input.Placeholder = "placa o cubículo"
	input.CharLimit = 32
	input.Width = 30
	input.SetValue(current)
	input.Focus()
	return searchModal{input: input}
}

func (s searchModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, keys.Escape):
			return s, nil, true
		case key.Matches(k, keys.Confirm):
			term := strings.TrimSpace(s.input.Value())
			return s, func() tea.Msg { return searchMsg{term: term} }, true
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

func (s searchModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	body := fieldLabel(styles, "Buscar: ", true) + s.input.View() + "\n\n" +
		styles.MutedText.Render("enter: aplicar (vacío limpia)   esc: cancelar")
	return renderModal(theme, width, height, 50, "Buscar", body)
}
