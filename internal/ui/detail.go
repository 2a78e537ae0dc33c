package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lotwatch/internal/board"
	"github.com/five82/lotwatch/internal/parking"
	"github.com/five82/lotwatch/internal/state"
)

// renderDetail renders the detail panel body for the viewport.
func renderDetail(theme Theme, keys keyMap, d board.Detail, width int) string {
	styles := theme.Styles()

	if d.Mode == state.ModeUnselected {
		return styles.MutedText.Render(d.Hint)
	}

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Width(width).Render(d.Title))
	b.WriteString("\n")

	switch d.Mode {
	case state.ModeOccupied:
		b.WriteString(styles.StateBadge(parking.StateOccupied).Render("OCUPADO"))
	case state.ModePending:
		b.WriteString(styles.StateBadge(parking.StatePending).Render("ASIGNADO"))
	}
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(styles.MutedText.Width(14).Render(label))
		b.WriteString(styles.Text.Render(value))
		b.WriteString("\n")
	}
	row("Placa", d.Plate)
	row("Registro", d.RegistrationID)
	row("Ingreso", d.EntryTime)
	if d.ShowCharge {
		row("Tiempo", d.Elapsed)
		b.WriteString(styles.MutedText.Width(14).Render("Cobro actual"))
		b.WriteString(styles.SuccessText.Render(d.Charge))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, a := range d.Actions {
		b.WriteString(actionHint(styles, actionKey(keys, a), a.Label()))
		b.WriteString("\n")
	}
	if d.CanEditPlate {
		b.WriteString(actionHint(styles, keys.EditPlate.Help().Key, "Editar placa"))
		b.WriteString("\n")
	}
	return b.String()
}

func actionKey(keys keyMap, a board.Action) string {
	switch a {
	case board.ActionFinalize:
		return keys.Finalize.Help().Key
	case board.ActionCancel:
		return keys.Cancel.Help().Key
	case board.ActionPrint:
		return keys.Print.Help().Key
	default:
		return ""
	}
}

func actionHint(styles Styles, k, label string) string {
	return styles.WarningText.Render("["+k+"]") + " " + styles.Text.Render(label)
}

// renderDetailPanel frames the detail viewport.
func (m Model) renderDetailPanel(width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Width(width - 2).
		Height(height - 2).
		Render(m.detailViewport.View())
}
