package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lotwatch/internal/parking"
	"github.com/five82/lotwatch/internal/state"
)

type plateSavedMsg struct {
	plate  string
	result parking.ActionResult
	err    error
}

func editPlateCmd(ctx context.Context, api parking.API, id parking.ID, plate string) tea.Cmd {
	return func() tea.Msg {
		res, err := api.EditPlate(ctx, id, plate)
		return plateSavedMsg{plate: plate, result: res, err: err}
	}
}

// plateSavedOutcome alerts the result of a plate edit and refreshes the
// board when it was accepted.
func plateSavedOutcome(msg plateSavedMsg) tea.Cmd {
	if msg.err != nil {
		return alertCmd("Editar placa", "Error al editar placa: "+parking.Message(msg.err), true)
	}
	text := msg.result.Message
	if text == "" {
		text = "Placa actualizada."
	}
	return tea.Batch(
		alertCmd("Editar placa", text, false),
		func() tea.Msg { return refreshMsg{} },
	)
}

// plateModal corrects the plate of the selected registration.
type plateModal struct {
	ctx     context.Context
	api     parking.API
	cubicle string
	id      parking.ID
	input   textinput.Model
	saving  bool
	status  string
}

func newPlateModal(ctx context.Context, api parking.API, c parking.Cubicle) plateModal {
	input := textinput.New()
	input.Placeholder = "ABC123"
	input.CharLimit = 12
	input.Width = 20
	input.SetValue(c.Plate)
	input.Focus()
	return plateModal{ctx: ctx, api: api, cubicle: c.Name, id: c.RegistrationID, input: input}
}

func (p plateModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case plateSavedMsg:
		p.saving = false
		if msg.err != nil {
			p.status = parking.Message(msg.err)
			return p, nil, false
		}
		return p, plateSavedOutcome(msg), true

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Escape):
			return p, nil, true
		case key.Matches(msg, keys.Confirm):
			if p.saving {
				return p, nil, false
			}
			id, plate, err := state.PlateEdit(p.id, p.input.Value())
			if err != nil {
				p.status = parking.Message(err)
				return p, nil, false
			}
			p.saving = true
			p.status = ""
			return p, editPlateCmd(p.ctx, p.api, id, plate), false
		}
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd, false
}

func (p plateModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.MutedText.Render("Cubículo: "))
	b.WriteString(styles.Text.Render(p.cubicle))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Registro: "))
	b.WriteString(styles.Text.Render(p.id.String()))
	b.WriteString("\n\n")
	b.WriteString(fieldLabel(styles, "Nueva placa: ", true))
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	if p.saving {
		b.WriteString(styles.MutedText.Render("Guardando..."))
	} else {
		b.WriteString(notice(styles, p.status, true))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("enter: guardar   esc: cancelar"))

	return renderModal(theme, width, height, 46, "Editar Placa", b.String())
}
