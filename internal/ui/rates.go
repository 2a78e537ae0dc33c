package ui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lotwatch/internal/parking"
	"github.com/five82/lotwatch/internal/state"
)

type ratesLoadedMsg struct {
	rates []parking.Rate
	err   error
}

type rateSavedMsg struct {
	result parking.ActionResult
	err    error
}

func fetchRatesCmd(ctx context.Context, api parking.API) tea.Cmd {
	return func() tea.Msg {
		rates, err := api.FetchRates(ctx)
		return ratesLoadedMsg{rates: rates, err: err}
	}
}

func saveRateCmd(ctx context.Context, api parking.API, rate parking.Rate) tea.Cmd {
	return func() tea.Msg {
		res, err := api.SaveRate(ctx, rate)
		return rateSavedMsg{result: res, err: err}
	}
}

// rateSavedOutcome alerts the result of a save that no open dialog is
// waiting for.
func rateSavedOutcome(msg rateSavedMsg) tea.Cmd {
	if msg.err != nil {
		return alertCmd("Gestión de Tarifas", "Error al guardar tarifa: "+parking.Message(msg.err), true)
	}
	text := msg.result.Message
	if text == "" {
		text = "Tarifa guardada."
	}
	return alertCmd("Gestión de Tarifas", text, false)
}

// ratesModal edits the tariff of every vehicle type. Inputs are laid out as
// two per type: first hour, then subsequent hours.
type ratesModal struct {
	ctx      context.Context
	api      parking.API
	types    []parking.VehicleType
	inputs   []textinput.Model
	focusIdx int
	loading  bool
	saving   bool
	status   string
	danger   bool
}

func newRatesModal(ctx context.Context, api parking.API) (ratesModal, tea.Cmd) {
	types := parking.VehicleTypes()
	inputs := make([]textinput.Model, 0, len(types)*2)
	for range types {
		for range 2 {
			in := textinput.New()
			in.Placeholder = "0"
			in.CharLimit = 12
			in.Width = 14
			inputs = append(inputs, in)
		}
	}
	inputs[0].Focus()
	m := ratesModal{ctx: ctx, api: api, types: types, inputs: inputs, loading: true}
	return m, fetchRatesCmd(ctx, api)
}

func (r ratesModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case ratesLoadedMsg:
		r.loading = false
		if msg.err != nil {
			r.status, r.danger = parking.Message(msg.err), true
			return r, nil, false
		}
		r.fill(msg.rates)
		return r, nil, false

	case rateSavedMsg:
		r.saving = false
		if msg.err != nil {
			r.status, r.danger = parking.Message(msg.err), true
			return r, nil, false
		}
		r.status, r.danger = msg.result.Message, false
		r.loading = true
		return r, fetchRatesCmd(r.ctx, r.api), false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Escape):
			return r, nil, true
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down):
			r.moveFocus(1)
			return r, nil, false
		case key.Matches(msg, keys.ShiftTab), key.Matches(msg, keys.Up):
			r.moveFocus(-1)
			return r, nil, false
		case key.Matches(msg, keys.Confirm):
			if r.saving || r.loading {
				return r, nil, false
			}
			vt := r.types[r.focusIdx/2]
			base := (r.focusIdx / 2) * 2
			rate, err := state.RateForm(vt, r.inputs[base].Value(), r.inputs[base+1].Value())
			if err != nil {
				r.status, r.danger = parking.Message(err), true
				return r, nil, false
			}
			r.saving = true
			r.status = ""
			return r, saveRateCmd(r.ctx, r.api, rate), false
		}
	}

	var cmd tea.Cmd
	r.inputs[r.focusIdx], cmd = r.inputs[r.focusIdx].Update(msg)
	return r, cmd, false
}

func (r *ratesModal) moveFocus(delta int) {
	r.inputs[r.focusIdx].Blur()
	r.focusIdx = (r.focusIdx + delta + len(r.inputs)) % len(r.inputs)
	r.inputs[r.focusIdx].Focus()
}

// fill replaces the inputs with the server values. Types the server does not
// report are left as typed.
func (r *ratesModal) fill(rates []parking.Rate) {
	for _, rate := range rates {
		for i, vt := range r.types {
			if vt != rate.VehicleType {
				continue
			}
			r.inputs[i*2].SetValue(formatRate(rate.FirstHourRate))
			r.inputs[i*2+1].SetValue(formatRate(rate.SubsequentHourRate))
		}
	}
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (r ratesModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	for i, vt := range r.types {
		b.WriteString(styles.AccentText.Bold(true).Render(vt.DisplayName()))
		b.WriteString("\n")
		b.WriteString(fieldLabel(styles, "Primera hora:  ", r.focusIdx == i*2))
		b.WriteString(r.inputs[i*2].View())
		b.WriteString("\n")
		b.WriteString(fieldLabel(styles, "Subsiguiente:  ", r.focusIdx == i*2+1))
		b.WriteString(r.inputs[i*2+1].View())
		b.WriteString("\n\n")
	}

	switch {
	case r.loading:
		b.WriteString(styles.MutedText.Render("Cargando tarifas..."))
	case r.saving:
		b.WriteString(styles.MutedText.Render("Guardando..."))
	default:
		b.WriteString(notice(styles, r.status, r.danger))
	}
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("tab: campo   enter: guardar tipo   esc: cerrar"))

	return renderModal(theme, width, height, 50, "Gestión de Tarifas", b.String())
}
