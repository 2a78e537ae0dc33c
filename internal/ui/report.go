package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lotwatch/internal/currency"
	"github.com/five82/lotwatch/internal/parking"
	"github.com/five82/lotwatch/internal/report"
)

type reportLoadedMsg struct {
	rng    report.Range
	report parking.Report
	err    error
}

type reportSavedMsg struct {
	path string
	err  error
}

func fetchReportCmd(ctx context.Context, api parking.API, r report.Range) tea.Cmd {
	return func() tea.Msg {
		rep, err := api.FetchReport(ctx, r.From, r.To)
		return reportLoadedMsg{rng: r, report: rep, err: err}
	}
}

// reportModal queries the charge history for a date range.
type reportModal struct {
	ctx      context.Context
	api      parking.API
	dir      string
	inputs   [2]textinput.Model // from, to
	focusIdx int
	loading  bool
	loaded   bool
	rng      report.Range
	report   parking.Report
	status   string
	danger   bool
}

func newReportModal(ctx context.Context, api parking.API, dir string, now time.Time) (reportModal, tea.Cmd) {
	today := report.Today(now)
	m := reportModal{ctx: ctx, api: api, dir: dir, loading: true}
	for i, value := range []string{today.From, today.To} {
		in := textinput.New()
		in.Placeholder = "AAAA-MM-DD"
		in.CharLimit = 10
		in.Width = 12
		in.SetValue(value)
		m.inputs[i] = in
	}
	m.inputs[0].Focus()
	return m, fetchReportCmd(ctx, api, today)
}

func (m reportModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case reportLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.status, m.danger = parking.Message(msg.err), true
			return m, nil, false
		}
		m.loaded = true
		m.rng = msg.rng
		m.report = msg.report
		m.status = ""
		return m, nil, false

	case reportSavedMsg:
		if msg.err != nil {
			m.status, m.danger = msg.err.Error(), true
		} else {
			m.status, m.danger = "Reporte exportado a "+msg.path, false
		}
		return m, nil, false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Escape):
			return m, nil, true
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.ShiftTab):
			m.inputs[m.focusIdx].Blur()
			m.focusIdx = 1 - m.focusIdx
			m.inputs[m.focusIdx].Focus()
			return m, nil, false
		case key.Matches(msg, keys.Confirm):
			rng, err := report.ParseRange(m.inputs[0].Value(), m.inputs[1].Value())
			if err != nil {
				m.status, m.danger = parking.Message(err), true
				return m, nil, false
			}
			m.loading = true
			m.status = ""
			return m, fetchReportCmd(m.ctx, m.api, rng), false
		case key.Matches(msg, keys.Export):
			if !m.loaded {
				m.status, m.danger = "Consulte un reporte antes de exportar.", true
				return m, nil, false
			}
			rep, rng, dir := m.report, m.rng, m.dir
			return m, func() tea.Msg {
				path, err := report.Save(dir, rep, rng)
				return reportSavedMsg{path: path, err: err}
			}, false
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
	return m, cmd, false
}

func (m reportModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(fieldLabel(styles, "Desde: ", m.focusIdx == 0))
	b.WriteString(m.inputs[0].View())
	b.WriteString("  ")
	b.WriteString(fieldLabel(styles, "Hasta: ", m.focusIdx == 1))
	b.WriteString(m.inputs[1].View())
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(styles.MutedText.Render("Consultando..."))
		b.WriteString("\n")
	case m.loaded:
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("Periodo %s a %s", m.rng.From, m.rng.To)))
		b.WriteString("\n")
		for _, line := range report.Summary(m.report) {
			b.WriteString(styles.Text.Render(fmt.Sprintf("%-6s %4d  %s",
				line.Type.DisplayName(), line.Count, currency.FormatAmount(line.Amount))))
			b.WriteString("\n")
		}
		b.WriteString(styles.AccentText.Bold(true).Render("Total: " + currency.FormatAmount(m.report.Total)))
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%d cobros finalizados", len(m.report.History))))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(notice(styles, m.status, m.danger))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("enter: consultar   x: exportar   esc: cerrar"))

	return renderModal(theme, width, height, 52, "Reporte de Cobros", b.String())
}
