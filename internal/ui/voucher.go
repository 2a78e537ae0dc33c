package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lotwatch/internal/voucher"
)

type voucherOutputMsg struct {
	text string
	err  error
}

// voucherModal previews the ticket and offers to save or print it.
type voucherModal struct {
	ctx     context.Context
	voucher voucher.Voucher
	dir     string
	printer voucher.Printer
	busy    bool
	status  string
	danger  bool
}

func newVoucherModal(ctx context.Context, v voucher.Voucher, dir string, printer voucher.Printer) voucherModal {
	return voucherModal{ctx: ctx, voucher: v, dir: dir, printer: printer}
}

func (m voucherModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case voucherOutputMsg:
		m.busy = false
		if msg.err != nil {
			m.status, m.danger = msg.err.Error(), true
		} else {
			m.status, m.danger = msg.text, false
		}
		return m, nil, false

	case tea.KeyMsg:
		if m.busy {
			return m, nil, false
		}
		switch {
		case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Confirm):
			return m, nil, true
		case key.Matches(msg, keys.SavePDF):
			m.busy = true
			v, dir := m.voucher, m.dir
			return m, func() tea.Msg {
				path, err := v.SavePDF(dir)
				return voucherOutputMsg{text: "PDF guardado en " + path, err: err}
			}, false
		case key.Matches(msg, keys.SendTo) && m.printer != nil:
			m.busy = true
			v, printer, ctx := m.voucher, m.printer, m.ctx
			return m, func() tea.Msg {
				err := printer.Print(ctx, v.ESCPOS())
				return voucherOutputMsg{text: "Ticket enviado a " + printer.Name(), err: err}
			}, false
		}
	}
	return m, nil, false
}

func (m voucherModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	paper := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Text)).
		Background(lipgloss.Color(theme.SurfaceAlt)).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(paper.Render(strings.TrimRight(m.voucher.Text(), "\n")))
	b.WriteString("\n\n")
	if m.busy {
		b.WriteString(styles.MutedText.Render("Procesando..."))
	} else {
		b.WriteString(notice(styles, m.status, m.danger))
	}
	b.WriteString("\n\n")
	hint := "s: guardar PDF   esc: cerrar"
	if m.printer != nil {
		hint = "s: guardar PDF   p: imprimir   esc: cerrar"
	}
	b.WriteString(styles.MutedText.Render(hint))

	return renderModal(theme, width, height, 50, "Ticket de Entrada", b.String())
}
