package ui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lotwatch/internal/parking"
	"github.com/five82/lotwatch/internal/state"
	"github.com/five82/lotwatch/internal/voucher"
)

// Messages produced by cubicle actions.

type finalizeDoneMsg struct {
	result parking.FinalizeResult
	err    error
}

type cancelDoneMsg struct {
	cubicle string
	result  parking.ActionResult
	err     error
}

// refreshMsg asks the root model for an immediate snapshot refresh that
// must not be throttled.
type refreshMsg struct{}

type voucherReadyMsg struct {
	voucher voucher.Voucher
}

func finalizeCmd(ctx context.Context, api parking.API, id parking.ID) tea.Cmd {
	return func() tea.Msg {
		res, err := api.FinalizeCharge(ctx, id)
		return finalizeDoneMsg{result: res, err: err}
	}
}

func cancelCmd(ctx context.Context, api parking.API, name string) tea.Cmd {
	return func() tea.Msg {
		res, err := api.CancelReservation(ctx, name)
		return cancelDoneMsg{cubicle: name, result: res, err: err}
	}
}

// voucherCmd looks up the cubicle's tariff and builds the ticket. A failed
// lookup leaves the tariff lines as placeholders.
func voucherCmd(ctx context.Context, api parking.API, logger *slog.Logger, sel state.Selection) tea.Cmd {
	return func() tea.Msg {
		var rates *parking.CubicleRates
		if r, err := api.FetchCubicleRates(ctx, sel.Name()); err != nil {
			logger.Warn("cubicle rates unavailable for ticket", "cubicle", sel.Name(), "error", err)
		} else {
			rates = &r
		}
		v, err := voucher.Build(sel, rates)
		if err != nil {
			return alertMsg{title: "Ticket", text: parking.Message(err), danger: true}
		}
		return voucherReadyMsg{voucher: v}
	}
}

// errorAlert converts an action failure into an alert.
func errorAlert(title string, err error) alertMsg {
	return alertMsg{title: title, text: parking.Message(err), danger: true}
}
