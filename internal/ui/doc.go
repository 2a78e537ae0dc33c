// Package ui provides the Bubble Tea terminal interface for lotwatch.
//
// # Layout
//
// The screen is a one-line header (connection state, per-state counts,
// active filter, clock), the cubicle grid with the detail panel beside it
// (or below it on narrow terminals), and a command bar. The grid shows one
// titled block per slot type; each tile is colored by occupancy state and
// the selected tile gets a double border.
//
// # Data flow
//
// The app package runs a poller that writes into state.Store and signals on
// its Updates channel. The model waits on that channel with a blocking
// command, re-reads the store on every signal and reconciles the selection
// against the new snapshot by cubicle name. The UI itself never fetches the
// snapshot.
//
// # Modals
//
// Every dialog implements Modal. Modals own their network commands (rates,
// plate edit, report) and report results back through messages; results
// that affect the board (finalize, cancel, plate saved) are handled by the
// root model, which clears the selection where needed and triggers an
// unthrottled refresh.
//
// # Files
//
//   - app.go: Model, Update loop, layout and key dispatch
//   - grid.go, detail.go: grid tiles and detail panel rendering
//   - header.go: status bar and command bar
//   - modal.go: Modal interface, alert, confirm and search dialogs
//   - rates.go, plate.go, voucher.go, report.go, logs.go: feature dialogs
//   - theme.go, style_helpers.go, keys.go, help.go: presentation plumbing
package ui
