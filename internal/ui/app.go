package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lotwatch/internal/board"
	"github.com/five82/lotwatch/internal/config"
	"github.com/five82/lotwatch/internal/parking"
	"github.com/five82/lotwatch/internal/prefs"
	"github.com/five82/lotwatch/internal/state"
	"github.com/five82/lotwatch/internal/voucher"
)

// Refresher drives snapshot fetches on behalf of the UI.
type Refresher interface {
	Refresh(ctx context.Context) bool
	Trigger(ctx context.Context)
	SetSearch(ctx context.Context, term string)
	Search() string
	Updates() <-chan struct{}
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    parking.API
	Store     *state.Store
	Poller    Refresher
	Config    *config.Config
	Logger    *slog.Logger
	Printer   voucher.Printer // nil disables direct printing
	ClockTick time.Duration
	ThemeName string
	PrefsPath string
}

const (
	detailWidth         = 46
	sideBySideMinWidth  = 90
	stackedDetailHeight = 14
	flashDuration       = 4 * time.Second
)

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	client    parking.API
	store     *state.Store
	poller    Refresher
	config    *config.Config
	logger    *slog.Logger
	printer   voucher.Printer
	prefsPath string
	clockTick time.Duration

	keys   keyMap
	theme  Theme
	width  int
	height int
	ready  bool
	now    time.Time

	snapshot  state.Snapshot
	tiles     []board.Tile
	cursor    int
	selection state.Selection
	detail    board.Detail

	gridViewport   viewport.Model
	detailViewport viewport.Model

	modal    Modal
	showHelp bool

	flash       string
	flashDanger bool
	flashUntil  time.Time
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clockTick := opts.ClockTick
	if clockTick <= 0 {
		clockTick = time.Second
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	cfg := opts.Config
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	return Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		poller:    opts.Poller,
		config:    cfg,
		logger:    logger,
		printer:   opts.Printer,
		prefsPath: prefsPath,
		clockTick: clockTick,
		keys:      defaultKeyMap(),
		theme:     GetTheme(themeName),
		detail:    board.BuildDetail(state.Clear()),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.clockTick)}
	// The first snapshotMsg reads whatever the store already holds and
	// starts the wait on poller updates.
	if m.store != nil {
		cmds = append(cmds, func() tea.Msg { return snapshotMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.gridViewport = viewport.New(0, 0)
			m.detailViewport = viewport.New(0, 0)
		}
		m.ready = true
		m.resize()
		m.refreshGrid()
		m.refreshDetail(false)
		return m, nil

	case tickMsg:
		m.now = time.Time(msg)
		if m.flash != "" && m.now.After(m.flashUntil) {
			m.flash = ""
		}
		return m, tickCmd(m.clockTick)

	case snapshotMsg:
		m.applySnapshot()
		var cmd tea.Cmd
		if m.poller != nil {
			cmd = waitForUpdate(m.poller.Updates())
		}
		return m, cmd

	case alertMsg:
		m.modal = alertModal(msg)
		return m, nil

	case refreshMsg:
		if m.poller != nil {
			m.poller.Trigger(m.ctx)
		}
		return m, nil

	case searchMsg:
		m.applySearch(msg.term)
		return m, nil

	case finalizeDoneMsg:
		return m.handleFinalizeDone(msg)

	case cancelDoneMsg:
		return m.handleCancelDone(msg)

	case voucherReadyMsg:
		m.modal = newVoucherModal(m.ctx, msg.voucher, m.config.VoucherDir, m.printer)
		return m, nil

	// A save result whose dialog was closed while the request was in flight.
	case plateSavedMsg:
		if _, ok := m.modal.(plateModal); !ok {
			return m, plateSavedOutcome(msg)
		}

	case rateSavedMsg:
		if _, ok := m.modal.(ratesModal); !ok {
			return m, rateSavedOutcome(msg)
		}
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Cargando..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

func (m Model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd, closed := m.modal.Update(msg, m.keys)
	if closed {
		m.modal = nil
	} else {
		m.modal = next
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.modal != nil {
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.updateModal(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		name := m.theme.Name
		if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.Theme = name }); err != nil {
			m.logger.Warn("save theme preference failed", "error", err)
		}
		m.refreshGrid()
		m.refreshDetail(false)

	case key.Matches(msg, m.keys.Refresh):
		if m.poller != nil && !m.poller.Refresh(m.ctx) {
			m.setFlash("Actualización en curso, espere un momento.", false)
		}

	case key.Matches(msg, m.keys.Search):
		m.modal = newSearchModal(m.searchTerm())
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		m.selection = state.Clear()
		m.refreshGrid()
		m.refreshDetail(true)

	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-tilesPerRow(m.gridViewport.Width))
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(tilesPerRow(m.gridViewport.Width))
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.tiles))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.tiles))

	case key.Matches(msg, m.keys.Select):
		m.selectAtCursor()

	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfPageUp()

	case key.Matches(msg, m.keys.Finalize):
		return m.confirmFinalize()
	case key.Matches(msg, m.keys.Cancel):
		return m.confirmCancel()
	case key.Matches(msg, m.keys.EditPlate):
		return m.openPlateEditor()
	case key.Matches(msg, m.keys.Print):
		return m.printVoucher()

	case key.Matches(msg, m.keys.Rates):
		modal, cmd := newRatesModal(m.ctx, m.client)
		m.modal = modal
		return m, cmd
	case key.Matches(msg, m.keys.Report):
		modal, cmd := newReportModal(m.ctx, m.client, m.config.ExportDir, m.clock())
		m.modal = modal
		return m, cmd
	case key.Matches(msg, m.keys.Log):
		modal, cmd := newLogModal(m.config.LogFile, m.width, m.height)
		m.modal = modal
		return m, cmd
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if len(m.tiles) == 0 {
		return
	}
	m.cursor = max(0, min(len(m.tiles)-1, m.cursor+delta))
	m.refreshGrid()
}

// selectAtCursor is the keyboard equivalent of clicking a tile.
func (m *Model) selectAtCursor() {
	if m.cursor < 0 || m.cursor >= len(m.tiles) {
		return
	}
	m.selection = state.Select(m.tiles[m.cursor].Cubicle)
	m.refreshGrid()
	m.refreshDetail(true)
}

func (m Model) confirmFinalize() (tea.Model, tea.Cmd) {
	c, ok := m.selection.Cubicle()
	if !ok || !m.detail.Has(board.ActionFinalize) {
		m.setFlash("Seleccione un registro de cobro activo primero.", true)
		return m, nil
	}
	m.modal = confirmModal{
		title:    "Finalizar cobro",
		question: fmt.Sprintf("¿Está seguro de finalizar el cobro y liberar el cubículo %s?", c.Name),
		onYes:    finalizeCmd(m.ctx, m.client, c.RegistrationID),
	}
	return m, nil
}

func (m Model) confirmCancel() (tea.Model, tea.Cmd) {
	c, ok := m.selection.Cubicle()
	if !ok || !m.detail.Has(board.ActionCancel) {
		m.setFlash("Seleccione un cubículo asignado para cancelar.", true)
		return m, nil
	}
	m.modal = confirmModal{
		title: "Cancelar asignación",
		question: fmt.Sprintf("¿Está seguro que desea cancelar la asignación del cubículo %s y liberarlo? "+
			"Esta acción eliminará el registro de entrada.", c.Name),
		onYes: cancelCmd(m.ctx, m.client, c.Name),
	}
	return m, nil
}

func (m Model) openPlateEditor() (tea.Model, tea.Cmd) {
	c, ok := m.selection.Cubicle()
	if !ok {
		m.setFlash("Seleccione un cubículo para editar la placa.", true)
		return m, nil
	}
	m.modal = newPlateModal(m.ctx, m.client, c)
	return m, textinput.Blink
}

func (m Model) printVoucher() (tea.Model, tea.Cmd) {
	if _, err := voucher.Build(m.selection, nil); err != nil {
		m.modal = alertModal(errorAlert("Ticket", err))
		return m, nil
	}
	return m, voucherCmd(m.ctx, m.client, m.logger, m.selection)
}

func (m Model) handleFinalizeDone(msg finalizeDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		text := parking.Message(msg.err)
		if parking.Classify(msg.err) == parking.KindRejected {
			text = "Error al finalizar cobro: " + text
		}
		m.logger.Warn("finalize charge failed", "error", msg.err)
		m.modal = alertModal{title: "Finalizar cobro", text: text, danger: true}
		return m, nil
	}
	m.logger.Info("charge finalized", "amount", msg.result.Amount, "minutes", msg.result.Minutes)
	m.clearSelectionAndRefresh()
	m.modal = alertModal{title: "Finalizar cobro", text: board.FinalizeMessage(msg.result)}
	return m, nil
}

func (m Model) handleCancelDone(msg cancelDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		text := parking.Message(msg.err)
		if parking.Classify(msg.err) == parking.KindRejected {
			text = "Error al cancelar: " + text
		}
		m.logger.Warn("cancel reservation failed", "cubicle", msg.cubicle, "error", msg.err)
		m.modal = alertModal{title: "Cancelar asignación", text: text, danger: true}
		return m, nil
	}
	m.logger.Info("reservation cancelled", "cubicle", msg.cubicle)
	m.clearSelectionAndRefresh()
	text := msg.result.Message
	if text == "" {
		text = "Asignación cancelada."
	}
	m.modal = alertModal{title: "Cancelar asignación", text: text}
	return m, nil
}

func (m *Model) clearSelectionAndRefresh() {
	m.selection = state.Clear()
	m.refreshGrid()
	m.refreshDetail(true)
	if m.poller != nil {
		m.poller.Trigger(m.ctx)
	}
}

func (m *Model) applySearch(term string) {
	if m.poller != nil {
		m.poller.SetSearch(m.ctx, term)
	}
	if err := prefs.Update(m.prefsPath, func(p *prefs.Prefs) { p.LastSearch = term }); err != nil {
		m.logger.Warn("save search preference failed", "error", err)
	}
	if term == "" {
		m.setFlash("Filtro eliminado.", false)
	} else {
		m.setFlash("Filtrando por "+term, false)
	}
}

func (m *Model) applySnapshot() {
	if m.store == nil {
		return
	}
	m.snapshot = m.store.Snapshot()
	prev := m.selection.Name()
	m.selection = state.Reconcile(m.selection, m.snapshot.Cubicles)
	m.refreshGrid()
	m.refreshDetail(m.selection.Name() != prev)
}

func (m *Model) resize() {
	gridW, gridH, detailW, detailH := m.layout()
	m.gridViewport.Width = gridW
	m.gridViewport.Height = gridH
	// Border and padding take two columns on each side.
	m.detailViewport.Width = max(detailW-4, 10)
	m.detailViewport.Height = max(detailH-2, 1)
}

// layout splits the body between grid and detail panel. Wide terminals get
// the panel on the right, narrow ones below the grid.
func (m Model) layout() (gridW, gridH, detailW, detailH int) {
	bodyH := max(m.height-2, 4)
	if m.width >= sideBySideMinWidth {
		return m.width - detailWidth, bodyH, detailWidth, bodyH
	}
	detailH = min(stackedDetailHeight, bodyH/2)
	return m.width, bodyH - detailH, m.width, detailH
}

func (m *Model) refreshGrid() {
	groups := board.BuildGrid(m.snapshot.Cubicles, m.selection.Name())
	m.tiles = board.Flatten(groups)
	m.cursor = max(0, min(m.cursor, len(m.tiles)-1))
	if !m.ready {
		return
	}

	content, line := renderGrid(m.theme, groups, m.cursor, m.gridViewport.Width)
	if len(m.tiles) == 0 {
		content = m.emptyGridText()
	}
	m.gridViewport.SetContent(content)

	// Keep the cursor row (and its group title) in view.
	top := max(line-1, 0)
	switch {
	case top < m.gridViewport.YOffset:
		m.gridViewport.SetYOffset(top)
	case line+tileOuterH > m.gridViewport.YOffset+m.gridViewport.Height:
		m.gridViewport.SetYOffset(line + tileOuterH - m.gridViewport.Height)
	}
}

func (m Model) emptyGridText() string {
	styles := m.theme.Styles()
	switch {
	case !m.snapshot.HasData && m.snapshot.LastError != nil:
		return styles.DangerText.Render(parking.ConnectivityMessage)
	case !m.snapshot.HasData:
		return styles.MutedText.Render("Cargando cubículos...")
	case m.snapshot.Search != "":
		return styles.MutedText.Render("Ningún cubículo coincide con " + m.snapshot.Search)
	default:
		return styles.MutedText.Render("No hay cubículos registrados.")
	}
}

func (m *Model) refreshDetail(resetScroll bool) {
	m.detail = board.BuildDetail(m.selection)
	if !m.ready {
		return
	}
	m.detailViewport.SetContent(renderDetail(m.theme, m.keys, m.detail, m.detailViewport.Width))
	if resetScroll {
		m.detailViewport.GotoTop()
	}
}

func (m *Model) setFlash(text string, danger bool) {
	m.flash = text
	m.flashDanger = danger
	m.flashUntil = m.clock().Add(flashDuration)
}

func (m Model) clock() time.Time {
	if m.now.IsZero() {
		return time.Now()
	}
	return m.now
}

func (m Model) searchTerm() string {
	if m.poller == nil {
		return m.snapshot.Search
	}
	return m.poller.Search()
}

// renderMain renders the header, the grid with its detail panel and the
// command bar.
func (m Model) renderMain() string {
	_, _, detailW, detailH := m.layout()
	grid := m.gridViewport.View()
	panel := m.renderDetailPanel(detailW, detailH)

	var body string
	if m.width >= sideBySideMinWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.gridViewport.Width).Render(grid), panel)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, grid, panel)
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderCommandBar())
}

// Messages

type tickMsg time.Time

// snapshotMsg reports that the store holds a newer snapshot.
type snapshotMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForUpdate(updates <-chan struct{}) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return snapshotMsg{}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
