package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/lotwatch/internal/logtail"
)

const logTailLines = 200

type logLoadedMsg struct {
	lines []string
	err   error
}

func loadLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Tail(path, logTailLines)
		return logLoadedMsg{lines: lines, err: err}
	}
}

// logModal shows the tail of lotwatch's own activity log.
type logModal struct {
	path     string
	viewport viewport.Model
	loaded   bool
	err      error
}

func newLogModal(path string, width, height int) (logModal, tea.Cmd) {
	vp := viewport.New(logViewportSize(width, height))
	return logModal{path: path, viewport: vp}, loadLogCmd(path)
}

func logViewportSize(width, height int) (int, int) {
	w := width - 10
	h := height - 12
	if w < 20 {
		w = 20
	}
	if h < 5 {
		h = 5
	}
	return w, h
}

func (l logModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case logLoadedMsg:
		l.loaded = true
		l.err = msg.err
		content := "(sin actividad registrada)"
		if len(msg.lines) > 0 {
			content = strings.Join(msg.lines, "\n")
		}
		l.viewport.SetContent(content)
		l.viewport.GotoBottom()
		return l, nil, false

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Confirm):
			return l, nil, true
		case key.Matches(msg, keys.Reload):
			return l, loadLogCmd(l.path), false
		case key.Matches(msg, keys.Top):
			l.viewport.GotoTop()
			return l, nil, false
		case key.Matches(msg, keys.Bottom):
			l.viewport.GotoBottom()
			return l, nil, false
		}
	}

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return l, cmd, false
}

func (l logModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	w, h := logViewportSize(width, height)
	l.viewport.Width = w
	l.viewport.Height = h

	var b strings.Builder
	switch {
	case l.err != nil:
		b.WriteString(styles.DangerText.Render(l.err.Error()))
	case !l.loaded:
		b.WriteString(styles.MutedText.Render("Cargando..."))
	default:
		b.WriteString(l.viewport.View())
	}
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render("j/k: desplazar   r: recargar   esc: cerrar"))

	return renderModal(theme, width, height, w+6, "Actividad: "+l.path, b.String())
}
