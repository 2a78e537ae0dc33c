package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lotwatch/internal/parking"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("lotwatch", styles.Logo)}

	switch {
	case !m.snapshot.HasData && m.snapshot.LastError == nil:
		parts = append(parts, bg.Render("Conectando con "+m.apiLabel()+"...", styles.WarningText.Bold(true)))
		return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
	case m.snapshot.LastError != nil:
		parts = append(parts, bg.Render("● "+classifyConnectionError(m.snapshot.LastError), styles.DangerText))
		if m.snapshot.IsOffline() {
			parts = append(parts, bg.Render("Reintentando...", styles.WarningText.Bold(true)))
		}
	default:
		parts = append(parts, bg.Render("● EN LÍNEA", styles.SuccessText))
	}

	if m.snapshot.HasData {
		counts := m.snapshot.Counts()
		for _, st := range []parking.State{parking.StateFree, parking.StateOccupied, parking.StatePending} {
			color := styles.Text.Foreground(lipgloss.Color(styles.StateColor(st)))
			parts = append(parts,
				bg.Render(st.Label()+":", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d", counts[st]), color.Bold(true)))
		}
	}

	if term := m.searchTerm(); term != "" {
		parts = append(parts, bg.Render("Filtro:", styles.MutedText)+bg.Space()+
			bg.Render(truncate(term, 16), styles.AccentText))
	}

	if !m.snapshot.LastUpdated.IsZero() && m.width >= 100 {
		parts = append(parts, bg.Render("Actualizado "+m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}
	if !m.now.IsZero() {
		parts = append(parts, bg.Render(m.now.Format("15:04:05"), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, sep))
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "SIN CONEXIÓN"
	case strings.Contains(msg, "no such host"):
		return "HOST DESCONOCIDO"
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return "TIEMPO AGOTADO"
	default:
		return "ERROR"
	}
}

// renderCommandBar renders the key hints and the latest transient message.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	colon := bg.Sep(":")
	bindings := m.keys.commandBar()
	segments := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		h := b.Help()
		segments = append(segments, bg.Render(h.Key, styles.AccentText)+colon+bg.Render(h.Desc, styles.MutedText))
	}
	if m.flash != "" {
		style := styles.InfoText
		if m.flashDanger {
			style = styles.DangerText
		}
		segments = append(segments, bg.Render(m.flash, style))
	}
	return styles.Footer.Width(m.width).Render(bg.Join(segments, "  "))
}

func (m Model) apiLabel() string {
	if m.config == nil || m.config.APIURL == "" {
		return "el servidor"
	}
	return m.config.APIURL
}
