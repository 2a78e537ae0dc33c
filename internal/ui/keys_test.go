package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
)

func TestHelpDescriptionsAreSpanish(t *testing.T) {
	keys := defaultKeyMap()

	cases := map[string]key.Binding{
		"Salir":            keys.Quit,
		"Mostrar ayuda":    keys.Help,
		"Actualizar ahora": keys.Refresh,
		"Finalizar cobro":  keys.Finalize,
		"Cancelar reserva": keys.Cancel,
		"Guardar PDF":      keys.SavePDF,
	}
	for want, binding := range cases {
		if got := binding.Help().Desc; got != want {
			t.Fatalf("help for %q = %q, want %q", binding.Help().Key, got, want)
		}
	}

	english := map[string]bool{"Quit": true, "Toggle help": true, "Refresh now": true, "Select cubicle": true}
	for _, b := range keys.commandBar() {
		if english[b.Help().Desc] {
			t.Fatalf("command bar still shows %q", b.Help().Desc)
		}
	}
}
