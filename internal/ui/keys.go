package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Refresh    key.Binding
	Search     key.Binding
	Escape     key.Binding

	// Grid navigation
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Top    key.Binding
	Bottom key.Binding
	Select key.Binding

	// Detail panel
	HalfPageUp   key.Binding
	HalfPageDown key.Binding

	// Cubicle actions
	Finalize  key.Binding
	Cancel    key.Binding
	EditPlate key.Binding
	Print     key.Binding

	// Other screens
	Rates  key.Binding
	Report key.Binding
	Log    key.Binding

	// Modals
	Tab      key.Binding
	ShiftTab key.Binding
	Confirm  key.Binding
	Yes      key.Binding
	No       key.Binding
	SavePDF  key.Binding
	SendTo   key.Binding
	Export   key.Binding
	Reload   key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Salir"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Mostrar ayuda"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cambiar tema"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Actualizar ahora"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Buscar placa o cubículo"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Quitar selección / cerrar"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Arriba"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Abajo"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "Izquierda"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "Derecha"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Primer cubículo"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Último cubículo"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "Seleccionar cubículo"),
		),

		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "Subir detalle"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "Bajar detalle"),
		),

		Finalize: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Finalizar cobro"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cancelar reserva"),
		),
		EditPlate: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Editar placa"),
		),
		Print: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Imprimir ticket"),
		),

		Rates: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Gestionar tarifas"),
		),
		Report: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Reporte de cobros"),
		),
		Log: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Registro de actividad"),
		),

		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Campo siguiente"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Campo anterior"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirmar"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "Sí"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "No"),
		),
		SavePDF: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Guardar PDF"),
		),
		SendTo: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Enviar a impresora"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Exportar XLSX"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Recargar"),
		),
	}
}

// commandBar returns the bindings advertised in the footer.
func (k keyMap) commandBar() []key.Binding {
	return []key.Binding{k.Select, k.Finalize, k.Cancel, k.EditPlate, k.Print, k.Rates, k.Search, k.Report, k.Help, k.Quit}
}
