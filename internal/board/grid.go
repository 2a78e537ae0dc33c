// Package board builds the display models for the cubicle grid and the
// detail panel. Everything here is a pure function of its inputs; rendering
// lives in the ui package.
package board

import (
	"github.com/five82/lotwatch/internal/parking"
)

// Tile is one cubicle in the grid.
type Tile struct {
	Name     string
	Label    string
	Plate    string
	Icon     string
	IconPath string
	State    parking.State
	Selected bool
	Cubicle  parking.Cubicle
}

// Group is a titled row of tiles sharing a slot type.
type Group struct {
	Type  parking.VehicleType
	Title string
	Tiles []Tile
}

// GroupTitle returns the heading for a slot type.
func GroupTitle(vt parking.VehicleType) string {
	if vt == parking.VehicleMotorcycle {
		return "Cubículos para Motos"
	}
	return "Cubículos para Carros"
}

// Icon returns the glyph drawn on a tile for the slot type.
func Icon(vt parking.VehicleType) string {
	if vt == parking.VehicleMotorcycle {
		return "🏍"
	}
	return "🚗"
}

// IconPath returns the static asset used by the web monitor for the slot type.
func IconPath(vt parking.VehicleType) string {
	if vt == parking.VehicleMotorcycle {
		return "/static/img/icons/moto.svg"
	}
	return "/static/img/icons/carro.svg"
}

// BuildGrid partitions the snapshot into car and motorcycle groups, keeping
// the backend order inside each group. Both groups are always returned, car
// first. selectedName marks the highlighted tile.
func BuildGrid(snapshot []parking.Cubicle, selectedName string) []Group {
	groups := make([]Group, 0, 2)
	for _, vt := range parking.VehicleTypes() {
		groups = append(groups, Group{Type: vt, Title: GroupTitle(vt)})
	}
	for _, c := range snapshot {
		idx := 0
		if c.SlotType() == parking.VehicleMotorcycle {
			idx = 1
		}
		groups[idx].Tiles = append(groups[idx].Tiles, newTile(c, selectedName))
	}
	return groups
}

// Flatten returns the tiles of every group in display order.
func Flatten(groups []Group) []Tile {
	var tiles []Tile
	for _, g := range groups {
		tiles = append(tiles, g.Tiles...)
	}
	return tiles
}

// IndexOf returns the flattened index of the named tile, or -1.
func IndexOf(groups []Group, name string) int {
	if name == "" {
		return -1
	}
	for i, tile := range Flatten(groups) {
		if tile.Name == name {
			return i
		}
	}
	return -1
}

func newTile(c parking.Cubicle, selectedName string) Tile {
	vt := c.SlotType()
	return Tile{
		Name:     c.Name,
		Label:    c.State.Label(),
		Plate:    c.Plate,
		Icon:     Icon(vt),
		IconPath: IconPath(vt),
		State:    c.State,
		Selected: selectedName != "" && c.Name == selectedName,
		Cubicle:  c,
	}
}
