package scenario

import (
	"fmt"
	"strings"

	"voxelrogue/lattice"
	"voxelrogue/terrain"
)

// Point is a 2D map-space coordinate, distinct from lattice.Location since
// a SectorMap's text grid has no z or world origin of its own until it is
// stamped down somewhere.
type Point struct{ X, Y int }

// Cell is one (position, character) pair yielded by CharGrid.
type Cell struct {
	Point Point
	Char  rune
}

// CharGrid scans a newline-separated ASCII-art map in scanline order (row
// by row, left to right), yielding one Cell per non-empty rune. Grounded
// on original_source's util::text::char_grid.
func CharGrid(m string) []Cell {
	var out []Cell
	y := 0
	for _, line := range strings.Split(m, "\n") {
		x := 0
		for _, r := range line {
			out = append(out, Cell{Point: Point{X: x, Y: y}, Char: r})
			x++
		}
		y++
	}
	return out
}

// Spawn is one resolved (location, spawn name) entry from a SectorMap's
// legend. The name is left unresolved here; gamedata turns it into a
// concrete Pod once the bestiary/armory are registered.
type Spawn struct {
	Loc  lattice.Location
	Name string
}

// SectorMap is a prefab sector: an ASCII map plus a legend from character
// to spawn name. Special glyphs (spec.md §3.4): '#' stone wall, '%'
// rubble, '=' altar, '+' door, '|' glass, '.' floor, '~' water, '&' magma,
// '<' upstairs, '>' downstairs, '_' void, '@' player entrance. Any other
// legend character is a floor tile with a spawn on it.
type SectorMap struct {
	Name   string
	Map    string
	Legend map[rune]string
}

// Entrances returns every '@' position in the map.
func (m SectorMap) Entrances() []Point {
	var out []Point
	for _, c := range CharGrid(m.Map) {
		if c.Char == '@' {
			out = append(out, c.Point)
		}
	}
	return out
}

// FindUpstairs returns the first '<' position, if any.
func (m SectorMap) FindUpstairs() (Point, bool) {
	for _, c := range CharGrid(m.Map) {
		if c.Char == '<' {
			return c.Point, true
		}
	}
	return Point{}, false
}

// FindDownstairs returns the first '>' position, if any.
func (m SectorMap) FindDownstairs() (Point, bool) {
	for _, c := range CharGrid(m.Map) {
		if c.Char == '>' {
			return c.Point, true
		}
	}
	return Point{}, false
}

// Dim returns the map's (width, height) in cells.
func (m SectorMap) Dim() (int, int) {
	w, h := 0, 0
	for _, c := range CharGrid(m.Map) {
		if c.Point.X+1 > w {
			w = c.Point.X + 1
		}
		if c.Point.Y+1 > h {
			h = c.Point.Y + 1
		}
	}
	return w, h
}

// Spawns resolves the map's legend characters into (location, spawn name)
// pairs, offset by origin.
func (m SectorMap) Spawns(origin lattice.Location) ([]Spawn, error) {
	var out []Spawn
	for _, c := range CharGrid(m.Map) {
		name, ok := m.Legend[c.Char]
		if !ok {
			continue
		}
		out = append(out, Spawn{
			Loc:  lattice.At(origin.X+c.Point.X, origin.Y+c.Point.Y, origin.Z),
			Name: name,
		})
	}
	return out, nil
}

// Terrain renders the map into a set of voxel overrides anchored at
// origin. Each map cell writes up to a 3-voxel column (above/here/below)
// per the glyph table below, grounded on original_source's
// content/src/data.rs::SectorMap::terrain. '%' and '=' (rubble, altar) are
// this spec's additions over the original table, handled like '.': an open
// cell with a rubble or altar block below in place of stone. Altar is not a
// support block, so an '=' cell cannot be stood in.
func (m SectorMap) Terrain(origin lattice.Location) (map[lattice.Location]terrain.Voxel, error) {
	out := make(map[lattice.Location]terrain.Voxel)

	for _, cell := range CharGrid(m.Map) {
		p := lattice.At(origin.X+cell.Point.X, origin.Y+cell.Point.Y, origin.Z)
		c := cell.Char
		if _, isSpawn := m.Legend[c]; c == '@' || isSpawn {
			// Entrances and spawn markers sit on plain floor.
			c = '.'
		}

		switch c {
		case '#':
			out[p.Up()] = terrain.Some(terrain.Stone)
			out[p] = terrain.Some(terrain.Stone)
			out[p.Down()] = terrain.Some(terrain.Stone)
		case '+':
			out[p.Up()] = terrain.Some(terrain.Stone)
			out[p] = terrain.Some(terrain.Door)
			out[p.Down()] = terrain.Some(terrain.Stone)
		case '|':
			out[p.Up()] = terrain.Some(terrain.Stone)
			out[p] = terrain.Some(terrain.Glass)
			out[p.Down()] = terrain.Some(terrain.Stone)
		case '.':
			out[p] = terrain.None
			out[p.Down()] = terrain.Some(terrain.Stone)
		case '%':
			out[p] = terrain.None
			out[p.Down()] = terrain.Some(terrain.Rubble)
		case '=':
			out[p] = terrain.None
			out[p.Down()] = terrain.Some(terrain.Altar)
		case '~':
			out[p] = terrain.None
			out[p.Down()] = terrain.Some(terrain.Water)
		case '&':
			out[p] = terrain.None
			out[p.Down()] = terrain.Some(terrain.Magma)
		case '>', '_':
			out[p] = terrain.None
			out[p.Down()] = terrain.None
		case '<':
			out[p.Up()] = terrain.None
			out[p] = terrain.Some(terrain.Stone)
			out[p.Down()] = terrain.Some(terrain.Stone)
		default:
			return nil, fmt.Errorf("scenario: unknown terrain glyph %q", c)
		}
	}

	return out, nil
}
