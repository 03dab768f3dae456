// Package scenario implements the scenario DSL: a 2D ASCII map of regions
// plus a legend resolving each map character into a stack of Region
// values. Grounded on original_source's world/src/data.rs (Scenario,
// Region, GenericSector) and content/src/sector_map.rs (SectorMap).
package scenario

import "fmt"

// GenericSector names a procedurally generated sector's theme.
type GenericSector int

const (
	Water GenericSector = iota
	Grassland
	Forest
	Mountains
	Dungeon
)

// Kind discriminates a Region's variant.
type Kind int

const (
	// Generate is a procedural single sector.
	Generate Kind = iota
	// Site is an above-ground prefab sector.
	Site
	// Hall is an underground prefab sector.
	Hall
	// Branch is a sideways shaft of further regions.
	Branch
	// Repeat concatenates n copies of a region.
	Repeat
)

// Region is one entry of a legend's region stack. Only the fields relevant
// to Kind are populated, mirroring the teacher's tagged-variant style
// already used for action.Action and ai.Goal.
type Region struct {
	Kind Kind

	// Generate
	Sector GenericSector
	// Site, Hall
	Map SectorMap
	// Branch
	Stack []Region
	// Repeat
	Count int
	Inner *Region
}

// NewGenerate builds a Generate region.
func NewGenerate(s GenericSector) Region { return Region{Kind: Generate, Sector: s} }

// NewSite builds a Site region.
func NewSite(m SectorMap) Region { return Region{Kind: Site, Map: m} }

// NewHall builds a Hall region.
func NewHall(m SectorMap) Region { return Region{Kind: Hall, Map: m} }

// NewBranch builds a Branch region.
func NewBranch(stack []Region) Region { return Region{Kind: Branch, Stack: stack} }

// NewRepeat builds a Repeat region.
func NewRepeat(n int, inner Region) Region {
	return Region{Kind: Repeat, Count: n, Inner: &inner}
}

// IsSite reports whether r is, or repeats, a Site region: original_source's
// Region::is_site.
func (r Region) IsSite() bool {
	switch r.Kind {
	case Site:
		return true
	case Repeat:
		return r.Inner != nil && r.Inner.IsSite()
	default:
		return false
	}
}

// IsPrefab reports whether r is, or repeats, a Site or Hall region.
func (r Region) IsPrefab() bool {
	switch r.Kind {
	case Site, Hall:
		return true
	case Repeat:
		return r.Inner != nil && r.Inner.IsPrefab()
	default:
		return false
	}
}

// Height is how many z-levels r's vertical extent represents once unfolded.
// Branch contributes 0 since it runs sideways, not down.
func (r Region) Height() int {
	switch r.Kind {
	case Repeat:
		if r.Inner == nil {
			return 0
		}
		return r.Count * r.Inner.Height()
	case Branch:
		return 0
	default:
		return 1
	}
}

// FixedUpstairs returns the 2D position of a Site/Hall's '<' marker, if any.
func (r Region) FixedUpstairs() (Point, bool) {
	switch r.Kind {
	case Site, Hall:
		return r.Map.FindUpstairs()
	default:
		return Point{}, false
	}
}

// Scenario is the toplevel world specification: a 2D ASCII map and a legend
// resolving each character to a stack of regions. A character that repeats
// in the legend yields one entry per occurrence of the character in the
// map, cycled in scanline order: spec.md §3.4.
type Scenario struct {
	Map    string
	Legend []LegendEntry
}

// LegendEntry is one (character, region stack) pair. Legend is a slice
// rather than a map so a repeated character can carry more than one entry.
type LegendEntry struct {
	Char  rune
	Stack []Region
}

// Regions resolves the scenario's map into (position → region stack) pairs,
// cycling through a repeated character's legend entries in scanline order.
func (s Scenario) Regions() (map[Point][]Region, error) {
	indices := map[rune][]int{}
	for i, e := range s.Legend {
		indices[e.Char] = append(indices[e.Char], i)
	}

	counts := map[rune]int{}
	out := make(map[Point][]Region)
	for _, cell := range CharGrid(s.Map) {
		idxs, ok := indices[cell.Char]
		if !ok {
			return nil, fmt.Errorf("scenario: char %q at %v not in legend", cell.Char, cell.Point)
		}
		n := counts[cell.Char]
		counts[cell.Char] = n + 1
		out[cell.Point] = s.Legend[idxs[n%len(idxs)]].Stack
	}
	return out, nil
}
