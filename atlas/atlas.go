// Package atlas implements the round-trippable compact textual encoding of
// sparse voxel regions and bit sets: spec.md §3.3, §6.1.
package atlas

import (
	"sort"
	"strings"

	"voxelrogue/lattice"
	"voxelrogue/terrain"
)

// nbsp is the "no content" fill glyph for char atlases: U+00A0, not an
// ordinary space, so fill stays distinguishable from actual whitespace
// content (spec.md section 3.3/6.1).
const nbsp = '\u00A0'

// airGlyph is reserved for "explicit air" in terrain atlases.
const airGlyph = '_'

// Entry is one slice of an Atlas: an origin plus a rectangular block of
// glyphs, one glyph per cell, rows separated by '\n'.
type Entry struct {
	Origin lattice.Location
	Rows   []string
}

// Atlas is an ordered map from slice origin to a glyph block. Ordering is
// the insertion/slice order, preserved for deterministic serialization.
type Atlas struct {
	entries []Entry
}

// AddSlice appends one (origin, rows) entry.
func (a *Atlas) AddSlice(origin lattice.Location, rows []string) {
	a.entries = append(a.entries, Entry{Origin: origin, Rows: rows})
}

// Entries returns the atlas's slices in order.
func (a *Atlas) Entries() []Entry { return a.entries }

// FromVoxels builds a single-slice Atlas encoding every voxel in bounds at
// z=origin.Z, using terrain.GlyphOf for solid blocks, airGlyph for explicit
// None, and nbsp for points absent from the supplied set (not sampled).
func FromVoxels(origin lattice.Location, width, height int, voxelAt func(lattice.Location) (terrain.Voxel, bool)) *Atlas {
	rows := make([]string, height)
	for y := 0; y < height; y++ {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			loc := lattice.At(origin.X+x, origin.Y+y, origin.Z)
			v, present := voxelAt(loc)
			switch {
			case !present:
				sb.WriteRune(nbsp)
			case v.IsNone():
				sb.WriteRune(airGlyph)
			default:
				sb.WriteRune(terrain.GlyphOf(v.Block))
			}
		}
		rows[y] = sb.String()
	}
	a := &Atlas{}
	a.AddSlice(origin, rows)
	return a
}

// Voxels decodes every non-nbsp cell back into a (location, voxel) pair.
func (a *Atlas) Voxels() map[lattice.Location]terrain.Voxel {
	out := make(map[lattice.Location]terrain.Voxel)
	for _, e := range a.entries {
		for y, row := range e.Rows {
			x := 0
			for _, r := range row {
				loc := lattice.At(e.Origin.X+x, e.Origin.Y+y, e.Origin.Z)
				switch r {
				case nbsp:
					// no content: skip
				case airGlyph:
					out[loc] = terrain.None
				default:
					if b, ok := terrain.BlockOfGlyph(r); ok {
						out[loc] = terrain.Some(b)
					}
				}
				x++
			}
		}
	}
	return out
}

// Text renders the atlas as a flat, deterministic string: one "@x,y,z\n" key
// line followed by the glyph rows, per entry, entries sorted by origin.
func (a *Atlas) Text() string {
	entries := append([]Entry(nil), a.entries...)
	sort.Slice(entries, func(i, j int) bool {
		oi, oj := entries[i].Origin, entries[j].Origin
		if oi.Z != oj.Z {
			return oi.Z < oj.Z
		}
		if oi.Y != oj.Y {
			return oi.Y < oj.Y
		}
		return oi.X < oj.X
	})

	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString(keyLine(e.Origin))
		for _, row := range e.Rows {
			sb.WriteString(row)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func keyLine(l lattice.Location) string {
	return "@" + itoa(l.X) + "," + itoa(l.Y) + "," + itoa(l.Z) + "\n"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
