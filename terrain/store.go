package terrain

import "voxelrogue/lattice"

// Store is the sparse terrain store: an overlay (runtime edits) layered
// over a procedural cache (generated-and-cached terrain), falling back to
// DefaultVoxel for anything neither has touched. spec.md §3.2, §8 property 2.
type Store struct {
	overlay map[lattice.Location]Voxel
	cache   map[lattice.Location]Voxel
}

// NewStore returns an empty store: every location reads as DefaultVoxel
// until the cache or overlay is populated.
func NewStore() *Store {
	return &Store{
		overlay: make(map[lattice.Location]Voxel),
		cache:   make(map[lattice.Location]Voxel),
	}
}

// Voxel reads the overlay first, then the procedural cache, else the
// default (solid stone).
func (s *Store) Voxel(l lattice.Location) Voxel {
	if v, ok := s.overlay[l]; ok {
		return v
	}
	if v, ok := s.cache[l]; ok {
		return v
	}
	return DefaultVoxel
}

// SetVoxel writes to the overlay, the layer reserved for runtime edits
// (digging, door state changes, spell effects).
func (s *Store) SetVoxel(l lattice.Location, v Voxel) {
	s.overlay[l] = v
}

// CacheVoxel writes to the procedural cache, the layer used by generators
// when they realize a sector. Only written when it differs from
// DefaultVoxel (spec.md §4.5 step 6).
func (s *Store) CacheVoxel(l lattice.Location, v Voxel) {
	if v == DefaultVoxel {
		delete(s.cache, l)
		return
	}
	s.cache[l] = v
}

// HasCached reports whether a location has an entry in the procedural
// cache (used by generation bookkeeping, not by gameplay queries).
func (s *Store) HasCached(l lattice.Location) bool {
	_, ok := s.cache[l]
	return ok
}
