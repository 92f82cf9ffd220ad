// Package editor owns the mutable editing session: the tile grid, the
// brush, the hover state, and the dirty flag that gates rebuilds. The
// geometry core only ever reads the grid.
package editor

import (
	"github.com/fieldbox/tileforge/internal/tilemap"
)

// Brush is the tile stamp applied by painting.
type Brush struct {
	Kind      tilemap.Kind
	Type      tilemap.Type
	Elevation int8
	RampSet   bool
	RampDir   tilemap.Direction
}

// Hover identifies the tile under the cursor, if any.
type Hover struct {
	X, Y  int
	Valid bool
}

// State is the editing session. Single writer: the input loop. The
// per-frame update reads Dirty, rebuilds derived data, and calls
// ClearDirty; edits and rebuilds are serialized by the host loop.
type State struct {
	Map   *tilemap.Map
	Brush Brush
	Hover Hover

	dirty bool
}

// New creates a session over a fresh grid of the given size.
func New(width, height int) *State {
	return &State{
		Map:   tilemap.New(width, height),
		Brush: Brush{Kind: tilemap.Floor, Type: tilemap.Grass},
		dirty: true, // first frame must build the initial mesh
	}
}

// Dirty reports whether the grid changed since the last rebuild.
func (s *State) Dirty() bool {
	return s.dirty
}

// ClearDirty marks derived data as in sync with the grid.
func (s *State) ClearDirty() {
	s.dirty = false
}

// MarkDirty forces a rebuild on the next update.
func (s *State) MarkDirty() {
	s.dirty = true
}

// Paint stamps the brush onto (x, y). Out-of-grid coordinates are
// ignored. Painting an identical tile still marks the map dirty; the
// rebuild is a full recompute either way.
func (s *State) Paint(x, y int) {
	if !s.Map.In(x, y) {
		return
	}
	s.Map.Set(x, y, tilemap.Tile{
		Kind:      s.Brush.Kind,
		Type:      s.Brush.Type,
		Elevation: s.Brush.Elevation,
		RampSet:   s.Brush.RampSet,
		RampDir:   s.Brush.RampDir,
	})
	s.dirty = true
}

// RotateRamp cycles a ramp tile's explicit direction clockwise. An
// auto-resolving ramp becomes explicit north first. Floors are left
// alone.
func (s *State) RotateRamp(x, y int) {
	if !s.Map.In(x, y) {
		return
	}
	t := s.Map.At(x, y)
	if t.Kind != tilemap.Ramp {
		return
	}
	if !t.RampSet {
		t.RampSet = true
		t.RampDir = tilemap.North
	} else {
		t.RampDir = t.RampDir.Next()
	}
	s.Map.Set(x, y, t)
	s.dirty = true
}

// Resize replaces the grid with a fresh one of the given size,
// discarding the current map.
func (s *State) Resize(width, height int) {
	s.Map = tilemap.New(width, height)
	s.Hover = Hover{}
	s.dirty = true
}

// Replace swaps in a loaded grid (after Load from a map file).
func (s *State) Replace(m *tilemap.Map) {
	s.Map = m
	s.Hover = Hover{}
	s.dirty = true
}

// SetHover records the tile under the cursor.
func (s *State) SetHover(x, y int, valid bool) {
	s.Hover = Hover{X: x, Y: y, Valid: valid}
}
