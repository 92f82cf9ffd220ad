package terrain

import (
	"testing"

	"github.com/fieldbox/tileforge/internal/tilemap"
)

// gridWithElevations builds a width x height map with the given
// row-major elevations, all Floor/Grass.
func gridWithElevations(width, height int, elev []int8) *tilemap.Map {
	m := tilemap.New(width, height)
	for i, e := range elev {
		t := m.Tiles[i]
		t.Elevation = e
		m.Set(i%width, i/width, t)
	}
	return m
}

func setRamp(m *tilemap.Map, x, y int, elev int8, dir tilemap.Direction, explicit bool) {
	m.Set(x, y, tilemap.Tile{
		Kind:      tilemap.Ramp,
		Type:      tilemap.Grass,
		Elevation: elev,
		RampSet:   explicit,
		RampDir:   dir,
	})
}

func TestFloorCornersAllEqual(t *testing.T) {
	for _, elev := range []int8{-1, 0, 2, 3} {
		m := gridWithElevations(3, 3, []int8{
			0, 0, 0,
			0, elev, 0,
			0, 0, 0,
		})
		got := ResolveCorners(m, 1, 1)
		want := float32(elev) * tilemap.TileHeight
		for i, h := range got {
			if h != want {
				t.Errorf("elev %d: corner %d = %v, want %v", elev, i, h, want)
			}
		}
	}
}

func TestRampExplicitLowerNeighbor(t *testing.T) {
	m := gridWithElevations(3, 3, []int8{
		0, 0, 0,
		2, 2, 2,
		2, 2, 2,
	})
	setRamp(m, 1, 1, 2, tilemap.North, true)

	got := ResolveCorners(m, 1, 1)
	// North edge corners (NW, NE) drop to the neighbor height 0; the
	// south corners keep the base height 2.
	if got[cornerNW] != 0 || got[cornerNE] != 0 {
		t.Errorf("north corners = %v/%v, want 0", got[cornerNW], got[cornerNE])
	}
	if got[cornerSW] != 2 || got[cornerSE] != 2 {
		t.Errorf("south corners = %v/%v, want 2", got[cornerSW], got[cornerSE])
	}
}

func TestRampExplicitDirectionNotLowerFallsBack(t *testing.T) {
	// North neighbor is level with the ramp, east neighbor is lower:
	// the explicit north direction must lose to auto-resolution.
	m := gridWithElevations(3, 3, []int8{
		2, 2, 2,
		2, 2, 0,
		2, 2, 2,
	})
	setRamp(m, 1, 1, 2, tilemap.North, true)

	got := ResolveCorners(m, 1, 1)
	if got[cornerNE] != 0 || got[cornerSE] != 0 {
		t.Errorf("east corners = %v/%v, want 0", got[cornerNE], got[cornerSE])
	}
	if got[cornerNW] != 2 || got[cornerSW] != 2 {
		t.Errorf("west corners = %v/%v, want 2", got[cornerNW], got[cornerSW])
	}
}

func TestRampAutoPicksLowestNeighbor(t *testing.T) {
	m := gridWithElevations(3, 3, []int8{
		2, 1, 2,
		2, 2, -1,
		2, 0, 2,
	})
	setRamp(m, 1, 1, 2, tilemap.North, false)

	got := ResolveCorners(m, 1, 1)
	// East at -1 is the lowest of the lower neighbors.
	if got[cornerNE] != -1 || got[cornerSE] != -1 {
		t.Errorf("east corners = %v/%v, want -1", got[cornerNE], got[cornerSE])
	}
}

func TestRampAutoTieBreakScanOrder(t *testing.T) {
	// North and East neighbors tie at the minimum; North is scanned
	// first and must win.
	m := gridWithElevations(3, 3, []int8{
		2, 0, 2,
		2, 2, 0,
		2, 2, 2,
	})
	setRamp(m, 1, 1, 2, tilemap.North, false)

	got := ResolveCorners(m, 1, 1)
	if got[cornerNW] != 0 || got[cornerNE] != 0 {
		t.Errorf("north corners = %v/%v, want 0 (tie-break)", got[cornerNW], got[cornerNE])
	}
	if got[cornerSW] != 2 || got[cornerSE] != 2 {
		t.Errorf("south corners = %v/%v, want base 2", got[cornerSW], got[cornerSE])
	}
}

func TestRampWithoutLowerNeighborActsAsFloor(t *testing.T) {
	m := gridWithElevations(3, 3, []int8{
		0, 0, 0,
		0, 0, 0,
		0, 0, 0,
	})
	setRamp(m, 1, 1, 0, tilemap.South, false)

	got := ResolveCorners(m, 1, 1)
	for i, h := range got {
		if h != 0 {
			t.Errorf("corner %d = %v, want 0 (floor behavior)", i, h)
		}
	}
}

func TestRampDescendsOffGrid(t *testing.T) {
	// The off-grid sentinel is height 0, so an elevated border ramp
	// facing off-map slants down to the outside.
	m := gridWithElevations(2, 1, []int8{1, 1})
	setRamp(m, 0, 0, 1, tilemap.West, true)

	got := ResolveCorners(m, 0, 0)
	if got[cornerNW] != 0 || got[cornerSW] != 0 {
		t.Errorf("west corners = %v/%v, want 0", got[cornerNW], got[cornerSW])
	}
	if got[cornerNE] != 1 || got[cornerSE] != 1 {
		t.Errorf("east corners = %v/%v, want 1", got[cornerNE], got[cornerSE])
	}
}

func TestCornerCacheMatchesResolver(t *testing.T) {
	m := gridWithElevations(3, 2, []int8{
		0, 1, 2,
		-1, 3, 0,
	})
	setRamp(m, 1, 1, 3, tilemap.West, false)

	cache := BuildCornerCache(m)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if cache.At(x, y) != ResolveCorners(m, x, y) {
				t.Errorf("cache mismatch at (%d,%d)", x, y)
			}
		}
	}
}
