package terrain

import (
	"github.com/fieldbox/tileforge/internal/tilemap"
)

// neighborHeight returns the base height of the neighbor across edge
// dir. Off-grid neighbors count as height 0, so elevated border tiles
// grow walls down to the outside and border ramps can descend off-map.
func neighborHeight(m *tilemap.Map, x, y int, dir tilemap.Direction) float32 {
	dx, dy := dir.Offset()
	nx, ny := x+dx, y+dy
	if !m.In(nx, ny) {
		return 0
	}
	return float32(m.At(nx, ny).Elevation) * tilemap.TileHeight
}

// rampTarget finds the edge a ramp tile descends along and the height
// it descends to. The explicit direction wins when its neighbor is
// strictly lower; otherwise the remaining edges are scanned in the
// fixed North, East, South, West order and the lowest neighbor wins,
// first edge at the minimum breaking ties. Returns ok=false when no
// neighbor is lower, in which case the tile behaves as a floor.
func rampTarget(m *tilemap.Map, x, y int, base float32, tile tilemap.Tile) (tilemap.Direction, float32, bool) {
	if tile.RampSet {
		if h := neighborHeight(m, x, y, tile.RampDir); h < base {
			return tile.RampDir, h, true
		}
	}

	var (
		bestDir tilemap.Direction
		bestH   float32
		found   bool
	)
	for _, dir := range tilemap.Directions {
		if tile.RampSet && dir == tile.RampDir {
			continue
		}
		h := neighborHeight(m, x, y, dir)
		if h >= base {
			continue
		}
		if !found || h < bestH {
			bestDir, bestH, found = dir, h, true
		}
	}
	return bestDir, bestH, found
}

// ResolveCorners derives the four world-space corner heights of tile
// (x, y) in NW, NE, SW, SE order. Pure function of grid state.
//
// Floors keep all corners at elevation * TileHeight. Ramps lower the
// two corners on the target edge to the neighbor's height, producing a
// single-axis slant, never a hip or valley.
func ResolveCorners(m *tilemap.Map, x, y int) [4]float32 {
	tile := m.At(x, y)
	base := float32(tile.Elevation) * tilemap.TileHeight
	corners := [4]float32{base, base, base, base}

	if tile.Kind != tilemap.Ramp {
		return corners
	}

	dir, target, ok := rampTarget(m, x, y, base, tile)
	if !ok {
		return corners
	}

	switch dir {
	case tilemap.North:
		corners[cornerNW] = target
		corners[cornerNE] = target
	case tilemap.South:
		corners[cornerSW] = target
		corners[cornerSE] = target
	case tilemap.West:
		corners[cornerNW] = target
		corners[cornerSW] = target
	case tilemap.East:
		corners[cornerNE] = target
		corners[cornerSE] = target
	}
	return corners
}

// CornerCache holds resolved corner heights for every tile of one
// rebuild. It is derived data: rebuilt from scratch on each dirty
// transition and never persisted.
type CornerCache struct {
	width   int
	height  int
	corners [][4]float32
}

// BuildCornerCache resolves corner heights for the whole grid so mesh
// construction can stitch seams without re-resolving neighbors.
func BuildCornerCache(m *tilemap.Map) *CornerCache {
	c := &CornerCache{
		width:   m.Width,
		height:  m.Height,
		corners: make([][4]float32, m.Width*m.Height),
	}
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			c.corners[y*m.Width+x] = ResolveCorners(m, x, y)
		}
	}
	return c
}

// At returns the cached corner heights of tile (x, y).
func (c *CornerCache) At(x, y int) [4]float32 {
	return c.corners[y*c.width+x]
}

// In reports whether (x, y) lies inside the cached grid.
func (c *CornerCache) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}
