package picking

import (
	gomath "math"

	"github.com/fieldbox/tileforge/internal/terrain"
	"github.com/fieldbox/tileforge/internal/tilemap"
	"github.com/fieldbox/tileforge/pkg/geom"
)

// PickTile resolves which tile the ray visually hits, respecting
// elevation without full mesh raycasting. Two passes: the flat
// elevation-0 plane nominates a candidate, then the ray is re-tested
// against that tile's actual top plane from its resolved corners. The
// refined hit only wins while it stays inside the same footprint;
// otherwise the flat candidate stands.
func PickTile(m *tilemap.Map, cache *terrain.CornerCache, ray Ray) (x, y int, ok bool) {
	hx, hz, ok := ray.IntersectPlaneY(0)
	if !ok {
		return 0, 0, false
	}

	tx, ty := tileAt(hx, hz)
	if !m.In(tx, ty) {
		return 0, 0, false
	}

	point, normal := tileTopPlane(cache, tx, ty)
	hit, ok := ray.IntersectPlane(point, normal)
	if ok {
		rx, ry := tileAt(hit.X, hit.Z)
		if rx == tx && ry == ty {
			return rx, ry, true
		}
	}
	return tx, ty, true
}

// PickAtElevation resolves the tile under the ray on the flat plane of
// the given elevation step. The editor uses this for its paint layer,
// where the brush elevation decides which plane the cursor rides on.
func PickAtElevation(m *tilemap.Map, ray Ray, elevation int8) (x, y int, ok bool) {
	hx, hz, ok := ray.IntersectPlaneY(float32(elevation) * tilemap.TileHeight)
	if !ok {
		return 0, 0, false
	}
	tx, ty := tileAt(hx, hz)
	if !m.In(tx, ty) {
		return 0, 0, false
	}
	return tx, ty, true
}

func tileAt(worldX, worldZ float32) (int, int) {
	return int(gomath.Floor(float64(worldX / tilemap.TileSize))),
		int(gomath.Floor(float64(worldZ / tilemap.TileSize)))
}

// tileTopPlane derives a point and upward normal of the tile's top
// surface. Ramp tops are single-axis slants, so three corners define
// the plane for all four.
func tileTopPlane(cache *terrain.CornerCache, x, y int) (point, normal geom.Vec3) {
	c := cache.At(x, y) // NW, NE, SW, SE
	x0 := float32(x) * tilemap.TileSize
	z0 := float32(y) * tilemap.TileSize

	nw := geom.Vec3{X: x0, Y: c[0], Z: z0}
	ne := geom.Vec3{X: x0 + tilemap.TileSize, Y: c[1], Z: z0}
	sw := geom.Vec3{X: x0, Y: c[2], Z: z0 + tilemap.TileSize}

	normal = sw.Sub(nw).Cross(ne.Sub(nw)).Normalize()
	return nw, normal
}
