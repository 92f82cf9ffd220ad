package picking

import (
	"testing"

	"github.com/fieldbox/tileforge/internal/terrain"
	"github.com/fieldbox/tileforge/internal/tilemap"
	"github.com/fieldbox/tileforge/pkg/geom"
)

func down(x, z float32) Ray {
	return Ray{Origin: geom.Vec3{X: x, Y: 10, Z: z}, Direction: geom.Vec3{Y: -1}}
}

func TestPickTileFlatGrid(t *testing.T) {
	m := tilemap.New(4, 4)
	cache := terrain.BuildCornerCache(m)

	x, y, ok := PickTile(m, cache, down(2.5, 1.5))
	if !ok || x != 2 || y != 1 {
		t.Errorf("PickTile = (%d,%d,%v), want (2,1,true)", x, y, ok)
	}
}

func TestPickTileElevated(t *testing.T) {
	m := tilemap.New(4, 4)
	m.Set(2, 2, tilemap.Tile{Kind: tilemap.Floor, Type: tilemap.Grass, Elevation: 2})
	cache := terrain.BuildCornerCache(m)

	// Vertical ray: the refined hit on the raised top stays in the
	// same footprint and is accepted.
	x, y, ok := PickTile(m, cache, down(2.5, 2.5))
	if !ok || x != 2 || y != 2 {
		t.Errorf("PickTile = (%d,%d,%v), want (2,2,true)", x, y, ok)
	}

	// Oblique ray: the refined hit on the raised plane lands outside
	// the footprint, so the flat-plane candidate stands.
	oblique := Ray{
		Origin:    geom.Vec3{X: 2.5, Y: 5, Z: 10},
		Direction: geom.Vec3{Y: -5, Z: -7.5}.Normalize(),
	}
	x, y, ok = PickTile(m, cache, oblique)
	if !ok || x != 2 || y != 2 {
		t.Errorf("oblique PickTile = (%d,%d,%v), want flat candidate (2,2,true)", x, y, ok)
	}
}

func TestPickTileOffGrid(t *testing.T) {
	m := tilemap.New(2, 2)
	cache := terrain.BuildCornerCache(m)

	if _, _, ok := PickTile(m, cache, down(5.5, 0.5)); ok {
		t.Error("pick outside the grid reported a hit")
	}
	horizontal := Ray{Origin: geom.Vec3{Y: 1}, Direction: geom.Vec3{X: 1}}
	if _, _, ok := PickTile(m, cache, horizontal); ok {
		t.Error("ray parallel to the ground reported a hit")
	}
}

func TestPickAtElevation(t *testing.T) {
	m := tilemap.New(4, 4)

	// The brush plane sits at one elevation step; an oblique ray
	// crosses it over a different tile than the ground plane.
	r := Ray{
		Origin:    geom.Vec3{X: 0.5, Y: 2, Z: 3.5},
		Direction: geom.Vec3{Y: -1, Z: -1}.Normalize(),
	}

	x, y, ok := PickAtElevation(m, r, 1)
	if !ok || x != 0 || y != 2 {
		t.Errorf("PickAtElevation(1) = (%d,%d,%v), want (0,2,true)", x, y, ok)
	}

	x, y, ok = PickAtElevation(m, r, 0)
	if !ok || x != 0 || y != 1 {
		t.Errorf("PickAtElevation(0) = (%d,%d,%v), want (0,1,true)", x, y, ok)
	}
}
