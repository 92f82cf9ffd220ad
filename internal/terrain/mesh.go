package terrain

import (
	gomath "math"

	"github.com/fieldbox/tileforge/internal/tilemap"
)

// skirtEpsilon suppresses skirts whose height delta is too small to
// render without z-fighting against the neighboring top face.
const skirtEpsilon = 1e-4

// BuildMesh compiles the grid into a triangle mesh: one top quad per
// tile plus vertical skirts closing every height gap between
// neighbors. Deterministic given grid state; an empty grid yields an
// empty mesh. Pair it with BuildSplatmap for texture selection.
func BuildMesh(m *tilemap.Map, uv UVParams) *Mesh {
	return buildMesh(m, uv, false)
}

// BuildCombinedMesh is BuildMesh plus a per-vertex layer attribute
// (texture layer index and seam height) so a single mesh can cover all
// tile types under one multi-layer blending material. Skirt vertices
// take the layer of the lower side of the edge, since the wall
// visually belongs to the lower tile.
func BuildCombinedMesh(m *tilemap.Map, uv UVParams) *Mesh {
	return buildMesh(m, uv, true)
}

func buildMesh(m *tilemap.Map, uv UVParams, combined bool) *Mesh {
	mesh := &Mesh{}
	if m.Width == 0 || m.Height == 0 {
		return mesh
	}

	cache := BuildCornerCache(m)
	b := &meshBuilder{mesh: mesh, uv: uv, combined: combined}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			b.emitTile(m, cache, x, y)
		}
	}
	return mesh
}

type meshBuilder struct {
	mesh     *Mesh
	uv       UVParams
	combined bool
	next     uint32
}

func (b *meshBuilder) emitTile(m *tilemap.Map, cache *CornerCache, x, y int) {
	tile := m.At(x, y)
	corners := cache.At(x, y)

	x0 := float32(x) * tilemap.TileSize
	x1 := x0 + tilemap.TileSize
	z0 := float32(y) * tilemap.TileSize
	z1 := z0 + tilemap.TileSize

	nw := [3]float32{x0, corners[cornerNW], z0}
	ne := [3]float32{x1, corners[cornerNE], z0}
	sw := [3]float32{x0, corners[cornerSW], z1}
	se := [3]float32{x1, corners[cornerSE], z1}

	// Top face, projected onto the ground plane for UVs.
	top := [4][3]float32{nw, sw, se, ne}
	topUV := b.planarUV(top, 0, 2)
	base := float32(tile.Elevation) * tilemap.TileHeight
	b.pushQuad(top, topUV, [2]float32{float32(tile.Type.Index()), base})

	// Skirts. The bottom rail takes the minimum of this tile's corner
	// and the neighbor's corresponding corner, so both sides' skirts
	// overlap exactly and the crack closes regardless of who is
	// higher. Off-grid neighbor corners are height 0.

	// North edge (towards y-1)
	bnw, bne := float32(0), float32(0)
	if y > 0 {
		n := cache.At(x, y-1)
		bnw, bne = n[cornerSW], n[cornerSE]
	}
	b.emitSkirt(m, tile, x, y-1,
		nw, ne,
		[3]float32{x0, minf(bnw, nw[1]), z0},
		[3]float32{x1, minf(bne, ne[1]), z0},
		bnw+bne, 0)

	// South edge (towards y+1)
	bsw, bse := float32(0), float32(0)
	if y+1 < m.Height {
		n := cache.At(x, y+1)
		bsw, bse = n[cornerNW], n[cornerNE]
	}
	b.emitSkirt(m, tile, x, y+1,
		se, sw,
		[3]float32{x1, minf(bse, se[1]), z1},
		[3]float32{x0, minf(bsw, sw[1]), z1},
		bsw+bse, 0)

	// West edge (towards x-1)
	wne, wse := float32(0), float32(0)
	if x > 0 {
		n := cache.At(x-1, y)
		wne, wse = n[cornerNE], n[cornerSE]
	}
	b.emitSkirt(m, tile, x-1, y,
		sw, nw,
		[3]float32{x0, minf(wse, sw[1]), z1},
		[3]float32{x0, minf(wne, nw[1]), z0},
		wne+wse, 2)

	// East edge (towards x+1)
	enw, esw := float32(0), float32(0)
	if x+1 < m.Width {
		n := cache.At(x+1, y)
		enw, esw = n[cornerNW], n[cornerSW]
	}
	b.emitSkirt(m, tile, x+1, y,
		ne, se,
		[3]float32{x1, minf(enw, ne[1]), z0},
		[3]float32{x1, minf(esw, se[1]), z1},
		enw+esw, 2)
}

// emitSkirt adds the wall quad for one edge unless both rail deltas
// are degenerate. (nx, ny) is the neighbor across the edge; uAxis is
// the position axis projected onto the texture U coordinate (0 for
// north/south walls, 2 for east/west walls).
func (b *meshBuilder) emitSkirt(m *tilemap.Map, tile tilemap.Tile, nx, ny int,
	topA, topB, botA, botB [3]float32, neighborTopSum float32, uAxis int) {

	if absf(topA[1]-botA[1]) < skirtEpsilon && absf(topB[1]-botB[1]) < skirtEpsilon {
		return
	}

	// The wall belongs to whichever side of the edge sits lower.
	layerType := tile.Type
	if m.In(nx, ny) && neighborTopSum < topA[1]+topB[1] {
		layerType = m.At(nx, ny).Type
	}
	seam := minf(botA[1], botB[1])

	quad := [4][3]float32{topA, topB, botB, botA}
	uv := b.planarUV(quad, uAxis, 1)
	b.pushQuad(quad, uv, [2]float32{float32(layerType.Index()), seam})
}

// planarUV projects the quad's positions onto texture space using the
// given position axes, scaled by the repeat size and optionally
// wrapped so the face's minimum UV lands in [0,1). Wrapping shifts the
// whole face by an integer repeat count, so faces never straddle a
// wrap discontinuity.
func (b *meshBuilder) planarUV(quad [4][3]float32, uAxis, vAxis int) [4][2]float32 {
	repeat := b.uv.repeatSize()

	var uv [4][2]float32
	for i, p := range quad {
		uv[i] = [2]float32{p[uAxis] / repeat, p[vAxis] / repeat}
	}

	if b.uv.Wrap {
		minU, minV := uv[0][0], uv[0][1]
		for _, t := range uv[1:] {
			minU = minf(minU, t[0])
			minV = minf(minV, t[1])
		}
		du := float32(gomath.Floor(float64(minU)))
		dv := float32(gomath.Floor(float64(minV)))
		for i := range uv {
			uv[i][0] -= du
			uv[i][1] -= dv
		}
	}
	return uv
}

// repeatSize is the world-unit side of one square texture repeat.
func (p UVParams) repeatSize() float32 {
	if p.TilesPerTexture <= 0 {
		return tilemap.TileSize
	}
	return float32(gomath.Sqrt(float64(p.TilesPerTexture))) * tilemap.TileSize
}

func (b *meshBuilder) pushQuad(v [4][3]float32, uv [4][2]float32, layer [2]float32) {
	b.pushTriangle(v[0], v[1], v[2], uv[0], uv[1], uv[2], layer)
	b.pushTriangle(v[0], v[2], v[3], uv[0], uv[2], uv[3], layer)
}

func (b *meshBuilder) pushTriangle(p0, p1, p2 [3]float32, t0, t1, t2 [2]float32, layer [2]float32) {
	normal := normalize(cross(sub(p1, p0), sub(p2, p0)))

	m := b.mesh
	m.Positions = append(m.Positions, p0, p1, p2)
	m.Normals = append(m.Normals, normal, normal, normal)
	m.UVs = append(m.UVs, t0, t1, t2)
	if b.combined {
		m.Layers = append(m.Layers, layer, layer, layer)
	}
	m.Indices = append(m.Indices, b.next, b.next+1, b.next+2)
	b.next += 3
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	l := float32(gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 1e-6 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
