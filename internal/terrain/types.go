// Package terrain compiles the tile grid into render-ready geometry:
// a watertight triangle mesh with skirt walls between elevation steps,
// and the texture-layer encodings the blending shader consumes.
package terrain

// Mesh holds terrain geometry as plain owned buffers ready for upload.
// All attribute slices share the same length; Layers is only present
// on the combined-mesh variant.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	UVs       [][2]float32
	Layers    [][2]float32
	Indices   []uint32
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// UVParams configures how world positions map onto texture space.
type UVParams struct {
	// TilesPerTexture is the number of tiles one texture repeat covers.
	// A repeat is square, so a value of 4 spans a 2x2 tile footprint.
	TilesPerTexture int

	// Wrap shifts each face's UVs into [0,1) so the texture tiles
	// seamlessly across the whole map instead of accumulating large
	// coordinates on big grids.
	Wrap bool
}

// corner indices into a resolved [4]float32, fixed as NW, NE, SW, SE
const (
	cornerNW = 0
	cornerNE = 1
	cornerSW = 2
	cornerSE = 3
)
