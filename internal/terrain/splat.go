package terrain

import (
	"github.com/fieldbox/tileforge/internal/tilemap"
)

// Splatmap is a low-resolution RGBA image with one texel per tile.
// Exactly one channel is 255 per texel: the channel of the tile's
// texture layer. The renderer samples it to pick blend weights.
type Splatmap struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA, row-major, 4 bytes per texel
}

// BuildSplatmap encodes the grid into a fresh one-hot splatmap.
func BuildSplatmap(m *tilemap.Map) *Splatmap {
	img := &Splatmap{}
	WriteSplatmap(m, img)
	return img
}

// WriteSplatmap re-encodes the grid into img, reusing the existing
// pixel buffer when it already matches the grid's dimensions. Editing
// repaints every frame the map is dirty, so avoiding the allocation
// matters more here than in the mesh path.
func WriteSplatmap(m *tilemap.Map, img *Splatmap) {
	size := m.Width * m.Height * 4
	if len(img.Pix) != size {
		img.Pix = make([]uint8, size)
	}
	img.Width = m.Width
	img.Height = m.Height

	for i, tile := range m.Tiles {
		o := i * 4
		img.Pix[o] = 0
		img.Pix[o+1] = 0
		img.Pix[o+2] = 0
		img.Pix[o+3] = 0
		img.Pix[o+tile.Type.Index()] = 255
	}
}
