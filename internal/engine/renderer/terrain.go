package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/fieldbox/tileforge/internal/engine/shader"
	"github.com/fieldbox/tileforge/internal/terrain"
	"github.com/fieldbox/tileforge/internal/tilemap"
	"github.com/fieldbox/tileforge/pkg/geom"
)

// floats per vertex: position 3, normal 3, texcoord 2, layer 2
const vertexStride = 10

// TerrainRenderer draws the compiled terrain mesh with splatmap blending.
type TerrainRenderer struct {
	program uint32

	// Uniform locations
	locViewProj   int32
	locLightDir   int32
	locAmbient    int32
	locDiffuse    int32
	locSplatmap   int32
	locMapSize    int32
	locLayerTints int32
	locHoverTile  int32

	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32

	splatTex           uint32
	mapWidth, mapDepth float32

	hoverX, hoverY float32
	hoverActive    bool

	// Reused between uploads to avoid per-rebuild allocations
	scratch []float32

	// One RGB tint per terrain type, indexed by splat channel.
	LayerTints [4][3]float32
}

// NewTerrainRenderer compiles the terrain shader and sets up GL state.
func NewTerrainRenderer() (*TerrainRenderer, error) {
	tr := &TerrainRenderer{
		LayerTints: [4][3]float32{
			{0.35, 0.55, 0.25}, // grass
			{0.55, 0.42, 0.28}, // dirt
			{0.48, 0.48, 0.50}, // cliff
			{0.22, 0.40, 0.60}, // water
		},
	}

	program, err := shader.CompileProgram(terrainVertexShader, terrainFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("terrain shader: %w", err)
	}
	tr.program = program

	tr.locViewProj = shader.GetUniform(program, "uViewProj")
	tr.locLightDir = shader.GetUniform(program, "uLightDir")
	tr.locAmbient = shader.GetUniform(program, "uAmbient")
	tr.locDiffuse = shader.GetUniform(program, "uDiffuse")
	tr.locSplatmap = shader.GetUniform(program, "uSplatmap")
	tr.locMapSize = shader.GetUniform(program, "uMapSize")
	tr.locLayerTints = shader.GetUniform(program, "uLayerTints")
	tr.locHoverTile = shader.GetUniform(program, "uHoverTile")

	gl.GenVertexArrays(1, &tr.vao)
	gl.BindVertexArray(tr.vao)

	gl.GenBuffers(1, &tr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)

	stride := int32(vertexStride * 4)

	// Position (location 0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(0)

	// Normal (location 1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(1)

	// TexCoord (location 2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(2)

	// Layer (location 3)
	gl.VertexAttribPointerWithOffset(3, 2, gl.FLOAT, false, stride, 8*4)
	gl.EnableVertexAttribArray(3)

	gl.GenBuffers(1, &tr.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)

	gl.BindVertexArray(0)

	return tr, nil
}

// UpdateMesh uploads a freshly built terrain mesh. The mesh must carry
// layer attributes (build it with BuildCombinedMesh).
func (tr *TerrainRenderer) UpdateMesh(m *terrain.Mesh) {
	count := m.VertexCount()
	need := count * vertexStride
	if cap(tr.scratch) < need {
		tr.scratch = make([]float32, need)
	}
	tr.scratch = tr.scratch[:need]

	for i := 0; i < count; i++ {
		dst := tr.scratch[i*vertexStride:]
		copy(dst[0:3], m.Positions[i][:])
		copy(dst[3:6], m.Normals[i][:])
		copy(dst[6:8], m.UVs[i][:])
		if m.Layers != nil {
			dst[8] = m.Layers[i][0]
			dst[9] = m.Layers[i][1]
		} else {
			dst[8], dst[9] = 0, 0
		}
	}

	gl.BindVertexArray(tr.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, tr.vbo)
	if need > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, need*4, unsafe.Pointer(&tr.scratch[0]), gl.DYNAMIC_DRAW)
	}

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, tr.ebo)
	if len(m.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.DYNAMIC_DRAW)
	}
	tr.indexCount = int32(len(m.Indices))

	gl.BindVertexArray(0)
}

// UpdateSplatmap uploads the per-tile splat texture.
func (tr *TerrainRenderer) UpdateSplatmap(s *terrain.Splatmap) {
	tr.mapWidth = float32(s.Width) * tilemap.TileSize
	tr.mapDepth = float32(s.Height) * tilemap.TileSize

	if len(s.Pix) == 0 {
		return
	}

	if tr.splatTex == 0 {
		gl.GenTextures(1, &tr.splatTex)
	}
	gl.BindTexture(gl.TEXTURE_2D, tr.splatTex)

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(s.Width), int32(s.Height),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&s.Pix[0]))

	// One texel per tile, so nearest filtering keeps tile borders crisp
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// SetHover highlights a tile in the next Render call.
func (tr *TerrainRenderer) SetHover(x, y int, active bool) {
	tr.hoverX = float32(x)
	tr.hoverY = float32(y)
	tr.hoverActive = active
}

// Render draws the terrain.
func (tr *TerrainRenderer) Render(viewProj geom.Mat4) {
	if tr.indexCount == 0 {
		return
	}

	gl.UseProgram(tr.program)

	gl.UniformMatrix4fv(tr.locViewProj, 1, false, &viewProj[0])
	gl.Uniform3f(tr.locLightDir, -0.4, -1.0, -0.3)
	gl.Uniform3f(tr.locAmbient, 0.45, 0.45, 0.45)
	gl.Uniform3f(tr.locDiffuse, 0.75, 0.75, 0.7)
	gl.Uniform2f(tr.locMapSize, tr.mapWidth, tr.mapDepth)

	tints := [12]float32{
		tr.LayerTints[0][0], tr.LayerTints[0][1], tr.LayerTints[0][2],
		tr.LayerTints[1][0], tr.LayerTints[1][1], tr.LayerTints[1][2],
		tr.LayerTints[2][0], tr.LayerTints[2][1], tr.LayerTints[2][2],
		tr.LayerTints[3][0], tr.LayerTints[3][1], tr.LayerTints[3][2],
	}
	gl.Uniform3fv(tr.locLayerTints, 4, &tints[0])

	hover := float32(0)
	if tr.hoverActive {
		hover = 1
	}
	gl.Uniform3f(tr.locHoverTile, tr.hoverX, tr.hoverY, hover)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tr.splatTex)
	gl.Uniform1i(tr.locSplatmap, 0)

	gl.BindVertexArray(tr.vao)
	gl.DrawElements(gl.TRIANGLES, tr.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Destroy releases all resources.
func (tr *TerrainRenderer) Destroy() {
	if tr.vao != 0 {
		gl.DeleteVertexArrays(1, &tr.vao)
		tr.vao = 0
	}
	if tr.vbo != 0 {
		gl.DeleteBuffers(1, &tr.vbo)
		tr.vbo = 0
	}
	if tr.ebo != 0 {
		gl.DeleteBuffers(1, &tr.ebo)
		tr.ebo = 0
	}
	if tr.splatTex != 0 {
		gl.DeleteTextures(1, &tr.splatTex)
		tr.splatTex = 0
	}
	if tr.program != 0 {
		gl.DeleteProgram(tr.program)
		tr.program = 0
	}
}

const terrainVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;
layout (location = 3) in vec2 aLayer;

uniform mat4 uViewProj;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vTexCoord;
out vec2 vLayer;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	vWorldPos = aPos;
	vNormal = aNormal;
	vTexCoord = aTexCoord;
	vLayer = aLayer;
}
`

const terrainFragmentShader = `
#version 410 core

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vTexCoord;
in vec2 vLayer;

out vec4 FragColor;

uniform sampler2D uSplatmap;
uniform vec2 uMapSize;
uniform vec3 uLightDir;
uniform vec3 uAmbient;
uniform vec3 uDiffuse;
uniform vec3 uLayerTints[4];
uniform vec3 uHoverTile; // tile x, tile y, active flag

void main() {
	vec2 splatUV = clamp(vWorldPos.xz / uMapSize, 0.0, 1.0);
	vec4 w = texture(uSplatmap, splatUV);
	vec3 base = w.r * uLayerTints[0] + w.g * uLayerTints[1]
	          + w.b * uLayerTints[2] + w.a * uLayerTints[3];

	// Walls carry their material in the vertex layer so cliff faces
	// read as the lower tile's type rather than the splat above them.
	bool wall = vNormal.y < 0.5;
	if (wall) {
		int idx = int(vLayer.x + 0.5);
		base = uLayerTints[idx];
	}

	// Faint grid lines from the texture coordinates
	vec2 g = abs(fract(vTexCoord) - 0.5);
	float grid = smoothstep(0.48, 0.5, max(g.x, g.y));
	base = mix(base, base * 0.85, grid);

	// Darken wall bases toward the seam
	if (wall) {
		float h = clamp(vWorldPos.y - vLayer.y, 0.0, 1.0);
		base *= mix(0.7, 1.0, h);
	}

	float ndl = max(dot(normalize(vNormal), normalize(-uLightDir)), 0.0);
	vec3 color = base * (uAmbient + uDiffuse * ndl);

	if (uHoverTile.z > 0.5 && !wall
		&& floor(vWorldPos.x) == uHoverTile.x
		&& floor(vWorldPos.z) == uHoverTile.y) {
		color = mix(color, vec3(1.0, 1.0, 0.6), 0.35);
	}

	FragColor = vec4(color, 1.0);
}
`
