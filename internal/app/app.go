// Package app implements the editor main loop and glue between the
// window, renderer, picking, and map editing state.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/fieldbox/tileforge/internal/config"
	"github.com/fieldbox/tileforge/internal/editor"
	"github.com/fieldbox/tileforge/internal/engine/camera"
	"github.com/fieldbox/tileforge/internal/engine/input"
	"github.com/fieldbox/tileforge/internal/engine/renderer"
	"github.com/fieldbox/tileforge/internal/engine/window"
	"github.com/fieldbox/tileforge/internal/logger"
	"github.com/fieldbox/tileforge/internal/mapfile"
	"github.com/fieldbox/tileforge/internal/picking"
	"github.com/fieldbox/tileforge/internal/terrain"
	"github.com/fieldbox/tileforge/internal/tilemap"
	"github.com/fieldbox/tileforge/pkg/geom"
)

// App is the main editor instance.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	state *editor.State
	uv    terrain.UVParams

	// Rebuilt whenever the map changes
	cache *terrain.CornerCache
	splat *terrain.Splatmap

	viewportW, viewportH int
	proj                 geom.Mat4

	// Drag state for camera orbit
	lastMouseX, lastMouseY int
}

// New creates a new editor application.
func New(cfg *config.Config) (*App, error) {
	logger.Info("initializing editor",
		zap.Int("map_width", cfg.Editor.MapWidth),
		zap.Int("map_height", cfg.Editor.MapHeight),
		zap.String("map_path", cfg.Editor.MapPath),
	)

	a := &App{
		cfg: cfg,
		uv: terrain.UVParams{
			TilesPerTexture: cfg.Terrain.TilesPerTexture,
			Wrap:            cfg.Terrain.WrapUVs,
		},
		viewportW: cfg.Graphics.Width,
		viewportH: cfg.Graphics.Height,
	}

	a.state = editor.New(cfg.Editor.MapWidth, cfg.Editor.MapHeight)
	a.loadMap(cfg.Editor.MapPath)

	// Create window (this also creates OpenGL context)
	var err error
	a.window, err = window.New(window.Config{
		Title:      "TileForge",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()

	a.camera = camera.NewOrbitCamera()
	m := a.state.Map
	a.camera.FitToBounds(0, 0, 0,
		float32(m.Width)*tilemap.TileSize, 4*tilemap.TileHeight,
		float32(m.Height)*tilemap.TileSize)

	a.updateProjection()

	logger.Info("editor initialized")
	return a, nil
}

// loadMap replaces the working map with the one at path, keeping the
// configured blank map when the file does not exist yet.
func (a *App) loadMap(path string) {
	m, err := mapfile.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info("no map file yet, starting blank", zap.String("path", path))
		} else {
			logger.Warn("failed to load map, starting blank",
				zap.String("path", path), zap.Error(err))
		}
		return
	}
	a.state.Replace(m)
	logger.Info("map loaded",
		zap.String("path", path),
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
	)
}

func (a *App) saveMap(path string) {
	if err := mapfile.Save(path, a.state.Map); err != nil {
		logger.Error("failed to save map", zap.String("path", path), zap.Error(err))
		return
	}
	logger.Info("map saved", zap.String("path", path))
}

// Run starts the main editor loop.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting editor loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.handleHeldKeys(float32(dt))

		// 2. Update hover and apply held-button painting
		a.updateHover()
		if a.input.IsButtonHeld(sdl.BUTTON_LEFT) && a.state.Hover.Valid {
			a.state.Paint(a.state.Hover.X, a.state.Hover.Y)
		}

		// 3. Rebuild terrain if the map changed
		if a.state.Dirty() {
			a.rebuild()
		}

		// 4. Render
		viewProj := a.proj.Mul(a.camera.ViewMatrix())
		a.renderer.Begin()
		a.renderer.Terrain.Render(viewProj)
		a.renderer.End()

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Sugar.Debugf("fps %d (%.2fms)", frameCount, dt*1000)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// rebuild recompiles splatmap, corner cache, and mesh, then uploads.
func (a *App) rebuild() {
	start := time.Now()
	m := a.state.Map

	if a.splat == nil {
		a.splat = terrain.BuildSplatmap(m)
	} else {
		terrain.WriteSplatmap(m, a.splat)
	}
	a.cache = terrain.BuildCornerCache(m)
	mesh := terrain.BuildCombinedMesh(m, a.uv)

	a.renderer.Terrain.UpdateSplatmap(a.splat)
	a.renderer.Terrain.UpdateMesh(mesh)
	a.state.ClearDirty()

	logger.Debug("terrain rebuilt",
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("indices", len(mesh.Indices)),
		zap.Duration("took", time.Since(start)),
	)
}

// updateHover casts a ray through the cursor and records the tile under it.
func (a *App) updateHover() {
	if a.cache == nil {
		return
	}

	mx, my := a.input.MousePosition()
	viewProj := a.proj.Mul(a.camera.ViewMatrix())
	ray := picking.ScreenToRay(
		float32(mx), float32(my),
		float32(a.viewportW), float32(a.viewportH),
		viewProj.Inverse(),
	)

	x, y, ok := picking.PickTile(a.state.Map, a.cache, ray)
	a.state.SetHover(x, y, ok)
	a.renderer.Terrain.SetHover(x, y, ok)
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			a.viewportW, a.viewportH = event.Width, event.Height
			a.renderer.Resize(event.Width, event.Height)
			a.updateProjection()

		case input.EventMouseWheel:
			a.camera.HandleZoom(float32(event.Wheel))

		case input.EventMouseMove:
			if a.input.IsButtonHeld(sdl.BUTTON_MIDDLE) {
				a.camera.HandleDrag(
					float32(event.MouseX-a.lastMouseX),
					float32(event.MouseY-a.lastMouseY),
				)
			}
			a.lastMouseX, a.lastMouseY = event.MouseX, event.MouseY

		case input.EventKeyDown:
			a.handleKey(event.Key)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false

	// Brush terrain type
	case sdl.SCANCODE_1:
		a.state.Brush.Type = tilemap.Grass
	case sdl.SCANCODE_2:
		a.state.Brush.Type = tilemap.Dirt
	case sdl.SCANCODE_3:
		a.state.Brush.Type = tilemap.Cliff
	case sdl.SCANCODE_4:
		a.state.Brush.Type = tilemap.Water

	// Brush elevation
	case sdl.SCANCODE_Q:
		a.state.Brush.Elevation--
	case sdl.SCANCODE_E:
		a.state.Brush.Elevation++

	// Brush kind
	case sdl.SCANCODE_F:
		a.state.Brush.Kind = tilemap.Floor
	case sdl.SCANCODE_G:
		a.state.Brush.Kind = tilemap.Ramp
		a.state.Brush.RampSet = false

	// Rotate the hovered ramp
	case sdl.SCANCODE_R:
		if a.state.Hover.Valid {
			a.state.RotateRamp(a.state.Hover.X, a.state.Hover.Y)
		}

	case sdl.SCANCODE_S:
		if a.input.IsKeyHeld(sdl.SCANCODE_LCTRL) || a.input.IsKeyHeld(sdl.SCANCODE_RCTRL) {
			a.saveMap(a.cfg.Editor.MapPath)
		}
	case sdl.SCANCODE_O:
		if a.input.IsKeyHeld(sdl.SCANCODE_LCTRL) || a.input.IsKeyHeld(sdl.SCANCODE_RCTRL) {
			a.loadMap(a.cfg.Editor.MapPath)
		}
	}
}

// handleHeldKeys applies continuous camera panning.
func (a *App) handleHeldKeys(dt float32) {
	var forward, right float32
	if a.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward += 1
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_S) && !a.input.IsKeyHeld(sdl.SCANCODE_LCTRL) {
		forward -= 1
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_A) {
		right -= 1
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_D) {
		right += 1
	}
	if forward != 0 || right != 0 {
		// Scale to roughly 60 units of pan per second at distance 100
		a.camera.HandleMovement(forward*dt*60, right*dt*60, 0)
	}
}

func (a *App) updateProjection() {
	aspect := float32(a.viewportW) / float32(a.viewportH)
	a.proj = geom.Perspective(math.Pi/4, aspect, 0.1, 1000.0)
}

// Close cleans up application resources.
func (a *App) Close() {
	logger.Info("closing editor")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
