// Package config handles editor configuration loading and management.
package config

// Config holds all editor settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Editor   EditorConfig   `yaml:"editor"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// TerrainConfig holds terrain texturing settings.
type TerrainConfig struct {
	TilesPerTexture int  `yaml:"tiles_per_texture"`
	WrapUVs         bool `yaml:"wrap_uvs"`
}

// EditorConfig holds map editing settings.
type EditorConfig struct {
	MapWidth  int    `yaml:"map_width"`
	MapHeight int    `yaml:"map_height"`
	MapPath   string `yaml:"map_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Terrain: TerrainConfig{
			TilesPerTexture: 4,
			WrapUVs:         true,
		},
		Editor: EditorConfig{
			MapWidth:  64,
			MapHeight: 64,
			MapPath:   "map.tfmap",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
