// Package mapfile persists tile maps as zstd-compressed gob with a
// small JSON header line for external tooling. The geometry core never
// touches files; it only requires that a loaded grid satisfies the
// tile-map invariants, which Load enforces before handing it over.
package mapfile

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/fieldbox/tileforge/internal/tilemap"
)

// Header identifies a map file.
type Header struct {
	Format  string `json:"format"`
	Version int    `json:"version"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

const (
	formatName    = "tileforge-map"
	formatVersion = 1
)

// Save writes the map to path, creating parent directories as needed.
func Save(path string, m *tilemap.Map) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriter(enc)
	defer bw.Flush()

	hb, _ := json.Marshal(Header{
		Format:  formatName,
		Version: formatVersion,
		Width:   m.Width,
		Height:  m.Height,
	})
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(m); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

// Load reads a map from path and validates the grid invariants.
func Load(path string) (*tilemap.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)

	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	var hdr Header
	if err := json.Unmarshal(line, &hdr); err != nil {
		return nil, fmt.Errorf("parsing header: %w", err)
	}
	if hdr.Format != formatName {
		return nil, fmt.Errorf("not a map file (format %q)", hdr.Format)
	}
	if hdr.Version != formatVersion {
		return nil, fmt.Errorf("unsupported map version %d", hdr.Version)
	}

	var m tilemap.Map
	if err := gob.NewDecoder(br).Decode(&m); err != nil {
		return nil, fmt.Errorf("gob decode: %w", err)
	}

	if err := validate(&m, hdr); err != nil {
		return nil, fmt.Errorf("invalid map file %s: %w", path, err)
	}
	return &m, nil
}

// validate rejects grids that would break the geometry core's
// by-construction indexing guarantees.
func validate(m *tilemap.Map, hdr Header) error {
	if m.Width < 0 || m.Height < 0 {
		return fmt.Errorf("negative dimensions %dx%d", m.Width, m.Height)
	}
	if m.Width != hdr.Width || m.Height != hdr.Height {
		return fmt.Errorf("header says %dx%d, payload is %dx%d",
			hdr.Width, hdr.Height, m.Width, m.Height)
	}
	if len(m.Tiles) != m.Width*m.Height {
		return fmt.Errorf("tile count %d does not match %dx%d",
			len(m.Tiles), m.Width, m.Height)
	}
	for i, t := range m.Tiles {
		x, y := i%m.Width, i/m.Width
		if t.X != x || t.Y != y {
			return fmt.Errorf("tile %d carries coordinates (%d,%d), want (%d,%d)",
				i, t.X, t.Y, x, y)
		}
		if t.Kind > tilemap.Ramp {
			return fmt.Errorf("tile %d has unknown kind %d", i, t.Kind)
		}
		if t.Type.Index() >= tilemap.TypeCount {
			return fmt.Errorf("tile %d has unknown type %d", i, t.Type)
		}
		if t.RampSet && t.RampDir > tilemap.West {
			return fmt.Errorf("tile %d has unknown ramp direction %d", i, t.RampDir)
		}
	}
	return nil
}
