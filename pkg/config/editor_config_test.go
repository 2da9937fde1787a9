package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/blockmap/pkg/history"
)

// TestLoadShippedConfig 测试仓库自带的 data/editor.yaml 与内置默认值一致
func TestLoadShippedConfig(t *testing.T) {
	cfg, err := Load("../../data/editor.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()

	if cfg.Window != def.Window {
		t.Errorf("window: got %+v, want %+v", cfg.Window, def.Window)
	}
	if cfg.History.Capacity != history.DefaultCapacity || cfg.Grid.Size != 10 {
		t.Errorf("history/grid: got %d/%d", cfg.History.Capacity, cfg.Grid.Size)
	}
	if len(cfg.Viewports) != len(def.Viewports) {
		t.Fatalf("viewports: got %d, want %d", len(cfg.Viewports), len(def.Viewports))
	}
	for i := range def.Viewports {
		if cfg.Viewports[i] != def.Viewports[i] {
			t.Errorf("viewport %d: got %+v, want %+v", i, cfg.Viewports[i], def.Viewports[i])
		}
	}
	if !cfg.Autosave.Enabled || cfg.Autosave.Slot != DefaultAutosaveSlot {
		t.Errorf("autosave: got %+v", cfg.Autosave)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     error
		errContains string
		validate    func(*testing.T, *EditorConfig)
	}{
		{
			name:        "empty file keeps defaults",
			yamlContent: "",
			validate: func(t *testing.T, cfg *EditorConfig) {
				if len(cfg.Viewports) != 3 || cfg.Viewports[0].Name != "main" {
					t.Errorf("expected default viewports, got %+v", cfg.Viewports)
				}
			},
		},
		{
			name: "partial override",
			yamlContent: `
history:
  capacity: 5
mapFile: maps/level.json
`,
			validate: func(t *testing.T, cfg *EditorConfig) {
				if cfg.History.Capacity != 5 {
					t.Errorf("expected capacity 5, got %d", cfg.History.Capacity)
				}
				if cfg.MapFile != "maps/level.json" {
					t.Errorf("expected mapFile, got %q", cfg.MapFile)
				}
				if cfg.Window.Width != DefaultWindowWidth {
					t.Errorf("window width should keep default, got %d", cfg.Window.Width)
				}
			},
		},
		{
			name: "viewports replaced",
			yamlContent: `
viewports:
  - name: top
    kind: orthographic
    rect: {x: 0, y: 0, width: 1, height: 1}
    height: 6
    near: 0.1
    far: 100
    position: [0, 10, 0]
    up: [0, 0, -1]
`,
			validate: func(t *testing.T, cfg *EditorConfig) {
				if len(cfg.Viewports) != 1 {
					t.Fatalf("expected 1 viewport, got %d", len(cfg.Viewports))
				}
				v := cfg.Viewports[0]
				if v.Up != [3]float64{0, 0, -1} || v.Height != 6 {
					t.Errorf("unexpected viewport %+v", v)
				}
			},
		},
		{
			name: "unknown kind",
			yamlContent: `
viewports:
  - name: a
    kind: fisheye
    rect: {x: 0, y: 0, width: 1, height: 1}
    near: 0.1
    far: 10
    position: [0, 0, 1]
`,
			wantErr: ErrInvalidViewport,
		},
		{
			name: "rect outside window",
			yamlContent: `
viewports:
  - name: a
    kind: perspective
    rect: {x: 0.6, y: 0, width: 0.5, height: 1}
    fov: 60
    near: 0.1
    far: 10
    position: [0, 0, 1]
`,
			wantErr: ErrInvalidViewport,
		},
		{
			name: "duplicate names",
			yamlContent: `
viewports:
  - {name: a, kind: perspective, rect: {x: 0, y: 0, width: 1, height: 0.5}, fov: 60, near: 0.1, far: 10, position: [0, 0, 1]}
  - {name: a, kind: perspective, rect: {x: 0, y: 0.5, width: 1, height: 0.5}, fov: 60, near: 0.1, far: 10, position: [0, 0, 1]}
`,
			wantErr: ErrInvalidViewport,
		},
		{
			name: "near beyond far",
			yamlContent: `
viewports:
  - {name: a, kind: orthographic, rect: {x: 0, y: 0, width: 1, height: 1}, height: 5, near: 10, far: 1, position: [0, 0, 1]}
`,
			wantErr: ErrInvalidViewport,
		},
		{
			name:        "empty viewport list",
			yamlContent: "viewports: []\n",
			wantErr:     ErrInvalidViewport,
		},
		{
			name: "autosave without slot",
			yamlContent: `
autosave:
  enabled: true
  slot: ""
`,
			errContains: "autosave",
		},
		{
			name: "position array too long",
			yamlContent: `
viewports:
  - {name: a, kind: perspective, rect: {x: 0, y: 0, width: 1, height: 1}, fov: 60, near: 0.1, far: 10, position: [0, 0, 1, 2]}
`,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.yamlContent))
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			case tt.errContains != "":
				if err == nil || !strings.Contains(err.Error(), tt.errContains) {
					t.Fatalf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestLoadEmbeddedNotInitialized(t *testing.T) {
	if _, err := LoadEmbedded(DefaultConfigPath); err == nil {
		t.Error("expected error before embedded.Init()")
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
	if cfg.History.Capacity != history.DefaultCapacity {
		t.Errorf("default history capacity: got %d, want %d", cfg.History.Capacity, history.DefaultCapacity)
	}
}
