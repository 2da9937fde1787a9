package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/decker502/blockmap/pkg/config"
	"github.com/decker502/blockmap/pkg/editor"
	"github.com/decker502/blockmap/pkg/keymap"
	"github.com/decker502/blockmap/pkg/mapdata"
	"github.com/go-gl/mathgl/mgl64"
)

func newTestSession(t *testing.T, cfg *config.EditorConfig, store *mapdata.Store) *Session {
	t.Helper()
	s, err := NewSession(cfg, store)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSessionViewports(t *testing.T) {
	s := newTestSession(t, config.Default(), nil)

	vps := s.Viewports()
	if len(vps) != 3 {
		t.Fatalf("viewports: got %d, want 3", len(vps))
	}
	names := []string{vps[0].Name, vps[1].Name, vps[2].Name}
	if names[0] != "main" || names[1] != "front" || names[2] != "side" {
		t.Errorf("names: got %v", names)
	}

	eye := vps[0].Camera().Eye()
	if eye.Position != (mgl64.Vec3{-0.5, 1.5, 4.5}) || eye.Target != editor.CenterOffset {
		t.Errorf("main camera: position %v target %v", eye.Position, eye.Target)
	}
	if s.Editor().Active() != vps[0] {
		t.Error("first viewport should be active")
	}
	if !s.Keys().Bound(keymap.ModCtrl, keymap.KeyS) || !s.Keys().Bound(keymap.ModNone, keymap.KeySpace) {
		t.Error("default bindings missing")
	}
}

func TestNewSessionInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Viewports[1].Kind = "fisheye"
	if _, err := NewSession(cfg, nil); !errors.Is(err, config.ErrInvalidViewport) {
		t.Errorf("expected ErrInvalidViewport, got %v", err)
	}
}

// TestSessionSlotRoundTrip 保存到自动存档槽，新会话从槽恢复
func TestSessionSlotRoundTrip(t *testing.T) {
	store := mapdata.NewStore(nil)
	s := newTestSession(t, config.Default(), store)

	// 空槽载入不报错
	if err := s.Load(); err != nil {
		t.Fatalf("Load empty slot: %v", err)
	}

	s.Editor().PlaceBlock()
	if !s.Dirty() {
		t.Error("placing a block should mark the session dirty")
	}
	s.Keys().Handle(keymap.ModCtrl, keymap.KeyS)
	if s.Dirty() {
		t.Error("Ctrl+S should save and clear the dirty flag")
	}

	s2 := newTestSession(t, config.Default(), store)
	if err := s2.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if n := len(s2.Editor().Blocks()); n != 1 {
		t.Errorf("restored blocks: got %d, want 1", n)
	}
	if s2.Dirty() || s2.Editor().History().Len() != 0 {
		t.Error("loading should not leave history or dirty state")
	}
}

func TestSessionAutosave(t *testing.T) {
	store := mapdata.NewStore(nil)
	s := newTestSession(t, config.Default(), store)
	s.Editor().PlaceBlock()

	for i := 0; i < AutosaveInterval-1; i++ {
		s.Tick()
	}
	if store.Exists(config.DefaultAutosaveSlot) {
		t.Fatal("autosave ran before the interval elapsed")
	}
	s.Tick()
	if !store.Exists(config.DefaultAutosaveSlot) || s.Dirty() {
		t.Error("autosave should run once the interval elapses")
	}

	// 禁用自动存档时不写入
	cfg := config.Default()
	cfg.Autosave.Enabled = false
	other := mapdata.NewStore(nil)
	s2 := newTestSession(t, cfg, other)
	s2.Editor().PlaceBlock()
	for i := 0; i < AutosaveInterval*2; i++ {
		s2.Tick()
	}
	if other.Exists(config.DefaultAutosaveSlot) {
		t.Error("autosave disabled but slot was written")
	}
}

func TestSessionMapFile(t *testing.T) {
	cfg := config.Default()
	cfg.Autosave.Enabled = false
	cfg.MapFile = filepath.Join(t.TempDir(), "level.json")

	s := newTestSession(t, cfg, nil)
	if err := s.Load(); err == nil {
		t.Error("loading a missing map file should fail")
	}

	s.Editor().PlaceBlock()
	s.Editor().Preview().Position = mgl64.Vec3{2, 0, 0}
	s.Editor().PlaceBlock()
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	records, err := mapdata.ReadFile(cfg.MapFile)
	if err != nil || len(records) != 2 {
		t.Fatalf("map file: got %v, %v", records, err)
	}

	s2 := newTestSession(t, cfg, nil)
	if err := s2.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := s2.Editor().BlockAt(mgl64.Vec3{2, 0, 0}); !ok {
		t.Error("block at (2,0,0) should be restored")
	}
}

// TestSessionSaveWithoutTarget 没有保存目标时报错并保留未保存标记
func TestSessionSaveWithoutTarget(t *testing.T) {
	cfg := config.Default()
	cfg.Autosave.Enabled = false
	s := newTestSession(t, cfg, nil)
	s.Editor().PlaceBlock()

	if err := s.Save(); !errors.Is(err, ErrNoSaveTarget) {
		t.Errorf("Save: got %v, want ErrNoSaveTarget", err)
	}
	if !s.Dirty() {
		t.Error("unsaved changes should stay marked dirty")
	}

	// 启用自动存档但没有存储时同样没有目标
	s2 := newTestSession(t, config.Default(), nil)
	s2.Editor().PlaceBlock()
	if err := s2.Save(); !errors.Is(err, ErrNoSaveTarget) {
		t.Errorf("Save without store: got %v, want ErrNoSaveTarget", err)
	}
}

func TestSessionStatus(t *testing.T) {
	s := newTestSession(t, config.Default(), nil)
	b := s.Editor().PlaceBlock()
	s.Editor().Select(b)

	status := s.Status()
	for _, want := range []string{"blocks: 1", "history: 1/1", "(0,0,0)", "*"} {
		if !strings.Contains(status, want) {
			t.Errorf("status %q should contain %q", status, want)
		}
	}
}
