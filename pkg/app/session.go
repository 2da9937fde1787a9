package app

import (
	"errors"
	"fmt"
	"log"

	"github.com/decker502/blockmap/pkg/config"
	"github.com/decker502/blockmap/pkg/editor"
	"github.com/decker502/blockmap/pkg/history"
	"github.com/decker502/blockmap/pkg/keymap"
	"github.com/decker502/blockmap/pkg/mapdata"
	"github.com/decker502/blockmap/pkg/viewport"
	"github.com/decker502/blockmap/pkg/world"
	"github.com/go-gl/mathgl/mgl64"
)

// AutosaveInterval 有未保存修改时，两次自动存档之间的最少 tick 数
const AutosaveInterval = 120

// ErrNoSaveTarget 既没有配置 mapFile 也没有启用自动存档
var ErrNoSaveTarget = errors.New("no map file or autosave slot configured")

// Session 一次编辑会话：共享 World、编辑器、视口、快捷键与存档
//
// 不依赖窗口系统，App 每个 tick 驱动它。
type Session struct {
	cfg    *config.EditorConfig
	world  *world.World
	editor *editor.Editor
	keys   *keymap.KeyMap
	store  *mapdata.Store

	viewports []*viewport.Viewport

	dirty     bool
	sinceSave int
}

// NewSession 按配置创建会话
//
// store 可为 nil（不使用自动存档）。
func NewSession(cfg *config.EditorConfig, store *mapdata.Store) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid editor config: %w", err)
	}

	w := world.NewWorld()
	s := &Session{
		cfg:   cfg,
		world: w,
		editor: editor.New(w, editor.Options{
			GridSize:        cfg.Grid.Size,
			HistoryCapacity: cfg.History.Capacity,
		}),
		keys:  keymap.New(),
		store: store,
	}

	for _, vc := range cfg.Viewports {
		vp, err := newViewport(vc, w, cfg.Window.Width, cfg.Window.Height)
		if err != nil {
			return nil, err
		}
		s.editor.Attach(vp)
		s.viewports = append(s.viewports, vp)
	}

	s.editor.BindKeys(s.keys)
	s.keys.Bind(keymap.ModCtrl, keymap.KeyS, s.saveLogged)
	s.keys.Bind(keymap.ModMeta, keymap.KeyS, s.saveLogged)
	s.keys.Bind(keymap.ModCtrl, keymap.KeyO, s.loadLogged)
	s.keys.Bind(keymap.ModMeta, keymap.KeyO, s.loadLogged)

	s.editor.History().On(history.EventChange, func(history.Event) {
		s.dirty = true
	})

	log.Printf("[Session] Created with %d viewports", len(s.viewports))
	return s, nil
}

// newViewport 按配置创建视口，相机位置相对场景中心
func newViewport(vc config.ViewportConfig, w *world.World, winW, winH int) (*viewport.Viewport, error) {
	rect := viewport.Rect{X: vc.Rect.X, Y: vc.Rect.Y, Width: vc.Rect.Width, Height: vc.Rect.Height}

	var vp *viewport.Viewport
	switch vc.Kind {
	case config.KindPerspective:
		vp = viewport.NewPerspective(vc.Name, w, rect, winW, winH,
			viewport.PerspectiveOptions{FOV: vc.FOV, Near: vc.Near, Far: vc.Far})
	case config.KindOrthographic:
		vp = viewport.NewOrthographic(vc.Name, w, rect, winW, winH,
			viewport.OrthographicOptions{Height: vc.Height, Near: vc.Near, Far: vc.Far})
	default:
		return nil, fmt.Errorf("viewport %q: unknown kind %q: %w", vc.Name, vc.Kind, config.ErrInvalidViewport)
	}

	eye := vp.Camera().Eye()
	eye.Position = editor.CenterOffset.Add(mgl64.Vec3(vc.Position))
	eye.LookAt(editor.CenterOffset.Add(mgl64.Vec3(vc.Target)))
	eye.Up = mgl64.Vec3(vc.Up)
	return vp, nil
}

// Editor 返回编辑器
func (s *Session) Editor() *editor.Editor {
	return s.editor
}

// Keys 返回快捷键表
func (s *Session) Keys() *keymap.KeyMap {
	return s.keys
}

// Viewports 返回所有视口
func (s *Session) Viewports() []*viewport.Viewport {
	return s.viewports
}

// Dirty 报告是否有未保存的修改
func (s *Session) Dirty() bool {
	return s.dirty
}

// Save 保存地图：写入 mapFile（若配置），并写入自动存档槽（若启用）
//
// 两者都没有时返回 ErrNoSaveTarget，修改仍标记为未保存。
func (s *Session) Save() error {
	if s.cfg.MapFile == "" && !s.autosaveEnabled() {
		return ErrNoSaveTarget
	}
	records := s.editor.Records()
	var errs []error

	if s.cfg.MapFile != "" {
		if err := mapdata.WriteFile(s.cfg.MapFile, records); err != nil {
			errs = append(errs, fmt.Errorf("save map file: %w", err))
		}
	}
	if s.autosaveEnabled() {
		if err := s.store.Save(s.cfg.Autosave.Slot, records); err != nil {
			errs = append(errs, fmt.Errorf("save slot %q: %w", s.cfg.Autosave.Slot, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.dirty = false
	s.sinceSave = 0
	log.Printf("[Session] Saved %d blocks", len(records))
	return nil
}

// Load 载入地图：优先 mapFile，否则自动存档槽
//
// 两者都不存在时返回 nil，保持空地图。
func (s *Session) Load() error {
	var (
		records []mapdata.Record
		err     error
		source  string
	)
	switch {
	case s.cfg.MapFile != "":
		source = s.cfg.MapFile
		records, err = mapdata.ReadFile(s.cfg.MapFile)
	case s.autosaveEnabled():
		source = "slot " + s.cfg.Autosave.Slot
		records, err = s.store.Load(s.cfg.Autosave.Slot)
		if errors.Is(err, mapdata.ErrSlotNotFound) {
			log.Printf("[Session] No autosave found, starting with an empty map")
			return nil
		}
	default:
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", source, err)
	}

	if verr := mapdata.Validate(records); verr != nil {
		log.Printf("[Session] Warning: %s: %v", source, verr)
	}
	s.editor.LoadRecords(records)
	s.dirty = false
	s.sinceSave = 0
	return nil
}

// Tick 每帧调用：有未保存修改且间隔足够时自动存档
func (s *Session) Tick() {
	s.editor.Update()
	if !s.dirty || !s.autosaveEnabled() {
		return
	}
	s.sinceSave++
	if s.sinceSave < AutosaveInterval {
		return
	}
	records := s.editor.Records()
	if err := s.store.Save(s.cfg.Autosave.Slot, records); err != nil {
		log.Printf("[Session] Autosave failed: %v", err)
		s.sinceSave = 0
		return
	}
	s.dirty = false
	s.sinceSave = 0
	log.Printf("[Session] Autosaved %d blocks", len(records))
}

// Status 返回状态栏文本
func (s *Session) Status() string {
	h := s.editor.History()
	selected := "-"
	if b := s.editor.Selected(); b != nil {
		p := b.Node().Position
		selected = fmt.Sprintf("%s (%g,%g,%g)", b.Node().Name, p.X(), p.Y(), p.Z())
	}
	mark := ""
	if s.dirty {
		mark = " *"
	}
	return fmt.Sprintf("blocks: %d  history: %d/%d  selected: %s%s",
		len(s.editor.Blocks()), h.Cursor()+1, h.Len(), selected, mark)
}

func (s *Session) autosaveEnabled() bool {
	return s.store != nil && s.cfg.Autosave.Enabled
}

func (s *Session) saveLogged() {
	if err := s.Save(); err != nil {
		log.Printf("[Session] Save failed: %v", err)
	}
}

func (s *Session) loadLogged() {
	if err := s.Load(); err != nil {
		log.Printf("[Session] Load failed: %v", err)
	}
}
