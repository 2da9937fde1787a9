package input

import (
	"log"

	"github.com/decker502/blockmap/pkg/keymap"
	"github.com/decker502/blockmap/pkg/viewport"
	"github.com/decker502/blockmap/pkg/world"
)

// buttonOrder 同一帧多个按键变化时的分发顺序
var buttonOrder = []world.Button{world.ButtonLeft, world.ButtonMiddle, world.ButtonRight}

// Router 输入路由
type Router struct {
	source    Source
	keys      *keymap.KeyMap
	viewports []*viewport.Viewport

	prev       State
	started    bool
	lastButton world.Button
}

// NewRouter 创建输入路由，keys 可为 nil
func NewRouter(source Source, keys *keymap.KeyMap, viewports ...*viewport.Viewport) *Router {
	return &Router{
		source:    source,
		keys:      keys,
		viewports: viewports,
	}
}

// Update 轮询一次输入并分发，每个 tick 调用一次
func (r *Router) Update() {
	s := r.source.Poll()
	prev := r.prev
	r.prev = s

	if s.Width > 0 && s.Height > 0 && (s.Width != prev.Width || s.Height != prev.Height) {
		for _, vp := range r.viewports {
			vp.Resize(s.Width, s.Height)
		}
	}

	// 只有位置变化才产生 move；move 发生在本帧按键变化之前，携带上一帧的按键状态
	if !r.started || s.X != prev.X || s.Y != prev.Y {
		r.each(func(vp *viewport.Viewport, in viewport.PointerInput) { vp.HandleMove(in) },
			viewport.PointerInput{X: s.X, Y: s.Y, Button: r.lastButton, Buttons: prev.Buttons})
	}
	r.started = true

	for _, b := range buttonOrder {
		if s.Buttons&b.Mask() != 0 && prev.Buttons&b.Mask() == 0 {
			r.lastButton = b
			r.each(func(vp *viewport.Viewport, in viewport.PointerInput) { vp.HandleDown(in) },
				viewport.PointerInput{X: s.X, Y: s.Y, Button: b, Buttons: s.Buttons})
		}
	}
	for _, b := range buttonOrder {
		if s.Buttons&b.Mask() == 0 && prev.Buttons&b.Mask() != 0 {
			r.lastButton = b
			r.each(func(vp *viewport.Viewport, in viewport.PointerInput) { vp.HandleUp(in) },
				viewport.PointerInput{X: s.X, Y: s.Y, Button: b, Buttons: s.Buttons})
		}
	}

	if r.keys == nil {
		return
	}
	for _, k := range s.Keys {
		if r.keys.Handle(s.Mod, k) {
			log.Printf("[Input] Key %s handled", k)
		}
	}
}

// each 把同一个窗口级输入交给每个视口，由视口自行过滤
func (r *Router) each(fn func(*viewport.Viewport, viewport.PointerInput), in viewport.PointerInput) {
	for _, vp := range r.viewports {
		fn(vp, in)
	}
}
