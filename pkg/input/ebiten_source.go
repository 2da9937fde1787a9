package input

import (
	"github.com/decker502/blockmap/pkg/keymap"
	"github.com/decker502/blockmap/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenSource 从 ebiten 读取鼠标、触摸与键盘状态
//
// 有活动触摸时按左键处理；触摸释放的那一帧使用最后一次触摸位置。
// 窗口尺寸由 App.Layout 通过 SetSize 写入。
type EbitenSource struct {
	width, height int

	lastTouchX, lastTouchY int
	touching               bool
	keys                   []ebiten.Key
}

// NewEbitenSource 创建 ebiten 输入来源
func NewEbitenSource(width, height int) *EbitenSource {
	return &EbitenSource{width: width, height: height}
}

// SetSize 更新窗口尺寸
func (s *EbitenSource) SetSize(width, height int) {
	s.width, s.height = width, height
}

// Poll 读取当前帧输入
func (s *EbitenSource) Poll() State {
	st := State{Width: s.width, Height: s.height}

	touchIDs := ebiten.AppendTouchIDs(nil)
	switch {
	case len(touchIDs) > 0:
		s.lastTouchX, s.lastTouchY = ebiten.TouchPosition(touchIDs[0])
		s.touching = true
		st.X, st.Y = float64(s.lastTouchX), float64(s.lastTouchY)
		st.Buttons = world.ButtonsLeft
	case s.touching:
		// 触摸刚释放
		s.touching = false
		st.X, st.Y = float64(s.lastTouchX), float64(s.lastTouchY)
	default:
		x, y := ebiten.CursorPosition()
		st.X, st.Y = float64(x), float64(y)
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			st.Buttons |= world.ButtonsLeft
		}
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
			st.Buttons |= world.ButtonsMiddle
		}
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
			st.Buttons |= world.ButtonsRight
		}
	}

	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		st.Mod |= keymap.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		st.Mod |= keymap.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		st.Mod |= keymap.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		st.Mod |= keymap.ModMeta
	}

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	for _, k := range s.keys {
		st.Keys = append(st.Keys, keymap.Key(k.String()))
	}
	return st
}

var _ Source = (*EbitenSource)(nil)
