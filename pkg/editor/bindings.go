package editor

import (
	"github.com/decker502/blockmap/pkg/keymap"
	"github.com/go-gl/mathgl/mgl64"
)

// BindKeys 注册编辑快捷键
//
//	Space                        放置方块
//	Meta+Z / Ctrl+Z              撤销
//	Meta+Shift+Z / Ctrl+Shift+Z  重做
//	Ctrl+Y                       重做
//	方向键                        在 XZ 平面平移选中方块
//	Comma / Period               选中方块上移 / 下移
//	Delete / Backspace           删除选中方块
//	Escape                       取消选中
func (e *Editor) BindKeys(km *keymap.KeyMap) {
	km.Bind(keymap.ModNone, keymap.KeySpace, func() { e.PlaceBlock() })

	for _, mod := range []keymap.Modifier{keymap.ModMeta, keymap.ModCtrl} {
		km.Bind(mod, keymap.KeyZ, e.Undo)
		km.Bind(mod|keymap.ModShift, keymap.KeyZ, e.Redo)
	}
	km.Bind(keymap.ModCtrl, keymap.KeyY, e.Redo)

	shifts := map[keymap.Key]mgl64.Vec3{
		keymap.KeyArrowUp:    {0, 0, -1},
		keymap.KeyArrowDown:  {0, 0, 1},
		keymap.KeyArrowLeft:  {-1, 0, 0},
		keymap.KeyArrowRight: {1, 0, 0},
		keymap.KeyComma:      {0, 1, 0},
		keymap.KeyPeriod:     {0, -1, 0},
	}
	for key, offset := range shifts {
		offset := offset
		km.Bind(keymap.ModNone, key, func() { e.ShiftSelected(offset) })
	}

	km.Bind(keymap.ModNone, keymap.KeyDelete, func() { e.DeleteSelected() })
	km.Bind(keymap.ModNone, keymap.KeyBackspace, func() { e.DeleteSelected() })
	km.Bind(keymap.ModNone, keymap.KeyEscape, e.Unselect)
}
