// Package input 把逐帧轮询的输入状态转换为视口指针事件与快捷键
//
// ebiten 只提供"当前状态"查询，Router 每个 tick 与上一帧比较，
// 按 move、down、up 的顺序把变化交给所有视口，然后把本帧新按下的键交给 KeyMap。
package input

import (
	"github.com/decker502/blockmap/pkg/keymap"
	"github.com/decker502/blockmap/pkg/world"
)

// State 一帧的输入快照
type State struct {
	// X, Y 指针位置，窗口像素坐标，原点在左上
	X, Y float64
	// Buttons 当前按住的按键
	Buttons world.Buttons
	// Width, Height 窗口尺寸
	Width, Height int
	// Mod 当前按住的修饰键
	Mod keymap.Modifier
	// Keys 本帧刚按下的键
	Keys []keymap.Key
}

// Source 输入来源
type Source interface {
	Poll() State
}
