// Package keymap 实现键盘快捷键表：修饰键位掩码 + 按键 → 无参回调
//
// 每个应用显式创建一个 KeyMap 并传给需要注册快捷键的组件，不使用全局单例。
package keymap

import "log"

// Modifier 修饰键位掩码
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModCtrl  Modifier = 1 << 1
	ModAlt   Modifier = 1 << 2
	ModMeta  Modifier = 1 << 3
)

// Key 按键名，与 ebiten.Key.String() 的返回值一致
type Key string

// 编辑器用到的按键
const (
	KeySpace      Key = "Space"
	KeyEscape     Key = "Escape"
	KeyEnter      Key = "Enter"
	KeyBackspace  Key = "Backspace"
	KeyDelete     Key = "Delete"
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyComma      Key = "Comma"
	KeyPeriod     Key = "Period"
	KeyO          Key = "O"
	KeyS          Key = "S"
	KeyY          Key = "Y"
	KeyZ          Key = "Z"
)

type binding struct {
	mod Modifier
	key Key
}

// KeyMap 快捷键表
type KeyMap struct {
	table    map[binding]func()
	inactive bool
}

// New 创建处于激活状态的空快捷键表
func New() *KeyMap {
	return &KeyMap{table: make(map[binding]func())}
}

// Bind 绑定快捷键，已有绑定时覆盖并输出警告
func (m *KeyMap) Bind(mod Modifier, key Key, fn func()) {
	if fn == nil {
		return
	}
	b := binding{mod, key}
	if _, exists := m.table[b]; exists {
		log.Printf("[KeyMap] Warning: overwriting binding %s", describe(mod, key))
	}
	m.table[b] = fn
}

// Unbind 移除快捷键；不存在时为空操作
func (m *KeyMap) Unbind(mod Modifier, key Key) {
	delete(m.table, binding{mod, key})
}

// Bound 是否存在该快捷键
func (m *KeyMap) Bound(mod Modifier, key Key) bool {
	_, ok := m.table[binding{mod, key}]
	return ok
}

// Activate 启用快捷键处理
func (m *KeyMap) Activate() {
	m.inactive = false
}

// Deactivate 停用快捷键处理（例如文本输入期间）
func (m *KeyMap) Deactivate() {
	m.inactive = true
}

// Active 是否启用
func (m *KeyMap) Active() bool {
	return !m.inactive
}

// Handle 查找并执行快捷键回调，返回是否执行了回调
//
// 修饰键必须精确匹配：Shift+Z 不会触发只绑定在 Z 上的回调。
func (m *KeyMap) Handle(mod Modifier, key Key) bool {
	if m.inactive {
		return false
	}
	fn, ok := m.table[binding{mod, key}]
	if !ok {
		return false
	}
	fn()
	return true
}

func describe(mod Modifier, key Key) string {
	s := ""
	if mod&ModCtrl != 0 {
		s += "Ctrl+"
	}
	if mod&ModAlt != 0 {
		s += "Alt+"
	}
	if mod&ModShift != 0 {
		s += "Shift+"
	}
	if mod&ModMeta != 0 {
		s += "Meta+"
	}
	return s + string(key)
}
