package world

import "github.com/go-gl/mathgl/mgl64"

// PointerKind 指针事件类型
type PointerKind int

const (
	// PointerMove 指针移动
	PointerMove PointerKind = iota
	// PointerDown 按键按下
	PointerDown
	// PointerUp 按键释放
	PointerUp
	// PointerClick 按下与释放都落在同一对象上
	PointerClick
)

func (k PointerKind) String() string {
	switch k {
	case PointerMove:
		return "pointermove"
	case PointerDown:
		return "pointerdown"
	case PointerUp:
		return "pointerup"
	case PointerClick:
		return "click"
	}
	return "unknown"
}

// Button 鼠标按键编号（0 左键、1 中键、2 右键）
type Button int

const (
	ButtonLeft   Button = 0
	ButtonMiddle Button = 1
	ButtonRight  Button = 2
)

// Buttons 当前按下按键的位掩码（bit0 左键、bit1 右键、bit2 中键）
type Buttons uint8

const (
	ButtonsLeft   Buttons = 1 << 0
	ButtonsRight  Buttons = 1 << 1
	ButtonsMiddle Buttons = 1 << 2
)

// Mask 返回单个按键在位掩码中的对应位
func (b Button) Mask() Buttons {
	switch b {
	case ButtonLeft:
		return ButtonsLeft
	case ButtonRight:
		return ButtonsRight
	case ButtonMiddle:
		return ButtonsMiddle
	}
	return 0
}

// PointerEvent 视口合成后分发给对象与视口的指针事件
type PointerEvent struct {
	Kind    PointerKind
	NDC     mgl64.Vec2 // 视口内归一化设备坐标，范围 [-1, 1]
	Button  Button     // 触发事件的按键（move 时为最近一次的按键）
	Buttons Buttons    // 事件发生时按下的所有按键
	// Hit 最近的交点，没有命中时为 nil
	Hit *Hit
	// Target 最近交点所属的追踪对象，没有命中时为 nil
	Target *TracedObject
}
