// Package viewport 实现多视口指针路由
//
// 每个 Viewport 拥有自己的相机和指针状态，并持有共享 World 的非拥有引用。
// 窗口级的 move / down / up 事件交给所有视口，每个视口独立过滤：
// 落在自己像素矩形外的事件被完全忽略。落在矩形内时：
//
//  1. 窗口坐标换算为视口 NDC（Y 轴翻转，原点在左下）
//  2. 用相机射线对 World 做命中测试，缓存结果
//  3. 合成事件先分发给每个命中对象，再分发给视口本身
//
// up 之后额外合成 click：只分发给按下与释放时都被命中的对象。
package viewport

import (
	"log"

	"github.com/decker502/blockmap/pkg/camera"
	"github.com/decker502/blockmap/pkg/event"
	"github.com/decker502/blockmap/pkg/world"
	"github.com/go-gl/mathgl/mgl64"
)

// EventKind 视口事件类型
type EventKind int

const (
	EventPointerMove EventKind = iota
	EventPointerDown
	EventPointerUp
	EventClick
	// EventResize 窗口尺寸变化，像素矩形与相机投影已更新
	EventResize
)

// Event 视口事件
type Event struct {
	Kind EventKind
	// Pointer 指针事件载荷（Resize 时为零值）
	Pointer world.PointerEvent
	// WindowWidth / WindowHeight 仅 Resize 时有效
	WindowWidth  int
	WindowHeight int
}

func kindOf(k world.PointerKind) EventKind {
	switch k {
	case world.PointerDown:
		return EventPointerDown
	case world.PointerUp:
		return EventPointerUp
	case world.PointerClick:
		return EventClick
	}
	return EventPointerMove
}

// PointerInput 窗口级指针输入
type PointerInput struct {
	X, Y    float64       // 窗口像素坐标，原点在左上
	Button  world.Button  // 状态变化的按键
	Buttons world.Buttons // 当前按下的按键
}

// Viewport 相机 + 屏幕区域 + 指针状态
type Viewport struct {
	Name string

	camera camera.Camera
	world  *world.World

	rect   Rect // 归一化矩形
	pixel  Rect // 像素矩形 = rect × 窗口尺寸
	window struct{ width, height int }

	pointer mgl64.Vec2
	hits    []world.Hit
	pressed map[*world.TracedObject]struct{}

	events event.Dispatcher[EventKind, Event]
}

// New 用给定相机创建视口，并按初始窗口尺寸设置像素矩形与相机宽高比
func New(name string, w *world.World, rect Rect, cam camera.Camera, windowWidth, windowHeight int) *Viewport {
	v := &Viewport{
		Name:    name,
		camera:  cam,
		world:   w,
		rect:    rect,
		hits:    make([]world.Hit, 0),
		pressed: make(map[*world.TracedObject]struct{}),
	}
	v.applySize(windowWidth, windowHeight)
	return v
}

// PerspectiveOptions 透视视口参数，零值字段使用默认值
type PerspectiveOptions struct {
	FOV  float64 // 默认 75
	Near float64 // 默认 0.1
	Far  float64 // 默认 1000
}

// OrthographicOptions 正交视口参数，零值字段使用默认值
type OrthographicOptions struct {
	Height float64 // 视体半高，默认 2
	Near   float64 // 默认 0.1
	Far    float64 // 默认 1000
}

// NewPerspective 创建透视视口
func NewPerspective(name string, w *world.World, rect Rect, windowWidth, windowHeight int, opts PerspectiveOptions) *Viewport {
	if opts.FOV <= 0 {
		opts.FOV = 75
	}
	if opts.Near <= 0 {
		opts.Near = 0.1
	}
	if opts.Far <= 0 {
		opts.Far = 1000
	}
	aspect := rect.Scale(windowWidth, windowHeight).Aspect()
	cam := camera.NewPerspective(opts.FOV, aspect, opts.Near, opts.Far)
	return New(name, w, rect, cam, windowWidth, windowHeight)
}

// NewOrthographic 创建正交视口
func NewOrthographic(name string, w *world.World, rect Rect, windowWidth, windowHeight int, opts OrthographicOptions) *Viewport {
	if opts.Height <= 0 {
		opts.Height = 2
	}
	if opts.Near <= 0 {
		opts.Near = 0.1
	}
	if opts.Far <= 0 {
		opts.Far = 1000
	}
	aspect := rect.Scale(windowWidth, windowHeight).Aspect()
	cam := camera.NewOrthographic(opts.Height, aspect, opts.Near, opts.Far)
	return New(name, w, rect, cam, windowWidth, windowHeight)
}

// Camera 返回视口拥有的相机
func (v *Viewport) Camera() camera.Camera {
	return v.camera
}

// World 返回共享的 World
func (v *Viewport) World() *world.World {
	return v.world
}

// Rect 返回归一化矩形
func (v *Viewport) Rect() Rect {
	return v.rect
}

// PixelRect 返回像素矩形（Y 轴从窗口底部向上）
func (v *Viewport) PixelRect() Rect {
	return v.pixel
}

// Pointer 返回最近一次接受的指针位置（NDC）
func (v *Viewport) Pointer() mgl64.Vec2 {
	return v.pointer
}

// Intersections 返回最近一次命中测试结果的副本，从近到远
func (v *Viewport) Intersections() []world.Hit {
	out := make([]world.Hit, len(v.hits))
	copy(out, v.hits)
	return out
}

// Nearest 返回最近的命中，没有命中时 ok 为 false
func (v *Viewport) Nearest() (world.Hit, bool) {
	if len(v.hits) == 0 {
		return world.Hit{}, false
	}
	return v.hits[0], true
}

// On 订阅视口事件
func (v *Viewport) On(kind EventKind, fn func(Event)) event.Handle {
	return v.events.On(kind, fn)
}

// Contains 判断窗口坐标（原点左上）是否落在视口内，含边界
func (v *Viewport) Contains(x, y float64) bool {
	return v.pixel.Contains(x, float64(v.window.height)-y)
}

// Resize 窗口尺寸变化：重算像素矩形与相机投影，然后分发 EventResize
func (v *Viewport) Resize(windowWidth, windowHeight int) {
	v.applySize(windowWidth, windowHeight)
	log.Printf("[Viewport] %s resized: window=%dx%d pixel=%.0fx%.0f",
		v.Name, windowWidth, windowHeight, v.pixel.Width, v.pixel.Height)
	v.events.Emit(EventResize, Event{
		Kind:         EventResize,
		WindowWidth:  windowWidth,
		WindowHeight: windowHeight,
	})
}

func (v *Viewport) applySize(windowWidth, windowHeight int) {
	v.window.width, v.window.height = windowWidth, windowHeight
	v.pixel = v.rect.Scale(windowWidth, windowHeight)
	v.camera.SetAspect(v.pixel.Aspect())
}

// UpdateIntersections 用当前指针位置重新做命中测试，不分发事件
//
// 场景每帧变化（放置、移动方块）后调用，保证预览与下一次点击使用最新结果。
func (v *Viewport) UpdateIntersections() {
	v.hits = v.world.HitTest(v.camera.Ray(v.pointer))
}

// HandleMove 处理窗口级指针移动；返回事件是否落在本视口内
func (v *Viewport) HandleMove(in PointerInput) bool {
	if !v.accept(in) {
		return false
	}
	v.dispatch(v.makeEvent(world.PointerMove, in), world.Objects(v.hits))
	return true
}

// HandleDown 处理按键按下，记录当前命中的全部对象为按下集合
func (v *Viewport) HandleDown(in PointerInput) bool {
	if !v.accept(in) {
		return false
	}
	objects := world.Objects(v.hits)
	v.pressed = make(map[*world.TracedObject]struct{}, len(objects))
	for _, o := range objects {
		v.pressed[o] = struct{}{}
	}
	v.dispatch(v.makeEvent(world.PointerDown, in), objects)
	return true
}

// HandleUp 处理按键释放，随后合成 click
//
// click 只分发给同时出现在按下集合与当前命中中的对象，视口级 click 总是分发。
func (v *Viewport) HandleUp(in PointerInput) bool {
	if !v.accept(in) {
		return false
	}
	objects := world.Objects(v.hits)
	v.dispatch(v.makeEvent(world.PointerUp, in), objects)

	clicked := make([]*world.TracedObject, 0, len(objects))
	for _, o := range objects {
		if _, ok := v.pressed[o]; ok {
			clicked = append(clicked, o)
		}
	}
	v.dispatch(v.makeEvent(world.PointerClick, in), clicked)
	return true
}

// accept 过滤视口外的事件；接受时更新指针 NDC 并重新命中测试
func (v *Viewport) accept(in PointerInput) bool {
	x, y := in.X, float64(v.window.height)-in.Y
	if !v.pixel.Contains(x, y) {
		return false
	}
	v.pointer = v.pixel.ToNDC(x, y)
	v.UpdateIntersections()
	return true
}

func (v *Viewport) makeEvent(kind world.PointerKind, in PointerInput) world.PointerEvent {
	e := world.PointerEvent{
		Kind:    kind,
		NDC:     v.pointer,
		Button:  in.Button,
		Buttons: in.Buttons,
	}
	if len(v.hits) > 0 {
		nearest := v.hits[0]
		e.Hit = &nearest
		e.Target = nearest.Object
	}
	return e
}

// dispatch 先分发给对象，再分发给视口
func (v *Viewport) dispatch(e world.PointerEvent, objects []*world.TracedObject) {
	for _, o := range objects {
		o.Dispatch(e)
	}
	v.events.Emit(kindOf(e.Kind), Event{Kind: kindOf(e.Kind), Pointer: e})
}
