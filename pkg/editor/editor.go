// Package editor 实现方块编辑器的应用逻辑
//
// Editor 把视口合成的指针事件和快捷键翻译成可逆操作推入 History：
// 放置、删除、平移方块都是 history.Action，选中状态的变化跟随操作一起撤销。
// 几何合法性（目标格子是否已被占用）在构造操作之前检查，History 本身不做校验。
package editor

import (
	"fmt"
	"log"

	"github.com/decker502/blockmap/pkg/history"
	"github.com/decker502/blockmap/pkg/scene"
	"github.com/decker502/blockmap/pkg/viewport"
	"github.com/decker502/blockmap/pkg/world"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultGridSize 默认网格边长（格数）
	DefaultGridSize = 10
	// DragThreshold 按下到 click 之间指针移动超过该距离（NDC）视为拖动，不算点击
	DragThreshold = 0.01
)

// CenterOffset 场景中心相对原点的偏移，网格格子中心落在整数坐标上
var CenterOffset = mgl64.Vec3{-0.5, -0.5, -0.5}

// Options 编辑器参数
type Options struct {
	GridSize        int // <= 0 时使用 DefaultGridSize
	HistoryCapacity int // <= 0 时使用 history.DefaultCapacity
}

// Editor 编辑器应用逻辑
type Editor struct {
	world   *world.World
	history *history.History

	grid     *world.TracedObject
	gridSize int
	preview  *scene.Node

	blocks   map[*world.TracedObject]struct{}
	selected *world.TracedObject
	// refs 历史中每个操作引用的方块，用于回收不可达的方块
	refs map[*history.Action][]*world.TracedObject

	active    *viewport.Viewport
	dragStart map[*viewport.Viewport]*mgl64.Vec2
}

// New 创建编辑器：生成网格（可拾取）与预览方块（不可拾取），预览初始位于原点格子上
func New(w *world.World, opts Options) *Editor {
	if opts.GridSize <= 0 {
		opts.GridSize = DefaultGridSize
	}
	e := &Editor{
		world:     w,
		history:   history.NewHistory(opts.HistoryCapacity),
		gridSize:  opts.GridSize,
		blocks:    make(map[*world.TracedObject]struct{}),
		refs:      make(map[*history.Action][]*world.TracedObject),
		dragStart: make(map[*viewport.Viewport]*mgl64.Vec2),
	}

	e.grid = world.NewTracedObject(newGrid(opts.GridSize))
	e.grid.Bind(w)

	e.preview = scene.NewNode("preview", scene.NewCube(1))
	e.preview.Position = mgl64.Vec3{0, 0, 0}
	w.Add(e.preview)

	log.Printf("[Editor] Initialized: grid=%dx%d history capacity=%d",
		opts.GridSize, opts.GridSize, e.history.Capacity())
	return e
}

// newGrid 创建 size×size 个单位水平格子，格子中心在整数坐标、y = -0.5
func newGrid(size int) *scene.Node {
	group := scene.NewGroup("grid")
	lo := -size / 2
	for i := lo; i < lo+size; i++ {
		for j := lo; j < lo+size; j++ {
			cell := scene.NewNode(gridCellName(i, j), scene.Plane{Width: 1, Depth: 1})
			cell.Position = mgl64.Vec3{float64(i), CenterOffset.Y(), float64(j)}
			cell.Visible = false
			group.AddChild(cell)
		}
	}
	return group
}

func gridCellName(i, j int) string {
	return fmt.Sprintf("grid-%d-%d", i, j)
}

// World 返回对象注册表
func (e *Editor) World() *world.World {
	return e.world
}

// History 返回操作历史
func (e *Editor) History() *history.History {
	return e.history
}

// Grid 返回网格对象
func (e *Editor) Grid() *world.TracedObject {
	return e.grid
}

// GridSize 返回网格边长
func (e *Editor) GridSize() int {
	return e.gridSize
}

// Preview 返回预览方块节点
func (e *Editor) Preview() *scene.Node {
	return e.preview
}

// Selected 返回当前选中的方块，没有时返回 nil
func (e *Editor) Selected() *world.TracedObject {
	return e.selected
}

// IsBlock 判断对象是否是编辑器创建的方块
func (e *Editor) IsBlock(obj *world.TracedObject) bool {
	_, ok := e.blocks[obj]
	return ok
}

// Blocks 返回当前在场景中的方块（按加入顺序）
func (e *Editor) Blocks() []*world.TracedObject {
	out := make([]*world.TracedObject, 0)
	for _, o := range e.world.Traced() {
		if e.IsBlock(o) {
			out = append(out, o)
		}
	}
	return out
}

// BlockAt 返回占据 pos 的方块
func (e *Editor) BlockAt(pos mgl64.Vec3) (*world.TracedObject, bool) {
	return e.world.FindTraced(func(o *world.TracedObject) bool {
		return e.IsBlock(o) && o.Node().Position == pos
	})
}

// Select 选中方块并隐藏预览；非方块或未绑定的对象被忽略
func (e *Editor) Select(obj *world.TracedObject) {
	if obj == nil || !e.IsBlock(obj) || !obj.Bound() {
		return
	}
	e.selected = obj
	e.preview.Visible = false
}

// Unselect 取消选中并显示预览；没有选中时为空操作
func (e *Editor) Unselect() {
	if e.selected == nil {
		return
	}
	e.selected = nil
	e.preview.Visible = true
}

// newBlock 创建未绑定的方块
func (e *Editor) newBlock(pos mgl64.Vec3) *world.TracedObject {
	id := world.NewObjectID()
	node := scene.NewNode("block-"+string(id), scene.NewCube(1))
	node.Position = pos
	obj := world.NewTracedObjectWithID(id, node)
	e.blocks[obj] = struct{}{}
	return obj
}

// PlaceBlock 在预览位置放置方块
//
// 预览隐藏（有选中方块）或目标格子已被占用时不做任何事，返回 nil。
func (e *Editor) PlaceBlock() *world.TracedObject {
	if !e.preview.Visible {
		return nil
	}
	pos := e.preview.Position
	if _, occupied := e.BlockAt(pos); occupied {
		log.Printf("[Editor] Place refused: %v is occupied", pos)
		return nil
	}

	block := e.newBlock(pos)
	e.record(block, e.history.Do("place "+block.Node().Name,
		func() {
			block.Bind(e.world)
		},
		func() {
			if e.selected == block {
				e.Unselect()
			}
			block.Unbind()
		},
	))
	return block
}

// DeleteBlock 删除方块；非方块或未绑定时返回 false
func (e *Editor) DeleteBlock(block *world.TracedObject) bool {
	if block == nil || !e.IsBlock(block) || !block.Bound() {
		return false
	}
	wasSelected := false
	e.record(block, e.history.Do("delete "+block.Node().Name,
		func() {
			wasSelected = e.selected == block
			if wasSelected {
				e.Unselect()
			}
			block.Unbind()
		},
		func() {
			block.Bind(e.world)
			if wasSelected {
				e.Select(block)
			}
		},
	))
	return true
}

// DeleteSelected 删除选中的方块
func (e *Editor) DeleteSelected() bool {
	return e.DeleteBlock(e.selected)
}

// ShiftSelected 平移选中的方块
//
// 目标位置已有其他方块时拒绝，不推入任何操作。
func (e *Editor) ShiftSelected(offset mgl64.Vec3) bool {
	block := e.selected
	if block == nil {
		return false
	}
	prev := block.Node().Position
	next := prev.Add(offset)
	if other, occupied := e.BlockAt(next); occupied && other != block {
		log.Printf("[Editor] Shift refused: %v is occupied", next)
		return false
	}

	e.record(block, e.history.Do(fmt.Sprintf("move %s %v", block.Node().Name, offset),
		func() { block.Node().Position = next },
		func() { block.Node().Position = prev },
	))
	return true
}

// record 登记操作引用的方块，并回收 Push 截断或淘汰后不可达的方块
func (e *Editor) record(block *world.TracedObject, action *history.Action) {
	e.refs[action] = append(e.refs[action], block)
	e.prune()
}

// prune 移除既不在场景中、也无法通过撤销/重做恢复的方块
func (e *Editor) prune() {
	live := make(map[*history.Action]struct{}, e.history.Len())
	for i := 0; i < e.history.Len(); i++ {
		live[e.history.At(i)] = struct{}{}
	}
	reachable := make(map[*world.TracedObject]struct{})
	for action, blocks := range e.refs {
		if _, ok := live[action]; !ok {
			delete(e.refs, action)
			continue
		}
		for _, b := range blocks {
			reachable[b] = struct{}{}
		}
	}
	for b := range e.blocks {
		if _, ok := reachable[b]; !ok && !b.Bound() {
			delete(e.blocks, b)
		}
	}
}

// Undo 撤销
func (e *Editor) Undo() {
	e.history.Undo()
}

// Redo 重做
func (e *Editor) Redo() {
	e.history.Redo()
}

// UpdatePreview 根据最近命中更新预览方块位置
//
// 命中网格：预览放在格子上方；命中方块：预览贴在被击中的面外侧。
func (e *Editor) UpdatePreview(hits []world.Hit) {
	if len(hits) == 0 {
		return
	}
	nearest := hits[0]
	switch {
	case nearest.Object == e.grid:
		e.preview.Position = nearest.Node.WorldPosition().Add(mgl64.Vec3{0, 0.5, 0})
	case e.IsBlock(nearest.Object):
		e.preview.Position = nearest.Object.Node().Position.Add(nearest.Normal)
	}
}

// Attach 订阅视口的指针事件
//
// 左键点击切换方块选中，右键点击删除方块；按下后拖动超过 DragThreshold 的 click 被忽略。
// 最近一次收到 move 的视口成为预览所用的活动视口。
func (e *Editor) Attach(vp *viewport.Viewport) {
	if e.active == nil {
		e.active = vp
	}
	vp.On(viewport.EventPointerMove, func(ev viewport.Event) {
		e.active = vp
		e.trackDrag(vp, ev.Pointer)
	})
	vp.On(viewport.EventPointerDown, func(ev viewport.Event) {
		start := ev.Pointer.NDC
		e.dragStart[vp] = &start
	})
	vp.On(viewport.EventClick, func(ev viewport.Event) {
		e.HandleClick(vp, ev.Pointer)
	})
}

// Active 返回活动视口
func (e *Editor) Active() *viewport.Viewport {
	return e.active
}

// Update 每帧调用：刷新活动视口的命中结果并更新预览
func (e *Editor) Update() {
	if e.active == nil {
		return
	}
	e.active.UpdateIntersections()
	e.UpdatePreview(e.active.Intersections())
}

// trackDrag 按键在视口外按下后移入时，以第一次 move 作为拖动起点
func (e *Editor) trackDrag(vp *viewport.Viewport, p world.PointerEvent) {
	if p.Buttons == 0 {
		delete(e.dragStart, vp)
		return
	}
	if _, ok := e.dragStart[vp]; !ok {
		start := p.NDC
		e.dragStart[vp] = &start
	}
}

// HandleClick 处理视口级 click
func (e *Editor) HandleClick(vp *viewport.Viewport, p world.PointerEvent) {
	start := p.NDC
	if s, ok := e.dragStart[vp]; ok {
		start = *s
	}
	delete(e.dragStart, vp)
	if start.Sub(p.NDC).Len() > DragThreshold {
		return
	}

	switch p.Button {
	case world.ButtonLeft:
		if p.Target == nil || !e.IsBlock(p.Target) {
			return
		}
		if e.selected == p.Target {
			e.Unselect()
			return
		}
		e.Unselect()
		e.Select(p.Target)
	case world.ButtonRight:
		e.DeleteBlock(p.Target)
	}
}
