package world

import (
	"github.com/decker502/blockmap/pkg/event"
	"github.com/decker502/blockmap/pkg/scene"
	"github.com/google/uuid"
)

// ObjectID 追踪对象的稳定标识，创建时分配，不依赖显示名称
type ObjectID string

// NewObjectID 生成新的对象标识（UUIDv7，按创建时间有序）
func NewObjectID() ObjectID {
	return ObjectID(uuid.Must(uuid.NewV7()).String())
}

// TracedObject 可被拾取的对象
//
// 它包装一个场景节点（可以带子节点），并可绑定到至多一个 World。
// Bind / Unbind 是唯一改变其注册状态的方法，二者互逆，适合放进 history.Action。
type TracedObject struct {
	id     ObjectID
	node   *scene.Node
	world  *World
	events event.Dispatcher[PointerKind, PointerEvent]
}

// NewTracedObject 包装节点，分配新的 ObjectID
func NewTracedObject(node *scene.Node) *TracedObject {
	return NewTracedObjectWithID(NewObjectID(), node)
}

// NewTracedObjectWithID 使用指定标识包装节点（从存档恢复时使用）
func NewTracedObjectWithID(id ObjectID, node *scene.Node) *TracedObject {
	if node == nil {
		node = scene.NewGroup(string(id))
	}
	return &TracedObject{id: id, node: node}
}

// ID 返回对象标识
func (o *TracedObject) ID() ObjectID {
	return o.id
}

// Node 返回被包装的场景节点
func (o *TracedObject) Node() *scene.Node {
	return o.node
}

// World 返回当前绑定的 World，未绑定返回 nil
func (o *TracedObject) World() *World {
	return o.world
}

// Bound 是否已绑定
func (o *TracedObject) Bound() bool {
	return o.world != nil
}

// Bind 绑定到 w：加入场景图与可拾取集合
//
// 已绑定到其他 World 时先解绑，保证对象只出现在一个注册表中。
func (o *TracedObject) Bind(w *World) {
	if w == nil {
		return
	}
	if o.world != nil && o.world != w {
		o.Unbind()
	}
	w.Trace(o)
}

// Unbind 从当前 World 移除；未绑定时为空操作
func (o *TracedObject) Unbind() {
	if o.world == nil {
		return
	}
	o.world.Remove(o)
}

// On 订阅分发到该对象的指针事件
func (o *TracedObject) On(kind PointerKind, fn func(PointerEvent)) event.Handle {
	return o.events.On(kind, fn)
}

// Dispatch 将事件分发给该对象的订阅者
func (o *TracedObject) Dispatch(e PointerEvent) {
	o.events.Emit(e.Kind, e)
}
