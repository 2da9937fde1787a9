// Package world 实现对象注册表：持有场景根节点与可拾取对象集合
//
// 不变量：可拾取集合中的对象一定在场景图中；反之不要求
// （网格线、预览方块等辅助节点只在场景图中，不可拾取）。
package world

import (
	"sort"

	"github.com/decker502/blockmap/pkg/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Hit 一次命中
type Hit struct {
	Object   *TracedObject // 命中的追踪对象
	Node     *scene.Node   // 实际被击中的几何节点（Object.Node() 或其后代）
	Normal   mgl64.Vec3
	Distance float64
	Point    mgl64.Vec3
}

// World 对象注册表
type World struct {
	root   *scene.Node
	traced []*TracedObject
	byID   map[ObjectID]*TracedObject
}

// NewWorld 创建空 World
func NewWorld() *World {
	return &World{
		root:   scene.NewGroup("scene"),
		traced: make([]*TracedObject, 0),
		byID:   make(map[ObjectID]*TracedObject),
	}
}

// Scene 返回场景根节点（供渲染遍历）
func (w *World) Scene() *scene.Node {
	return w.root
}

// Add 将辅助节点加入场景图，不可拾取
func (w *World) Add(node *scene.Node) {
	w.root.AddChild(node)
}

// RemoveNode 从场景图移除辅助节点
func (w *World) RemoveNode(node *scene.Node) {
	w.root.RemoveChild(node)
}

// Trace 将对象加入场景图与可拾取集合；已追踪时为空操作
func (w *World) Trace(obj *TracedObject) {
	if obj == nil || w.IsTraced(obj) {
		return
	}
	if obj.world != nil && obj.world != w {
		obj.world.Remove(obj)
	}
	w.traced = append(w.traced, obj)
	w.byID[obj.id] = obj
	w.root.AddChild(obj.node)
	obj.world = w
}

// Remove 将对象从可拾取集合与场景图移除
//
// 对未追踪的对象只做场景图移除；绑定在其他 World 的对象不受影响。
func (w *World) Remove(obj *TracedObject) {
	if obj == nil || (obj.world != nil && obj.world != w) {
		return
	}
	for i, o := range w.traced {
		if o == obj {
			w.traced = append(w.traced[:i], w.traced[i+1:]...)
			delete(w.byID, obj.id)
			break
		}
	}
	if obj.world == w {
		obj.world = nil
	}
	obj.node.RemoveFromParent()
}

// IsTraced 对象是否在可拾取集合中
func (w *World) IsTraced(obj *TracedObject) bool {
	if obj == nil {
		return false
	}
	return w.byID[obj.id] == obj
}

// Lookup 按标识查找追踪对象
func (w *World) Lookup(id ObjectID) (*TracedObject, bool) {
	obj, ok := w.byID[id]
	return obj, ok
}

// Traced 返回可拾取对象列表的副本（按加入顺序）
func (w *World) Traced() []*TracedObject {
	out := make([]*TracedObject, len(w.traced))
	copy(out, w.traced)
	return out
}

// FindTraced 返回第一个满足条件的追踪对象
func (w *World) FindTraced(pred func(*TracedObject) bool) (*TracedObject, bool) {
	for _, o := range w.traced {
		if pred(o) {
			return o, true
		}
	}
	return nil, false
}

// HitTest 对所有可拾取对象（递归到子节点）求交，按距离从近到远返回
//
// 没有命中时返回空切片。
func (w *World) HitTest(ray scene.Ray) []Hit {
	hits := make([]Hit, 0)
	for _, obj := range w.traced {
		for _, in := range obj.node.Raycast(ray) {
			hits = append(hits, Hit{
				Object:   obj,
				Node:     in.Node,
				Normal:   in.Normal,
				Distance: in.Distance,
				Point:    in.Point,
			})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

// Objects 返回命中列表中去重后的对象（保持首次出现的顺序）
func Objects(hits []Hit) []*TracedObject {
	seen := make(map[*TracedObject]struct{}, len(hits))
	out := make([]*TracedObject, 0, len(hits))
	for _, h := range hits {
		if _, ok := seen[h.Object]; ok {
			continue
		}
		seen[h.Object] = struct{}{}
		out = append(out, h.Object)
	}
	return out
}
