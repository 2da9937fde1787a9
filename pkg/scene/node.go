package scene

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// Node 场景图节点
//
// Visible 只影响绘制，不影响射线拾取：是否可拾取由 world 的追踪集合决定。
type Node struct {
	Name     string
	Position mgl64.Vec3
	Geometry Geometry // 可为 nil（纯分组节点）
	Visible  bool

	parent   *Node
	children []*Node
}

// NewNode 创建可见节点
func NewNode(name string, geometry Geometry) *Node {
	return &Node{
		Name:     name,
		Geometry: geometry,
		Visible:  true,
	}
}

// NewGroup 创建无几何体的分组节点
func NewGroup(name string) *Node {
	return NewNode(name, nil)
}

// Parent 返回父节点，根节点返回 nil
func (n *Node) Parent() *Node {
	return n.parent
}

// Children 返回子节点列表的副本
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// AddChild 添加子节点；子节点已有父节点时先从原父节点移除
func (n *Node) AddChild(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent == n {
		return
	}
	child.RemoveFromParent()
	child.parent = n
	n.children = append(n.children, child)
}

// RemoveChild 移除直接子节点；不是子节点时为空操作
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// RemoveFromParent 从父节点移除自身
func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.RemoveChild(n)
	}
}

// Contains 判断 other 是否是 n 本身或其后代
func (n *Node) Contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// WorldPosition 返回节点在世界空间的位置
func (n *Node) WorldPosition() mgl64.Vec3 {
	pos := n.Position
	for p := n.parent; p != nil; p = p.parent {
		pos = pos.Add(p.Position)
	}
	return pos
}

// Traverse 深度优先遍历节点及其后代，fn 返回 false 时不再进入该节点的子树
func (n *Node) Traverse(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Raycast 对节点及其所有后代求交，按距离从近到远排序
func (n *Node) Raycast(ray Ray) []Intersection {
	var hits []Intersection
	n.raycast(ray, &hits)
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func (n *Node) raycast(ray Ray, hits *[]Intersection) {
	if n.Geometry != nil {
		origin := ray.Origin.Sub(n.WorldPosition())
		if t, normal, ok := n.Geometry.IntersectRay(origin, ray.Direction); ok {
			*hits = append(*hits, Intersection{
				Node:     n,
				Distance: t,
				Point:    ray.At(t),
				Normal:   normal,
			})
		}
	}
	for _, c := range n.children {
		c.raycast(ray, hits)
	}
}
