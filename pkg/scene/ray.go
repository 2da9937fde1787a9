// Package scene 提供编辑器使用的最小场景图与射线求交
//
// 节点只有平移变换（方块编辑器不需要旋转和缩放），
// 几何体在节点局部坐标系中描述，世界坐标 = 所有祖先位置之和。
package scene

import "github.com/go-gl/mathgl/mgl64"

// Ray 世界空间中的射线，Direction 为单位向量
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay 创建射线并归一化方向
func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At 返回射线上距离起点 t 处的点
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Intersection 单次射线求交结果
type Intersection struct {
	Node     *Node      // 被击中的几何节点
	Distance float64    // 从射线起点到交点的距离
	Point    mgl64.Vec3 // 世界空间交点
	Normal   mgl64.Vec3 // 被击中面的法线（世界空间）
}
