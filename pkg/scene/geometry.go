package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

// Geometry 可被射线拾取、可被线框绘制的几何体
//
// 所有坐标都在节点局部空间，几何中心位于局部原点。
type Geometry interface {
	// IntersectRay 返回局部射线与几何体的最近交点距离与面法线
	IntersectRay(origin, dir mgl64.Vec3) (t float64, normal mgl64.Vec3, ok bool)
	// Edges 返回线框绘制用的线段
	Edges() [][2]mgl64.Vec3
}

// Box 轴对齐长方体
type Box struct {
	Size mgl64.Vec3
}

// NewCube 创建边长为 size 的立方体
func NewCube(size float64) Box {
	return Box{Size: mgl64.Vec3{size, size, size}}
}

// IntersectRay 使用 slab 方法求交
//
// 起点在盒子内部时返回出射点。
func (b Box) IntersectRay(origin, dir mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	half := b.Size.Mul(0.5)
	tmin, tmax := math.Inf(-1), math.Inf(1)

	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < epsilon {
			if origin[i] < -half[i] || origin[i] > half[i] {
				return 0, mgl64.Vec3{}, false
			}
			continue
		}
		t1 := (-half[i] - origin[i]) / dir[i]
		t2 := (half[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, mgl64.Vec3{}, false
		}
	}

	if tmax < 0 {
		return 0, mgl64.Vec3{}, false
	}
	t := tmin
	if t < 0 {
		t = tmax
	}
	return t, b.faceNormal(origin.Add(dir.Mul(t))), true
}

// faceNormal 根据交点确定所在面：相对半边长比例最大的轴
func (b Box) faceNormal(p mgl64.Vec3) mgl64.Vec3 {
	half := b.Size.Mul(0.5)
	axis, best := 0, -1.0
	for i := 0; i < 3; i++ {
		if half[i] == 0 {
			continue
		}
		if r := math.Abs(p[i] / half[i]); r > best {
			axis, best = i, r
		}
	}
	var n mgl64.Vec3
	if p[axis] < 0 {
		n[axis] = -1
	} else {
		n[axis] = 1
	}
	return n
}

// Edges 返回 12 条棱
func (b Box) Edges() [][2]mgl64.Vec3 {
	h := b.Size.Mul(0.5)
	c := func(sx, sy, sz float64) mgl64.Vec3 {
		return mgl64.Vec3{sx * h[0], sy * h[1], sz * h[2]}
	}
	return [][2]mgl64.Vec3{
		// 底面
		{c(-1, -1, -1), c(1, -1, -1)},
		{c(1, -1, -1), c(1, -1, 1)},
		{c(1, -1, 1), c(-1, -1, 1)},
		{c(-1, -1, 1), c(-1, -1, -1)},
		// 顶面
		{c(-1, 1, -1), c(1, 1, -1)},
		{c(1, 1, -1), c(1, 1, 1)},
		{c(1, 1, 1), c(-1, 1, 1)},
		{c(-1, 1, 1), c(-1, 1, -1)},
		// 竖边
		{c(-1, -1, -1), c(-1, 1, -1)},
		{c(1, -1, -1), c(1, 1, -1)},
		{c(1, -1, 1), c(1, 1, 1)},
		{c(-1, -1, 1), c(-1, 1, 1)},
	}
}

// Plane 水平（XZ 平面内）矩形，位于局部 y = 0，双面可拾取
type Plane struct {
	Width float64 // X 方向
	Depth float64 // Z 方向
}

// IntersectRay 与 y = 0 平面求交并检查是否落在矩形内
//
// 法线朝向射线来的一侧。
func (p Plane) IntersectRay(origin, dir mgl64.Vec3) (float64, mgl64.Vec3, bool) {
	if math.Abs(dir[1]) < epsilon {
		return 0, mgl64.Vec3{}, false
	}
	t := -origin[1] / dir[1]
	if t < 0 {
		return 0, mgl64.Vec3{}, false
	}
	hit := origin.Add(dir.Mul(t))
	if math.Abs(hit[0]) > p.Width/2 || math.Abs(hit[2]) > p.Depth/2 {
		return 0, mgl64.Vec3{}, false
	}
	normal := mgl64.Vec3{0, 1, 0}
	if dir[1] > 0 {
		normal = mgl64.Vec3{0, -1, 0}
	}
	return t, normal, true
}

// Edges 返回矩形的 4 条边
func (p Plane) Edges() [][2]mgl64.Vec3 {
	w, d := p.Width/2, p.Depth/2
	a := mgl64.Vec3{-w, 0, -d}
	b := mgl64.Vec3{w, 0, -d}
	c := mgl64.Vec3{w, 0, d}
	e := mgl64.Vec3{-w, 0, d}
	return [][2]mgl64.Vec3{{a, b}, {b, c}, {c, e}, {e, a}}
}
