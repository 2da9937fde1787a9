package camera

import (
	"github.com/decker502/blockmap/pkg/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Orthographic 正交相机
//
// 视体：left/right = ∓Height·aspect，top/bottom = ±Height。
type Orthographic struct {
	Transform
	Height float64 // 视体半高
	Near   float64
	Far    float64
	aspect float64
}

// NewOrthographic 创建正交相机，位于 (0, 0, 1) 看向原点
func NewOrthographic(height, aspect, near, far float64) *Orthographic {
	return &Orthographic{
		Transform: defaultTransform(),
		Height:    height,
		Near:      near,
		Far:       far,
		aspect:    sanitizeAspect(aspect),
	}
}

// SetAspect 更新宽高比，保持 Height 不变
func (c *Orthographic) SetAspect(aspect float64) {
	c.aspect = sanitizeAspect(aspect)
}

// Aspect 返回宽高比
func (c *Orthographic) Aspect() float64 {
	return c.aspect
}

// Eye 返回位姿
func (c *Orthographic) Eye() *Transform {
	return &c.Transform
}

// Bounds 返回视体的 left, right, bottom, top
func (c *Orthographic) Bounds() (left, right, bottom, top float64) {
	return -c.Height * c.aspect, c.Height * c.aspect, -c.Height, c.Height
}

// Projection 返回正交投影矩阵
func (c *Orthographic) Projection() mgl64.Mat4 {
	l, r, b, t := c.Bounds()
	return mgl64.Ortho(l, r, b, t, c.Near, c.Far)
}

// Ray 射线起点在近平面上，方向为相机朝向
func (c *Orthographic) Ray(ndc mgl64.Vec2) scene.Ray {
	origin := unproject(c, mgl64.Vec3{ndc[0], ndc[1], -1})
	return scene.NewRay(origin, c.Forward())
}

// Project 将世界坐标投影到 NDC
func (c *Orthographic) Project(p mgl64.Vec3) mgl64.Vec3 {
	return project(c, p)
}

var _ Camera = (*Orthographic)(nil)
