package camera

import (
	"github.com/decker502/blockmap/pkg/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Perspective 透视相机
type Perspective struct {
	Transform
	FOV    float64 // 垂直视角（角度）
	Near   float64
	Far    float64
	aspect float64
}

// NewPerspective 创建透视相机，位于 (0, 0, 1) 看向原点
func NewPerspective(fov, aspect, near, far float64) *Perspective {
	return &Perspective{
		Transform: defaultTransform(),
		FOV:       fov,
		Near:      near,
		Far:       far,
		aspect:    sanitizeAspect(aspect),
	}
}

// SetAspect 更新宽高比
func (c *Perspective) SetAspect(aspect float64) {
	c.aspect = sanitizeAspect(aspect)
}

// Aspect 返回宽高比
func (c *Perspective) Aspect() float64 {
	return c.aspect
}

// Eye 返回位姿
func (c *Perspective) Eye() *Transform {
	return &c.Transform
}

// Projection 返回透视投影矩阵
func (c *Perspective) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.aspect, c.Near, c.Far)
}

// Ray 射线从相机位置出发，穿过 NDC 点
func (c *Perspective) Ray(ndc mgl64.Vec2) scene.Ray {
	target := unproject(c, mgl64.Vec3{ndc[0], ndc[1], 0.5})
	return scene.NewRay(c.Position, target.Sub(c.Position))
}

// Project 将世界坐标投影到 NDC
func (c *Perspective) Project(p mgl64.Vec3) mgl64.Vec3 {
	return project(c, p)
}

// sanitizeAspect 视口尺寸为 0 时避免产生 NaN 矩阵
func sanitizeAspect(aspect float64) float64 {
	if aspect <= 0 || aspect != aspect {
		return 1
	}
	return aspect
}

var _ Camera = (*Perspective)(nil)
