// Package camera 提供透视与正交相机：视图/投影矩阵、从 NDC 构造拾取射线、世界坐标投影
package camera

import (
	"github.com/decker502/blockmap/pkg/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera 视口使用的相机
type Camera interface {
	// SetAspect 更新宽高比并重新计算投影
	SetAspect(aspect float64)
	// Aspect 返回当前宽高比
	Aspect() float64
	// View 返回视图矩阵
	View() mgl64.Mat4
	// Projection 返回投影矩阵
	Projection() mgl64.Mat4
	// Ray 返回穿过 NDC 点的世界空间射线
	Ray(ndc mgl64.Vec2) scene.Ray
	// Project 将世界坐标投影到 NDC（z 为深度，范围 [-1, 1]）
	Project(p mgl64.Vec3) mgl64.Vec3
	// Eye 返回相机的位姿
	Eye() *Transform
}

// Transform 相机位姿
type Transform struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3
}

// LookAt 设置观察目标
func (t *Transform) LookAt(target mgl64.Vec3) {
	t.Target = target
}

// View 返回视图矩阵
func (t *Transform) View() mgl64.Mat4 {
	up := t.Up
	if up.Len() == 0 {
		up = mgl64.Vec3{0, 1, 0}
	}
	return mgl64.LookAtV(t.Position, t.Target, up)
}

// Forward 返回从位置指向目标的单位向量
func (t *Transform) Forward() mgl64.Vec3 {
	d := t.Target.Sub(t.Position)
	if d.Len() == 0 {
		return mgl64.Vec3{0, 0, -1}
	}
	return d.Normalize()
}

func defaultTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 1},
		Target:   mgl64.Vec3{0, 0, 0},
		Up:       mgl64.Vec3{0, 1, 0},
	}
}

// unproject 将 NDC 点变换回世界坐标
func unproject(c Camera, ndc mgl64.Vec3) mgl64.Vec3 {
	inv := c.Projection().Mul4(c.View()).Inv()
	return mgl64.TransformCoordinate(ndc, inv)
}

func project(c Camera, p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, c.Projection().Mul4(c.View()))
}
