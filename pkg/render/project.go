package render

import (
	"github.com/decker502/blockmap/pkg/camera"
	"github.com/go-gl/mathgl/mgl64"
)

// Segment 屏幕空间线段，坐标相对视口左上角
type Segment struct {
	X0, Y0, X1, Y1 float32
}

// ProjectSegment 把世界空间线段投影到 width×height 的视口图像上
//
// 任一端点落在相机近平面之后或远平面之外时返回 false，不做裁剪。
func ProjectSegment(cam camera.Camera, a, b mgl64.Vec3, width, height int) (Segment, bool) {
	pa, ok := toPixel(cam, a, width, height)
	if !ok {
		return Segment{}, false
	}
	pb, ok := toPixel(cam, b, width, height)
	if !ok {
		return Segment{}, false
	}
	return Segment{X0: pa[0], Y0: pa[1], X1: pb[0], Y1: pb[1]}, true
}

func toPixel(cam camera.Camera, p mgl64.Vec3, width, height int) ([2]float32, bool) {
	ndc := cam.Project(p)
	if ndc[2] < -1 || ndc[2] > 1 {
		return [2]float32{}, false
	}
	x := (ndc[0] + 1) / 2 * float64(width)
	y := (1 - ndc[1]) / 2 * float64(height)
	return [2]float32{float32(x), float32(y)}, true
}

// GridLines 返回 size×size 网格的线段（世界坐标），网格平面 y = -0.5，格线落在半整数上
func GridLines(size int) [][2]mgl64.Vec3 {
	lo := float64(-size/2) - 0.5
	hi := lo + float64(size)
	const y = -0.5
	lines := make([][2]mgl64.Vec3, 0, 2*(size+1))
	for i := 0; i <= size; i++ {
		v := lo + float64(i)
		lines = append(lines,
			[2]mgl64.Vec3{{v, y, lo}, {v, y, hi}},
			[2]mgl64.Vec3{{lo, y, v}, {hi, y, v}},
		)
	}
	return lines
}
