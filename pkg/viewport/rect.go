package viewport

import "github.com/go-gl/mathgl/mgl64"

// Rect 矩形区域，Y 轴从窗口底部向上
//
// 归一化矩形的各字段是窗口尺寸的比例（0~1），像素矩形的各字段是像素。
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Scale 按窗口尺寸把归一化矩形换算为像素矩形
func (r Rect) Scale(windowWidth, windowHeight int) Rect {
	w, h := float64(windowWidth), float64(windowHeight)
	return Rect{
		X:      r.X * w,
		Y:      r.Y * h,
		Width:  r.Width * w,
		Height: r.Height * h,
	}
}

// Contains 判断点是否在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width && y >= r.Y && y <= r.Y+r.Height
}

// ToNDC 将矩形内的点换算为归一化设备坐标：ndc = ((p - origin) / size) * 2 - 1
func (r Rect) ToNDC(x, y float64) mgl64.Vec2 {
	var ndc mgl64.Vec2
	if r.Width > 0 {
		ndc[0] = ((x-r.X)/r.Width)*2 - 1
	}
	if r.Height > 0 {
		ndc[1] = ((y-r.Y)/r.Height)*2 - 1
	}
	return ndc
}

// FromNDC 是 ToNDC 的逆变换
func (r Rect) FromNDC(ndc mgl64.Vec2) (x, y float64) {
	return r.X + (ndc[0]+1)/2*r.Width, r.Y + (ndc[1]+1)/2*r.Height
}

// Aspect 返回宽高比，高度为 0 时返回 1
func (r Rect) Aspect() float64 {
	if r.Height <= 0 {
		return 1
	}
	return r.Width / r.Height
}
