// Package render 用 ebiten vector 绘制各视口的线框画面
package render

import (
	"image"
	"image/color"

	"github.com/decker502/blockmap/pkg/editor"
	"github.com/decker502/blockmap/pkg/scene"
	"github.com/decker502/blockmap/pkg/viewport"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Palette 线框配色
type Palette struct {
	Background color.RGBA
	Grid       color.RGBA
	Block      color.RGBA
	Selected   color.RGBA
	Preview    color.RGBA
	Border     color.RGBA
	Active     color.RGBA
}

// DefaultPalette 深色背景配色
var DefaultPalette = Palette{
	Background: color.RGBA{R: 30, G: 30, B: 36, A: 255},
	Grid:       color.RGBA{R: 80, G: 80, B: 90, A: 255},
	Block:      color.RGBA{R: 220, G: 220, B: 220, A: 255},
	Selected:   color.RGBA{R: 255, G: 200, B: 0, A: 255},
	Preview:    color.RGBA{R: 80, G: 200, B: 120, A: 255},
	Border:     color.RGBA{R: 120, G: 120, B: 130, A: 255},
	Active:     color.RGBA{R: 90, G: 160, B: 255, A: 255},
}

// Renderer 线框渲染器
type Renderer struct {
	Palette     Palette
	StrokeWidth float32
}

// NewRenderer 创建使用默认配色的渲染器
func NewRenderer() *Renderer {
	return &Renderer{Palette: DefaultPalette, StrokeWidth: 1}
}

// DrawViewport 在视口像素矩形内绘制网格、方块、预览方块与边框
func (r *Renderer) DrawViewport(screen *ebiten.Image, vp *viewport.Viewport, ed *editor.Editor) {
	bounds := screen.Bounds()
	px := vp.PixelRect()
	// 像素矩形 Y 从底部量起，ebiten 图像 Y 从顶部量起
	top := bounds.Dy() - int(px.Y+px.Height)
	rect := image.Rect(int(px.X), top, int(px.X+px.Width), top+int(px.Height))
	if rect.Empty() {
		return
	}
	dst := screen.SubImage(rect).(*ebiten.Image)
	dst.Fill(r.Palette.Background)

	w, h := rect.Dx(), rect.Dy()
	cam := vp.Camera()
	// SubImage 保留父图坐标
	ox, oy := float32(rect.Min.X), float32(rect.Min.Y)

	line := func(a, b mgl64.Vec3, clr color.RGBA, width float32) {
		seg, ok := ProjectSegment(cam, a, b, w, h)
		if !ok {
			return
		}
		vector.StrokeLine(dst, ox+seg.X0, oy+seg.Y0, ox+seg.X1, oy+seg.Y1, width, clr, true)
	}

	for _, l := range GridLines(ed.GridSize()) {
		line(l[0], l[1], r.Palette.Grid, r.StrokeWidth)
	}

	selected := ed.Selected()
	for _, b := range ed.Blocks() {
		clr, width := r.Palette.Block, r.StrokeWidth
		if b == selected {
			clr, width = r.Palette.Selected, r.StrokeWidth*2
		}
		r.drawNode(b.Node(), clr, width, line)
	}
	if ed.Preview().Visible {
		r.drawNode(ed.Preview(), r.Palette.Preview, r.StrokeWidth, line)
	}

	border := r.Palette.Border
	if ed.Active() == vp {
		border = r.Palette.Active
	}
	vector.StrokeRect(dst, ox, oy, float32(w), float32(h), r.StrokeWidth, border, false)
	ebitenutil.DebugPrintAt(dst, vp.Name, rect.Min.X+4, rect.Min.Y+4)
}

func (r *Renderer) drawNode(n *scene.Node, clr color.RGBA, width float32, line func(a, b mgl64.Vec3, clr color.RGBA, width float32)) {
	if !n.Visible || n.Geometry == nil {
		return
	}
	origin := n.WorldPosition()
	for _, e := range n.Geometry.Edges() {
		line(origin.Add(e[0]), origin.Add(e[1]), clr, width)
	}
}
