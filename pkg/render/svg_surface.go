package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/decker502/starfall/pkg/utils"
)

// svgPrecision svgo 只接受整数坐标，内部放大后用 scale 变换缩回
const svgPrecision = 10

// SVGSurface 把一帧图元写成 SVG 文档
//
// SVG 是追加式输出：Begin 写文档头，之后的图元依次追加，End 结束文档。
// 一个 SVGSurface 只输出一帧。
type SVGSurface struct {
	canvas *svg.SVG
	width  int
	height int
	open   bool
}

// NewSVGSurface 创建写往 w 的 SVG 绘制面
func NewSVGSurface(w io.Writer, width, height int) *SVGSurface {
	return &SVGSurface{
		canvas: svg.New(w),
		width:  width,
		height: height,
	}
}

// Begin 写入文档头
func (s *SVGSurface) Begin() {
	if s.open {
		return
	}
	s.canvas.Start(s.width, s.height)
	s.canvas.Gtransform(fmt.Sprintf("scale(%g)", 1.0/svgPrecision))
	s.open = true
}

// End 结束文档；重复调用无效果
func (s *SVGSurface) End() {
	if !s.open {
		return
	}
	s.canvas.Gend()
	s.canvas.End()
	s.open = false
}

// Size 返回文档尺寸
func (s *SVGSurface) Size() (int, int) {
	return s.width, s.height
}

// Clear 写入覆盖整个画布的背景矩形
func (s *SVGSurface) Clear(c color.NRGBA) {
	s.Begin()
	s.canvas.Rect(0, 0, s.width*svgPrecision, s.height*svgPrecision, fillStyle(c))
}

// FillCircle 写入实心圆
func (s *SVGSurface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	if !Visible(c) || r <= 0 {
		return
	}
	s.Begin()
	s.canvas.Circle(scaled(cx), scaled(cy), scaled(r), fillStyle(c))
}

// StrokeCircle 写入圆环
func (s *SVGSurface) StrokeCircle(cx, cy, r, width float64, c color.NRGBA) {
	if !Visible(c) || r <= 0 || width <= 0 {
		return
	}
	s.Begin()
	s.canvas.Circle(scaled(cx), scaled(cy), scaled(r), strokeStyle(c, width))
}

// StrokePolyline 写入折线
func (s *SVGSurface) StrokePolyline(points []utils.Point, width float64, c color.NRGBA) {
	if !Visible(c) || len(points) < 2 || width <= 0 {
		return
	}
	s.Begin()
	xs := make([]int, len(points))
	ys := make([]int, len(points))
	for i, p := range points {
		xs[i] = scaled(p.X)
		ys[i] = scaled(p.Y)
	}
	s.canvas.Polyline(xs, ys, strokeStyle(c, width)+";stroke-linecap:round;stroke-linejoin:round")
}

func scaled(v float64) int {
	return int(math.Round(v * svgPrecision))
}

func rgb(c color.NRGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

func opacity(c color.NRGBA) string {
	return fmt.Sprintf("%.3g", float64(c.A)/0xff)
}

func fillStyle(c color.NRGBA) string {
	return "fill:" + rgb(c) + ";fill-opacity:" + opacity(c) + ";stroke:none"
}

func strokeStyle(c color.NRGBA, width float64) string {
	return fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%d", rgb(c), opacity(c), scaled(width))
}
