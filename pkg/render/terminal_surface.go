package render

import (
	"image/color"
	"math"

	"github.com/decker502/starfall/pkg/utils"
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// halfBlock 上半块字符：前景色画上半格，背景色画下半格
const halfBlock = '▀'

// TerminalSurface 在终端上绘制
//
// 每个字符格表示上下两个像素，图元先光栅化到内存缓冲，
// Flush 时一次性写入 tcell 屏幕。
// Scale 为逻辑像素与终端像素的比例：逻辑坐标除以 Scale 后落到缓冲上，
// 这样星空密度等参数可以沿用窗口下的数值。
type TerminalSurface struct {
	screen tcell.Screen
	scale  float64

	cols, rows int
	pixels     []colorful.Color
}

// NewTerminalSurface 创建终端绘制面；scale <= 0 时取 1
func NewTerminalSurface(screen tcell.Screen, scale float64) *TerminalSurface {
	if scale <= 0 {
		scale = 1
	}
	s := &TerminalSurface{screen: screen, scale: scale}
	s.Sync()
	return s
}

// Sync 按终端当前尺寸重建像素缓冲（终端大小变化后调用）
func (s *TerminalSurface) Sync() {
	cols, rows := s.screen.Size()
	if cols == s.cols && rows == s.rows && s.pixels != nil {
		return
	}
	s.cols, s.rows = cols, rows
	s.pixels = make([]colorful.Color, cols*rows*2)
}

// Size 返回逻辑尺寸
func (s *TerminalSurface) Size() (int, int) {
	return int(float64(s.cols) * s.scale), int(float64(s.rows*2) * s.scale)
}

// Clear 填充整个缓冲
func (s *TerminalSurface) Clear(c color.NRGBA) {
	bg := toColorful(c)
	for i := range s.pixels {
		s.pixels[i] = bg
	}
}

// FillCircle 光栅化实心圆
// 半径小于半个终端像素的圆仍点亮其中心像素
func (s *TerminalSurface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	if !Visible(c) || r <= 0 {
		return
	}
	px, py, pr := cx/s.scale, cy/s.scale, math.Max(r/s.scale, 0.5)
	s.raster(px-pr, py-pr, px+pr, py+pr, c, func(x, y float64) bool {
		dx, dy := x-px, y-py
		return dx*dx+dy*dy <= pr*pr
	})
}

// StrokeCircle 光栅化圆环
func (s *TerminalSurface) StrokeCircle(cx, cy, r, width float64, c color.NRGBA) {
	if !Visible(c) || r <= 0 || width <= 0 {
		return
	}
	px, py, pr := cx/s.scale, cy/s.scale, r/s.scale
	half := math.Max(width/s.scale, 1) / 2
	outer := pr + half
	s.raster(px-outer, py-outer, px+outer, py+outer, c, func(x, y float64) bool {
		d := math.Hypot(x-px, y-py)
		return math.Abs(d-pr) <= half
	})
}

// StrokePolyline 光栅化折线，每个像素只混合一次
func (s *TerminalSurface) StrokePolyline(points []utils.Point, width float64, c color.NRGBA) {
	if !Visible(c) || len(points) < 2 || width <= 0 {
		return
	}
	pts := make([]utils.Point, len(points))
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i, p := range points {
		q := utils.Point{X: p.X / s.scale, Y: p.Y / s.scale}
		pts[i] = q
		minX, minY = math.Min(minX, q.X), math.Min(minY, q.Y)
		maxX, maxY = math.Max(maxX, q.X), math.Max(maxY, q.Y)
	}
	half := math.Max(width/s.scale, 1) / 2
	s.raster(minX-half, minY-half, maxX+half, maxY+half, c, func(x, y float64) bool {
		for i := 0; i < len(pts)-1; i++ {
			if segmentDistance(x, y, pts[i], pts[i+1]) <= half {
				return true
			}
		}
		return false
	})
}

// Flush 把缓冲写入屏幕并显示
func (s *TerminalSurface) Flush() {
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			top := s.pixels[(row*2)*s.cols+col]
			bottom := s.pixels[(row*2+1)*s.cols+col]
			style := tcell.StyleDefault.
				Foreground(toTcell(top)).
				Background(toTcell(bottom))
			s.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	s.screen.Show()
}

// PixelAt 返回终端像素 (x, y) 的颜色，越界返回黑色
func (s *TerminalSurface) PixelAt(x, y int) colorful.Color {
	if x < 0 || y < 0 || x >= s.cols || y >= s.rows*2 {
		return colorful.Color{}
	}
	return s.pixels[y*s.cols+x]
}

// raster 遍历包围盒内的像素中心，对 inside 为真的像素按 alpha 混合颜色
func (s *TerminalSurface) raster(x0, y0, x1, y1 float64, c color.NRGBA, inside func(x, y float64) bool) {
	src := toColorful(c)
	alpha := float64(c.A) / 0xff
	width, height := s.cols, s.rows*2

	startX := max(int(math.Floor(x0)), 0)
	startY := max(int(math.Floor(y0)), 0)
	endX := min(int(math.Ceil(x1)), width-1)
	endY := min(int(math.Ceil(y1)), height-1)

	for y := startY; y <= endY; y++ {
		for x := startX; x <= endX; x++ {
			if !inside(float64(x)+0.5, float64(y)+0.5) {
				continue
			}
			i := y*width + x
			s.pixels[i] = s.pixels[i].BlendRgb(src, alpha)
		}
	}
}

// segmentDistance 点 (x, y) 到线段 ab 的距离
func segmentDistance(x, y float64, a, b utils.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(x-a.X, y-a.Y)
	}
	t := utils.Clamp01(((x-a.X)*dx + (y-a.Y)*dy) / lenSq)
	return math.Hypot(x-(a.X+t*dx), y-(a.Y+t*dy))
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 0xff,
		G: float64(c.G) / 0xff,
		B: float64(c.B) / 0xff,
	}
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
