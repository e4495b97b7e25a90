package render

import (
	"image/color"

	"github.com/decker502/starfall/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EbitenSurface 把图元画到 ebiten 图像上
//
// 每帧用 Bind 绑定 Draw 收到的 screen。
// 折线先以不透明方式画到离屏图像，再整体按 alpha 合成，
// 避免线段连接处透明度叠加出亮点。
type EbitenSurface struct {
	target  *ebiten.Image
	scratch *ebiten.Image
}

// NewEbitenSurface 创建 ebiten 绘制面
func NewEbitenSurface() *EbitenSurface {
	return &EbitenSurface{}
}

// Bind 绑定本帧的绘制目标
func (s *EbitenSurface) Bind(target *ebiten.Image) {
	s.target = target
}

// Size 返回绑定图像的尺寸
func (s *EbitenSurface) Size() (int, int) {
	if s.target == nil {
		return 0, 0
	}
	b := s.target.Bounds()
	return b.Dx(), b.Dy()
}

// Clear 清屏
func (s *EbitenSurface) Clear(c color.NRGBA) {
	if s.target == nil {
		return
	}
	s.target.Fill(c)
}

// FillCircle 绘制实心圆
func (s *EbitenSurface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	if s.target == nil || !Visible(c) || r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.target, float32(cx), float32(cy), float32(r), c, true)
}

// StrokeCircle 绘制圆环
func (s *EbitenSurface) StrokeCircle(cx, cy, r, width float64, c color.NRGBA) {
	if s.target == nil || !Visible(c) || r <= 0 || width <= 0 {
		return
	}
	vector.StrokeCircle(s.target, float32(cx), float32(cy), float32(r), float32(width), c, true)
}

// StrokePolyline 绘制折线
func (s *EbitenSurface) StrokePolyline(points []utils.Point, width float64, c color.NRGBA) {
	if s.target == nil || !Visible(c) || len(points) < 2 || width <= 0 {
		return
	}

	scratch := s.scratchImage()
	scratch.Clear()

	opaque := c
	opaque.A = 0xff
	w := float32(width)
	for i := 0; i < len(points)-1; i++ {
		p0, p1 := points[i], points[i+1]
		vector.StrokeLine(scratch, float32(p0.X), float32(p0.Y), float32(p1.X), float32(p1.Y), w, opaque, true)
	}
	// 圆角拐点和端点
	for _, p := range points {
		vector.DrawFilledCircle(scratch, float32(p.X), float32(p.Y), w/2, opaque, true)
	}

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(c.A) / 0xff)
	s.target.DrawImage(scratch, op)
}

// scratchImage 返回与目标同尺寸的离屏图像，尺寸变化时重建
func (s *EbitenSurface) scratchImage() *ebiten.Image {
	w, h := s.Size()
	if s.scratch != nil {
		b := s.scratch.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return s.scratch
		}
		s.scratch.Deallocate()
	}
	s.scratch = ebiten.NewImage(w, h)
	return s.scratch
}
