package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/decker502/starfall/pkg/utils"
	"github.com/gogpu/gg"
)

// RasterSurface 基于 gogpu/gg 的离屏位图绘制面
//
// 用于无窗口环境（快照工具、测试）。
// 绘制错误不会打断帧，第一条错误保存在 Err() 中。
type RasterSurface struct {
	ctx *gg.Context
	err error
}

// NewRasterSurface 创建 width x height 的位图绘制面
func NewRasterSurface(width, height int) *RasterSurface {
	return &RasterSurface{ctx: gg.NewContext(width, height)}
}

// Size 返回位图尺寸
func (s *RasterSurface) Size() (int, int) {
	return s.ctx.Width(), s.ctx.Height()
}

// Clear 清屏
func (s *RasterSurface) Clear(c color.NRGBA) {
	s.ctx.ClearWithColor(toRGBA(c))
}

// FillCircle 绘制实心圆
func (s *RasterSurface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	if !Visible(c) || r <= 0 {
		return
	}
	s.setColor(c)
	s.ctx.DrawCircle(cx, cy, r)
	s.record(s.ctx.Fill())
}

// StrokeCircle 绘制圆环
func (s *RasterSurface) StrokeCircle(cx, cy, r, width float64, c color.NRGBA) {
	if !Visible(c) || r <= 0 || width <= 0 {
		return
	}
	s.setColor(c)
	s.ctx.SetLineWidth(width)
	s.ctx.DrawCircle(cx, cy, r)
	s.record(s.ctx.Stroke())
}

// StrokePolyline 绘制折线
func (s *RasterSurface) StrokePolyline(points []utils.Point, width float64, c color.NRGBA) {
	if !Visible(c) || len(points) < 2 || width <= 0 {
		return
	}
	s.setColor(c)
	s.ctx.SetLineWidth(width)
	s.ctx.SetLineCap(gg.LineCapRound)
	s.ctx.SetLineJoin(gg.LineJoinRound)
	s.ctx.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.ctx.LineTo(p.X, p.Y)
	}
	s.record(s.ctx.Stroke())
}

// Image 返回当前位图
func (s *RasterSurface) Image() image.Image {
	return s.ctx.Image()
}

// EncodePNG 把当前位图写为 PNG
func (s *RasterSurface) EncodePNG(w io.Writer) error {
	if s.err != nil {
		return fmt.Errorf("raster surface: %w", s.err)
	}
	if err := s.ctx.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// Err 返回绘制过程中遇到的第一条错误
func (s *RasterSurface) Err() error {
	return s.err
}

// Close 释放 gg 上下文
func (s *RasterSurface) Close() error {
	return s.ctx.Close()
}

func (s *RasterSurface) setColor(c color.NRGBA) {
	rgba := toRGBA(c)
	s.ctx.SetRGBA(rgba.R, rgba.G, rgba.B, rgba.A)
}

func (s *RasterSurface) record(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

func toRGBA(c color.NRGBA) gg.RGBA {
	return gg.RGBA{
		R: float64(c.R) / 0xff,
		G: float64(c.G) / 0xff,
		B: float64(c.B) / 0xff,
		A: float64(c.A) / 0xff,
	}
}
