// Package render 定义背景动画的绘制面抽象及其后端实现
//
// 系统只通过 Surface 的几个基本图元绘制：清屏、实心圆、圆环、折线。
// 后端负责把它们落到具体目标上：
//
//   - EbitenSurface   窗口（ebiten/vector）
//   - RasterSurface   离屏位图，可导出 PNG（gogpu/gg）
//   - SVGSurface      矢量快照（ajstarks/svgo）
//   - TerminalSurface 终端半块字符（gdamore/tcell）
//
// 所有坐标都是绘制面局部像素坐标，颜色为非预乘的 color.NRGBA。
package render

import (
	"image/color"

	"github.com/decker502/starfall/pkg/utils"
)

// Surface 绘制面
type Surface interface {
	// Size 返回绘制面逻辑尺寸（像素）
	Size() (width, height int)

	// Clear 用颜色填满整个绘制面
	Clear(c color.NRGBA)

	// FillCircle 绘制实心圆
	FillCircle(cx, cy, r float64, c color.NRGBA)

	// StrokeCircle 绘制圆环，width 为线宽
	StrokeCircle(cx, cy, r, width float64, c color.NRGBA)

	// StrokePolyline 绘制折线，拐点为圆角
	// 同一条折线内部不重复叠加透明度
	StrokePolyline(points []utils.Point, width float64, c color.NRGBA)
}

// Visible 判断颜色是否可见（alpha > 0）
func Visible(c color.NRGBA) bool {
	return c.A > 0
}
