// Package utils 提供背景动画常用的工具函数
//
// coordinates.go 定义绘制面局部坐标系下的几何工具。
//
// # 坐标系统
//
//   - 原点位于绘制面左上角
//   - X 向右增长，Y 向下增长
//   - 角度使用度数，0° 指向右方，顺时针增长（与屏幕 Y 轴方向一致）
//
// 所有生成器都只使用绘制面局部坐标，窗口缩放由渲染后端处理。
package utils

import "math"

// Point 绘制面局部坐标中的一个点（像素）
type Point struct {
	X float64
	Y float64
}

// Lerp 在 a 和 b 之间按 t 插值
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: Lerp(p.X, q.X, t), Y: Lerp(p.Y, q.Y, t)}
}

// Add 返回 p 平移 (dx, dy) 后的点
func (p Point) Add(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// SurfaceCenter 返回宽高为 width x height 的绘制面中心
func SurfaceCenter(width, height int) Point {
	return Point{X: float64(width) / 2, Y: float64(height) / 2}
}

// InBounds 判断点是否位于绘制面内（允许 margin 像素的外扩）
func InBounds(p Point, width, height int, margin float64) bool {
	return p.X >= -margin && p.X <= float64(width)+margin &&
		p.Y >= -margin && p.Y <= float64(height)+margin
}

// Polar 将角度（度）和距离转换为相对位移
func Polar(angleDeg, distance float64) (dx, dy float64) {
	rad := angleDeg * math.Pi / 180
	return math.Cos(rad) * distance, math.Sin(rad) * distance
}
