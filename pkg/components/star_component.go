package components

// StarComponent 星空中的一颗星
//
// 位置、半径在生成时确定，绘制面尺寸变化时整体重新生成。
// TwinkleSpeed 为 0 表示静态星，Opacity 始终等于 BaseOpacity。
type StarComponent struct {
	// X, Y 绘制面局部坐标（像素）
	X float64
	Y float64

	// Radius 半径（像素）
	Radius float64

	// BaseOpacity 生成时的不透明度
	BaseOpacity float64

	// Opacity 当前帧的不透明度（闪烁时每帧重算）
	Opacity float64

	// TwinkleSpeed 闪烁速度，值越小闪烁越快；0 = 不闪烁
	TwinkleSpeed float64
}

// Twinkles 是否为闪烁星
func (s *StarComponent) Twinkles() bool {
	return s.TwinkleSpeed > 0
}
