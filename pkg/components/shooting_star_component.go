package components

// ShootingStarComponent 流星
//
// 从绘制面某条边出发沿固定角度直线飞行，
// 拖尾长度随飞行距离增长，飞出边界 20 像素后移除。
type ShootingStarComponent struct {
	// X, Y 头部位置
	X float64
	Y float64

	// Angle 飞行方向（度，0° 向右，顺时针）
	Angle float64

	// Speed 每帧移动像素（按 60 FPS 折算）
	Speed float64

	// Distance 已飞行距离
	Distance float64

	// Scale 拖尾缩放 = 1 + Distance/100
	Scale float64
}
