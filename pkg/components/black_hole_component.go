package components

import (
	"github.com/decker502/starfall/internal/tween"
	"github.com/decker502/starfall/pkg/utils"
)

// RingKind 环的类别
type RingKind int

const (
	RingOuter RingKind = iota
	RingInner
)

// RingComponent 绕中心旋转的圆环
//
// 旋转线性 0→360°，缩放按 ScaleTrack 循环。
// 在 Loop.Delay 之前保持初始状态（旋转 0，缩放 1）。
type RingComponent struct {
	Kind  RingKind
	Index int

	// Radius 基础半径（像素）
	Radius float64

	StrokeWidth float64
	Alpha       float64

	// GlowWidth, GlowAlpha 光晕宽度与不透明度
	GlowWidth float64
	GlowAlpha float64

	Loop       tween.Loop
	ScaleTrack tween.Track

	// 运行时状态
	Rotation float64 // 度
	Scale    float64
}

// CoreGlowComponent 中心脉动光晕
type CoreGlowComponent struct {
	Radius float64

	Loop         tween.Loop
	ScaleTrack   tween.Track
	OpacityTrack tween.Track

	Scale   float64
	Opacity float64
}

// OrbitParticleComponent 在中心附近三个随机路径点之间往复的粒子
//
// 所有随机参数在创建时确定，之后不再重新生成。
// Delay 之前粒子停在 Initial 偏移处。
type OrbitParticleComponent struct {
	// Size 粒子直径（像素）
	Size float64

	// Distance 路径点离中心的最大距离
	Distance float64

	// BaseOpacity 基础不透明度
	BaseOpacity float64

	// Initial 动画开始前相对中心的偏移
	Initial utils.Point

	Loop         tween.Loop
	XTrack       tween.Track
	YTrack       tween.Track
	OpacityTrack tween.Track
	ScaleTrack   tween.Track

	// 运行时状态：相对中心的偏移
	Offset  utils.Point
	Opacity float64
	Scale   float64
}
