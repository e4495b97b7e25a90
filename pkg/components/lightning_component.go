package components

import "github.com/decker502/starfall/pkg/utils"

// LightningStrikeComponent 一道闪电
//
// Points 从顶边到底边排列，创建后不再改变；
// 只有 Opacity 随生命周期（淡入、保持、淡出）变化。
// 当 now - StartTime >= Duration 时由 LightningSystem 移除。
type LightningStrikeComponent struct {
	// ID 创建时刻（毫秒）
	ID int64

	// Points 折线顶点，共 segments+1 个
	Points []utils.Point

	// StartTime 创建时刻（帧时钟毫秒）
	StartTime float64

	// Duration 持续时间（毫秒）
	Duration float64

	// Opacity 当前包络值 [0, 1]
	Opacity float64
}

// Elapsed 返回 now 时刻闪电已存在的毫秒数
func (l *LightningStrikeComponent) Elapsed(nowMs float64) float64 {
	return nowMs - l.StartTime
}

// Expired 判断闪电是否已到期
func (l *LightningStrikeComponent) Expired(nowMs float64) bool {
	return l.Elapsed(nowMs) >= l.Duration
}
