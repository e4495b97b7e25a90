package utils

import "time"

// FrameClock 场景内共享的帧时钟
//
// 由游戏循环在每个 tick 推进，所有系统读取同一时刻，
// 因此同一帧内闪烁、闪电包络、调度判断使用一致的时间。
// 起点通常是墙钟时间（毫秒），测试中可从 0 开始。
type FrameClock struct {
	nowMs float64
}

// NewFrameClock 创建从 startMs 开始的帧时钟
func NewFrameClock(startMs float64) *FrameClock {
	return &FrameClock{nowMs: startMs}
}

// NewWallFrameClock 创建从当前墙钟时间开始的帧时钟
func NewWallFrameClock() *FrameClock {
	return NewFrameClock(float64(time.Now().UnixMilli()))
}

// Advance 推进 deltaTime 秒
func (c *FrameClock) Advance(deltaTime float64) {
	if deltaTime > 0 {
		c.nowMs += deltaTime * 1000
	}
}

// NowMillis 返回当前时刻（毫秒）
func (c *FrameClock) NowMillis() float64 {
	return c.nowMs
}
