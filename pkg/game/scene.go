package game

import "github.com/decker502/starfall/pkg/render"

// Scene 背景动画场景（星空、黑洞、叠加）
// 每个场景独占自己的实体集合，场景之间互不读取。
type Scene interface {
	// Update 推进场景逻辑，deltaTime 为距上次更新的秒数
	Update(deltaTime float64)

	// Draw 把当前帧画到 surface 上；surface 为 nil 时不绘制
	Draw(surface render.Surface)

	// Resize 通知绘制面尺寸（像素）
	Resize(width, height int)

	// Close 释放场景：取消待触发的调度，此后 Update/Draw 都是空操作
	// 可重复调用
	Close()
}

// LightningToggler 可选接口：支持运行时开关闪电的场景
type LightningToggler interface {
	SetLightningEnabled(enabled bool)
}
