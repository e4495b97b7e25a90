package game

import (
	"fmt"
	"log"

	"github.com/decker502/starfall/pkg/render"
)

// SceneFactory 场景工厂函数类型
// 按名称创建场景，避免 game 包依赖具体场景实现
type SceneFactory func(name string) (Scene, error)

// SceneManager 管理当前活动场景
//
// 同一时刻只有一个场景接收 Update/Draw。
// 切换场景时关闭旧场景，新场景立即按最近一次的绘制面尺寸 Resize。
type SceneManager struct {
	factory SceneFactory
	order   []string

	currentScene Scene
	currentName  string

	width  int
	height int
}

// NewSceneManager 创建场景管理器
//
// 参数：
//   - factory: 场景工厂
//   - order: 场景名称列表，Cycle 按此顺序轮换
func NewSceneManager(factory SceneFactory, order ...string) *SceneManager {
	return &SceneManager{
		factory: factory,
		order:   order,
	}
}

// SwitchTo 切换到指定名称的场景
// 创建失败时保留当前场景并返回错误
func (sm *SceneManager) SwitchTo(name string) error {
	if sm.factory == nil {
		return fmt.Errorf("scene factory not set")
	}

	scene, err := sm.factory(name)
	if err != nil {
		return fmt.Errorf("failed to create scene %q: %w", name, err)
	}

	if sm.currentScene != nil {
		sm.currentScene.Close()
	}
	sm.currentScene = scene
	sm.currentName = name

	if sm.width > 0 || sm.height > 0 {
		scene.Resize(sm.width, sm.height)
	}

	log.Printf("[SceneManager] 切换到场景: %s", name)
	return nil
}

// Cycle 切换到 order 中的下一个场景
func (sm *SceneManager) Cycle() error {
	if len(sm.order) == 0 {
		return fmt.Errorf("no scenes to cycle through")
	}

	next := sm.order[0]
	for i, name := range sm.order {
		if name == sm.currentName {
			next = sm.order[(i+1)%len(sm.order)]
			break
		}
	}
	return sm.SwitchTo(next)
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentName 返回当前场景名称
func (sm *SceneManager) CurrentName() string {
	return sm.currentName
}

// Resize 记录绘制面尺寸并转发给当前场景
func (sm *SceneManager) Resize(width, height int) {
	sm.width, sm.height = width, height
	if sm.currentScene != nil {
		sm.currentScene.Resize(width, height)
	}
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(surface render.Surface) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(surface)
	}
}

// Close 关闭当前场景
func (sm *SceneManager) Close() {
	if sm.currentScene != nil {
		sm.currentScene.Close()
		sm.currentScene = nil
		sm.currentName = ""
	}
}
