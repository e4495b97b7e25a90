package scenes

import (
	"github.com/decker502/starfall/pkg/render"
)

// LayeredScene 星空在下、黑洞在上
type LayeredScene struct {
	background *StarfieldScene
	foreground *BlackHoleScene
	closed     bool
}

// NewLayeredScene 组合两个场景，Close 时一并关闭
func NewLayeredScene(background *StarfieldScene, foreground *BlackHoleScene) *LayeredScene {
	return &LayeredScene{background: background, foreground: foreground}
}

func (s *LayeredScene) Update(deltaTime float64) {
	if s.closed {
		return
	}
	s.background.Update(deltaTime)
	s.foreground.Update(deltaTime)
}

func (s *LayeredScene) Draw(surface render.Surface) {
	if s.closed || surface == nil {
		return
	}
	s.background.renderSystem.Clear(surface)
	s.background.drawLayer(surface)
	s.foreground.drawLayer(surface)
}

func (s *LayeredScene) Resize(width, height int) {
	s.background.Resize(width, height)
	s.foreground.Resize(width, height)
}

// SetLightningEnabled 转发给星空层
func (s *LayeredScene) SetLightningEnabled(enabled bool) {
	s.background.SetLightningEnabled(enabled)
}

func (s *LayeredScene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.background.Close()
	s.foreground.Close()
}

// Background 返回星空层
func (s *LayeredScene) Background() *StarfieldScene {
	return s.background
}

// Foreground 返回黑洞层
func (s *LayeredScene) Foreground() *BlackHoleScene {
	return s.foreground
}
