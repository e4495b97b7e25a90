package scenes

import (
	"log"

	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/ecs"
	"github.com/decker502/starfall/pkg/render"
	"github.com/decker502/starfall/pkg/systems"
	"github.com/decker502/starfall/pkg/utils"
)

// BlackHoleScene 黑洞动画：旋转的光环、脉动的中心和环绕粒子
type BlackHoleScene struct {
	entityManager *ecs.EntityManager
	clock         *utils.FrameClock
	blackHole     *systems.BlackHoleSystem
	renderSystem  *systems.RenderSystem
	closed        bool
}

// NewBlackHoleScene 创建黑洞场景，粒子在此一次性生成
func NewBlackHoleScene(cfg *config.BackdropConfig, rng utils.RandomSource, clock *utils.FrameClock) *BlackHoleScene {
	em := ecs.NewEntityManager()
	return &BlackHoleScene{
		entityManager: em,
		clock:         clock,
		blackHole:     systems.NewBlackHoleSystem(em, cfg.BlackHole, rng, clock),
		renderSystem:  systems.NewRenderSystem(cfg),
	}
}

func (s *BlackHoleScene) Update(deltaTime float64) {
	if s.closed {
		return
	}
	s.clock.Advance(deltaTime)
	s.blackHole.Update(deltaTime)
}

func (s *BlackHoleScene) Draw(surface render.Surface) {
	if s.closed || surface == nil {
		return
	}
	s.renderSystem.Clear(surface)
	s.drawLayer(surface)
}

func (s *BlackHoleScene) drawLayer(surface render.Surface) {
	s.renderSystem.DrawBlackHole(surface, s.blackHole)
}

// Resize 只移动中心点
func (s *BlackHoleScene) Resize(width, height int) {
	if s.closed {
		return
	}
	s.blackHole.Resize(width, height)
}

func (s *BlackHoleScene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	released := s.entityManager.EntityCount()
	s.entityManager.Clear()
	log.Printf("[BlackHoleScene] Closed, released %d entities", released)
}

// BlackHole 返回黑洞系统
func (s *BlackHoleScene) BlackHole() *systems.BlackHoleSystem {
	return s.blackHole
}
