package scenes

import (
	"log"

	"github.com/decker502/starfall/pkg/components"
	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/ecs"
	"github.com/decker502/starfall/pkg/game"
	"github.com/decker502/starfall/pkg/render"
	"github.com/decker502/starfall/pkg/systems"
	"github.com/decker502/starfall/pkg/utils"
)

// StarfieldScene 星空背景：闪烁的星星、随机闪电和流星
//
// 每个 tick：推进帧时钟，更新闪烁，检查闪电调度，计算包络，清理到期闪电。
// 每次绘制：清屏，画星星、流星，再画不透明度非 0 的闪电。
// Close 之后 Update/Draw 都是空操作，调度不再触发。
type StarfieldScene struct {
	entityManager *ecs.EntityManager
	clock         *utils.FrameClock

	starfield     *systems.StarfieldSystem
	lightning     *systems.LightningSystem
	shootingStars *systems.ShootingStarSystem
	renderSystem  *systems.RenderSystem

	closed bool
}

// NewStarfieldScene 创建星空场景
//
// 参数：
//   - cfg: 背景配置
//   - rng: 随机源，星空、闪电、流星共用
//   - clock: 场景独占的帧时钟
//   - thunder: 闪电出现时播放雷声，可为 nil
//
// 场景在第一次 Resize 之前没有星星，也不会产生闪电。
func NewStarfieldScene(cfg *config.BackdropConfig, rng utils.RandomSource, clock *utils.FrameClock, thunder game.ThunderPlayer) *StarfieldScene {
	em := ecs.NewEntityManager()

	s := &StarfieldScene{
		entityManager: em,
		clock:         clock,
		starfield:     systems.NewStarfieldSystem(em, cfg.Starfield, rng, clock),
		lightning:     systems.NewLightningSystem(em, cfg.Lightning, rng, clock),
		shootingStars: systems.NewShootingStarSystem(em, cfg.ShootingStars, rng, clock),
		renderSystem:  systems.NewRenderSystem(cfg),
	}

	if thunder != nil {
		s.lightning.OnStrike = func(*components.LightningStrikeComponent) {
			thunder.PlayThunder()
		}
	}

	if cfg.Lightning.Enabled {
		s.lightning.Start()
	}
	if cfg.ShootingStars.Enabled {
		s.shootingStars.Start()
	}

	return s
}

// Update 推进一帧
func (s *StarfieldScene) Update(deltaTime float64) {
	if s.closed {
		return
	}
	s.clock.Advance(deltaTime)
	s.step(deltaTime)
}

// step 在已推进的时钟上运行所有系统
func (s *StarfieldScene) step(deltaTime float64) {
	s.starfield.Update(deltaTime)
	s.lightning.Update(deltaTime)
	s.shootingStars.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 清屏并绘制
func (s *StarfieldScene) Draw(surface render.Surface) {
	if s.closed || surface == nil {
		return
	}
	s.renderSystem.Clear(surface)
	s.drawLayer(surface)
}

// drawLayer 不清屏，供叠加场景复用
func (s *StarfieldScene) drawLayer(surface render.Surface) {
	s.renderSystem.DrawStars(surface, s.starfield.Stars())
	if star, ok := s.shootingStars.Current(); ok {
		s.renderSystem.DrawShootingStar(surface, star)
	}
	s.renderSystem.DrawLightning(surface, s.lightning.Strikes())
}

// Resize 尺寸变化时重新生成星星，闪电和流星使用新边界
func (s *StarfieldScene) Resize(width, height int) {
	if s.closed {
		return
	}
	s.lightning.SetSize(width, height)
	s.shootingStars.SetSize(width, height)
	s.starfield.Resize(width, height)
}

// SetLightningEnabled 开关闪电调度；已存在的闪电照常淡出
func (s *StarfieldScene) SetLightningEnabled(enabled bool) {
	if s.closed {
		return
	}
	if enabled {
		s.lightning.Start()
	} else {
		s.lightning.Stop()
	}
	log.Printf("[StarfieldScene] Lightning enabled: %v", enabled)
}

// Close 取消调度并释放实体；可重复调用
func (s *StarfieldScene) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.lightning.Stop()
	s.shootingStars.Stop()
	released := s.entityManager.EntityCount()
	s.entityManager.Clear()
	log.Printf("[StarfieldScene] Closed, released %d entities", released)
}

// Closed 是否已关闭
func (s *StarfieldScene) Closed() bool {
	return s.closed
}

// Starfield 返回星空系统
func (s *StarfieldScene) Starfield() *systems.StarfieldSystem {
	return s.starfield
}

// Lightning 返回闪电系统
func (s *StarfieldScene) Lightning() *systems.LightningSystem {
	return s.lightning
}

// ShootingStars 返回流星系统
func (s *StarfieldScene) ShootingStars() *systems.ShootingStarSystem {
	return s.shootingStars
}
