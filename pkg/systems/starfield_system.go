package systems

import (
	"log"
	"math"

	"github.com/decker502/starfall/pkg/components"
	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/ecs"
	"github.com/decker502/starfall/pkg/utils"
)

// StarfieldSystem 星空系统
//
// 职责：
//   - 按绘制面尺寸和密度生成星星（尺寸变化时整体重新生成）
//   - 每帧根据帧时钟更新闪烁星的不透明度
type StarfieldSystem struct {
	entityManager *ecs.EntityManager
	config        config.StarfieldConfig
	rng           utils.RandomSource
	clock         *utils.FrameClock

	width  int
	height int
}

// NewStarfieldSystem 创建星空系统
func NewStarfieldSystem(em *ecs.EntityManager, cfg config.StarfieldConfig, rng utils.RandomSource, clock *utils.FrameClock) *StarfieldSystem {
	return &StarfieldSystem{
		entityManager: em,
		config:        cfg,
		rng:           rng,
		clock:         clock,
	}
}

// StarCount 返回 width x height 绘制面上应生成的星星数量
func StarCount(width, height int, density float64) int {
	if width <= 0 || height <= 0 || density <= 0 {
		return 0
	}
	return int(math.Floor(float64(width) * float64(height) * density))
}

// TwinkleOpacity 计算闪烁星在 nowMs 时刻的不透明度，结果在 [0.5, 1]
func TwinkleOpacity(nowMs, speed float64) float64 {
	return 0.5 + math.Abs(math.Sin(nowMs*0.001/speed)*0.5)
}

// Generate 丢弃现有星星并按 width x height 重新生成
//
// 每颗星的随机数读取顺序固定：
// 闪烁判定（allStarsTwinkle 时跳过）、x、y、半径、不透明度、闪烁速度（仅闪烁星）。
//
// 返回生成的星星数量。
func (s *StarfieldSystem) Generate(width, height int) int {
	s.clear()
	s.width, s.height = width, height

	count := StarCount(width, height, s.config.Density)
	for i := 0; i < count; i++ {
		twinkles := s.config.AllStarsTwinkle || s.rng.Float64() < s.config.TwinkleProbability

		star := &components.StarComponent{
			X:      s.rng.Float64() * float64(width),
			Y:      s.rng.Float64() * float64(height),
			Radius: s.config.Radius.Sample(s.rng),
		}
		star.BaseOpacity = s.config.Opacity.Sample(s.rng)
		star.Opacity = star.BaseOpacity
		if twinkles {
			star.TwinkleSpeed = utils.Lerp(s.config.MinTwinkleSpeed, s.config.MaxTwinkleSpeed, s.rng.Float64())
		}

		id := s.entityManager.CreateEntity()
		ecs.AddComponent(s.entityManager, id, star)
	}

	log.Printf("[StarfieldSystem] Generated %d stars for %dx%d", count, width, height)
	return count
}

// Resize 绘制面尺寸变化时重新生成星星；尺寸不变时什么也不做
// 返回是否重新生成
func (s *StarfieldSystem) Resize(width, height int) bool {
	if width == s.width && height == s.height {
		return false
	}
	s.Generate(width, height)
	return true
}

// Size 返回当前星空对应的绘制面尺寸
func (s *StarfieldSystem) Size() (int, int) {
	return s.width, s.height
}

// Update 更新闪烁星的不透明度；静态星保持生成时的值
func (s *StarfieldSystem) Update(deltaTime float64) {
	now := s.clock.NowMillis()
	for _, star := range s.Stars() {
		if star.Twinkles() {
			star.Opacity = TwinkleOpacity(now, star.TwinkleSpeed)
		}
	}
}

// Stars 按生成顺序返回所有星星
func (s *StarfieldSystem) Stars() []*components.StarComponent {
	ids := ecs.GetEntitiesWith1[*components.StarComponent](s.entityManager)
	stars := make([]*components.StarComponent, 0, len(ids))
	for _, id := range ids {
		if star, ok := ecs.GetComponent[*components.StarComponent](s.entityManager, id); ok {
			stars = append(stars, star)
		}
	}
	return stars
}

// clear 立即删除所有星星实体
func (s *StarfieldSystem) clear() {
	for _, id := range ecs.GetEntitiesWith1[*components.StarComponent](s.entityManager) {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
}
