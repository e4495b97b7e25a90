package systems

import (
	"log"
	"math"

	"github.com/decker502/starfall/internal/tween"
	"github.com/decker502/starfall/pkg/components"
	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/ecs"
	"github.com/decker502/starfall/pkg/utils"
)

// 黑洞动画参数
const (
	outerRingBaseRadius   = 200.0
	outerRingRadiusStep   = 50.0
	outerRingBasePeriod   = 20.0
	outerRingPeriodStep   = 5.0
	outerRingAlpha        = 0.3
	outerRingGlowBase     = 20.0
	outerRingGlowStep     = 10.0
	outerRingGlowAlpha    = 0.3
	outerRingGlowAlphaDec = 0.1

	innerRingBaseRadius = 75.0
	innerRingRadiusStep = 20.0
	innerRingBasePeriod = 15.0
	innerRingPeriodStep = 2.0
	innerRingMinPeriod  = 3.0
	innerRingAlpha      = 0.8
	innerRingAlphaDec   = 0.15
	innerRingGlowBase   = 10.0
	innerRingGlowStep   = 3.0
	innerRingGlowAlpha  = 0.7
	innerRingGlowDec    = 0.1
	innerRingDelayStep  = 0.2

	minRingAlpha = 0.05

	coreGlowRadius = 50.0
	coreGlowPeriod = 3.0
)

// 粒子随机参数范围
var (
	particleSize     = tween.Range{Min: 1, Max: 4}
	particleDistance = tween.Range{Min: 50, Max: 230}
	particlePeriod   = tween.Range{Min: 10, Max: 15}
	particleDelay    = tween.Range{Min: 0, Max: 5}
	particleOpacity  = tween.Range{Min: 0.3, Max: 0.8}
)

// particleTimes 粒子路径点在一个周期内的位置
var particleTimes = []float64{0, 0.5, 1}

// BlackHoleSystem 黑洞动画系统
//
// 圆环、中心光晕和粒子在创建时一次性生成，之后只按时间采样关键帧。
// 绘制面尺寸变化只移动中心点，不重新生成粒子。
type BlackHoleSystem struct {
	entityManager *ecs.EntityManager
	config        config.BlackHoleConfig
	clock         *utils.FrameClock

	startMs float64
	center  utils.Point
}

// NewBlackHoleSystem 创建黑洞系统并生成所有实体
func NewBlackHoleSystem(em *ecs.EntityManager, cfg config.BlackHoleConfig, rng utils.RandomSource, clock *utils.FrameClock) *BlackHoleSystem {
	s := &BlackHoleSystem{
		entityManager: em,
		config:        cfg,
		clock:         clock,
		startMs:       clock.NowMillis(),
	}

	for i := 0; i < cfg.OuterRings; i++ {
		addEntity(em, NewOuterRing(i))
	}
	for i := 0; i < cfg.InnerRings; i++ {
		addEntity(em, NewInnerRing(i))
	}
	addEntity(em, NewCoreGlow())
	for i := 0; i < cfg.Particles; i++ {
		addEntity(em, NewOrbitParticle(rng))
	}

	log.Printf("[BlackHoleSystem] Created %d outer rings, %d inner rings, %d particles",
		cfg.OuterRings, cfg.InnerRings, cfg.Particles)

	s.Update(0)
	return s
}

// NewOuterRing 创建第 i 个外环
func NewOuterRing(i int) *components.RingComponent {
	fi := float64(i)
	return &components.RingComponent{
		Kind:        components.RingOuter,
		Index:       i,
		Radius:      outerRingBaseRadius + outerRingRadiusStep*fi,
		StrokeWidth: 1,
		Alpha:       outerRingAlpha,
		GlowWidth:   outerRingGlowBase + outerRingGlowStep*fi,
		GlowAlpha:   math.Max(outerRingGlowAlpha-outerRingGlowAlphaDec*fi, minRingAlpha),
		Loop:        tween.Loop{Period: outerRingBasePeriod + outerRingPeriodStep*fi},
		ScaleTrack:  tween.NewTrack([]float64{1, 1.05, 1}, nil, tween.Linear),
		Scale:       1,
	}
}

// NewInnerRing 创建第 i 个内环
func NewInnerRing(i int) *components.RingComponent {
	fi := float64(i)
	return &components.RingComponent{
		Kind:        components.RingInner,
		Index:       i,
		Radius:      innerRingBaseRadius + innerRingRadiusStep*fi,
		StrokeWidth: 2,
		Alpha:       math.Max(innerRingAlpha-innerRingAlphaDec*fi, minRingAlpha),
		GlowWidth:   innerRingGlowBase + innerRingGlowStep*fi,
		GlowAlpha:   math.Max(innerRingGlowAlpha-innerRingGlowDec*fi, minRingAlpha),
		Loop: tween.Loop{
			Period: math.Max(innerRingBasePeriod-innerRingPeriodStep*fi, innerRingMinPeriod),
			Delay:  innerRingDelayStep * fi,
		},
		ScaleTrack: tween.NewTrack([]float64{1, 1.03, 1}, nil, tween.Linear),
		Scale:      1,
	}
}

// NewCoreGlow 创建中心光晕
func NewCoreGlow() *components.CoreGlowComponent {
	return &components.CoreGlowComponent{
		Radius:       coreGlowRadius,
		Loop:         tween.Loop{Period: coreGlowPeriod},
		ScaleTrack:   tween.NewTrack([]float64{1, 1.2, 1}, nil, tween.EaseInOut),
		OpacityTrack: tween.NewTrack([]float64{0.7, 0.9, 0.7}, nil, tween.EaseInOut),
		Scale:        1,
		Opacity:      0.7,
	}
}

// NewOrbitParticle 创建一个随机粒子
//
// 随机数读取顺序：尺寸、距离、周期、延迟、不透明度、
// 初始 x、初始 y、3 个 x 路径点、3 个 y 路径点。
// 每个坐标先取幅度再取方向。
func NewOrbitParticle(rng utils.RandomSource) *components.OrbitParticleComponent {
	p := &components.OrbitParticleComponent{
		Size:     particleSize.Sample(rng),
		Distance: particleDistance.Sample(rng),
	}
	p.Loop.Period = particlePeriod.Sample(rng)
	p.Loop.Delay = particleDelay.Sample(rng)
	p.BaseOpacity = particleOpacity.Sample(rng)

	offset := func() float64 {
		v := rng.Float64() * p.Distance
		return v * utils.RandomSign(rng)
	}
	p.Initial = utils.Point{X: offset(), Y: offset()}

	xs := []float64{offset(), offset(), offset()}
	ys := []float64{offset(), offset(), offset()}
	p.XTrack = tween.NewTrack(xs, particleTimes, tween.EaseInOut)
	p.YTrack = tween.NewTrack(ys, particleTimes, tween.EaseInOut)
	p.OpacityTrack = tween.NewTrack([]float64{p.BaseOpacity, p.BaseOpacity * 1.5, p.BaseOpacity}, particleTimes, tween.EaseInOut)
	p.ScaleTrack = tween.NewTrack([]float64{1, 1.5, 1}, particleTimes, tween.EaseInOut)

	p.Offset = p.Initial
	p.Opacity = p.BaseOpacity
	p.Scale = 1
	return p
}

// Resize 把中心移到新绘制面的中点
func (s *BlackHoleSystem) Resize(width, height int) {
	s.center = utils.SurfaceCenter(width, height)
}

// Center 返回黑洞中心
func (s *BlackHoleSystem) Center() utils.Point {
	return s.center
}

// Elapsed 返回动画开始后经过的秒数
func (s *BlackHoleSystem) Elapsed() float64 {
	return (s.clock.NowMillis() - s.startMs) / 1000
}

// Update 按当前时刻采样所有关键帧
func (s *BlackHoleSystem) Update(deltaTime float64) {
	elapsed := s.Elapsed()

	for _, ring := range s.Rings() {
		p, started := ring.Loop.Progress(elapsed)
		if !started {
			ring.Rotation, ring.Scale = 0, 1
			continue
		}
		ring.Rotation = 360 * p
		ring.Scale = ring.ScaleTrack.At(p)
	}

	if core, ok := s.Core(); ok {
		p, _ := core.Loop.Progress(elapsed)
		core.Scale = core.ScaleTrack.At(p)
		core.Opacity = core.OpacityTrack.At(p)
	}

	for _, particle := range s.Particles() {
		p, started := particle.Loop.Progress(elapsed)
		if !started {
			particle.Offset = particle.Initial
			particle.Opacity = particle.BaseOpacity
			particle.Scale = 1
			continue
		}
		particle.Offset = utils.Point{X: particle.XTrack.At(p), Y: particle.YTrack.At(p)}
		particle.Opacity = particle.OpacityTrack.At(p)
		particle.Scale = particle.ScaleTrack.At(p)
	}
}

// Rings 按创建顺序返回所有圆环（先外环后内环）
func (s *BlackHoleSystem) Rings() []*components.RingComponent {
	ids := ecs.GetEntitiesWith1[*components.RingComponent](s.entityManager)
	rings := make([]*components.RingComponent, 0, len(ids))
	for _, id := range ids {
		if ring, ok := ecs.GetComponent[*components.RingComponent](s.entityManager, id); ok {
			rings = append(rings, ring)
		}
	}
	return rings
}

// Core 返回中心光晕
func (s *BlackHoleSystem) Core() (*components.CoreGlowComponent, bool) {
	ids := ecs.GetEntitiesWith1[*components.CoreGlowComponent](s.entityManager)
	if len(ids) == 0 {
		return nil, false
	}
	return ecs.GetComponent[*components.CoreGlowComponent](s.entityManager, ids[0])
}

// Particles 按创建顺序返回所有粒子
func (s *BlackHoleSystem) Particles() []*components.OrbitParticleComponent {
	ids := ecs.GetEntitiesWith1[*components.OrbitParticleComponent](s.entityManager)
	particles := make([]*components.OrbitParticleComponent, 0, len(ids))
	for _, id := range ids {
		if p, ok := ecs.GetComponent[*components.OrbitParticleComponent](s.entityManager, id); ok {
			particles = append(particles, p)
		}
	}
	return particles
}

// addEntity 创建只带一个组件的实体
func addEntity[T any](em *ecs.EntityManager, component T) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, component)
	return id
}
