package systems

import (
	"math"

	"github.com/decker502/starfall/pkg/components"
	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/ecs"
	"github.com/decker502/starfall/pkg/utils"
)

const (
	// shootingStarMargin 流星飞出边界多少像素后移除
	shootingStarMargin = 20

	// shootingStarFrameRate 速度配置按此帧率折算为每秒像素
	shootingStarFrameRate = 60
)

// shootingStarEdges 四条边对应的飞行角度：上、右、下、左
var shootingStarEdges = [4]float64{45, 135, 225, 315}

// ShootingStarSystem 流星系统
//
// 同一时刻最多一颗流星。启动后立即产生第一颗，
// 之后每隔 [minDelay, maxDelay) 毫秒产生新的一颗并替换当前流星。
type ShootingStarSystem struct {
	entityManager *ecs.EntityManager
	config        config.ShootingStarsConfig
	rng           utils.RandomSource
	clock         *utils.FrameClock

	width  int
	height int

	armed       bool
	nextSpawnAt float64
	current     ecs.EntityID
}

// NewShootingStarSystem 创建流星系统（未启动）
func NewShootingStarSystem(em *ecs.EntityManager, cfg config.ShootingStarsConfig, rng utils.RandomSource, clock *utils.FrameClock) *ShootingStarSystem {
	return &ShootingStarSystem{
		entityManager: em,
		config:        cfg,
		rng:           rng,
		clock:         clock,
	}
}

// SetSize 设置绘制面尺寸
func (s *ShootingStarSystem) SetSize(width, height int) {
	s.width, s.height = width, height
}

// Start 启动调度，下一次 Update 即产生第一颗流星
func (s *ShootingStarSystem) Start() {
	if s.armed {
		return
	}
	s.armed = true
	s.nextSpawnAt = s.clock.NowMillis()
}

// Stop 停止产生新流星；可重复调用
func (s *ShootingStarSystem) Stop() {
	s.armed = false
}

// Update 调度新流星并移动当前流星
func (s *ShootingStarSystem) Update(deltaTime float64) {
	now := s.clock.NowMillis()
	if s.armed && now >= s.nextSpawnAt {
		s.Spawn()
		s.nextSpawnAt = now + utils.Lerp(s.config.MinDelay, s.config.MaxDelay, s.rng.Float64())
	}

	star, ok := s.Current()
	if !ok {
		return
	}

	step := star.Speed * deltaTime * shootingStarFrameRate
	dx, dy := utils.Polar(star.Angle, step)
	star.X += dx
	star.Y += dy
	star.Distance += step
	star.Scale = 1 + star.Distance/100

	if !utils.InBounds(utils.Point{X: star.X, Y: star.Y}, s.width, s.height, shootingStarMargin) {
		s.remove()
	}
}

// Spawn 从随机一条边产生新流星，替换当前流星
// 绘制面面积为 0 时不产生
func (s *ShootingStarSystem) Spawn() *components.ShootingStarComponent {
	if s.width <= 0 || s.height <= 0 {
		return nil
	}
	s.remove()

	w, h := float64(s.width), float64(s.height)
	side := int(math.Floor(s.rng.Float64() * 4))
	if side > 3 {
		side = 3
	}
	offset := s.rng.Float64()

	star := &components.ShootingStarComponent{
		Angle: shootingStarEdges[side],
		Scale: 1,
	}
	switch side {
	case 0:
		star.X, star.Y = offset*w, 0
	case 1:
		star.X, star.Y = w, offset*h
	case 2:
		star.X, star.Y = offset*w, h
	default:
		star.X, star.Y = 0, offset*h
	}
	star.Speed = utils.Lerp(s.config.MinSpeed, s.config.MaxSpeed, s.rng.Float64())

	s.current = s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, s.current, star)
	return star
}

// Current 返回当前流星
func (s *ShootingStarSystem) Current() (*components.ShootingStarComponent, bool) {
	if s.current == 0 {
		return nil, false
	}
	return ecs.GetComponent[*components.ShootingStarComponent](s.entityManager, s.current)
}

// Trail 返回当前流星拖尾的尾端和头部坐标
func Trail(star *components.ShootingStarComponent, baseLength float64) (tail, head utils.Point) {
	head = utils.Point{X: star.X, Y: star.Y}
	dx, dy := utils.Polar(star.Angle, baseLength*star.Scale)
	return head.Add(-dx, -dy), head
}

func (s *ShootingStarSystem) remove() {
	if s.current == 0 {
		return
	}
	ecs.RemoveComponent[*components.ShootingStarComponent](s.entityManager, s.current)
	s.entityManager.DestroyEntity(s.current)
	s.current = 0
}
