package systems

import (
	"log"

	"github.com/decker502/starfall/pkg/components"
	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/ecs"
	"github.com/decker502/starfall/pkg/utils"
)

// 闪电包络的阶段边界（占持续时间的比例）
const (
	lightningFadeInEnd   = 0.1
	lightningFadeOutFrom = 0.7
)

// LightningSystem 闪电系统
//
// 职责：
//   - 随机调度：启动后在 [0, frequency) 内产生第一道闪电，
//     之后每次产生闪电都在 [frequency/2, frequency*3/2) 后安排下一道
//   - 生成从顶边到底边的锯齿折线
//   - 每帧计算包络不透明度，到期的闪电标记删除
//
// 调度是帧时钟上的一个截止时刻，由 Update 检查，
// 与渲染在同一个 goroutine 中运行，不需要加锁。
type LightningSystem struct {
	entityManager *ecs.EntityManager
	config        config.LightningConfig
	rng           utils.RandomSource
	clock         *utils.FrameClock

	width  int
	height int

	armed        bool
	nextStrikeAt float64

	// OnStrike 新闪电生成后回调（如播放雷声），可为 nil
	OnStrike func(strike *components.LightningStrikeComponent)
}

// NewLightningSystem 创建闪电系统（未启动）
func NewLightningSystem(em *ecs.EntityManager, cfg config.LightningConfig, rng utils.RandomSource, clock *utils.FrameClock) *LightningSystem {
	return &LightningSystem{
		entityManager: em,
		config:        cfg,
		rng:           rng,
		clock:         clock,
	}
}

// Envelope 计算进度 p (= elapsed/duration) 处的不透明度
//
//	p < 0.1        → p / 0.1      淡入
//	0.1 <= p < 0.7 → 1            保持
//	0.7 <= p < 1   → (1-p) / 0.3  淡出
//	p >= 1         → 0            到期
func Envelope(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p < lightningFadeInEnd:
		return p / lightningFadeInEnd
	case p < lightningFadeOutFrom:
		return 1
	case p < 1:
		return (1 - p) / (1 - lightningFadeOutFrom)
	default:
		return 0
	}
}

// GeneratePath 生成一道闪电的折线顶点
//
// 起点 x ∈ [0, width)，y = 0；终点 x ∈ [0.1*width, 0.9*width)，y = height。
// 中间点在起止连线上等距分布，水平方向加上 ±variance 的抖动，
// 抖动幅度随 i/segments 线性衰减。共 segments+1 个点。
func GeneratePath(width, height, segments int, variance float64, rng utils.RandomSource) []utils.Point {
	if segments < 1 {
		segments = 1
	}
	w, h := float64(width), float64(height)

	start := utils.Point{X: rng.Float64() * w, Y: 0}
	end := utils.Point{X: w*0.1 + rng.Float64()*w*0.8, Y: h}

	points := make([]utils.Point, 0, segments+1)
	points = append(points, start)
	for i := 1; i < segments; i++ {
		t := float64(i) / float64(segments)
		p := start.Lerp(end, t)
		p.X += (rng.Float64()*2 - 1) * variance * (1 - t)
		points = append(points, p)
	}
	points = append(points, end)
	return points
}

// NextDelay 返回下一道闪电的等待时间（毫秒），范围 [frequency/2, frequency*3/2)
func NextDelay(frequency float64, rng utils.RandomSource) float64 {
	return frequency/2 + rng.Float64()*frequency
}

// SetSize 设置闪电所在绘制面的尺寸
func (s *LightningSystem) SetSize(width, height int) {
	s.width, s.height = width, height
}

// Start 启动调度，第一道闪电在 [0, frequency) 毫秒后出现
// 已启动时无效果
func (s *LightningSystem) Start() {
	if s.armed {
		return
	}
	s.armed = true
	s.nextStrikeAt = s.clock.NowMillis() + s.rng.Float64()*s.config.Frequency
}

// Stop 取消待触发的闪电；可重复调用
// 已经出现的闪电继续按包络淡出
func (s *LightningSystem) Stop() {
	s.armed = false
}

// Running 调度是否处于启动状态
func (s *LightningSystem) Running() bool {
	return s.armed
}

// NextStrikeAt 返回下一道闪电的触发时刻（毫秒），未启动时 ok 为 false
func (s *LightningSystem) NextStrikeAt() (at float64, ok bool) {
	return s.nextStrikeAt, s.armed
}

// Update 触发到期的调度并更新所有闪电的包络
//
// 下一次调度从上一个截止时刻起算，帧步长不会拉长平均间隔。
// 每帧最多触发一次：长时间暂停后恢复不会补发积压的闪电，
// 顺延后仍已过期时改为从当前时刻起算。
func (s *LightningSystem) Update(deltaTime float64) {
	now := s.clock.NowMillis()

	if s.armed && now >= s.nextStrikeAt {
		s.Spawn()
		delay := NextDelay(s.config.Frequency, s.rng)
		s.nextStrikeAt += delay
		if s.nextStrikeAt <= now {
			s.nextStrikeAt = now + delay
		}
	}

	for _, id := range ecs.GetEntitiesWith1[*components.LightningStrikeComponent](s.entityManager) {
		strike, ok := ecs.GetComponent[*components.LightningStrikeComponent](s.entityManager, id)
		if !ok {
			continue
		}
		if strike.Expired(now) {
			strike.Opacity = 0
			s.entityManager.DestroyEntity(id)
			continue
		}
		strike.Opacity = Envelope(strike.Elapsed(now) / strike.Duration)
	}
}

// Spawn 立即生成一道闪电
// 绘制面面积为 0 时不生成，返回 nil
func (s *LightningSystem) Spawn() *components.LightningStrikeComponent {
	if s.width <= 0 || s.height <= 0 {
		return nil
	}

	now := s.clock.NowMillis()
	strike := &components.LightningStrikeComponent{
		ID:        int64(now),
		Points:    GeneratePath(s.width, s.height, s.config.Segments, s.config.Variance, s.rng),
		StartTime: now,
		Duration:  s.config.Duration,
	}

	id := s.entityManager.CreateEntity()
	ecs.AddComponent(s.entityManager, id, strike)

	log.Printf("[LightningSystem] Strike %d spawned with %d points", strike.ID, len(strike.Points))

	if s.OnStrike != nil {
		s.OnStrike(strike)
	}
	return strike
}

// Strikes 按插入顺序返回当前所有闪电（包括本帧刚到期、尚未清理的）
func (s *LightningSystem) Strikes() []*components.LightningStrikeComponent {
	ids := ecs.GetEntitiesWith1[*components.LightningStrikeComponent](s.entityManager)
	strikes := make([]*components.LightningStrikeComponent, 0, len(ids))
	for _, id := range ids {
		if strike, ok := ecs.GetComponent[*components.LightningStrikeComponent](s.entityManager, id); ok {
			strikes = append(strikes, strike)
		}
	}
	return strikes
}
