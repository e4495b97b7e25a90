package systems

import (
	"github.com/decker502/starfall/pkg/components"
	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/render"
	"github.com/decker502/starfall/pkg/utils"
)

// 拖尾渐变分段数
const shootingStarTrailSteps = 4

// 中心光晕的扩散层数与扩散距离（像素）
const (
	coreGlowLayers = 4
	coreGlowSpread = 60.0
)

// RenderSystem 把动画实体画到 render.Surface 上
//
// 职责范围：
//   - 星星：实心圆，不透明度来自 StarComponent.Opacity
//   - 闪电：每道闪电两遍描边，先宽的光晕，再窄的主体，都乘以包络不透明度
//   - 流星：由拖尾色渐变到头部色的线段加头部圆点
//   - 黑洞：外环、内环、中心光晕、粒子，按此顺序从底到顶
//
// 不持有实体，只读取系统给出的组件切片；surface 为 nil 时所有方法都是空操作。
type RenderSystem struct {
	config *config.BackdropConfig
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(cfg *config.BackdropConfig) *RenderSystem {
	return &RenderSystem{config: cfg}
}

// Clear 用窗口背景色清屏
func (s *RenderSystem) Clear(surface render.Surface) {
	if surface == nil {
		return
	}
	surface.Clear(s.config.Window.Background.NRGBA(1))
}

// DrawStars 绘制星星
func (s *RenderSystem) DrawStars(surface render.Surface, stars []*components.StarComponent) {
	if surface == nil {
		return
	}
	c := s.config.Starfield.Color
	for _, star := range stars {
		surface.FillCircle(star.X, star.Y, star.Radius, c.NRGBA(star.Opacity))
	}
}

// DrawLightning 按插入顺序绘制闪电，跳过不透明度为 0 的闪电
func (s *RenderSystem) DrawLightning(surface render.Surface, strikes []*components.LightningStrikeComponent) {
	if surface == nil {
		return
	}
	cfg := s.config.Lightning
	for _, strike := range strikes {
		if strike.Opacity <= 0 {
			continue
		}
		surface.StrokePolyline(strike.Points, cfg.GlowWidth, cfg.GlowColor.NRGBA(cfg.GlowAlpha*strike.Opacity))
		surface.StrokePolyline(strike.Points, cfg.CoreWidth, cfg.Color.NRGBA(cfg.CoreAlpha*strike.Opacity))
	}
}

// DrawShootingStar 绘制流星
func (s *RenderSystem) DrawShootingStar(surface render.Surface, star *components.ShootingStarComponent) {
	if surface == nil || star == nil {
		return
	}
	cfg := s.config.ShootingStars
	tail, head := Trail(star, cfg.StarWidth)

	for i := 0; i < shootingStarTrailSteps; i++ {
		t0 := float64(i) / shootingStarTrailSteps
		t1 := float64(i+1) / shootingStarTrailSteps
		blended := config.Color{Color: cfg.TrailColor.BlendRgb(cfg.StarColor.Color, t1)}
		segment := []utils.Point{tail.Lerp(head, t0), tail.Lerp(head, t1)}
		surface.StrokePolyline(segment, cfg.StarHeight, blended.NRGBA(t1))
	}
	surface.FillCircle(head.X, head.Y, cfg.StarHeight, cfg.StarColor.NRGBA(1))
}

// DrawBlackHole 绘制黑洞动画
func (s *RenderSystem) DrawBlackHole(surface render.Surface, bh *BlackHoleSystem) {
	if surface == nil || bh == nil {
		return
	}
	cfg := s.config.BlackHole
	center := bh.Center()

	for _, ring := range bh.Rings() {
		r := ring.Radius * ring.Scale
		surface.StrokeCircle(center.X, center.Y, r, ring.GlowWidth, cfg.RingColor.NRGBA(ring.GlowAlpha*0.4))
		surface.StrokeCircle(center.X, center.Y, r, ring.StrokeWidth, cfg.RingColor.NRGBA(ring.Alpha))

		// 环本身旋转对称，用一个亮点表现旋转角度
		dx, dy := utils.Polar(ring.Rotation, r)
		surface.FillCircle(center.X+dx, center.Y+dy, ring.StrokeWidth*1.5, cfg.RingColor.NRGBA(ring.Alpha))
	}

	if core, ok := bh.Core(); ok {
		r := core.Radius * core.Scale
		for i := coreGlowLayers; i >= 1; i-- {
			spread := coreGlowSpread * float64(i) / coreGlowLayers
			surface.FillCircle(center.X, center.Y, r+spread, cfg.CoreColor.NRGBA(0.7*core.Opacity/coreGlowLayers))
		}
		surface.FillCircle(center.X, center.Y, r, s.config.Window.Background.NRGBA(core.Opacity))
	}

	for _, p := range bh.Particles() {
		x, y := center.X+p.Offset.X, center.Y+p.Offset.Y
		r := p.Size / 2 * p.Scale
		opacity := utils.Clamp01(p.Opacity)
		surface.FillCircle(x, y, r+p.Size*2, cfg.RingColor.NRGBA(opacity*0.3))
		surface.FillCircle(x, y, r, cfg.ParticleColor.NRGBA(opacity))
	}
}
