package systems

import (
	"testing"

	"github.com/decker502/starfall/pkg/components"
	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/ecs"
	"github.com/decker502/starfall/pkg/utils"
)

func TestDrawStars(t *testing.T) {
	rs := NewRenderSystem(config.DefaultBackdropConfig())
	surface := &recordingSurface{width: 100, height: 100}

	stars := []*components.StarComponent{
		{X: 10, Y: 20, Radius: 0.8, Opacity: 1},
		{X: 30, Y: 40, Radius: 1, Opacity: 0.5},
	}
	rs.DrawStars(surface, stars)

	if len(surface.calls) != 2 {
		t.Fatalf("expected 2 draw calls, got %d", len(surface.calls))
	}
	first, second := surface.calls[0], surface.calls[1]
	if first.op != "fill" || first.x != 10 || first.y != 20 || first.r != 0.8 || first.color.A != 255 {
		t.Errorf("unexpected first star call %+v", first)
	}
	if second.color.A != 128 {
		t.Errorf("expected half-opaque star, got alpha %d", second.color.A)
	}
}

func TestDrawLightningPasses(t *testing.T) {
	cfg := config.DefaultBackdropConfig()
	rs := NewRenderSystem(cfg)
	surface := &recordingSurface{width: 100, height: 100}

	points := []utils.Point{{X: 10, Y: 0}, {X: 20, Y: 50}, {X: 15, Y: 100}}
	strikes := []*components.LightningStrikeComponent{
		{ID: 1, Points: points, Opacity: 1},
		{ID: 2, Points: points, Opacity: 0},
		{ID: 3, Points: points, Opacity: 0.5},
	}
	rs.DrawLightning(surface, strikes)

	if n := surface.count("polyline"); n != 4 {
		t.Fatalf("expected 2 passes for each of 2 visible strikes, got %d", n)
	}

	glow, core := surface.calls[0], surface.calls[1]
	if glow.width != cfg.Lightning.GlowWidth || core.width != cfg.Lightning.CoreWidth {
		t.Errorf("expected glow pass (%v) before core pass (%v), got %v then %v",
			cfg.Lightning.GlowWidth, cfg.Lightning.CoreWidth, glow.width, core.width)
	}
	if glow.color != cfg.Lightning.GlowColor.NRGBA(cfg.Lightning.GlowAlpha) {
		t.Errorf("unexpected glow color %+v", glow.color)
	}
	if core.color != cfg.Lightning.Color.NRGBA(cfg.Lightning.CoreAlpha) {
		t.Errorf("unexpected core color %+v", core.color)
	}

	// 第三道闪电的透明度按包络减半
	halfCore := surface.calls[3]
	if halfCore.color != cfg.Lightning.Color.NRGBA(cfg.Lightning.CoreAlpha*0.5) {
		t.Errorf("expected envelope-scaled core color, got %+v", halfCore.color)
	}
}

func TestDrawShootingStar(t *testing.T) {
	cfg := config.DefaultBackdropConfig()
	rs := NewRenderSystem(cfg)
	surface := &recordingSurface{width: 100, height: 100}

	rs.DrawShootingStar(surface, &components.ShootingStarComponent{X: 50, Y: 50, Angle: 45, Scale: 2})

	if n := surface.count("polyline"); n != shootingStarTrailSteps {
		t.Errorf("expected %d trail segments, got %d", shootingStarTrailSteps, n)
	}
	last := surface.calls[len(surface.calls)-1]
	if last.op != "fill" || last.x != 50 || last.y != 50 {
		t.Errorf("expected head drawn last at (50, 50), got %+v", last)
	}
	if last.color != cfg.ShootingStars.StarColor.NRGBA(1) {
		t.Errorf("head should use star color, got %+v", last.color)
	}

	// 拖尾从透明逐渐变为不透明
	prevAlpha := uint8(0)
	for _, c := range surface.calls[:shootingStarTrailSteps] {
		if c.color.A <= prevAlpha {
			t.Errorf("trail alpha should increase towards the head, got %d after %d", c.color.A, prevAlpha)
		}
		prevAlpha = c.color.A
	}

	rs.DrawShootingStar(surface, nil)
}

func TestDrawBlackHoleOrder(t *testing.T) {
	cfg := config.DefaultBackdropConfig()
	em := ecs.NewEntityManager()
	bh := NewBlackHoleSystem(em, cfg.BlackHole, utils.NewRandomSource(2), utils.NewFrameClock(0))
	bh.Resize(800, 600)

	rs := NewRenderSystem(cfg)
	surface := &recordingSurface{width: 800, height: 600}
	rs.DrawBlackHole(surface, bh)

	rings := cfg.BlackHole.OuterRings + cfg.BlackHole.InnerRings
	if n := surface.count("ring"); n != rings*2 {
		t.Errorf("expected glow and stroke for %d rings, got %d ring calls", rings, n)
	}

	// 所有圆环在光晕和粒子之前
	lastRing := -1
	for i, c := range surface.calls {
		if c.op == "ring" {
			lastRing = i
		}
	}
	wantFills := rings + coreGlowLayers + 1 + cfg.BlackHole.Particles*2
	if n := surface.count("fill"); n != wantFills {
		t.Errorf("expected %d fills, got %d", wantFills, n)
	}
	firstParticleGlow := len(surface.calls) - cfg.BlackHole.Particles*2
	if lastRing >= firstParticleGlow {
		t.Error("rings must be drawn below particles")
	}

	for _, c := range surface.calls {
		if c.op == "ring" && (c.x != 400 || c.y != 300) {
			t.Fatalf("ring not centered: %+v", c)
		}
	}
}

func TestRenderSystemNilSurface(t *testing.T) {
	rs := NewRenderSystem(config.DefaultBackdropConfig())

	// 不应 panic
	rs.Clear(nil)
	rs.DrawStars(nil, []*components.StarComponent{{Radius: 1, Opacity: 1}})
	rs.DrawLightning(nil, []*components.LightningStrikeComponent{{Opacity: 1}})
	rs.DrawShootingStar(nil, &components.ShootingStarComponent{})
	rs.DrawBlackHole(nil, nil)
}
