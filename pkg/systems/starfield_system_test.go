package systems

import (
	"testing"

	"github.com/decker502/starfall/pkg/config"
	"github.com/decker502/starfall/pkg/ecs"
	"github.com/decker502/starfall/pkg/utils"
)

func newTestStarfield(cfg config.StarfieldConfig, rng utils.RandomSource) (*StarfieldSystem, *utils.FrameClock) {
	clock := utils.NewFrameClock(0)
	return NewStarfieldSystem(ecs.NewEntityManager(), cfg, rng, clock), clock
}

func TestStarCount(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		density       float64
		want          int
	}{
		{"1000x500 密度 0.001", 1000, 500, 0.001, 500},
		{"默认密度", 1280, 720, 0.0012, 1105},
		{"向下取整", 10, 10, 0.015, 1},
		{"零宽度", 0, 500, 0.001, 0},
		{"零高度", 500, 0, 0.001, 0},
		{"负尺寸", -10, 10, 0.001, 0},
		{"零密度", 1000, 1000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StarCount(tt.width, tt.height, tt.density); got != tt.want {
				t.Errorf("StarCount(%d, %d, %v) = %d, want %d", tt.width, tt.height, tt.density, got, tt.want)
			}
		})
	}
}

func TestGenerateBounds(t *testing.T) {
	cfg := config.DefaultBackdropConfig().Starfield
	cfg.AllStarsTwinkle = false
	sys, _ := newTestStarfield(cfg, utils.NewRandomSource(42))

	count := sys.Generate(800, 600)
	if count != 576 {
		t.Fatalf("expected 576 stars, got %d", count)
	}

	stars := sys.Stars()
	if len(stars) != count {
		t.Fatalf("expected %d star entities, got %d", count, len(stars))
	}

	twinkling := 0
	for i, star := range stars {
		if star.X < 0 || star.X >= 800 || star.Y < 0 || star.Y >= 600 {
			t.Errorf("star %d out of bounds: (%v, %v)", i, star.X, star.Y)
		}
		if !cfg.Radius.Contains(star.Radius) {
			t.Errorf("star %d radius %v outside %s", i, star.Radius, cfg.Radius)
		}
		if !cfg.Opacity.Contains(star.BaseOpacity) {
			t.Errorf("star %d opacity %v outside %s", i, star.BaseOpacity, cfg.Opacity)
		}
		if star.Twinkles() {
			twinkling++
			if star.TwinkleSpeed < cfg.MinTwinkleSpeed || star.TwinkleSpeed >= cfg.MaxTwinkleSpeed {
				t.Errorf("star %d twinkle speed %v outside [%v, %v)", i, star.TwinkleSpeed, cfg.MinTwinkleSpeed, cfg.MaxTwinkleSpeed)
			}
		}
	}

	// 闪烁概率 0.8，576 颗星中闪烁的比例应接近 0.8
	ratio := float64(twinkling) / float64(count)
	if ratio < 0.7 || ratio > 0.9 {
		t.Errorf("twinkle ratio %.2f far from probability 0.8", ratio)
	}
}

func TestGenerateDrawOrder(t *testing.T) {
	cfg := config.DefaultBackdropConfig().Starfield
	cfg.AllStarsTwinkle = false
	cfg.Density = 0.0002 // 100x100 → 2 颗星

	rng := newSequenceSource(
		// 第一颗：判定 0.9 >= 0.8 不闪烁，x, y, 半径, 不透明度
		0.9, 0.25, 0.5, 0.5, 0.2,
		// 第二颗：判定 0.1 < 0.8 闪烁，x, y, 半径, 不透明度, 速度
		0.1, 0.75, 0.1, 0, 0, 0.5,
	)
	sys, _ := newTestStarfield(cfg, rng)
	sys.Generate(100, 100)

	stars := sys.Stars()
	if len(stars) != 2 {
		t.Fatalf("expected 2 stars, got %d", len(stars))
	}

	first, second := stars[0], stars[1]
	if first.Twinkles() {
		t.Error("first star should be static")
	}
	if first.X != 25 || first.Y != 50 {
		t.Errorf("first star position = (%v, %v), want (25, 50)", first.X, first.Y)
	}
	if !approxEqual(first.Radius, 0.85, 1e-9) || !approxEqual(first.BaseOpacity, 0.6, 1e-9) {
		t.Errorf("first star radius/opacity = %v/%v, want 0.85/0.6", first.Radius, first.BaseOpacity)
	}

	if !second.Twinkles() {
		t.Fatal("second star should twinkle")
	}
	if second.X != 75 || second.Y != 10 {
		t.Errorf("second star position = (%v, %v), want (75, 10)", second.X, second.Y)
	}
	if !approxEqual(second.TwinkleSpeed, 0.65, 1e-9) {
		t.Errorf("second star twinkle speed = %v, want 0.65", second.TwinkleSpeed)
	}
}

func TestAllStarsTwinkleSkipsCoinFlip(t *testing.T) {
	cfg := config.DefaultBackdropConfig().Starfield
	cfg.AllStarsTwinkle = true
	cfg.Density = 0.0001 // 100x100 → 1 颗星

	// 没有判定：x, y, 半径, 不透明度, 速度
	sys, _ := newTestStarfield(cfg, newSequenceSource(0.5, 0.5, 0.5, 0.5, 0))
	sys.Generate(100, 100)

	stars := sys.Stars()
	if len(stars) != 1 {
		t.Fatalf("expected 1 star, got %d", len(stars))
	}
	if stars[0].X != 50 || stars[0].Y != 50 {
		t.Errorf("unexpected position (%v, %v)", stars[0].X, stars[0].Y)
	}
	if stars[0].TwinkleSpeed != cfg.MinTwinkleSpeed {
		t.Errorf("expected twinkle speed %v, got %v", cfg.MinTwinkleSpeed, stars[0].TwinkleSpeed)
	}
}

func TestTwinkleOpacityRange(t *testing.T) {
	if got := TwinkleOpacity(0, 0.5); got != 0.5 {
		t.Errorf("TwinkleOpacity(0) = %v, want 0.5", got)
	}

	for _, speed := range []float64{0.4, 0.55, 0.9} {
		for now := 0.0; now < 20000; now += 7.3 {
			o := TwinkleOpacity(now, speed)
			if o < 0.5 || o > 1 {
				t.Fatalf("TwinkleOpacity(%v, %v) = %v outside [0.5, 1]", now, speed, o)
			}
		}
	}
}

func TestStarfieldUpdate(t *testing.T) {
	cfg := config.DefaultBackdropConfig().Starfield
	cfg.AllStarsTwinkle = false
	cfg.TwinkleProbability = 0.5
	sys, clock := newTestStarfield(cfg, utils.NewRandomSource(7))
	sys.Generate(400, 300)

	initial := make(map[int]float64)
	for i, star := range sys.Stars() {
		initial[i] = star.Opacity
	}

	for frame := 0; frame < 120; frame++ {
		clock.Advance(1.0 / 60)
		sys.Update(1.0 / 60)

		now := clock.NowMillis()
		for i, star := range sys.Stars() {
			if star.Twinkles() {
				want := TwinkleOpacity(now, star.TwinkleSpeed)
				if star.Opacity != want {
					t.Fatalf("frame %d star %d opacity = %v, want %v", frame, i, star.Opacity, want)
				}
				continue
			}
			if star.Opacity != initial[i] {
				t.Fatalf("static star %d opacity changed from %v to %v", i, initial[i], star.Opacity)
			}
		}
	}
}

func TestStarfieldResize(t *testing.T) {
	cfg := config.DefaultBackdropConfig().Starfield
	sys, _ := newTestStarfield(cfg, utils.NewRandomSource(1))

	if sys.Resize(0, 0) {
		t.Error("resize to the initial zero size should be a no-op")
	}
	if len(sys.Stars()) != 0 {
		t.Error("zero area must yield zero stars")
	}

	if !sys.Resize(500, 500) {
		t.Fatal("expected regeneration on first real size")
	}
	before := sys.Stars()
	if len(before) != 300 {
		t.Fatalf("expected 300 stars, got %d", len(before))
	}

	if sys.Resize(500, 500) {
		t.Error("same size must not regenerate")
	}
	after := sys.Stars()
	if len(after) != len(before) || after[0] != before[0] {
		t.Error("stars changed although size did not")
	}

	if !sys.Resize(500, 400) {
		t.Fatal("height change must regenerate")
	}
	resized := sys.Stars()
	// 500*400*0.0012 的浮点结果略小于 240
	if len(resized) != 239 {
		t.Errorf("expected 239 stars, got %d", len(resized))
	}
	if resized[0] == before[0] {
		t.Error("old stars must be discarded")
	}
	for _, star := range resized {
		if star.Y >= 400 {
			t.Fatalf("star outside resized surface: y=%v", star.Y)
		}
	}

	if w, h := sys.Size(); w != 500 || h != 400 {
		t.Errorf("Size() = %dx%d, want 500x400", w, h)
	}

	sys.Resize(0, 300)
	if len(sys.Stars()) != 0 {
		t.Error("zero width must clear all stars")
	}
}
