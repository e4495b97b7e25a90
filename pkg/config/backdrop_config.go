package config

import (
	"fmt"
	"log"

	"github.com/decker502/starfall/internal/tween"
	"github.com/decker502/starfall/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath 默认配置文件（嵌入在二进制中）
const DefaultConfigPath = "data/backdrop.yaml"

// BackdropConfig 背景动画配置
//
// 顶层按图层划分：星空、闪电、流星、黑洞，以及窗口参数。
// 未出现在 YAML 中的字段保留 DefaultBackdropConfig 的默认值。
//
// 配置文件位置: data/backdrop.yaml
type BackdropConfig struct {
	Window        WindowConfig        `yaml:"window"`
	Starfield     StarfieldConfig     `yaml:"starfield"`
	Lightning     LightningConfig     `yaml:"lightning"`
	ShootingStars ShootingStarsConfig `yaml:"shootingStars"`
	BlackHole     BlackHoleConfig     `yaml:"blackHole"`
}

// WindowConfig 窗口配置
type WindowConfig struct {
	// Title 窗口标题
	Title string `yaml:"title"`

	// Width, Height 初始窗口大小（像素）
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Background 清屏颜色
	Background Color `yaml:"background"`
}

// StarfieldConfig 星空配置
type StarfieldConfig struct {
	// Density 每平方像素的星星数量
	Density float64 `yaml:"density"`

	// AllStarsTwinkle 为 true 时所有星星都闪烁，忽略 TwinkleProbability
	AllStarsTwinkle bool `yaml:"allStarsTwinkle"`

	// TwinkleProbability 单颗星星闪烁的概率 [0, 1]
	TwinkleProbability float64 `yaml:"twinkleProbability"`

	// MinTwinkleSpeed, MaxTwinkleSpeed 闪烁速度范围（越小越快）
	MinTwinkleSpeed float64 `yaml:"minTwinkleSpeed"`
	MaxTwinkleSpeed float64 `yaml:"maxTwinkleSpeed"`

	// Radius 星星半径范围，格式 "[min max]"
	Radius tween.Range `yaml:"radius"`

	// Opacity 星星初始不透明度范围
	Opacity tween.Range `yaml:"opacity"`

	// Color 星星颜色
	Color Color `yaml:"color"`
}

// LightningConfig 闪电配置
type LightningConfig struct {
	// Enabled 是否显示闪电
	Enabled bool `yaml:"enabled"`

	// Frequency 平均闪电间隔（毫秒）
	Frequency float64 `yaml:"frequency"`

	// Duration 单次闪电持续时间（毫秒）
	Duration float64 `yaml:"duration"`

	// Segments 折线段数，生成 Segments+1 个点
	Segments int `yaml:"segments"`

	// Variance 水平抖动幅度（像素），越靠近底部越小
	Variance float64 `yaml:"variance"`

	// Color 主体颜色, GlowColor 光晕颜色
	Color     Color `yaml:"color"`
	GlowColor Color `yaml:"glowColor"`

	GlowWidth float64 `yaml:"glowWidth"`
	GlowAlpha float64 `yaml:"glowAlpha"`
	CoreWidth float64 `yaml:"coreWidth"`
	CoreAlpha float64 `yaml:"coreAlpha"`

	// Thunder 闪电出现时是否播放雷声
	Thunder bool `yaml:"thunder"`

	// ThunderVolume 雷声音量 [0, 1]
	ThunderVolume float64 `yaml:"thunderVolume"`
}

// ShootingStarsConfig 流星配置
type ShootingStarsConfig struct {
	Enabled bool `yaml:"enabled"`

	// MinSpeed, MaxSpeed 每帧移动像素
	MinSpeed float64 `yaml:"minSpeed"`
	MaxSpeed float64 `yaml:"maxSpeed"`

	// MinDelay, MaxDelay 两颗流星之间的等待时间（毫秒）
	MinDelay float64 `yaml:"minDelay"`
	MaxDelay float64 `yaml:"maxDelay"`

	StarColor  Color `yaml:"starColor"`
	TrailColor Color `yaml:"trailColor"`

	// StarWidth 基础拖尾长度, StarHeight 线宽（像素）
	StarWidth  float64 `yaml:"starWidth"`
	StarHeight float64 `yaml:"starHeight"`
}

// BlackHoleConfig 黑洞动画配置
type BlackHoleConfig struct {
	OuterRings int `yaml:"outerRings"`
	InnerRings int `yaml:"innerRings"`
	Particles  int `yaml:"particles"`

	RingColor     Color `yaml:"ringColor"`
	CoreColor     Color `yaml:"coreColor"`
	ParticleColor Color `yaml:"particleColor"`
}

// DefaultBackdropConfig 返回内置默认配置
func DefaultBackdropConfig() *BackdropConfig {
	return &BackdropConfig{
		Window: WindowConfig{
			Title:      "Starfall",
			Width:      1280,
			Height:     720,
			Background: MustParseColor("#000000"),
		},
		Starfield: StarfieldConfig{
			Density:            0.0012,
			AllStarsTwinkle:    true,
			TwinkleProbability: 0.8,
			MinTwinkleSpeed:    0.4,
			MaxTwinkleSpeed:    0.9,
			Radius:             tween.Range{Min: 0.7, Max: 1.0},
			Opacity:            tween.Range{Min: 0.5, Max: 1.0},
			Color:              MustParseColor("#FFFFFF"),
		},
		Lightning: LightningConfig{
			Enabled:       true,
			Frequency:     8000,
			Duration:      800,
			Segments:      15,
			Variance:      60,
			Color:         MustParseColor("#E0C3FC"),
			GlowColor:     MustParseColor("#9D4EDD"),
			GlowWidth:     8,
			GlowAlpha:     0.35,
			CoreWidth:     2,
			CoreAlpha:     0.95,
			Thunder:       false,
			ThunderVolume: 0.6,
		},
		ShootingStars: ShootingStarsConfig{
			Enabled:    true,
			MinSpeed:   10,
			MaxSpeed:   30,
			MinDelay:   800,
			MaxDelay:   3000,
			StarColor:  MustParseColor("#9D4EDD"),
			TrailColor: MustParseColor("#6A0DAD"),
			StarWidth:  10,
			StarHeight: 1,
		},
		BlackHole: BlackHoleConfig{
			OuterRings:    3,
			InnerRings:    5,
			Particles:     30,
			RingColor:     MustParseColor("#9D4EDD"),
			CoreColor:     MustParseColor("#9D4EDD"),
			ParticleColor: MustParseColor("#D8B4FE"),
		},
	}
}

// ParseBackdropConfig 从 YAML 数据解析配置
//
// 解析在默认配置之上进行，YAML 只需写出要覆盖的字段。
func ParseBackdropConfig(data []byte) (*BackdropConfig, error) {
	cfg := DefaultBackdropConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse backdrop config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backdrop config: %w", err)
	}

	return cfg, nil
}

// LoadBackdropConfig 加载背景动画配置
//
// 参数:
//   - path: "data/" 开头的路径从嵌入资源读取，其他路径从磁盘读取
//
// 返回:
//   - *BackdropConfig: 合并默认值并通过校验的配置
//   - error: 读取、解析或校验失败
func LoadBackdropConfig(path string) (*BackdropConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backdrop config %s: %w", path, err)
	}

	cfg, err := ParseBackdropConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	log.Printf("[Config] Loaded backdrop config from %s", path)
	return cfg, nil
}

// Validate 验证配置有效性，错误信息包含出错的键名
func (c *BackdropConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}

	s := c.Starfield
	if s.Density < 0 {
		return fmt.Errorf("starfield.density must be >= 0, got %v", s.Density)
	}
	if s.TwinkleProbability < 0 || s.TwinkleProbability > 1 {
		return fmt.Errorf("starfield.twinkleProbability must be in [0, 1], got %v", s.TwinkleProbability)
	}
	if s.MinTwinkleSpeed <= 0 {
		return fmt.Errorf("starfield.minTwinkleSpeed must be > 0, got %v", s.MinTwinkleSpeed)
	}
	if s.MaxTwinkleSpeed < s.MinTwinkleSpeed {
		return fmt.Errorf("starfield.maxTwinkleSpeed (%v) must be >= minTwinkleSpeed (%v)",
			s.MaxTwinkleSpeed, s.MinTwinkleSpeed)
	}
	if s.Radius.Min <= 0 {
		return fmt.Errorf("starfield.radius must be > 0, got %s", s.Radius)
	}
	if s.Opacity.Min < 0 || s.Opacity.Max > 1 {
		return fmt.Errorf("starfield.opacity must be within [0 1], got %s", s.Opacity)
	}

	l := c.Lightning
	if l.Frequency <= 0 {
		return fmt.Errorf("lightning.frequency must be > 0, got %v", l.Frequency)
	}
	if l.Duration <= 0 {
		return fmt.Errorf("lightning.duration must be > 0, got %v", l.Duration)
	}
	if l.Segments < 1 {
		return fmt.Errorf("lightning.segments must be >= 1, got %d", l.Segments)
	}
	if l.Variance < 0 {
		return fmt.Errorf("lightning.variance must be >= 0, got %v", l.Variance)
	}
	if l.GlowWidth <= 0 || l.CoreWidth <= 0 {
		return fmt.Errorf("lightning.glowWidth and lightning.coreWidth must be > 0, got %v / %v",
			l.GlowWidth, l.CoreWidth)
	}
	for key, alpha := range map[string]float64{
		"lightning.glowAlpha":     l.GlowAlpha,
		"lightning.coreAlpha":     l.CoreAlpha,
		"lightning.thunderVolume": l.ThunderVolume,
	} {
		if alpha < 0 || alpha > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %v", key, alpha)
		}
	}

	ss := c.ShootingStars
	if ss.MinSpeed <= 0 || ss.MaxSpeed < ss.MinSpeed {
		return fmt.Errorf("shootingStars speed range invalid: min(%v) max(%v)", ss.MinSpeed, ss.MaxSpeed)
	}
	if ss.MinDelay < 0 || ss.MaxDelay < ss.MinDelay {
		return fmt.Errorf("shootingStars delay range invalid: min(%v) max(%v)", ss.MinDelay, ss.MaxDelay)
	}

	b := c.BlackHole
	if b.OuterRings < 0 || b.InnerRings < 0 || b.Particles < 0 {
		return fmt.Errorf("blackHole counts must be >= 0, got rings %d/%d particles %d",
			b.OuterRings, b.InnerRings, b.Particles)
	}

	return nil
}
