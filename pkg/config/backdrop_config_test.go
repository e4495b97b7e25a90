package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/decker502/starfall/pkg/embedded"
)

func TestDefaultBackdropConfigIsValid(t *testing.T) {
	cfg := DefaultBackdropConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	if cfg.Starfield.Density != 0.0012 {
		t.Errorf("expected density 0.0012, got %v", cfg.Starfield.Density)
	}
	if cfg.Lightning.Frequency != 8000 {
		t.Errorf("expected lightning frequency 8000, got %v", cfg.Lightning.Frequency)
	}
	if cfg.Lightning.Segments != 15 {
		t.Errorf("expected 15 segments, got %d", cfg.Lightning.Segments)
	}
	if got := cfg.Lightning.Color.String(); got != "#e0c3fc" {
		t.Errorf("expected lightning color #e0c3fc, got %s", got)
	}
}

func TestParseBackdropConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *BackdropConfig)
	}{
		{
			name: "部分覆盖保留默认值",
			yamlContent: `
starfield:
  density: 0.001
  radius: "[0.5 1.5]"
lightning:
  frequency: 4000
`,
			validate: func(t *testing.T, cfg *BackdropConfig) {
				if cfg.Starfield.Density != 0.001 {
					t.Errorf("expected density 0.001, got %v", cfg.Starfield.Density)
				}
				if cfg.Starfield.Radius.Min != 0.5 || cfg.Starfield.Radius.Max != 1.5 {
					t.Errorf("expected radius [0.5 1.5], got %s", cfg.Starfield.Radius)
				}
				if cfg.Lightning.Frequency != 4000 {
					t.Errorf("expected frequency 4000, got %v", cfg.Lightning.Frequency)
				}
				// 未写出的字段保持默认
				if cfg.Lightning.Duration != 800 {
					t.Errorf("expected default duration 800, got %v", cfg.Lightning.Duration)
				}
				if !cfg.Starfield.AllStarsTwinkle {
					t.Error("expected allStarsTwinkle to keep default true")
				}
			},
		},
		{
			name: "颜色解析",
			yamlContent: `
lightning:
  color: "#fff"
  glowColor: "6A0DAD"
`,
			validate: func(t *testing.T, cfg *BackdropConfig) {
				c := cfg.Lightning.Color.NRGBA(1)
				if c.R != 255 || c.G != 255 || c.B != 255 || c.A != 255 {
					t.Errorf("expected white, got %+v", c)
				}
				g := cfg.Lightning.GlowColor.NRGBA(0.5)
				if g.R != 0x6A || g.G != 0x0D || g.B != 0xAD {
					t.Errorf("expected #6A0DAD, got %+v", g)
				}
				if g.A != 128 {
					t.Errorf("expected alpha 128, got %d", g.A)
				}
			},
		},
		{
			name: "固定值范围",
			yamlContent: `
starfield:
  opacity: 0.8
`,
			validate: func(t *testing.T, cfg *BackdropConfig) {
				if cfg.Starfield.Opacity.Min != 0.8 || cfg.Starfield.Opacity.Max != 0.8 {
					t.Errorf("expected fixed opacity 0.8, got %s", cfg.Starfield.Opacity)
				}
			},
		},
		{
			name: "非法颜色",
			yamlContent: `
lightning:
  color: "#zzzzzz"
`,
			wantErr:     true,
			errContains: "invalid color",
		},
		{
			name: "非法范围",
			yamlContent: `
starfield:
  radius: "[2 1]"
`,
			wantErr:     true,
			errContains: "below min",
		},
		{
			name: "频率必须为正",
			yamlContent: `
lightning:
  frequency: 0
`,
			wantErr:     true,
			errContains: "lightning.frequency",
		},
		{
			name: "段数至少为 1",
			yamlContent: `
lightning:
  segments: 0
`,
			wantErr:     true,
			errContains: "lightning.segments",
		},
		{
			name: "闪烁概率越界",
			yamlContent: `
starfield:
  twinkleProbability: 1.5
`,
			wantErr:     true,
			errContains: "starfield.twinkleProbability",
		},
		{
			name: "流星速度区间倒置",
			yamlContent: `
shootingStars:
  minSpeed: 30
  maxSpeed: 10
`,
			wantErr:     true,
			errContains: "shootingStars speed",
		},
		{
			name:        "YAML 语法错误",
			yamlContent: "starfield: [",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseBackdropConfig([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %v", tt.errContains, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadBackdropConfigFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "lightning:\n  enabled: false\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadBackdropConfig(path)
	if err != nil {
		t.Fatalf("LoadBackdropConfig failed: %v", err)
	}
	if cfg.Lightning.Enabled {
		t.Error("expected lightning disabled")
	}
}

func TestLoadBackdropConfigEmbedded(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", DefaultConfigPath))
	if err != nil {
		t.Fatalf("failed to read bundled config: %v", err)
	}
	embedded.Init(fstest.MapFS{
		DefaultConfigPath: &fstest.MapFile{Data: data},
	})

	cfg, err := LoadBackdropConfig(DefaultConfigPath)
	if err != nil {
		t.Fatalf("LoadBackdropConfig(%s) failed: %v", DefaultConfigPath, err)
	}

	// 内置 YAML 与代码默认值保持一致
	def := DefaultBackdropConfig()
	if cfg.Starfield != def.Starfield {
		t.Errorf("starfield mismatch:\n yaml: %+v\n code: %+v", cfg.Starfield, def.Starfield)
	}
	if cfg.Lightning != def.Lightning {
		t.Errorf("lightning mismatch:\n yaml: %+v\n code: %+v", cfg.Lightning, def.Lightning)
	}
	if cfg.BlackHole != def.BlackHole {
		t.Errorf("blackHole mismatch:\n yaml: %+v\n code: %+v", cfg.BlackHole, def.BlackHole)
	}
}

func TestLoadBackdropConfigMissingFile(t *testing.T) {
	_, err := LoadBackdropConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read backdrop config") {
		t.Errorf("unexpected error: %v", err)
	}
}
