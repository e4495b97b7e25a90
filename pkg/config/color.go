package config

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color 配置文件中的颜色值
//
// YAML 中写作十六进制字符串（"#E0C3FC" 或简写 "#fff"），
// 解析由 go-colorful 完成。透明度不放在颜色里，由各自的 alpha 字段控制。
type Color struct {
	colorful.Color
}

// MustParseColor 解析十六进制颜色，失败时 panic
// 仅用于默认值等编译期已知的常量
func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseColor 解析 "#RRGGBB" 或 "#RGB" 格式的颜色
func ParseColor(hex string) (Color, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return Color{Color: c}, nil
}

// NRGBA 返回带给定不透明度的颜色
// alpha 会被限制在 [0, 1]
func (c Color) NRGBA(alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}

// String 返回 "#rrggbb" 形式
func (c Color) String() string {
	return c.Hex()
}

// UnmarshalYAML 从十六进制字符串解析颜色
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseColor(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML 写回十六进制字符串
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}
