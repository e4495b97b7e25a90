package systems

import (
	"image/color"
	"math"

	"github.com/decker502/starfall/pkg/utils"
)

// sequenceSource 按顺序循环返回预设的随机数，用于验证随机数读取顺序
type sequenceSource struct {
	values []float64
	next   int
}

func newSequenceSource(values ...float64) *sequenceSource {
	return &sequenceSource{values: values}
}

func (s *sequenceSource) Float64() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// drawCall 记录一次绘制调用
type drawCall struct {
	op     string
	x, y   float64
	r      float64
	width  float64
	points []utils.Point
	color  color.NRGBA
}

// recordingSurface 记录所有绘制调用的测试用绘制面
type recordingSurface struct {
	width, height int
	calls         []drawCall
}

func (s *recordingSurface) Size() (int, int) { return s.width, s.height }

func (s *recordingSurface) Clear(c color.NRGBA) {
	s.calls = append(s.calls, drawCall{op: "clear", color: c})
}

func (s *recordingSurface) FillCircle(cx, cy, r float64, c color.NRGBA) {
	s.calls = append(s.calls, drawCall{op: "fill", x: cx, y: cy, r: r, color: c})
}

func (s *recordingSurface) StrokeCircle(cx, cy, r, width float64, c color.NRGBA) {
	s.calls = append(s.calls, drawCall{op: "ring", x: cx, y: cy, r: r, width: width, color: c})
}

func (s *recordingSurface) StrokePolyline(points []utils.Point, width float64, c color.NRGBA) {
	s.calls = append(s.calls, drawCall{op: "polyline", points: points, width: width, color: c})
}

func (s *recordingSurface) count(op string) int {
	n := 0
	for _, c := range s.calls {
		if c.op == op {
			n++
		}
	}
	return n
}

func approxEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}
