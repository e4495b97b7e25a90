package tween

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Float64Source is the randomness consumed by Range.Sample.
// *rand.Rand satisfies it.
type Float64Source interface {
	Float64() float64
}

// Range is a closed numeric range used for randomized parameters.
// A fixed value is a range with Min == Max.
type Range struct {
	Min float64
	Max float64
}

// Fixed returns a range holding a single value.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// ParseRange parses a value string in one of the formats:
//   - Fixed value: "1500" → {1500, 1500}
//   - Range: "[0.7 0.9]" → {0.7, 0.9}
//   - Single bracketed value: "[0.5]" → {0.5, 0.5}
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty range value")
	}

	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return Range{}, fmt.Errorf("range %q: missing closing bracket", s)
		}
		parts := strings.Fields(strings.TrimSuffix(strings.TrimPrefix(s, "["), "]"))
		switch len(parts) {
		case 1:
			v, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("range %q: %w", s, err)
			}
			return Fixed(v), nil
		case 2:
			lo, err := strconv.ParseFloat(parts[0], 64)
			if err != nil {
				return Range{}, fmt.Errorf("range %q: %w", s, err)
			}
			hi, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				return Range{}, fmt.Errorf("range %q: %w", s, err)
			}
			if hi < lo {
				return Range{}, fmt.Errorf("range %q: max %v is below min %v", s, hi, lo)
			}
			return Range{Min: lo, Max: hi}, nil
		default:
			return Range{}, fmt.Errorf("range %q: want 1 or 2 values, got %d", s, len(parts))
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Range{}, fmt.Errorf("value %q: %w", s, err)
	}
	return Fixed(v), nil
}

// String formats the range in the same syntax ParseRange accepts.
func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return "[" + strconv.FormatFloat(r.Min, 'g', -1, 64) + " " + strconv.FormatFloat(r.Max, 'g', -1, 64) + "]"
}

// Sample draws a uniform value in [Min, Max).
func (r Range) Sample(rng Float64Source) float64 {
	return RandomInRange(rng, r.Min, r.Max)
}

// Contains reports whether v lies within the closed range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// UnmarshalYAML accepts both plain numbers and range strings.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseRange(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*r = parsed
	return nil
}

// MarshalYAML writes the range back in its string form.
func (r Range) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// RandomInRange returns a random float64 in the range [min, max).
func RandomInRange(rng Float64Source, min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rng.Float64()*(max-min)
}
