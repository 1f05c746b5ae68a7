package options

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Length is a size that is either absolute pixels or a percentage of a
// reference span. It decodes from 10, 10.5 or "25%".
type Length struct {
	Value   float64
	Percent bool
}

// Px returns an absolute length.
func Px(v float64) *Length { return &Length{Value: v} }

// Pct returns a percentage length.
func Pct(v float64) *Length { return &Length{Value: v, Percent: true} }

// Of resolves the length against a reference span.
func (l Length) Of(span float64) float64 {
	if l.Percent {
		return l.Value * span / 100
	}
	return l.Value
}

// String formats the length the way it is written in option files.
func (l Length) String() string {
	s := strconv.FormatFloat(l.Value, 'f', -1, 64)
	if l.Percent {
		return s + "%"
	}
	return s
}

// ParseLength parses "10", "10.5" or "25%".
func ParseLength(s string) (Length, error) {
	s = strings.TrimSpace(s)
	pct := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return Length{}, fmt.Errorf("invalid length %q", s)
	}
	return Length{Value: v, Percent: pct}, nil
}

// MarshalJSON encodes absolute lengths as numbers and percentages as strings.
func (l Length) MarshalJSON() ([]byte, error) {
	if l.Percent {
		return json.Marshal(l.String())
	}
	return json.Marshal(l.Value)
}

// UnmarshalJSON accepts a number or a string.
func (l *Length) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*l = Length{Value: v}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("length must be a number or a string: %s", data)
	}
	parsed, err := ParseLength(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// UnmarshalTOML implements toml.Unmarshaler.
func (l *Length) UnmarshalTOML(data any) error {
	switch v := data.(type) {
	case int64:
		*l = Length{Value: float64(v)}
	case float64:
		*l = Length{Value: v}
	case string:
		parsed, err := ParseLength(v)
		if err != nil {
			return err
		}
		*l = parsed
	default:
		return fmt.Errorf("length must be a number or a string, got %T", data)
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *Length) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("length must be a scalar")
	}
	parsed, err := ParseLength(node.Value)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (l Length) MarshalYAML() (any, error) {
	if l.Percent {
		return l.String(), nil
	}
	return l.Value, nil
}
