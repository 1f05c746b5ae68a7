package options

import (
	"strings"

	"github.com/erfan1375er/highcharts/pkg/errors"
	"github.com/erfan1375er/highcharts/pkg/path"
)

// Root policies accepted in Series.RootPolicy.
const (
	RootPolicyFirst     = "first"
	RootPolicySynthetic = "synthetic"
)

// ValidateLinkType checks a link type name.
func ValidateLinkType(t string) error {
	switch t {
	case LinkStraight, LinkCurved, LinkDefault:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidOption, "link type %q must be one of straight, curved, default", t)
}

// ValidateSymbol checks a marker symbol name. url(...) symbols are images.
func ValidateSymbol(s string) error {
	if u, ok := path.ImageURL(s); ok {
		return errors.ValidateURL(u)
	}
	if !path.IsSymbol(s) {
		return errors.New(errors.ErrCodeInvalidOption, "unknown marker symbol %q (valid: %s)", s, strings.Join(path.Symbols(), ", "))
	}
	return nil
}

// Validate checks a partial marker.
func (m Marker) Validate() error {
	if m.Symbol != nil {
		if err := ValidateSymbol(*m.Symbol); err != nil {
			return err
		}
	}
	for name, l := range map[string]*Length{"radius": m.Radius, "width": m.Width, "height": m.Height} {
		if l != nil && l.Value < 0 {
			return errors.New(errors.ErrCodeInvalidOption, "marker %s must not be negative", name)
		}
	}
	if m.LineWidth != nil && *m.LineWidth < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "marker lineWidth must not be negative")
	}
	for _, c := range []*string{m.FillColor, m.LineColor} {
		if c != nil {
			if err := errors.ValidateColor(*c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Validate checks a partial link style.
func (l Link) Validate() error {
	if l.Type != nil {
		if err := ValidateLinkType(*l.Type); err != nil {
			return err
		}
	}
	if cf := l.curveFactor(); cf != nil && (*cf < 0 || *cf > 1) {
		return errors.New(errors.ErrCodeInvalidOption, "link curveFactor %v must be within [0, 1]", *cf)
	}
	if l.LineWidth != nil && *l.LineWidth < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "link lineWidth must not be negative")
	}
	if l.Radius != nil && *l.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "link radius must not be negative")
	}
	if l.DashStyle != nil {
		if err := ValidateDashStyle(*l.DashStyle); err != nil {
			return err
		}
	}
	if l.Color != nil {
		return errors.ValidateColor(*l.Color)
	}
	return nil
}

// Validate checks the series options and every nested layer.
func (s Series) Validate() error {
	switch s.RootPolicy {
	case "", RootPolicyFirst, RootPolicySynthetic:
	default:
		return errors.New(errors.ErrCodeInvalidOption, "root policy %q must be %q or %q", s.RootPolicy, RootPolicyFirst, RootPolicySynthetic)
	}
	if err := errors.ValidateColor(s.Color); err != nil {
		return err
	}
	for _, c := range s.Colors {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	if err := s.Marker.Validate(); err != nil {
		return err
	}
	if err := s.Link.Validate(); err != nil {
		return err
	}
	seen := make(map[int]bool, len(s.Levels))
	for _, lvl := range s.Levels {
		if seen[lvl.Level] {
			return errors.New(errors.ErrCodeInvalidOption, "level %d configured twice", lvl.Level)
		}
		seen[lvl.Level] = true
		if lvl.Color != nil {
			if err := errors.ValidateColor(*lvl.Color); err != nil {
				return err
			}
		}
		if err := lvl.Marker.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOption, err, "level %d", lvl.Level)
		}
		if err := lvl.Link.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidOption, err, "level %d", lvl.Level)
		}
	}
	return nil
}
