package path

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Op identifies a path segment. The values match SVG path letters.
type Op byte

const (
	OpMove  Op = 'M'
	OpLine  Op = 'L'
	OpCubic Op = 'C'
	OpClose Op = 'Z'
)

// String returns the SVG letter for the operation.
func (o Op) String() string { return string(rune(o)) }

// Command is a single path segment. Args holds the absolute coordinates:
// two for Move and Line, six for Cubic (c1x, c1y, c2x, c2y, x, y) and none
// for Close.
type Command struct {
	Op   Op
	Args []float64
}

// Move returns an absolute move-to command.
func Move(x, y float64) Command { return Command{Op: OpMove, Args: []float64{x, y}} }

// Line returns an absolute line-to command.
func Line(x, y float64) Command { return Command{Op: OpLine, Args: []float64{x, y}} }

// Cubic returns an absolute cubic Bezier command.
func Cubic(c1x, c1y, c2x, c2y, x, y float64) Command {
	return Command{Op: OpCubic, Args: []float64{c1x, c1y, c2x, c2y, x, y}}
}

// Close returns a close-path command.
func Close() Command { return Command{Op: OpClose} }

// MarshalJSON encodes the command as an SVG segment array: ["M", x, y].
func (c Command) MarshalJSON() ([]byte, error) {
	seg := make([]any, 0, len(c.Args)+1)
	seg = append(seg, c.Op.String())
	for _, a := range c.Args {
		seg = append(seg, a)
	}
	return json.Marshal(seg)
}

// UnmarshalJSON decodes an SVG segment array.
func (c *Command) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("path: empty segment")
	}
	var letter string
	if err := json.Unmarshal(raw[0], &letter); err != nil || len(letter) != 1 {
		return fmt.Errorf("path: invalid segment letter %s", raw[0])
	}
	op := Op(letter[0])
	want, ok := arity[op]
	if !ok {
		return fmt.Errorf("path: unsupported segment %q", letter)
	}
	if len(raw)-1 != want {
		return fmt.Errorf("path: segment %q needs %d arguments, got %d", letter, want, len(raw)-1)
	}
	args := make([]float64, 0, want)
	for _, r := range raw[1:] {
		var v float64
		if err := json.Unmarshal(r, &v); err != nil {
			return fmt.Errorf("path: segment %q: %w", letter, err)
		}
		args = append(args, v)
	}
	c.Op = op
	c.Args = args
	return nil
}

var arity = map[Op]int{OpMove: 2, OpLine: 2, OpCubic: 6, OpClose: 0}

// Path is an ordered list of absolute path commands.
type Path []Command

// String renders the path as an SVG d attribute, e.g. "M 10 0 L 95 0".
func (p Path) String() string {
	var b strings.Builder
	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(c.Op))
		for _, a := range c.Args {
			b.WriteByte(' ')
			b.WriteString(formatNumber(a))
		}
	}
	return b.String()
}

func formatNumber(v float64) string {
	// Trim float noise such as 94.99999999999999 from serialized output.
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		r = 0 // normalize -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Crisp snaps a coordinate so that a stroke of the given width lands on
// whole device pixels. Odd widths are offset by half a pixel.
func Crisp(v, lineWidth float64) float64 {
	m := math.Mod(lineWidth, 2) / 2
	return math.Floor(v-m+0.5) + m
}
