package layout

import (
	"slices"
	"strings"
	"sync"

	"github.com/erfan1375er/highcharts/pkg/errors"
	"github.com/erfan1375er/highcharts/pkg/tree"
)

// DefaultAlgorithm is used when no algorithm is named.
const DefaultAlgorithm = "Walker"

// Point is an abstract layout coordinate: X is the column (depth), Y the
// free position along the column.
type Point struct {
	X, Y float64
}

// Positions holds the abstract coordinate of every laid-out node.
type Positions struct {
	IDs    []string // laid-out ids in tree preorder
	Points map[string]Point
}

// NewPositions returns an empty position set.
func NewPositions() Positions {
	return Positions{Points: make(map[string]Point)}
}

// Set records the coordinate of a node.
func (p *Positions) Set(id string, pt Point) {
	if _, ok := p.Points[id]; !ok {
		p.IDs = append(p.IDs, id)
	}
	p.Points[id] = pt
}

// Get returns the coordinate of a node.
func (p Positions) Get(id string) (Point, bool) {
	pt, ok := p.Points[id]
	return pt, ok
}

// Len returns the number of positioned nodes.
func (p Positions) Len() int { return len(p.IDs) }

// Hints carry sizing hints from the caller.
type Hints struct {
	// Distance is the minimum separation between adjacent positions at the
	// same depth. Zero means 1.
	Distance float64
}

func (h Hints) distance() float64 {
	if h.Distance <= 0 {
		return 1
	}
	return h.Distance
}

// Algorithm assigns abstract coordinates to the visible nodes of a tree.
//
// Implementations read Node.Collapsed and Node.Hidden: collapsed nodes are
// leaves, hidden nodes receive no position, and the virtual root is never
// positioned. An empty tree yields empty positions and no error.
//
// An error with a warning code (see [errors.IsWarning]) keeps the returned
// positions and becomes a pass warning. Any other error aborts the pass.
type Algorithm interface {
	Name() string
	Compute(t *tree.Tree, hints Hints) (Positions, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Algorithm{}
)

func init() {
	Register(Walker{})
}

// Register adds an algorithm under its case-insensitive name, replacing
// any algorithm registered under the same name.
func Register(a Algorithm) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(a.Name())] = a
}

// Lookup returns the algorithm registered under name. An empty name
// selects [DefaultAlgorithm].
func Lookup(name string) (Algorithm, error) {
	if name == "" {
		name = DefaultAlgorithm
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	a, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownLayout, "unknown layout %q (available: %s)", name, strings.Join(namesLocked(), ", "))
	}
	return a, nil
}

// Names lists the registered algorithm names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return namesLocked()
}

func namesLocked() []string {
	names := make([]string, 0, len(registry))
	for _, a := range registry {
		names = append(names, a.Name())
	}
	slices.Sort(names)
	return names
}
