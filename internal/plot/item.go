// Package plot defines the drawable items placed on the logical plane.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"plot-viewport/pkg/colorutil"
)

// Item discriminators accepted by NewItem.
const (
	TypeRect  = "rect"
	TypeCurve = "curve"
	// TypeGraph is an alias for TypeCurve.
	TypeGraph = "graph"
)

var (
	// ErrUnknownType is returned for a descriptor with an unrecognized type.
	ErrUnknownType = errors.New("unknown item type")
	// ErrInvalidItem is returned for a descriptor whose fields do not form a valid item.
	ErrInvalidItem = errors.New("invalid item")
)

// Item is one of Rect or Curve. The set is closed: the unexported method
// keeps other packages from adding kinds, and every consumer dispatches
// through Visitor, so a new kind fails to compile until all visitors
// handle it.
type Item interface {
	Accept(v Visitor)
	item()
}

// Visitor receives the concrete variant of an Item.
type Visitor interface {
	VisitRect(r Rect)
	VisitCurve(c Curve)
}

// Rect is an axis-aligned rectangle in logical coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
	Color         color.RGBA
}

func (r Rect) Accept(v Visitor) { v.VisitRect(r) }
func (Rect) item()              {}

// Curve is the graph of a total function sampled on demand.
// F may return NaN or ±Inf; consumers skip such samples.
type Curve struct {
	F     func(x float64) float64
	Color color.RGBA
}

func (c Curve) Accept(v Visitor) { v.VisitCurve(c) }
func (Curve) item()              {}

// Eval returns F(x).
func (c Curve) Eval(x float64) float64 {
	return c.F(x)
}

// Descriptor is the loosely-typed form of an item as supplied by
// application bootstrap code.
type Descriptor struct {
	Type   string
	X, Y   float64
	Width  float64
	Height float64
	F      func(x float64) float64
	Color  string
}

// NewItem builds the immutable item described by d.
func NewItem(d Descriptor) (Item, error) {
	kind := strings.ToLower(strings.TrimSpace(d.Type))

	col, err := colorutil.Parse(d.Color)
	if err != nil && (kind == TypeRect || kind == TypeCurve || kind == TypeGraph) {
		return nil, fmt.Errorf("%w: %s color: %v", ErrInvalidItem, kind, err)
	}

	switch kind {
	case TypeRect:
		return Rect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height, Color: col}, nil
	case TypeCurve, TypeGraph:
		if d.F == nil {
			return nil, fmt.Errorf("%w: curve has no function", ErrInvalidItem)
		}
		return Curve{F: d.F, Color: col}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, d.Type)
	}
}

// NewItems builds items in order, stopping at the first invalid descriptor.
func NewItems(ds ...Descriptor) ([]Item, error) {
	items := make([]Item, 0, len(ds))
	for i, d := range ds {
		it, err := NewItem(d)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, it)
	}
	return items, nil
}

// Curves returns the curve items of items, in order.
func Curves(items []Item) []Curve {
	var c curveCollector
	for _, it := range items {
		it.Accept(&c)
	}
	return c.curves
}

type curveCollector struct {
	curves []Curve
}

func (c *curveCollector) VisitRect(Rect)      {}
func (c *curveCollector) VisitCurve(cv Curve) { c.curves = append(c.curves, cv) }
