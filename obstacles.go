package main

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
)

// Reference region the built-in layouts were drawn for
const (
	ReferenceWidth  = 720.0
	ReferenceHeight = 500.0
)

// Rectangle is an axis-aligned obstacle given by its origin and size
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bound returns the rectangle as an orb bound
func (r Rectangle) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{r.X, r.Y},
		Max: orb.Point{r.X + r.Width, r.Y + r.Height},
	}
}

// Contains checks if p lies within the closed bounds of the rectangle
func (r Rectangle) Contains(p Point) bool {
	return r.Bound().Contains(orb.Point{p.X, p.Y})
}

func rectangleFromBound(b orb.Bound) Rectangle {
	return Rectangle{
		X:      b.Min.X(),
		Y:      b.Min.Y(),
		Width:  b.Max.X() - b.Min.X(),
		Height: b.Max.Y() - b.Min.Y(),
	}
}

// builtinLayouts are expressed in the reference region and scaled to the
// configured region when applied.
var builtinLayouts = map[int][]Rectangle{
	0: {
		{X: ReferenceWidth/2 - 50, Y: ReferenceHeight/2 - 100, Width: 100, Height: 200},
	},
	1: {
		{X: 40, Y: 10, Width: 100, Height: 200},
		{X: 500, Y: 200, Width: 500, Height: 200},
	},
	2: {
		{X: 40, Y: 10, Width: 100, Height: 200},
	},
	3: {
		{X: 40, Y: 10, Width: 100, Height: 200},
	},
}

type layout struct {
	rects []Rectangle
	// scaled layouts are in reference coordinates
	scaled bool
}

// ObstacleField holds the active set of rectangles
type ObstacleField struct {
	width, height float64
	layouts       map[int]layout
	active        int
	rects         []Rectangle
	index         *SpatialIndex
}

// NewObstacleField creates an empty field for a region of the given size.
// The built-in layouts are registered but none is active.
func NewObstacleField(width, height float64) *ObstacleField {
	f := &ObstacleField{
		width:   width,
		height:  height,
		layouts: make(map[int]layout, len(builtinLayouts)),
		active:  -1,
		index:   NewSpatialIndex(nil),
	}
	for id, rects := range builtinLayouts {
		f.layouts[id] = layout{rects: rects, scaled: true}
	}
	return f
}

// RegisterLayout adds or replaces a layout given in region coordinates
func (f *ObstacleField) RegisterLayout(id int, rects []Rectangle) error {
	if len(rects) == 0 {
		return fmt.Errorf("layout %d: %w: no rectangles", id, ErrUnknownLayout)
	}
	for i, r := range rects {
		if r.Width <= 0 || r.Height <= 0 {
			return fmt.Errorf("layout %d rectangle %d: non-positive size %gx%g", id, i, r.Width, r.Height)
		}
	}
	f.layouts[id] = layout{rects: append([]Rectangle(nil), rects...)}
	return nil
}

// HasLayout reports whether id names a known layout
func (f *ObstacleField) HasLayout(id int) bool {
	_, ok := f.layouts[id]
	return ok
}

// LayoutIDs returns the known layout ids in ascending order
func (f *ObstacleField) LayoutIDs() []int {
	ids := make([]int, 0, len(f.layouts))
	for id := range f.layouts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Configure replaces the active rectangles with the layout named by id.
// Unknown ids leave the field untouched.
func (f *ObstacleField) Configure(id int) error {
	l, ok := f.layouts[id]
	if !ok {
		return fmt.Errorf("layout %d: %w", id, ErrUnknownLayout)
	}

	rects := make([]Rectangle, len(l.rects))
	sx, sy := 1.0, 1.0
	if l.scaled {
		sx, sy = f.width/ReferenceWidth, f.height/ReferenceHeight
	}
	for i, r := range l.rects {
		rects[i] = Rectangle{X: r.X * sx, Y: r.Y * sy, Width: r.Width * sx, Height: r.Height * sy}
	}

	f.active = id
	f.rects = rects
	f.index = NewSpatialIndex(rects)
	return nil
}

// Layout returns the active layout id, or -1 if none has been applied
func (f *ObstacleField) Layout() int {
	return f.active
}

// Rectangles returns a copy of the active rectangles
func (f *ObstacleField) Rectangles() []Rectangle {
	return append([]Rectangle(nil), f.rects...)
}

// Collides checks if p lies inside any active rectangle (boundary inclusive)
func (f *ObstacleField) Collides(p Point) bool {
	for _, r := range f.index.QueryPoint(p) {
		if r.Contains(p) {
			return true
		}
	}
	return false
}
