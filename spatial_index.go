package main

import (
	"github.com/dhconnelly/rtreego"
)

// queryTolerance pads point queries so rectangles touching the point are returned
const queryTolerance = 1e-6

// RectangleEntry wraps a rectangle for R-tree storage
type RectangleEntry struct {
	Rect Rectangle
	BBox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (r *RectangleEntry) Bounds() rtreego.Rect {
	return r.BBox
}

// SpatialIndex manages rectangle spatial queries
type SpatialIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewSpatialIndex creates a new spatial index
func NewSpatialIndex(rects []Rectangle) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	size := 0

	for _, rect := range rects {
		bbox, err := rtreego.NewRect(
			rtreego.Point{rect.X, rect.Y},
			[]float64{rect.Width, rect.Height},
		)
		if err != nil {
			continue
		}
		tree.Insert(&RectangleEntry{Rect: rect, BBox: bbox})
		size++
	}

	return &SpatialIndex{tree: tree, size: size}
}

// Len returns the number of indexed rectangles
func (si *SpatialIndex) Len() int {
	return si.size
}

// QueryPoint returns rectangles whose bounding boxes are near p.
// Callers still run the exact containment test on the result.
func (si *SpatialIndex) QueryPoint(p Point) []Rectangle {
	if si.size == 0 {
		return nil
	}

	box := rtreego.Point{p.X, p.Y}.ToRect(queryTolerance)
	results := si.tree.SearchIntersect(box)
	rects := make([]Rectangle, 0, len(results))

	for _, item := range results {
		entry := item.(*RectangleEntry)
		rects = append(rects, entry.Rect)
	}

	return rects
}
