package main

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in the planning region
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge is a parent-to-child segment of the tree
type Edge struct {
	From Point `json:"from"`
	To   Point `json:"to"`
}

func (p Point) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func pointFromVec(v r2.Vec) Point {
	return Point{X: v.X, Y: v.Y}
}

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return r2.Norm(r2.Sub(p.vec(), other.vec()))
}

// Step moves from p1 toward p2 by at most epsilon.
// When p2 is closer than epsilon it is returned exactly.
func Step(p1, p2 Point, epsilon float64) Point {
	if p1.Distance(p2) < epsilon {
		return p2
	}
	theta := math.Atan2(p2.Y-p1.Y, p2.X-p1.X)
	offset := r2.Vec{X: epsilon * math.Cos(theta), Y: epsilon * math.Sin(theta)}
	return pointFromVec(r2.Add(p1.vec(), offset))
}

// PointInCircle reports whether p lies within radius of center (boundary inclusive)
func PointInCircle(p, center Point, radius float64) bool {
	return p.Distance(center) <= radius
}
