package main

import "math"

// NoParent marks the root node
const NoParent = -1

// TreeNode is a node of the RRT. Parent indexes an earlier node of the same tree.
type TreeNode struct {
	Point  Point `json:"point"`
	Parent int   `json:"parent"`
}

// Tree is an append-only RRT; index 0 is the root.
type Tree struct {
	nodes []TreeNode
}

// ExtendResult describes one successful extension
type ExtendResult struct {
	Index  int   // index of the new node, or of the parent when the node was not added
	Parent int   // index of the node the extension started from
	Point  Point // the stepped point
	Added  bool  // false when the min-distance gate suppressed the node
}

// NewTree creates a single-node tree rooted at root
func NewTree(root Point) *Tree {
	return &Tree{nodes: []TreeNode{{Point: root, Parent: NoParent}}}
}

// Len returns the number of nodes
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node at index i
func (t *Tree) Node(i int) TreeNode {
	return t.nodes[i]
}

// Root returns the root point
func (t *Tree) Root() Point {
	return t.nodes[0].Point
}

// ExtendToward grows the tree one step toward target.
//
// Every node no farther from target than the current best is a candidate; a
// candidate replaces the best when its step toward target is collision-free.
// Ties go to the later node. It returns false when no node admits a free step,
// in which case the caller should draw a new target.
//
// minDistanceToAdd > 0 suppresses nodes closer than that to their parent.
func (t *Tree) ExtendToward(target Point, field *ObstacleField, stepSize, minDistanceToAdd float64) (ExtendResult, bool) {
	best := 0
	found := false

	for i, n := range t.nodes {
		if n.Point.Distance(target) <= t.nodes[best].Point.Distance(target) {
			if !field.Collides(Step(n.Point, target, stepSize)) {
				best = i
				found = true
			}
		}
	}
	if !found {
		return ExtendResult{}, false
	}

	parent := t.nodes[best].Point
	newPoint := Step(parent, target, stepSize)
	if minDistanceToAdd > 0 && parent.Distance(newPoint) < minDistanceToAdd {
		return ExtendResult{Index: best, Parent: best, Point: newPoint}, true
	}

	t.nodes = append(t.nodes, TreeNode{Point: newPoint, Parent: best})
	return ExtendResult{Index: len(t.nodes) - 1, Parent: best, Point: newPoint, Added: true}, true
}

// PathTo follows parent links from node i back to the root.
// The result runs from node i to the root.
func (t *Tree) PathTo(i int) []Point {
	path := []Point{}
	for idx := i; idx != NoParent; idx = t.nodes[idx].Parent {
		path = append(path, t.nodes[idx].Point)
	}
	return path
}

// Edges returns every parent-child segment in insertion order
func (t *Tree) Edges() []Edge {
	edges := make([]Edge, 0, len(t.nodes)-1)
	for _, n := range t.nodes[1:] {
		edges = append(edges, Edge{From: t.nodes[n.Parent].Point, To: n.Point})
	}
	return edges
}

// Nearest finds the closest node to a given point
func (t *Tree) Nearest(p Point) (int, float64) {
	if len(t.nodes) == 0 {
		return -1, math.MaxFloat64
	}

	nearest := 0
	minDist := p.Distance(t.nodes[0].Point)

	for i := 1; i < len(t.nodes); i++ {
		dist := p.Distance(t.nodes[i].Point)
		if dist < minDist {
			minDist = dist
			nearest = i
		}
	}

	return nearest, minDist
}
