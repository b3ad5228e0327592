package main

import (
	"math/rand"
	"testing"
)

func emptyField() *ObstacleField {
	return NewObstacleField(ReferenceWidth, ReferenceHeight)
}

func TestNewTree(t *testing.T) {
	tree := NewTree(Point{10, 10})
	if tree.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tree.Len())
	}
	if n := tree.Node(0); n.Parent != NoParent || n.Point != (Point{10, 10}) {
		t.Errorf("root = %+v", n)
	}
	if len(tree.Edges()) != 0 {
		t.Error("single-node tree should have no edges")
	}
}

func TestExtendTowardSteps(t *testing.T) {
	tree := NewTree(Point{0, 0})

	res, ok := tree.ExtendToward(Point{100, 0}, emptyField(), 7, 0)
	if !ok || !res.Added {
		t.Fatalf("ExtendToward = %+v, %v", res, ok)
	}
	if res.Index != 1 || res.Parent != 0 {
		t.Errorf("Index, Parent = %d, %d, want 1, 0", res.Index, res.Parent)
	}
	if res.Point.Distance(Point{7, 0}) > tolerance {
		t.Errorf("Point = %+v, want (7, 0)", res.Point)
	}
	if tree.Len() != 2 {
		t.Errorf("Len() = %d, want 2", tree.Len())
	}
}

func TestExtendTowardSnapsToCloseTarget(t *testing.T) {
	tree := NewTree(Point{0, 0})

	res, ok := tree.ExtendToward(Point{0, 0}, emptyField(), 7, 0)
	if !ok || !res.Added {
		t.Fatalf("ExtendToward = %+v, %v", res, ok)
	}
	if res.Point != (Point{0, 0}) {
		t.Errorf("Point = %+v, want coincident with root", res.Point)
	}
}

func TestExtendTowardTieGoesToLaterNode(t *testing.T) {
	tree := NewTree(Point{0, 0})
	if _, ok := tree.ExtendToward(Point{10, 0}, emptyField(), 10, 0); !ok {
		t.Fatal("setup extension failed")
	}

	// (5, 5) is equidistant from the root and from (10, 0)
	res, ok := tree.ExtendToward(Point{5, 5}, emptyField(), 1, 0)
	if !ok {
		t.Fatal("ExtendToward failed")
	}
	if res.Parent != 1 {
		t.Errorf("Parent = %d, want later node 1", res.Parent)
	}
}

func TestExtendTowardSkipsBlockedCandidates(t *testing.T) {
	f := NewObstacleField(ReferenceWidth, ReferenceHeight)
	if err := f.RegisterLayout(5, []Rectangle{{X: 20, Y: -5, Width: 10, Height: 10}}); err != nil {
		t.Fatal(err)
	}
	if err := f.Configure(5); err != nil {
		t.Fatal(err)
	}

	tree := NewTree(Point{0, 0})
	if _, ok := tree.ExtendToward(Point{15, 0}, f, 15, 0); !ok {
		t.Fatal("setup extension failed")
	}

	// node 1 at (15, 0) is closer but its step lands inside the obstacle
	res, ok := tree.ExtendToward(Point{40, 0}, f, 7, 0)
	if !ok {
		t.Fatal("ExtendToward failed")
	}
	if res.Parent != 0 {
		t.Errorf("Parent = %d, want root", res.Parent)
	}
	if f.Collides(res.Point) {
		t.Errorf("new node %+v is inside an obstacle", res.Point)
	}
}

func TestExtendTowardNoFreeStep(t *testing.T) {
	f := NewObstacleField(ReferenceWidth, ReferenceHeight)
	if err := f.RegisterLayout(5, []Rectangle{{X: 1, Y: -5, Width: 10, Height: 10}}); err != nil {
		t.Fatal(err)
	}
	if err := f.Configure(5); err != nil {
		t.Fatal(err)
	}

	tree := NewTree(Point{0, 0})
	if _, ok := tree.ExtendToward(Point{20, 0}, f, 7, 0); ok {
		t.Error("ExtendToward succeeded through an obstacle")
	}
	if tree.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tree.Len())
	}
}

func TestExtendTowardMinDistanceGate(t *testing.T) {
	tree := NewTree(Point{0, 0})

	res, ok := tree.ExtendToward(Point{0.5, 0}, emptyField(), 7, 1.0)
	if !ok {
		t.Fatal("ExtendToward failed")
	}
	if res.Added {
		t.Error("node closer than the minimum distance was added")
	}
	if tree.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tree.Len())
	}

	if res, _ := tree.ExtendToward(Point{0.5, 0}, emptyField(), 7, 0); !res.Added {
		t.Error("gate disabled should add the node")
	}
}

func TestTreeInvariants(t *testing.T) {
	f := configuredField(t, 1)
	s := NewSampler(ReferenceWidth, ReferenceHeight, 3, 0)
	tree := NewTree(Point{10, 300})
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 2000; i++ {
		target, err := s.UniformFree(f)
		if err != nil {
			t.Fatal(err)
		}
		tree.ExtendToward(target, f, 1+rng.Float64()*10, 0)
	}

	if tree.Node(0).Parent != NoParent {
		t.Error("root has a parent")
	}
	for i := 1; i < tree.Len(); i++ {
		n := tree.Node(i)
		if n.Parent < 0 || n.Parent >= i {
			t.Fatalf("node %d has parent %d", i, n.Parent)
		}
		if f.Collides(n.Point) {
			t.Fatalf("node %d at %+v is inside an obstacle", i, n.Point)
		}
	}
	if got := len(tree.Edges()); got != tree.Len()-1 {
		t.Errorf("len(Edges()) = %d, want %d", got, tree.Len()-1)
	}
}

func TestPathTo(t *testing.T) {
	tree := NewTree(Point{0, 0})
	for i := 0; i < 5; i++ {
		tree.ExtendToward(Point{100, 0}, emptyField(), 7, 0)
	}

	path := tree.PathTo(tree.Len() - 1)
	if len(path) != 6 {
		t.Fatalf("len(path) = %d, want 6", len(path))
	}
	if path[len(path)-1] != tree.Root() {
		t.Errorf("path ends at %+v, want root", path[len(path)-1])
	}
	if path[0] != tree.Node(tree.Len()-1).Point {
		t.Errorf("path starts at %+v, want last node", path[0])
	}
	if got := tree.PathTo(0); len(got) != 1 {
		t.Errorf("PathTo(root) = %+v", got)
	}
}

func TestNearest(t *testing.T) {
	tree := NewTree(Point{0, 0})
	tree.ExtendToward(Point{100, 0}, emptyField(), 50, 0)
	tree.ExtendToward(Point{0, 100}, emptyField(), 50, 0)

	tests := []struct {
		p    Point
		want int
	}{
		{Point{1, 1}, 0},
		{Point{60, 0}, 1},
		{Point{0, 60}, 2},
	}
	for _, tt := range tests {
		if got, _ := tree.Nearest(tt.p); got != tt.want {
			t.Errorf("Nearest(%+v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}
