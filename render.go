package main

import (
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"
)

// Colours of the planner window
var (
	colorBackground = gg.RGB(20.0/255, 20.0/255, 40.0/255)
	colorObstacle   = gg.RGB(1, 0, 0)
	colorEdge       = gg.RGB(1, 240.0/255, 200.0/255)
	colorStart      = gg.RGB(0, 1, 0)
	colorGoal       = gg.RGB(0, 0, 1)
	colorPath       = gg.RGB(0, 1, 1)
)

// RenderSnapshot draws the snapshot and writes it as PNG
func RenderSnapshot(w io.Writer, snap Snapshot) error {
	width := int(math.Ceil(snap.Width))
	height := int(math.Ceil(snap.Height))
	if width <= 0 || height <= 0 {
		return fmt.Errorf("cannot render a %dx%d region", width, height)
	}

	dc := gg.NewContext(width, height)
	defer dc.Close()

	dc.ClearWithColor(colorBackground)

	dc.SetColor(colorObstacle.Color())
	for _, r := range snap.Obstacles {
		dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("failed to fill obstacle: %w", err)
		}
	}

	dc.SetLineWidth(1)
	dc.SetColor(colorEdge.Color())
	for _, e := range snap.Edges {
		dc.DrawLine(e.From.X, e.From.Y, e.To.X, e.To.Y)
	}
	if len(snap.Edges) > 0 {
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("failed to stroke tree: %w", err)
		}
	}

	if snap.Start != nil {
		dc.SetColor(colorStart.Color())
		dc.DrawCircle(snap.Start.X, snap.Start.Y, snap.GoalRadius)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("failed to fill start: %w", err)
		}
	}
	if snap.Goal != nil {
		dc.SetColor(colorGoal.Color())
		dc.DrawCircle(snap.Goal.X, snap.Goal.Y, snap.GoalRadius)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("failed to fill goal: %w", err)
		}
	}

	if len(snap.Path) > 1 {
		dc.SetLineWidth(2)
		dc.SetColor(colorPath.Color())
		dc.MoveTo(snap.Path[0].X, snap.Path[0].Y)
		for _, p := range snap.Path[1:] {
			dc.LineTo(p.X, p.Y)
		}
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("failed to stroke path: %w", err)
		}
	}

	return dc.EncodePNG(w)
}
