package main

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// Feature kinds used in exported GeoJSON
const (
	kindObstacle = "obstacle"
	kindEdge     = "edge"
	kindStart    = "start"
	kindGoal     = "goal"
	kindPath     = "path"
)

func toOrb(p Point) orb.Point {
	return orb.Point{p.X, p.Y}
}

// SnapshotToGeoJSON converts a snapshot into a feature collection with the
// obstacles, tree edges, start, goal and path.
func SnapshotToGeoJSON(snap Snapshot) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, r := range snap.Obstacles {
		f := geojson.NewFeature(r.Bound().ToPolygon())
		f.Properties["kind"] = kindObstacle
		f.Properties["index"] = i
		f.Properties[layoutProperty] = snap.Layout
		fc.Append(f)
	}

	for _, e := range snap.Edges {
		f := geojson.NewFeature(orb.LineString{toOrb(e.From), toOrb(e.To)})
		f.Properties["kind"] = kindEdge
		fc.Append(f)
	}

	if snap.Start != nil {
		f := geojson.NewFeature(toOrb(*snap.Start))
		f.Properties["kind"] = kindStart
		fc.Append(f)
	}
	if snap.Goal != nil {
		f := geojson.NewFeature(toOrb(*snap.Goal))
		f.Properties["kind"] = kindGoal
		f.Properties["radius"] = snap.GoalRadius
		fc.Append(f)
	}

	if len(snap.Path) > 1 {
		line := make(orb.LineString, 0, len(snap.Path))
		for _, p := range snap.Path {
			line = append(line, toOrb(p))
		}
		f := geojson.NewFeature(line)
		f.Properties["kind"] = kindPath
		f.Properties["length"] = planar.Length(line)
		f.Properties["waypoints"] = len(line)
		fc.Append(f)
	}

	return fc
}

// PathLength returns the length of a polyline
func PathLength(path []Point) float64 {
	line := make(orb.LineString, 0, len(path))
	for _, p := range path {
		line = append(line, toOrb(p))
	}
	return planar.Length(line)
}
