package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/paulmach/orb/geojson"
)

// layoutProperty is the feature property naming the layout a rectangle belongs to
const layoutProperty = "layout"

// LoadLayoutsFromFile reads obstacle layouts from a GeoJSON FeatureCollection.
// Each feature's bounding box becomes one rectangle of the layout named by its
// "layout" property.
func LoadLayoutsFromFile(filename string) (map[int][]Rectangle, error) {
	log.Printf("📂 Loading obstacle layouts from %s...\n", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(filename), err)
	}

	layouts := make(map[int][]Rectangle)
	skipped := 0
	for i, feature := range fc.Features {
		id := layoutID(feature.Properties)
		if id < 0 || feature.Geometry == nil {
			log.Printf("⚠️  Feature %d has no %q property or geometry, skipping\n", i, layoutProperty)
			skipped++
			continue
		}

		rect := rectangleFromBound(feature.Geometry.Bound())
		if rect.Width <= 0 || rect.Height <= 0 {
			log.Printf("⚠️  Feature %d has an empty bounding box, skipping\n", i)
			skipped++
			continue
		}
		layouts[id] = append(layouts[id], rect)
	}

	ids := make([]int, 0, len(layouts))
	for id := range layouts {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		before := len(layouts[id])
		layouts[id] = removeContainedRectangles(layouts[id])
		log.Printf("   ✅ Layout %d: %d rectangles (removed %d contained)\n",
			id, len(layouts[id]), before-len(layouts[id]))
	}
	if skipped > 0 {
		log.Printf("   ℹ️  Skipped %d features\n", skipped)
	}

	return layouts, nil
}

// layoutID reads the layout property, returning -1 when absent or not a number
func layoutID(props geojson.Properties) int {
	switch v := props[layoutProperty].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return -1
}

// removeContainedRectangles drops rectangles fully covered by another one.
// Of two identical rectangles the first is kept.
func removeContainedRectangles(rects []Rectangle) []Rectangle {
	if len(rects) <= 1 {
		return rects
	}

	contained := make([]bool, len(rects))
	for i := range rects {
		for j := range rects {
			if i == j || contained[j] {
				continue
			}
			if isRectContainedIn(rects[i], rects[j]) && (rects[i] != rects[j] || j < i) {
				contained[i] = true
				break
			}
		}
	}

	result := make([]Rectangle, 0, len(rects))
	for i, r := range rects {
		if !contained[i] {
			result = append(result, r)
		}
	}
	return result
}

// isRectContainedIn checks if rectangle a lies within rectangle b
func isRectContainedIn(a, b Rectangle) bool {
	return a.X >= b.X && a.X+a.Width <= b.X+b.Width &&
		a.Y >= b.Y && a.Y+a.Height <= b.Y+b.Height
}
