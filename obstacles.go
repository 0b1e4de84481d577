package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// LoadObstacles reads every GeoJSON file in dir and collects polygon
// geometries. MultiPolygons are split into their member polygons.
func LoadObstacles(dir string) ([]orb.Polygon, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, err
	}

	log.Printf("Loading obstacles from %d GeoJSON files...\n", len(files))

	var polygons []orb.Polygon
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			log.Printf("⚠️  Failed to read %s: %v\n", file, err)
			continue
		}

		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			log.Printf("⚠️  Failed to parse %s: %v\n", file, err)
			continue
		}

		count := 0
		for _, feature := range fc.Features {
			switch geom := feature.Geometry.(type) {
			case orb.Polygon:
				polygons = append(polygons, geom)
				count++
			case orb.MultiPolygon:
				for _, poly := range geom {
					polygons = append(polygons, poly)
					count++
				}
			}
		}

		log.Printf("   ✅ Loaded %d polygons from %s\n", count, filepath.Base(file))
	}

	log.Printf("Total obstacles loaded: %d polygons\n", len(polygons))
	return polygons, nil
}

// PruneContained drops polygons fully contained within another polygon.
// They cannot change any validity answer and only slow down queries.
func PruneContained(polygons []orb.Polygon) []orb.Polygon {
	if len(polygons) <= 1 {
		return polygons
	}

	contained := make([]bool, len(polygons))
	for i := range polygons {
		if contained[i] {
			continue
		}
		for j := range polygons {
			if i == j || contained[j] {
				continue
			}
			if polygonContainedIn(polygons[i], polygons[j]) {
				contained[i] = true
				break
			}
		}
	}

	result := make([]orb.Polygon, 0, len(polygons))
	for i := range polygons {
		if !contained[i] {
			result = append(result, polygons[i])
		}
	}

	log.Printf("   Obstacles after removing contained: %d (removed %d)\n",
		len(result), len(polygons)-len(result))

	return result
}

// polygonContainedIn checks if polygon a is fully contained within
// polygon b: a cheap bound comparison first, then every outer-ring vertex.
func polygonContainedIn(a, b orb.Polygon) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}

	ab, bb := a.Bound(), b.Bound()
	if ab.Min[0] < bb.Min[0] || ab.Max[0] > bb.Max[0] ||
		ab.Min[1] < bb.Min[1] || ab.Max[1] > bb.Max[1] {
		return false
	}

	for _, vertex := range a[0] {
		if !planar.PolygonContains(b, vertex) {
			return false
		}
	}
	return true
}

// SimplifyObstacles reduces polygon complexity with Douglas-Peucker. A
// non-positive epsilon returns the input unchanged.
func SimplifyObstacles(polygons []orb.Polygon, epsilon float64) []orb.Polygon {
	if epsilon <= 0 {
		return polygons
	}

	simplifier := simplify.DouglasPeucker(epsilon)
	out := make([]orb.Polygon, len(polygons))
	for i, poly := range polygons {
		// the simplifier mutates in place
		out[i] = simplifier.Polygon(poly.Clone())
	}
	return out
}
