package main

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// rectEpsilon pads degenerate rectangle sides; rtreego rejects
// zero-length extents.
const rectEpsilon = 1e-9

// obstacleEntry wraps a polygon for R-tree storage.
type obstacleEntry struct {
	polygon orb.Polygon
	bbox    rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *obstacleEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// ObstacleIndex answers point-in-obstacle queries through an R-tree over
// polygon bounding boxes.
type ObstacleIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewObstacleIndex builds an index over the given polygons.
func NewObstacleIndex(polygons []orb.Polygon) *ObstacleIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	size := 0
	for _, polygon := range polygons {
		bbox, err := boundToRect(polygon.Bound())
		if err != nil {
			continue
		}
		tree.Insert(&obstacleEntry{polygon: polygon, bbox: bbox})
		size++
	}

	return &ObstacleIndex{tree: tree, size: size}
}

// Size returns the number of indexed polygons.
func (oi *ObstacleIndex) Size() int {
	if oi == nil {
		return 0
	}
	return oi.size
}

// Contains reports whether the point lies inside any obstacle polygon.
// The R-tree narrows the candidates; planar tests settle membership.
func (oi *ObstacleIndex) Contains(p orb.Point) bool {
	if oi == nil || oi.size == 0 {
		return false
	}

	probe, err := rtreego.NewRect(
		rtreego.Point{p[0], p[1]},
		[]float64{rectEpsilon, rectEpsilon},
	)
	if err != nil {
		return false
	}

	for _, item := range oi.tree.SearchIntersect(probe) {
		entry := item.(*obstacleEntry)
		if planar.PolygonContains(entry.polygon, p) {
			return true
		}
	}
	return false
}

// boundToRect converts an orb bound into an rtreego rectangle.
func boundToRect(b orb.Bound) (rtreego.Rect, error) {
	lengths := []float64{b.Max[0] - b.Min[0], b.Max[1] - b.Min[1]}
	for i := range lengths {
		if lengths[i] < rectEpsilon {
			lengths[i] = rectEpsilon
		}
	}
	return rtreego.NewRect(rtreego.Point{b.Min[0], b.Min[1]}, lengths)
}

// nodeEntry wraps a tree node for nearest-neighbor queries.
type nodeEntry struct {
	node *TreeNode
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (e *nodeEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// NodeIndex is an R-tree over tree-node positions, for trees large enough
// that the linear nearest scan becomes the bottleneck. Unlike the scan it
// does not promise earliest-insertion tie-breaking, and it only answers
// for the position-only metric.
type NodeIndex struct {
	tree *rtreego.Rtree
}

// NewNodeIndex creates an empty node index.
func NewNodeIndex() *NodeIndex {
	return &NodeIndex{tree: rtreego.NewTree(2, 25, 50)}
}

// Insert adds a node's position to the index.
func (ni *NodeIndex) Insert(n *TreeNode) {
	bbox, err := rtreego.NewRect(
		rtreego.Point{n.State.X, n.State.Y},
		[]float64{rectEpsilon, rectEpsilon},
	)
	if err != nil {
		return
	}
	ni.tree.Insert(&nodeEntry{node: n, bbox: bbox})
}

// Nearest returns the indexed node closest to target in (x, y).
func (ni *NodeIndex) Nearest(target State) *TreeNode {
	item := ni.tree.NearestNeighbor(rtreego.Point{target.X, target.Y})
	if item == nil {
		return nil
	}
	return item.(*nodeEntry).node
}
