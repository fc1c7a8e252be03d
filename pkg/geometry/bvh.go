package geometry

import (
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SplitStrategy selects how a range of primitives is divided while building a BVH
type SplitStrategy int

const (
	// SplitArrayOrder splits the range at its median in scene order
	SplitArrayOrder SplitStrategy = iota
	// SplitLongestAxis sorts the range by box centroid along the longest axis before splitting
	SplitLongestAxis
)

// String returns the strategy name used in configuration
func (s SplitStrategy) String() string {
	switch s {
	case SplitLongestAxis:
		return "longest-axis"
	default:
		return "array-order"
	}
}

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Internal nodes have both children; leaves reference exactly one primitive.
type BVHNode struct {
	BoundingBox AABB
	Left        *BVHNode
	Right       *BVHNode
	Index       int // Primitive index for leaf nodes, -1 for internal nodes
}

// IsLeaf reports whether the node references a primitive
func (n *BVHNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BVH is a Bounding Volume Hierarchy over a primitive slice. The slice is
// addressed by index and must not change after construction.
type BVH struct {
	Root       *BVHNode
	Primitives []Primitive
	Strategy   SplitStrategy
}

// NewBVH constructs a BVH over primitives
func NewBVH(primitives []Primitive, strategy SplitStrategy) *BVH {
	bvh := &BVH{Primitives: primitives, Strategy: strategy}
	if len(primitives) == 0 {
		return bvh
	}

	indices := make([]int, len(primitives))
	for i := range indices {
		indices[i] = i
	}
	bvh.Root = bvh.build(indices)
	return bvh
}

// build recursively bisects an index range until each leaf holds one primitive
func (bvh *BVH) build(indices []int) *BVHNode {
	if len(indices) == 1 {
		return &BVHNode{
			BoundingBox: bvh.Primitives[indices[0]].BoundingBox(),
			Index:       indices[0],
		}
	}

	if bvh.Strategy == SplitLongestAxis {
		bounds := bvh.Primitives[indices[0]].BoundingBox()
		for _, i := range indices[1:] {
			bounds = bounds.Union(bvh.Primitives[i].BoundingBox())
		}
		bvh.sortByAxis(indices, bounds.LongestAxis())
	}

	mid := len(indices) / 2
	left := bvh.build(indices[:mid])
	right := bvh.build(indices[mid:])

	return &BVHNode{
		BoundingBox: left.BoundingBox.Union(right.BoundingBox),
		Left:        left,
		Right:       right,
		Index:       -1,
	}
}

// sortByAxis sorts indices by their primitive's bounding box center along the specified axis
func (bvh *BVH) sortByAxis(indices []int, axis int) {
	sort.SliceStable(indices, func(i, j int) bool {
		centerI := bvh.Primitives[indices[i]].BoundingBox().Center()
		centerJ := bvh.Primitives[indices[j]].BoundingBox().Center()
		return centerI.Axis(axis) < centerJ.Axis(axis)
	})
}

// Hit returns the nearest intersection in (tMin, tMax)
func (bvh *BVH) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	if bvh.Root == nil {
		return nil, false
	}

	closest := tMax
	nearest := -1
	bvh.hitNode(bvh.Root, ray, tMin, &closest, &nearest)
	if nearest < 0 {
		return nil, false
	}
	return newHitRecord(ray, closest, bvh.Primitives[nearest]), true
}

// hitNode descends into nodes whose box overlaps (tMin, closest), shrinking closest on every hit
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin float64, closest *float64, nearest *int) {
	if !node.BoundingBox.Hit(ray, tMin, *closest) {
		return
	}

	if node.IsLeaf() {
		if t, ok := bvh.Primitives[node.Index].Intersect(ray, tMin, *closest); ok {
			*closest = t
			*nearest = node.Index
		}
		return
	}

	bvh.hitNode(node.Left, ray, tMin, closest, nearest)
	bvh.hitNode(node.Right, ray, tMin, closest, nearest)
}

// Occluded reports whether any primitive intersects the ray in (tMin, tMax)
func (bvh *BVH) Occluded(ray core.Ray, tMin, tMax float64) bool {
	if bvh.Root == nil {
		return false
	}
	return bvh.occludedNode(bvh.Root, ray, tMin, tMax)
}

func (bvh *BVH) occludedNode(node *BVHNode, ray core.Ray, tMin, tMax float64) bool {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return false
	}
	if node.IsLeaf() {
		_, ok := bvh.Primitives[node.Index].Intersect(ray, tMin, tMax)
		return ok
	}
	return bvh.occludedNode(node.Left, ray, tMin, tMax) || bvh.occludedNode(node.Right, ray, tMin, tMax)
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	AvgDepth   float64
}

// Stats returns statistics about the BVH structure
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	if bvh.Root == nil {
		return stats
	}

	bvh.collectStats(bvh.Root, 0, &stats)
	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}
	return stats
}

// collectStats recursively collects statistics about the BVH
func (bvh *BVH) collectStats(node *BVHNode, depth int, stats *BVHStats) {
	stats.TotalNodes++
	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.IsLeaf() {
		stats.LeafNodes++
		stats.AvgDepth += float64(depth)
		return
	}
	bvh.collectStats(node.Left, depth+1, stats)
	bvh.collectStats(node.Right, depth+1, stats)
}
