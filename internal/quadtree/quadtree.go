package quadtree

import "github.com/dmccoystephenson/jpo-ppm/internal/geo"

// DefaultMaxDepth and DefaultLeafCapacity bound how deep a tree splits
// and how many entities a leaf holds before splitting. Both are
// configurable per Tree.
const (
	DefaultMaxDepth     = 6
	DefaultLeafCapacity = 4
)

// quadrant identifies one of a node's four children. The numeric values
// fix a deterministic tie-break order: on a shared border, the
// lower-index quadrant wins.
type quadrant int

const (
	quadNW quadrant = iota
	quadNE
	quadSW
	quadSE
)

// node is one level of the tree. A node is either a leaf (children == nil)
// or internal (all four children present); there is no partially-split
// state.
type node struct {
	bounds   geo.Bounds
	entities []geo.Entity
	children [4]*node // indexed by quadrant
}

func (n *node) isLeaf() bool { return n.children[quadNW] == nil }

// Tree is a point-region quadtree over a fixed root extent. Queries
// outside the root bounds return no entities.
type Tree struct {
	root         *node
	maxDepth     int
	leafCapacity int
	count        int
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(d int) Option {
	return func(t *Tree) {
		if d > 0 {
			t.maxDepth = d
		}
	}
}

// WithLeafCapacity overrides DefaultLeafCapacity.
func WithLeafCapacity(k int) Option {
	return func(t *Tree) {
		if k > 0 {
			t.leafCapacity = k
		}
	}
}

// New creates an empty Tree rooted at bounds.
func New(bounds geo.Bounds, opts ...Option) *Tree {
	t := &Tree{
		root:         &node{bounds: bounds},
		maxDepth:     DefaultMaxDepth,
		leafCapacity: DefaultLeafCapacity,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Len returns the number of entities inserted into the tree. An entity
// that spans multiple nodes is still counted once here, even though it is
// stored once per intersecting node internally.
func (t *Tree) Len() int { return t.count }

// Insert adds e to the tree: entities are stored at every node they
// intersect, splitting a leaf into four children once it would
// otherwise exceed the leaf capacity (and the depth budget allows it).
func (t *Tree) Insert(e geo.Entity) {
	if !e.Intersects(t.root.bounds) {
		return
	}
	insert(t.root, e, 0, t.maxDepth, t.leafCapacity)
	t.count++
}

func insert(n *node, e geo.Entity, depth, maxDepth, leafCapacity int) {
	if !e.Intersects(n.bounds) {
		return
	}

	if n.isLeaf() {
		if len(n.entities) < leafCapacity || depth >= maxDepth {
			n.entities = append(n.entities, e)
			return
		}
		split(n)
	}

	for _, child := range n.children {
		insert(child, e, depth+1, maxDepth, leafCapacity)
	}
}

// split turns a leaf into an internal node: it creates the four children
// and redistributes the leaf's existing entities into whichever children
// they intersect (an entity may land in more than one child).
func split(n *node) {
	nw, ne, sw, se := n.bounds.Quadrants()
	n.children[quadNW] = &node{bounds: nw}
	n.children[quadNE] = &node{bounds: ne}
	n.children[quadSW] = &node{bounds: sw}
	n.children[quadSE] = &node{bounds: se}

	existing := n.entities
	n.entities = nil

	for _, e := range existing {
		for _, child := range n.children {
			if e.Intersects(child.bounds) {
				child.entities = append(child.entities, e)
			}
		}
	}
}

// QueryPoint returns every entity whose shape contains p. It is read-only
// and safe for concurrent use once the tree is fully built (the
// construction phase, at startup, is not concurrency-safe).
func (t *Tree) QueryPoint(p geo.Point) []geo.Entity {
	return t.QueryPointInto(p, nil)
}

// QueryPointInto behaves like QueryPoint but appends into (and possibly
// reuses the capacity of) a caller-supplied buffer, for callers polling
// at high rates who want to avoid an allocation per query.
func (t *Tree) QueryPointInto(p geo.Point, buf []geo.Entity) []geo.Entity {
	if !t.root.bounds.Contains(p) {
		return buf
	}
	return queryPoint(t.root, p, buf)
}

func queryPoint(n *node, p geo.Point, buf []geo.Entity) []geo.Entity {
	if n.isLeaf() {
		for _, e := range n.entities {
			if e.Contains(p) {
				buf = append(buf, e)
			}
		}
		return buf
	}

	// Quadrants are disjoint except on shared borders; pick the first
	// (lowest-index) child whose bounds contain p for a deterministic
	// tie-break.
	for _, child := range n.children {
		if child.bounds.Contains(p) {
			return queryPoint(child, p, buf)
		}
	}
	return buf
}
