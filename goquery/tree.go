package goquery

import (
	"golang.org/x/net/html"
)

// nodeIndex is an arena over the element nodes of a parsed document. Every
// node gets an integer id, the id of its parent and its index among its
// element siblings, assigned in one walk before extraction begins.
type nodeIndex struct {
	ids    map[*html.Node]int
	parent []int
	index  []int
}

// rowPosition identifies a post's row among its structural siblings.
// It is used only for adjacency, never for identity.
type rowPosition struct {
	parent int
	index  int
}

// follows reports whether r is the row directly after prev.
func (r rowPosition) follows(prev rowPosition) bool {
	return r.parent >= 0 && r.parent == prev.parent && r.index == prev.index+1
}

func newNodeIndex(root *html.Node) *nodeIndex {
	x := &nodeIndex{ids: make(map[*html.Node]int)}
	if root != nil {
		x.walk(root, -1, 0)
	}
	return x
}

func (x *nodeIndex) walk(n *html.Node, parent, index int) {
	id := len(x.parent)
	x.ids[n] = id
	x.parent = append(x.parent, parent)
	x.index = append(x.index, index)

	i := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		x.walk(c, id, i)
		i++
	}
}

// position returns the row of n. Nodes outside the index get a position
// that is never adjacent to anything.
func (x *nodeIndex) position(n *html.Node) rowPosition {
	id, ok := x.ids[n]
	if !ok {
		return rowPosition{parent: -1, index: -1}
	}
	return rowPosition{parent: x.parent[id], index: x.index[id]}
}
