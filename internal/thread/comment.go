// Package thread rebuilds hierarchical comment threads from the flat,
// chronologically ordered rows the store returns, and orchestrates the
// mutations (create, delete, like-toggle) that round-trip through it.
package thread

import (
	"plume/api/internal/store"
)

// Node is a comment in tree form: the flat row plus its direct replies in
// ascending created-at order. Depth is unbounded because parent_id may
// reference any comment, including a reply.
type Node struct {
	store.Comment
	Replies []*Node `json:"replies"`
}

// BuildTree converts a flat comment set, pre-sorted ascending by created_at,
// into a forest of root comments. Sibling order at every level follows the
// input order. A comment whose parent_id matches no id in the set is dropped
// from the output entirely.
func BuildTree(flat []store.Comment) []*Node {
	forest, _ := buildForest(flat)
	return forest
}

// buildForest is BuildTree plus the count of dropped orphans, so callers can
// surface a set that references parents outside itself.
func buildForest(flat []store.Comment) ([]*Node, int) {
	byID := make(map[string]*Node, len(flat))
	for i := range flat {
		byID[flat[i].ID] = &Node{Comment: flat[i], Replies: []*Node{}}
	}

	roots := make([]*Node, 0, len(flat))
	orphans := 0
	for i := range flat {
		node := byID[flat[i].ID]
		if flat[i].ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := byID[*flat[i].ParentID]
		if !ok {
			orphans++
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}
	return roots, orphans
}
