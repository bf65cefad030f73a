package thread

import (
	"testing"
	"time"

	"plume/api/internal/store"
)

func flatComment(id string, parentID *string, createdAt time.Time) store.Comment {
	return store.Comment{
		ID:        id,
		PostID:    "post-1",
		AuthorID:  "user-1",
		ParentID:  parentID,
		Content:   "content " + id,
		CreatedAt: createdAt,
	}
}

func strPtr(s string) *string { return &s }

func TestBuildTreeEmptyInput(t *testing.T) {
	forest := BuildTree(nil)
	if forest == nil {
		t.Fatal("expected empty forest, got nil")
	}
	if len(forest) != 0 {
		t.Fatalf("expected 0 roots, got %d", len(forest))
	}

	forest = BuildTree([]store.Comment{})
	if len(forest) != 0 {
		t.Fatalf("expected 0 roots for empty slice, got %d", len(forest))
	}
}

func TestBuildTreeNesting(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	flat := []store.Comment{
		flatComment("c1", nil, base),
		flatComment("c2", strPtr("c1"), base.Add(time.Minute)),
		flatComment("c3", strPtr("c2"), base.Add(2*time.Minute)),
		flatComment("c4", nil, base.Add(3*time.Minute)),
	}

	forest := BuildTree(flat)
	if len(forest) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(forest))
	}
	if forest[0].ID != "c1" || forest[1].ID != "c4" {
		t.Fatalf("unexpected root order: %s, %s", forest[0].ID, forest[1].ID)
	}
	if len(forest[0].Replies) != 1 || forest[0].Replies[0].ID != "c2" {
		t.Fatalf("expected c2 under c1, got %+v", forest[0].Replies)
	}
	if len(forest[0].Replies[0].Replies) != 1 || forest[0].Replies[0].Replies[0].ID != "c3" {
		t.Fatal("expected c3 nested under c2")
	}
	if len(forest[1].Replies) != 0 {
		t.Fatalf("expected no replies under c4, got %d", len(forest[1].Replies))
	}
}

func TestBuildTreeSiblingOrderFollowsInput(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	flat := []store.Comment{
		flatComment("root", nil, base),
		flatComment("r1", strPtr("root"), base.Add(1*time.Minute)),
		flatComment("r2", strPtr("root"), base.Add(2*time.Minute)),
		flatComment("r3", strPtr("root"), base.Add(3*time.Minute)),
	}

	forest := BuildTree(flat)
	if len(forest) != 1 {
		t.Fatalf("expected 1 root, got %d", len(forest))
	}
	replies := forest[0].Replies
	if len(replies) != 3 {
		t.Fatalf("expected 3 replies, got %d", len(replies))
	}
	for i, want := range []string{"r1", "r2", "r3"} {
		if replies[i].ID != want {
			t.Errorf("reply[%d] = %s, want %s", i, replies[i].ID, want)
		}
	}
}

func TestBuildTreeDropsOrphans(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	flat := []store.Comment{
		flatComment("c1", nil, base),
		flatComment("orphan", strPtr("missing-parent"), base.Add(time.Minute)),
		flatComment("reply-to-orphan", strPtr("orphan"), base.Add(2*time.Minute)),
	}

	forest, orphans := buildForest(flat)
	if len(forest) != 1 || forest[0].ID != "c1" {
		t.Fatalf("expected only c1 as root, got %d roots", len(forest))
	}
	if orphans != 1 {
		t.Fatalf("expected 1 orphan, got %d", orphans)
	}

	// The orphan's own reply attaches to the orphan node, which is itself
	// unreachable from any root, so neither appears in the forest.
	if countNodes(forest) != 1 {
		t.Fatalf("expected 1 reachable node, got %d", countNodes(forest))
	}
}

func TestBuildTreeIsIdempotent(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	flat := []store.Comment{
		flatComment("a", nil, base),
		flatComment("b", strPtr("a"), base.Add(time.Minute)),
		flatComment("c", nil, base.Add(2*time.Minute)),
	}

	first := BuildTree(flat)
	second := BuildTree(flat)

	if len(first) != len(second) {
		t.Fatalf("root counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || len(first[i].Replies) != len(second[i].Replies) {
			t.Fatalf("rebuild diverged at root %d", i)
		}
	}
}

func countNodes(forest []*Node) int {
	n := 0
	for _, node := range forest {
		n += 1 + countNodes(node.Replies)
	}
	return n
}
