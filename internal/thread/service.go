package thread

import (
	"context"
	"log"
	"strings"

	"plume/api/internal/store"
	"plume/api/internal/util"
)

// Viewer is the session identity passed explicitly into every mutating
// operation. A zero Viewer means nobody is signed in.
type Viewer struct {
	UserID      string
	DisplayName string
	Email       string
}

func (v Viewer) authenticated() bool {
	return v.UserID != ""
}

// commentStore is the slice of the storage layer this package consumes.
// DeleteComment is ownership-scoped and cascades to descendant replies at the
// schema level; ToggleCommentLike is a single atomic toggle guarded by the
// (comment_id, user_id) uniqueness constraint.
type commentStore interface {
	ListComments(ctx context.Context, postID string) ([]store.Comment, error)
	InsertComment(ctx context.Context, comment store.Comment) error
	DeleteComment(ctx context.Context, commentID, authorID string) (bool, error)
	ToggleCommentLike(ctx context.Context, commentID, userID string) (bool, error)
}

// Service exposes the comment thread for a post. It holds no state between
// calls: every operation ends with a full refetch and rebuild, so the forest
// a caller sees is always an exact derivation of the latest flat set.
type Service struct {
	store commentStore
}

func NewService(commentStore commentStore) *Service {
	return &Service{store: commentStore}
}

// List fetches the flat comment set for a post and rebuilds the forest.
func (s *Service) List(ctx context.Context, postID string) ([]*Node, error) {
	flat, err := s.store.ListComments(ctx, postID)
	if err != nil {
		return nil, storeError("list comments", err)
	}
	forest, orphans := buildForest(flat)
	if orphans > 0 {
		log.Printf("thread: post %s has %d comments with missing parents, dropped from tree", postID, orphans)
	}
	return forest, nil
}

// Create appends a comment (or reply, when parentID is non-nil) authored by
// the viewer, then refetches and rebuilds. Empty content fails before any
// store write.
func (s *Service) Create(ctx context.Context, viewer Viewer, postID string, parentID *string, content string) ([]*Node, error) {
	if !viewer.authenticated() {
		return nil, ErrUnauthenticated
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Field: "content", Reason: "must not be empty"}
	}

	comment := store.Comment{
		ID:       util.NewID("cmt"),
		PostID:   postID,
		AuthorID: viewer.UserID,
		ParentID: parentID,
		Content:  content,
	}
	if err := s.store.InsertComment(ctx, comment); err != nil {
		return nil, storeError("insert comment", err)
	}
	return s.List(ctx, postID)
}

// Delete removes the viewer's comment. Descendant replies disappear with it
// through the parent_id ON DELETE CASCADE; no cascade logic runs here.
func (s *Service) Delete(ctx context.Context, viewer Viewer, postID, commentID string) ([]*Node, error) {
	if !viewer.authenticated() {
		return nil, ErrUnauthenticated
	}
	deleted, err := s.store.DeleteComment(ctx, commentID, viewer.UserID)
	if err != nil {
		return nil, storeError("delete comment", err)
	}
	if !deleted {
		return nil, storeError("delete comment", ErrNotOwner)
	}
	return s.List(ctx, postID)
}

// ToggleLike flips the viewer's like on a comment in one store round trip.
// like_count is maintained by the store's own triggers; the refetch picks up
// the new value.
func (s *Service) ToggleLike(ctx context.Context, viewer Viewer, postID, commentID string) ([]*Node, error) {
	if !viewer.authenticated() {
		return nil, ErrUnauthenticated
	}
	if _, err := s.store.ToggleCommentLike(ctx, commentID, viewer.UserID); err != nil {
		return nil, storeError("toggle comment like", err)
	}
	return s.List(ctx, postID)
}
