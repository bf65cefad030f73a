package store

import (
	"context"
	"fmt"
)

// ListComments returns the flat comment set for a post, sorted ascending by
// created_at, with the author display fields joined in. This is the single
// query the tree builder derives from; like_count comes straight from the
// trigger-maintained column.
func (s *PostgresStore) ListComments(ctx context.Context, postID string) ([]Comment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.post_id, c.author_id, c.parent_id, c.content, c.like_count, c.created_at,
			u.display_name, u.email, COALESCE(u.avatar_url, '')
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id=$1
		ORDER BY c.created_at ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	items := make([]Comment, 0)
	for rows.Next() {
		var item Comment
		if err := rows.Scan(
			&item.ID,
			&item.PostID,
			&item.AuthorID,
			&item.ParentID,
			&item.Content,
			&item.LikeCount,
			&item.CreatedAt,
			&item.AuthorName,
			&item.AuthorEmail,
			&item.AuthorAvatar,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) InsertComment(ctx context.Context, comment Comment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, post_id, author_id, parent_id, content)
		VALUES ($1, $2, $3, $4, $5)
	`, comment.ID, comment.PostID, comment.AuthorID, comment.ParentID, comment.Content)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// DeleteComment removes a comment the author owns. Descendant replies go with
// it via the parent_id ON DELETE CASCADE. Returns false when no row matched,
// which covers both "not found" and "not the owner".
func (s *PostgresStore) DeleteComment(ctx context.Context, commentID, authorID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM comments WHERE id=$1 AND author_id=$2
	`, commentID, authorID)
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete comment rows: %w", err)
	}
	return affected > 0, nil
}

// ToggleCommentLike flips a user's like in a single round trip: delete first,
// and only when nothing was deleted insert, guarded by the
// (comment_id, user_id) uniqueness constraint. like_count on the comment is
// recomputed by the insert/delete triggers. Returns true when the toggle
// ended with the like present.
func (s *PostgresStore) ToggleCommentLike(ctx context.Context, commentID, userID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM comment_likes WHERE comment_id=$1 AND user_id=$2
	`, commentID, userID)
	if err != nil {
		return false, fmt.Errorf("delete comment like: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete comment like rows: %w", err)
	}
	if affected > 0 {
		return false, nil
	}
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO comment_likes (comment_id, user_id)
		VALUES ($1, $2)
	`, commentID, userID); err != nil {
		return false, fmt.Errorf("insert comment like: %w", err)
	}
	return true, nil
}
