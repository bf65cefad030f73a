package export

import (
	"context"
	"fmt"
	"html/template"
	"time"
)

// DataStore defines the data access needed to export a post
type DataStore interface {
	GetPostInfo(ctx context.Context, id string) (PostInfo, error)
	GetPostContent(ctx context.Context, postID, version string) (PostContent, error)
	ListCommentTree(ctx context.Context, postID string) ([]CommentInfo, error)
}

// PostInfo holds post metadata
type PostInfo struct {
	ID           string
	Title        string
	Summary      string
	Author       string
	CategoryName string
	CreatedAt    time.Time
}

// PostContent is the post body at a specific revision
type PostContent struct {
	Title   string
	Summary string
	Body    string
}

// CommentInfo holds one comment and its replies for export
type CommentInfo struct {
	Author    string
	Content   string
	LikeCount int
	Replies   []CommentInfo
}

// Service renders posts to export formats
type Service struct {
	store DataStore
}

// NewService creates a new export service
func NewService(store DataStore) *Service {
	return &Service{store: store}
}

// Export generates an export in the requested format
func (s *Service) Export(ctx context.Context, req Request) (*Result, error) {
	info, err := s.store.GetPostInfo(ctx, req.PostID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	content, err := s.store.GetPostContent(ctx, req.PostID, req.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrContentUnavailable, err)
	}

	data := TemplateData{
		Title:        content.Title,
		Summary:      content.Summary,
		ContentHTML:  template.HTML(BodyToHTML(content.Body)),
		Author:       info.Author,
		CategoryName: info.CategoryName,
		CreatedAt:    info.CreatedAt,
		Comments:     []TemplateComment{},
	}

	if req.IncludeComments {
		comments, err := s.store.ListCommentTree(ctx, req.PostID)
		if err != nil {
			return nil, fmt.Errorf("list comments: %w", err)
		}
		data.Comments = toTemplateComments(comments)
	}

	html, err := RenderPostHTML(data)
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}

	switch req.Format {
	case FormatPDF:
		return exportPDF(html, content.Title)
	default:
		return nil, fmt.Errorf("unsupported format: %s", req.Format)
	}
}

func toTemplateComments(comments []CommentInfo) []TemplateComment {
	out := make([]TemplateComment, 0, len(comments))
	for _, c := range comments {
		out = append(out, TemplateComment{
			Author:    c.Author,
			Content:   c.Content,
			LikeCount: c.LikeCount,
			Replies:   toTemplateComments(c.Replies),
		})
	}
	return out
}
