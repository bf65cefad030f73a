package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"plume/api/internal/auth"
	"plume/api/internal/authpw"
	"plume/api/internal/config"
	"plume/api/internal/email"
	"plume/api/internal/export"
	"plume/api/internal/media"
	"plume/api/internal/revision"
	"plume/api/internal/search"
	"plume/api/internal/store"
	"plume/api/internal/thread"
	"plume/api/internal/util"
)

type Session struct {
	Token        string
	RefreshToken string
	UserID       string
	UserName     string
	Email        string
	AvatarURL    string
	JTI          string
	ExpiresAt    time.Time
}

func (s Session) viewer() thread.Viewer {
	return thread.Viewer{
		UserID:      s.UserID,
		DisplayName: s.UserName,
		Email:       s.Email,
	}
}

type PostInput struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Body       string   `json:"body"`
	CategoryID *string  `json:"categoryId"`
	CoverURL   string   `json:"coverUrl"`
	Tags       []string `json:"tags"`
	Published  *bool    `json:"published"`
}

type CommentInput struct {
	ParentID *string `json:"parentId"`
	Content  string  `json:"content"`
}

type dataStore interface {
	GetUserByID(context.Context, string) (store.User, error)
	UpdateUserAvatar(context.Context, string, string) error
	RevokeAccessToken(context.Context, string, time.Time) error
	IsAccessTokenRevoked(context.Context, string) (bool, error)

	ListPosts(context.Context, store.PostFilter) ([]store.Post, error)
	GetPost(context.Context, string) (store.Post, error)
	GetPostBySlug(context.Context, string) (store.Post, error)
	InsertPost(context.Context, store.Post) error
	UpdatePost(context.Context, store.Post) (bool, error)
	DeletePost(context.Context, string, string) (bool, error)
	TogglePostLike(context.Context, string, string) (bool, error)

	ListCategories(context.Context) ([]store.Category, error)
	InsertCategory(context.Context, store.Category) error
	GetCategoryBySlug(context.Context, string) (store.Category, error)
	ListTags(context.Context) ([]store.Tag, error)
	EnsureTag(context.Context, store.Tag) (store.Tag, error)
	SetPostTags(context.Context, string, []string) error

	ListComments(context.Context, string) ([]store.Comment, error)
	InsertComment(context.Context, store.Comment) error
	DeleteComment(context.Context, string, string) (bool, error)
	ToggleCommentLike(context.Context, string, string) (bool, error)

	SummaryCounts(context.Context) (int, int, int, error)
	Ping(ctx context.Context) error
}

// sessionStore is the refresh token backend: Redis when configured, the
// Postgres store otherwise.
type sessionStore interface {
	SaveRefreshSession(ctx context.Context, tokenHash, userID string, expiresAt time.Time) error
	LookupRefreshSession(ctx context.Context, tokenHash string) (store.User, error)
	RevokeRefreshSession(ctx context.Context, tokenHash string) error
}

type Service struct {
	cfg       config.Config
	store     dataStore
	sessions  sessionStore
	threads   *thread.Service
	authpw    *authpw.Service
	email     *email.Service
	search    *search.Service
	media     *media.Service
	revisions *revision.Service
	export    *export.Service
}

// Options carries the optional collaborators; nil fields disable the
// corresponding feature rather than failing startup.
type Options struct {
	Sessions sessionStore
	AuthPW   *authpw.Service
	Email    *email.Service
	Search   *search.Service
	Media    *media.Service
}

func New(cfg config.Config, dataStore *store.PostgresStore, revisions *revision.Service, opts Options) *Service {
	var sessions sessionStore = dataStore
	if opts.Sessions != nil {
		sessions = opts.Sessions
	}
	svc := &Service{
		cfg:       cfg,
		store:     dataStore,
		sessions:  sessions,
		threads:   thread.NewService(dataStore),
		authpw:    opts.AuthPW,
		email:     opts.Email,
		search:    opts.Search,
		media:     opts.Media,
		revisions: revisions,
	}
	svc.export = export.NewService(&exportStore{svc: svc})
	return svc
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) AuthPasswordService() *authpw.Service {
	return s.authpw
}

func (s *Service) SMTPConfigured() bool {
	return s.email != nil && s.email.IsConfigured()
}

// SendVerificationEmail delivers the sign-up verification link when SMTP is
// configured. Sign-up itself already succeeded by the time this runs.
func (s *Service) SendVerificationEmail(to, userName, token string) error {
	if !s.SMTPConfigured() {
		return nil
	}
	url := fmt.Sprintf("%s/verify-email?token=%s", s.cfg.BaseURL, token)
	return s.email.SendVerificationEmail(to, userName, url)
}

func (s *Service) SendPasswordResetEmail(to, userName, token string) error {
	if !s.SMTPConfigured() {
		return nil
	}
	url := fmt.Sprintf("%s/reset-password?token=%s", s.cfg.BaseURL, token)
	return s.email.SendPasswordResetEmail(to, userName, url)
}

// CreateSession issues a fresh access/refresh pair for a verified user.
func (s *Service) CreateSession(ctx context.Context, userID string) (Session, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	tokenHash := auth.HashToken(refreshToken)
	user, err := s.sessions.LookupRefreshSession(ctx, tokenHash)
	if err != nil {
		return Session{}, err
	}
	if err := s.sessions.RevokeRefreshSession(ctx, tokenHash); err != nil {
		return Session{}, err
	}
	// The session backend is only authoritative for the user id; re-read the
	// row so display fields are current.
	user, err = s.store.GetUserByID(ctx, user.ID)
	if err != nil {
		return Session{}, err
	}
	return s.issueSession(ctx, user)
}

func (s *Service) issueSession(ctx context.Context, user store.User) (Session, error) {
	now := time.Now()
	expiresAt := now.Add(s.cfg.AccessTTL)
	jti := util.NewID("jti")

	token, err := auth.IssueToken([]byte(s.cfg.TokenSecret), auth.Claims{
		Sub:   user.ID,
		Name:  user.DisplayName,
		Email: user.Email,
		JTI:   jti,
		Exp:   expiresAt.Unix(),
	})
	if err != nil {
		return Session{}, err
	}

	refresh := util.NewID("rft") + util.NewID("")
	refreshExpires := now.Add(s.cfg.RefreshTTL)
	if err := s.sessions.SaveRefreshSession(ctx, auth.HashToken(refresh), user.ID, refreshExpires); err != nil {
		return Session{}, err
	}

	return Session{
		Token:        token,
		RefreshToken: refresh,
		UserID:       user.ID,
		UserName:     user.DisplayName,
		Email:        user.Email,
		AvatarURL:    user.AvatarURL,
		JTI:          jti,
		ExpiresAt:    expiresAt,
	}, nil
}

func (s *Service) SessionFromToken(ctx context.Context, token string) (Session, error) {
	claims, err := auth.ParseToken([]byte(s.cfg.TokenSecret), token)
	if err != nil {
		return Session{}, err
	}
	revoked, err := s.store.IsAccessTokenRevoked(ctx, claims.JTI)
	if err != nil {
		return Session{}, err
	}
	if revoked {
		return Session{}, auth.ErrInvalidToken
	}

	user, err := s.store.GetUserByID(ctx, claims.Sub)
	if err != nil {
		return Session{}, err
	}

	return Session{
		Token:     token,
		UserID:    user.ID,
		UserName:  user.DisplayName,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		JTI:       claims.JTI,
		ExpiresAt: time.Unix(claims.Exp, 0),
	}, nil
}

func (s *Service) Logout(ctx context.Context, session Session, refreshToken string) error {
	if session.JTI != "" {
		_ = s.store.RevokeAccessToken(ctx, session.JTI, session.ExpiresAt)
	}
	if refreshToken != "" {
		_ = s.sessions.RevokeRefreshSession(ctx, auth.HashToken(refreshToken))
	}
	return nil
}

// Posts

func (s *Service) ListPosts(ctx context.Context, filter store.PostFilter) ([]map[string]any, error) {
	posts, err := s.store.ListPosts(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(posts))
	for _, post := range posts {
		items = append(items, postJSON(post))
	}
	return items, nil
}

// GetPost resolves a post by id or, failing that, by slug.
func (s *Service) GetPost(ctx context.Context, key string) (map[string]any, error) {
	post, err := s.store.GetPost(ctx, key)
	if err != nil {
		if err != sql.ErrNoRows {
			return nil, err
		}
		post, err = s.store.GetPostBySlug(ctx, key)
		if err != nil {
			return nil, err
		}
	}
	return postJSON(post), nil
}

func (s *Service) CreatePost(ctx context.Context, session Session, input PostInput) (map[string]any, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "title is required", nil)
	}
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "body is required", nil)
	}
	if input.CategoryID != nil && strings.TrimSpace(*input.CategoryID) == "" {
		input.CategoryID = nil
	}

	postID := util.NewID("post")
	published := input.Published == nil || *input.Published
	post := store.Post{
		ID:         postID,
		AuthorID:   session.UserID,
		CategoryID: input.CategoryID,
		Title:      title,
		Slug:       slugify(title) + "-" + postID[len(postID)-6:],
		Summary:    strings.TrimSpace(input.Summary),
		Body:       body,
		CoverURL:   strings.TrimSpace(input.CoverURL),
		Published:  published,
	}
	if err := s.store.InsertPost(ctx, post); err != nil {
		return nil, err
	}
	if err := s.applyTags(ctx, postID, input.Tags); err != nil {
		return nil, err
	}

	if s.revisions != nil {
		if err := s.revisions.EnsurePostRepo(postID, revision.Content{
			Title:   post.Title,
			Summary: post.Summary,
			Body:    post.Body,
		}, session.UserName); err != nil {
			return nil, err
		}
	}

	created, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	s.indexPost(created)
	return postJSON(created), nil
}

func (s *Service) UpdatePost(ctx context.Context, session Session, postID string, input PostInput) (map[string]any, error) {
	current, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	next := current
	if title := strings.TrimSpace(input.Title); title != "" {
		next.Title = title
	}
	if summary := strings.TrimSpace(input.Summary); summary != "" {
		next.Summary = summary
	}
	if body := strings.TrimSpace(input.Body); body != "" {
		next.Body = body
	}
	if input.CategoryID != nil {
		if strings.TrimSpace(*input.CategoryID) == "" {
			next.CategoryID = nil
		} else {
			next.CategoryID = input.CategoryID
		}
	}
	if cover := strings.TrimSpace(input.CoverURL); cover != "" {
		next.CoverURL = cover
	}
	if input.Published != nil {
		next.Published = *input.Published
	}
	next.AuthorID = session.UserID

	updated, err := s.store.UpdatePost(ctx, next)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, sql.ErrNoRows
	}
	if input.Tags != nil {
		if err := s.applyTags(ctx, postID, input.Tags); err != nil {
			return nil, err
		}
	}

	if s.revisions != nil {
		if _, err := s.revisions.CommitContent(postID, revision.Content{
			Title:   next.Title,
			Summary: next.Summary,
			Body:    next.Body,
		}, session.UserName, "Update post"); err != nil {
			return nil, err
		}
	}

	fresh, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	s.indexPost(fresh)
	return postJSON(fresh), nil
}

func (s *Service) DeletePost(ctx context.Context, session Session, postID string) error {
	deleted, err := s.store.DeletePost(ctx, postID, session.UserID)
	if err != nil {
		return err
	}
	if !deleted {
		return sql.ErrNoRows
	}
	if s.search != nil {
		s.search.DeletePost(postID)
	}
	return nil
}

func (s *Service) TogglePostLike(ctx context.Context, session Session, postID string) (map[string]any, error) {
	liked, err := s.store.TogglePostLike(ctx, postID, session.UserID)
	if err != nil {
		return nil, err
	}
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	payload := postJSON(post)
	payload["likedByViewer"] = liked
	return payload, nil
}

func (s *Service) applyTags(ctx context.Context, postID string, names []string) error {
	if names == nil {
		return nil
	}
	tagIDs := make([]string, 0, len(names))
	seen := map[string]struct{}{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		slug := slugify(name)
		if _, dup := seen[slug]; dup {
			continue
		}
		seen[slug] = struct{}{}
		tag, err := s.store.EnsureTag(ctx, store.Tag{
			ID:   util.NewID("tag"),
			Name: name,
			Slug: slug,
		})
		if err != nil {
			return err
		}
		tagIDs = append(tagIDs, tag.ID)
	}
	return s.store.SetPostTags(ctx, postID, tagIDs)
}

func (s *Service) indexPost(post store.Post) {
	if s.search == nil {
		return
	}
	s.search.IndexPost(search.PostRecord{
		ID:           post.ID,
		Title:        post.Title,
		Summary:      post.Summary,
		Body:         post.Body,
		Slug:         post.Slug,
		Author:       post.AuthorName,
		CategorySlug: post.CategorySlug,
		Published:    post.Published,
	})
}

// Comments

func (s *Service) ListComments(ctx context.Context, postID string) ([]*thread.Node, error) {
	return s.threads.List(ctx, postID)
}

func (s *Service) CreateComment(ctx context.Context, session Session, postID string, input CommentInput) ([]*thread.Node, error) {
	forest, err := s.threads.Create(ctx, session.viewer(), postID, input.ParentID, input.Content)
	if err != nil {
		return nil, err
	}
	s.indexPostComments(ctx, postID)
	return forest, nil
}

func (s *Service) DeleteComment(ctx context.Context, session Session, postID, commentID string) ([]*thread.Node, error) {
	forest, err := s.threads.Delete(ctx, session.viewer(), postID, commentID)
	if err != nil {
		return nil, err
	}
	if s.search != nil {
		s.search.DeleteComment(commentID)
	}
	return forest, nil
}

func (s *Service) ToggleCommentLike(ctx context.Context, session Session, postID, commentID string) ([]*thread.Node, error) {
	return s.threads.ToggleLike(ctx, session.viewer(), postID, commentID)
}

// indexPostComments pushes the post's current comments into the search index.
// Best effort; the comment write has already committed.
func (s *Service) indexPostComments(ctx context.Context, postID string) {
	if s.search == nil {
		return
	}
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return
	}
	comments, err := s.store.ListComments(ctx, postID)
	if err != nil {
		return
	}
	for _, c := range comments {
		s.search.IndexComment(search.CommentRecord{
			ID:       c.ID,
			Content:  c.Content,
			PostID:   c.PostID,
			PostSlug: post.Slug,
			Author:   c.AuthorName,
		})
	}
}

// Categories and tags

func (s *Service) ListCategories(ctx context.Context) ([]map[string]any, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(categories))
	for _, category := range categories {
		items = append(items, map[string]any{
			"id":        category.ID,
			"name":      category.Name,
			"slug":      category.Slug,
			"postCount": category.PostCount,
		})
	}
	return items, nil
}

func (s *Service) CreateCategory(ctx context.Context, name string) (map[string]any, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domainError(http.StatusUnprocessableEntity, "VALIDATION_ERROR", "name is required", nil)
	}
	slug := slugify(name)
	if _, err := s.store.GetCategoryBySlug(ctx, slug); err == nil {
		return nil, domainError(http.StatusConflict, "CATEGORY_EXISTS", "Category already exists", nil)
	}
	category := store.Category{
		ID:   util.NewID("cat"),
		Name: name,
		Slug: slug,
	}
	if err := s.store.InsertCategory(ctx, category); err != nil {
		return nil, err
	}
	return map[string]any{
		"id":        category.ID,
		"name":      category.Name,
		"slug":      category.Slug,
		"postCount": 0,
	}, nil
}

func (s *Service) ListTags(ctx context.Context) ([]map[string]any, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(tags))
	for _, tag := range tags {
		items = append(items, map[string]any{
			"id":   tag.ID,
			"name": tag.Name,
			"slug": tag.Slug,
		})
	}
	return items, nil
}

// Search

func (s *Service) Search(q search.Query) search.Response {
	if s.search == nil {
		return search.Response{Results: []search.Result{}, Query: q.Text}
	}
	return s.search.Search(q)
}

// Avatar

func (s *Service) UploadAvatar(ctx context.Context, session Session, contentType string, body io.Reader, size int64) (map[string]any, error) {
	if s.media == nil {
		return nil, domainError(http.StatusServiceUnavailable, "MEDIA_UNAVAILABLE", "Media storage not configured", nil)
	}
	url, err := s.media.UploadAvatar(ctx, session.UserID, contentType, body, size)
	if err != nil {
		return nil, domainError(http.StatusUnprocessableEntity, "UPLOAD_FAILED", err.Error(), nil)
	}
	if session.AvatarURL != "" && session.AvatarURL != url {
		_ = s.media.Delete(ctx, session.AvatarURL)
	}
	if err := s.store.UpdateUserAvatar(ctx, session.UserID, url); err != nil {
		return nil, err
	}
	return map[string]any{"avatarUrl": url}, nil
}

// UploadPostCover stores a cover image for the viewer's post and records its
// URL on the row.
func (s *Service) UploadPostCover(ctx context.Context, session Session, postID, contentType string, body io.Reader, size int64) (map[string]any, error) {
	if s.media == nil {
		return nil, domainError(http.StatusServiceUnavailable, "MEDIA_UNAVAILABLE", "Media storage not configured", nil)
	}
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != session.UserID {
		return nil, sql.ErrNoRows
	}

	url, err := s.media.UploadPostCover(ctx, postID, contentType, body, size)
	if err != nil {
		return nil, domainError(http.StatusUnprocessableEntity, "UPLOAD_FAILED", err.Error(), nil)
	}
	if post.CoverURL != "" && post.CoverURL != url {
		_ = s.media.Delete(ctx, post.CoverURL)
	}

	next := post
	next.CoverURL = url
	updated, err := s.store.UpdatePost(ctx, next)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, sql.ErrNoRows
	}
	fresh, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return postJSON(fresh), nil
}

// History

func (s *Service) PostHistory(ctx context.Context, postID string) (map[string]any, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	commits, err := s.revisions.History(postID, 50)
	if err != nil {
		return nil, err
	}
	items := make([]map[string]any, 0, len(commits))
	for _, item := range commits {
		items = append(items, map[string]any{
			"hash":      item.Hash,
			"message":   item.Message,
			"author":    item.Author,
			"createdAt": item.CreatedAt.Format(time.RFC3339),
		})
	}
	return map[string]any{
		"postId":  postID,
		"commits": items,
	}, nil
}

func (s *Service) PostRevision(ctx context.Context, postID, hash string) (map[string]any, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	content, err := s.revisions.GetContentByHash(postID, hash)
	if err != nil {
		return nil, sql.ErrNoRows
	}
	payload := map[string]any{
		"postId":  postID,
		"hash":    hash,
		"title":   content.Title,
		"summary": content.Summary,
		"body":    content.Body,
	}
	if head, _, err := s.revisions.GetHeadContent(postID); err == nil {
		payload["changedSinceHead"] = revision.DiffFields(content, head)
	}
	return payload, nil
}

// Export

func (s *Service) ExportPost(ctx context.Context, postID, version string, includeComments bool) (*export.Result, error) {
	return s.export.Export(ctx, export.Request{
		PostID:          postID,
		Version:         version,
		Format:          export.FormatPDF,
		IncludeComments: includeComments,
	})
}

// exportStore adapts the service to the export package's data needs.
type exportStore struct {
	svc *Service
}

func (e *exportStore) GetPostInfo(ctx context.Context, id string) (export.PostInfo, error) {
	post, err := e.svc.store.GetPost(ctx, id)
	if err != nil {
		return export.PostInfo{}, err
	}
	return export.PostInfo{
		ID:           post.ID,
		Title:        post.Title,
		Summary:      post.Summary,
		Author:       post.AuthorName,
		CategoryName: post.CategoryName,
		CreatedAt:    post.CreatedAt,
	}, nil
}

func (e *exportStore) GetPostContent(ctx context.Context, postID, version string) (export.PostContent, error) {
	if version == "" || version == "latest" {
		post, err := e.svc.store.GetPost(ctx, postID)
		if err != nil {
			return export.PostContent{}, err
		}
		return export.PostContent{Title: post.Title, Summary: post.Summary, Body: post.Body}, nil
	}
	content, err := e.svc.revisions.GetContentByHash(postID, version)
	if err != nil {
		return export.PostContent{}, err
	}
	return export.PostContent{Title: content.Title, Summary: content.Summary, Body: content.Body}, nil
}

func (e *exportStore) ListCommentTree(ctx context.Context, postID string) ([]export.CommentInfo, error) {
	flat, err := e.svc.store.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}
	return exportCommentInfos(thread.BuildTree(flat)), nil
}

func exportCommentInfos(forest []*thread.Node) []export.CommentInfo {
	out := make([]export.CommentInfo, 0, len(forest))
	for _, node := range forest {
		out = append(out, export.CommentInfo{
			Author:    node.AuthorName,
			Content:   node.Content,
			LikeCount: node.LikeCount,
			Replies:   exportCommentInfos(node.Replies),
		})
	}
	return out
}

// Summary

func (s *Service) Summary(ctx context.Context) (map[string]any, error) {
	posts, comments, users, err := s.store.SummaryCounts(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"posts":    posts,
		"comments": comments,
		"users":    users,
	}, nil
}

func postJSON(post store.Post) map[string]any {
	payload := map[string]any{
		"id":           post.ID,
		"title":        post.Title,
		"slug":         post.Slug,
		"summary":      post.Summary,
		"body":         post.Body,
		"coverUrl":     post.CoverURL,
		"published":    post.Published,
		"likeCount":    post.LikeCount,
		"commentCount": post.CommentCount,
		"createdAt":    post.CreatedAt.Format(time.RFC3339),
		"updatedAt":    post.UpdatedAt.Format(time.RFC3339),
		"author": map[string]any{
			"id":        post.AuthorID,
			"name":      post.AuthorName,
			"avatarUrl": post.AuthorAvatar,
		},
	}
	if post.CategoryID != nil {
		payload["category"] = map[string]any{
			"id":   *post.CategoryID,
			"name": post.CategoryName,
			"slug": post.CategorySlug,
		}
	} else {
		payload["category"] = nil
	}
	tags := make([]map[string]any, 0, len(post.Tags))
	for _, tag := range post.Tags {
		tags = append(tags, map[string]any{
			"id":   tag.ID,
			"name": tag.Name,
			"slug": tag.Slug,
		})
	}
	payload["tags"] = tags
	return payload
}

func slugify(value string) string {
	slug := make([]rune, 0, len(value))
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			slug = append(slug, r)
			lastDash = false
			continue
		}
		if !lastDash && len(slug) > 0 {
			slug = append(slug, '-')
			lastDash = true
		}
	}
	text := strings.Trim(string(slug), "-")
	if text == "" {
		return "post"
	}
	if len(text) > 60 {
		text = strings.TrimRight(text[:60], "-")
	}
	return text
}
