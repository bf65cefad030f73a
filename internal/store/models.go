package store

import "time"

type User struct {
	ID                    string
	DisplayName           string
	Email                 string
	PasswordHash          string
	AvatarURL             string
	Bio                   string
	IsEmailVerified       bool
	VerificationToken     string
	VerificationExpiresAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type Category struct {
	ID        string
	Name      string
	Slug      string
	PostCount int
	CreatedAt time.Time
}

type Tag struct {
	ID   string
	Name string
	Slug string
}

type Post struct {
	ID         string
	AuthorID   string
	CategoryID *string
	Title      string
	Slug       string
	Summary    string
	Body       string
	CoverURL   string
	Published  bool
	LikeCount  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	// Joined fields for API responses
	AuthorName   string
	AuthorAvatar string
	CategoryName string
	CategorySlug string
	Tags         []Tag
	CommentCount int
}

// PostFilter narrows ListPosts. Zero values mean no constraint.
type PostFilter struct {
	CategorySlug  string
	TagSlug       string
	AuthorID      string
	PublishedOnly bool
	Limit         int
	Offset        int
}

// Comment is the flat row shape as fetched, author display fields joined in.
// LikeCount is maintained by triggers on comment_likes and is only ever read.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	ParentID  *string   `json:"parentId"`
	Content   string    `json:"content"`
	LikeCount int       `json:"likeCount"`
	CreatedAt time.Time `json:"createdAt"`
	// Joined author display fields
	AuthorName   string `json:"authorName"`
	AuthorEmail  string `json:"authorEmail"`
	AuthorAvatar string `json:"authorAvatar"`
}
