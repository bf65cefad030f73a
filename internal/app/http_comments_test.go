package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// commentFixture stands up a service with one post and a signed-in author,
// returning the pieces the comment endpoint tests need.
func commentFixture(t *testing.T) (*fakeStore, *Service, *HTTPServer, string, Session) {
	t.Helper()
	fs := newFakeStore()
	fs.addUser("user-1", "Avery")
	svc := newTestService(fs)
	server := NewHTTPServer(svc, "*")

	session, err := svc.CreateSession(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	created, err := svc.CreatePost(context.Background(), session, PostInput{Title: "Discussed", Body: "body"})
	if err != nil {
		t.Fatalf("CreatePost() error = %v", err)
	}
	return fs, svc, server, created["id"].(string), session
}

func doJSON(t *testing.T, server *HTTPServer, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)
	return rr
}

type commentTreeResponse struct {
	PostID   string `json:"postId"`
	Comments []struct {
		ID        string `json:"id"`
		ParentID  *string
		Content   string `json:"content"`
		LikeCount int    `json:"likeCount"`
		Replies   []struct {
			ID      string `json:"id"`
			Content string `json:"content"`
			Replies []struct {
				ID string `json:"id"`
			} `json:"replies"`
		} `json:"replies"`
	} `json:"comments"`
}

func parseTree(t *testing.T, rr *httptest.ResponseRecorder) commentTreeResponse {
	t.Helper()
	var tree commentTreeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &tree); err != nil {
		t.Fatalf("parse tree response: %v body=%s", err, rr.Body.String())
	}
	return tree
}

func TestCommentCreateReturnsFullTree(t *testing.T) {
	_, _, server, postID, session := commentFixture(t)
	base := fmt.Sprintf("/api/posts/%s/comments", postID)

	rr := doJSON(t, server, http.MethodPost, base, session.Token, map[string]any{"content": "first!"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	tree := parseTree(t, rr)
	if len(tree.Comments) != 1 || tree.Comments[0].Content != "first!" {
		t.Fatalf("unexpected tree: %+v", tree.Comments)
	}

	// Reply nests under its parent in the returned forest.
	rr = doJSON(t, server, http.MethodPost, base, session.Token, map[string]any{
		"parentId": tree.Comments[0].ID,
		"content":  "a reply",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	tree = parseTree(t, rr)
	if len(tree.Comments) != 1 {
		t.Fatalf("expected 1 root, got %d", len(tree.Comments))
	}
	if len(tree.Comments[0].Replies) != 1 || tree.Comments[0].Replies[0].Content != "a reply" {
		t.Fatalf("expected nested reply, got %+v", tree.Comments[0].Replies)
	}
}

func TestCommentCreateRequiresSession(t *testing.T) {
	_, _, server, postID, _ := commentFixture(t)

	rr := doJSON(t, server, http.MethodPost, fmt.Sprintf("/api/posts/%s/comments", postID), "", map[string]any{"content": "anon"})
	assertUnauthorizedCode(t, rr)
}

func TestCommentCreateRejectsBlankContent(t *testing.T) {
	_, _, server, postID, session := commentFixture(t)

	rr := doJSON(t, server, http.MethodPost, fmt.Sprintf("/api/posts/%s/comments", postID), session.Token, map[string]any{"content": "   "})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload["code"] != "VALIDATION_ERROR" {
		t.Fatalf("expected VALIDATION_ERROR, got %v", payload["code"])
	}
}

func TestCommentListIsPublic(t *testing.T) {
	_, svc, server, postID, session := commentFixture(t)
	if _, err := svc.CreateComment(context.Background(), session, postID, CommentInput{Content: "visible"}); err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	rr := doJSON(t, server, http.MethodGet, fmt.Sprintf("/api/posts/%s/comments", postID), "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	tree := parseTree(t, rr)
	if tree.PostID != postID || len(tree.Comments) != 1 {
		t.Fatalf("unexpected tree: %+v", tree)
	}
}

func TestCommentDeleteRemovesSubtree(t *testing.T) {
	_, svc, server, postID, session := commentFixture(t)
	ctx := context.Background()

	forest, err := svc.CreateComment(ctx, session, postID, CommentInput{Content: "root"})
	if err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}
	rootID := forest[0].ID
	if _, err := svc.CreateComment(ctx, session, postID, CommentInput{ParentID: &rootID, Content: "child"}); err != nil {
		t.Fatalf("CreateComment() reply error = %v", err)
	}
	if _, err := svc.CreateComment(ctx, session, postID, CommentInput{Content: "sibling"}); err != nil {
		t.Fatalf("CreateComment() sibling error = %v", err)
	}

	rr := doJSON(t, server, http.MethodDelete, fmt.Sprintf("/api/posts/%s/comments/%s", postID, rootID), session.Token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	tree := parseTree(t, rr)
	if len(tree.Comments) != 1 || tree.Comments[0].Content != "sibling" {
		t.Fatalf("expected only the sibling to survive, got %+v", tree.Comments)
	}
}

func TestCommentLikeTogglesThroughRefetch(t *testing.T) {
	_, svc, server, postID, session := commentFixture(t)

	forest, err := svc.CreateComment(context.Background(), session, postID, CommentInput{Content: "likeable"})
	if err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}
	path := fmt.Sprintf("/api/posts/%s/comments/%s/like", postID, forest[0].ID)

	rr := doJSON(t, server, http.MethodPost, path, session.Token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if tree := parseTree(t, rr); tree.Comments[0].LikeCount != 1 {
		t.Fatalf("expected likeCount 1, got %d", tree.Comments[0].LikeCount)
	}

	rr = doJSON(t, server, http.MethodPost, path, session.Token, nil)
	if tree := parseTree(t, rr); tree.Comments[0].LikeCount != 0 {
		t.Fatalf("expected likeCount 0 after second toggle, got %d", tree.Comments[0].LikeCount)
	}
}

func TestCommentLikeRequiresSession(t *testing.T) {
	_, svc, server, postID, session := commentFixture(t)

	forest, err := svc.CreateComment(context.Background(), session, postID, CommentInput{Content: "likeable"})
	if err != nil {
		t.Fatalf("CreateComment() error = %v", err)
	}

	rr := doJSON(t, server, http.MethodPost, fmt.Sprintf("/api/posts/%s/comments/%s/like", postID, forest[0].ID), "", nil)
	assertUnauthorizedCode(t, rr)
}
