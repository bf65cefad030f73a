package export

import (
	"bytes"
	"html/template"
	"strings"
	"time"
)

var postTemplate *template.Template

func init() {
	funcMap := template.FuncMap{
		"lower": strings.ToLower,
		"formatDate": func(t time.Time, layout string) string {
			return t.Format(layout)
		},
	}
	postTemplate = template.Must(template.New("post").Funcs(funcMap).Parse(postTemplateHTML))
}

// TemplateData holds data for post template rendering
type TemplateData struct {
	Title        string
	Summary      string
	ContentHTML  template.HTML
	Author       string
	CategoryName string
	CreatedAt    time.Time
	Comments     []TemplateComment
}

// TemplateComment holds one comment (and its replies) for template rendering
type TemplateComment struct {
	Author    string
	Content   string
	LikeCount int
	Replies   []TemplateComment
}

// RenderPostHTML renders the post template with provided data
func RenderPostHTML(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := postTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const postTemplateHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { font-family: Georgia, serif; line-height: 1.6; max-width: 800px; margin: 2rem auto; }
    h1 { border-bottom: 2px solid #333; padding-bottom: 0.5rem; }
    .meta { color: #666; font-size: 0.9em; margin-bottom: 2rem; }
    .summary { font-style: italic; color: #444; }
    .comment { background: #f5f5f5; padding: 0.75rem 1rem; margin: 0.75rem 0; border-left: 3px solid #333; }
    .comment .comment { background: #ececec; margin-left: 1.5rem; }
    .comment-meta { color: #666; font-size: 0.85em; }
  </style>
</head>
<body>
  <h1>{{.Title}}</h1>
  {{if .Summary}}<p class="summary">{{.Summary}}</p>{{end}}
  <div class="meta">{{if .CategoryName}}{{.CategoryName}} | {{end}}{{.Author}} | {{formatDate .CreatedAt "Jan 2, 2006"}}</div>
  <div>{{.ContentHTML}}</div>
  {{if .Comments}}
  <h2>Comments</h2>
  {{range .Comments}}{{template "comment" .}}{{end}}
  {{end}}
</body>
</html>
{{define "comment"}}
<div class="comment">
  <div class="comment-meta">{{.Author}}{{if .LikeCount}} &middot; {{.LikeCount}} likes{{end}}</div>
  <div>{{.Content}}</div>
  {{range .Replies}}{{template "comment" .}}{{end}}
</div>
{{end}}`
