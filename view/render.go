// Package view renders the timeline as HTML. Every function is a pure
// mapping from posts to markup; the whole list is rendered on each call.
package view

import (
	"context"
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/a-h/templ"

	"timeline/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PageData is everything a full timeline render needs.
type PageData struct {
	Posts   []model.Post
	Now     time.Time
	Notices []string
	// Focus autofocuses the compose field.
	Focus bool
	// Draft is measured by the character counter.
	Draft string
}

type postView struct {
	ID        int64
	Name      string
	Handle    string
	Avatar    string
	Age       string
	Content   string
	Replies   int
	Likes     int
	Retweets  int
	Liked     bool
	Retweeted bool
}

type timelineView struct {
	Posts   []postView
	Notices []string
	Focus   bool
	Counter counterView
}

func newPostView(p model.Post, now int64) postView {
	return postView{
		ID:        p.ID,
		Name:      p.Author.Name,
		Handle:    p.Author.Handle,
		Avatar:    p.Author.Avatar,
		Age:       TimeAgo(p.Time, now),
		Content:   p.Content,
		Replies:   p.Replies,
		Likes:     p.Likes,
		Retweets:  p.Retweets,
		Liked:     p.Liked,
		Retweeted: p.Retweeted,
	}
}

func newPostViews(posts []model.Post, now time.Time) []postView {
	ordered := model.DisplayOrder(posts)
	views := make([]postView, len(ordered))
	for i, p := range ordered {
		views[i] = newPostView(p, now.UnixMilli())
	}
	return views
}

func newTimelineView(data PageData) timelineView {
	return timelineView{
		Posts:   newPostViews(data.Posts, data.Now),
		Notices: data.Notices,
		Focus:   data.Focus,
		Counter: newCounter(data.Draft),
	}
}

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templates.ExecuteTemplate(w, name, data)
	})
}

// Page renders the full HTML document.
func Page(data PageData) templ.Component {
	return component("page", newTimelineView(data))
}

// Timeline renders the #timeline region: notices, compose form and posts.
// It is the fragment swapped in by htmx after every action.
func Timeline(data PageData) templ.Component {
	return component("timeline", newTimelineView(data))
}

// Render renders the #posts container newest first.
func Render(posts []model.Post, now time.Time) templ.Component {
	return component("posts", newPostViews(posts, now))
}

// RenderPost renders a single post card.
func RenderPost(p model.Post, now time.Time) templ.Component {
	return component("post", newPostView(p, now.UnixMilli()))
}

// Counter renders the remaining character count for text.
func Counter(text string) templ.Component {
	return component("counter", newCounter(text))
}
