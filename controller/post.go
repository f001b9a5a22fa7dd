package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"timeline/middleware"
	"timeline/model"
	"timeline/view"
)

const (
	noticeEmptyContent = "テキストを入力してね"
	noticePersist      = "保存に失敗しました。変更はこの画面にだけ反映されています。"
)

type PostDataProvider interface {
	Posts(ctx context.Context) ([]model.Post, error)
	Create(ctx context.Context, content string) (model.Post, error)
	ToggleLike(ctx context.Context, id int64) (model.Post, error)
	ToggleRetweet(ctx context.Context, id int64) (model.Post, error)
}

type PostController struct {
	Model PostDataProvider
	// Now defaults to time.Now.
	Now func() time.Time
}

func (p *PostController) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Index renders the full timeline page.
func (p *PostController) Index(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	posts, err := p.Model.Posts(ctx)
	if err != nil {
		log.Warnf("Could not load posts: %s", err)
		htmlError(w, r, cErrServer, "")
		return
	}
	notices := middleware.Notices(ctx)
	middleware.SaveSession(ctx, w, r)
	page := view.Page(view.PageData{
		Posts:   posts,
		Now:     p.now(),
		Notices: notices,
		Focus:   r.URL.Query().Get("compose") != "",
	})
	if err := page.Render(ctx, w); err != nil {
		log.Warnf("Could not render page: %s", err)
	}
}

// Create handles the compose form.
func (p *PostController) Create(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	_, err := p.Model.Create(ctx, r.PostFormValue("content"))
	switch {
	case err == nil:
	case errors.Is(err, model.ErrEmptyContent):
		middleware.AddNotice(ctx, noticeEmptyContent)
	case errors.Is(err, model.ErrPersist):
		middleware.AddNotice(ctx, noticePersist)
	default:
		log.Warnf("Could not create post: %s", err)
		htmlError(w, r, cErrServer, "")
		return
	}
	p.refresh(ctx, w, r)
}

// Like toggles the like state of the post named by the :id parameter.
func (p *PostController) Like(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	p.toggle(ctx, w, r, p.Model.ToggleLike)
}

// Retweet toggles the retweet state of the post named by the :id parameter.
func (p *PostController) Retweet(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	p.toggle(ctx, w, r, p.Model.ToggleRetweet)
}

// Compose jumps to the top of the timeline with the compose field focused.
func (p *PostController) Compose(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/?compose=1#compose", http.StatusFound)
}

// Count renders the remaining character counter for the compose field.
func (p *PostController) Count(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if err := view.Counter(r.URL.Query().Get("content")).Render(ctx, w); err != nil {
		log.Warnf("Could not render counter: %s", err)
	}
}

func (p *PostController) toggle(ctx context.Context, w http.ResponseWriter, r *http.Request, fn func(context.Context, int64) (model.Post, error)) {
	raw, ok := middleware.URLParam(ctx, "id")
	if !ok {
		htmlError(w, r, cErrClient, "Missing id parameter")
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		htmlError(w, r, cErrClient, "Invalid id parameter")
		return
	}
	_, err = fn(ctx, id)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrPostNotFound):
		log.Debugf("Toggle on unknown post %d", id)
	case errors.Is(err, model.ErrPersist):
		middleware.AddNotice(ctx, noticePersist)
	default:
		log.Warnf("Could not toggle post %d: %s", id, err)
		htmlError(w, r, cErrServer, "")
		return
	}
	p.refresh(ctx, w, r)
}

// refresh re-renders the timeline after a mutation: htmx gets the fragment,
// plain form posts are redirected back to the page.
func (p *PostController) refresh(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if !isHTMXRequest(r) {
		middleware.SaveSession(ctx, w, r)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	posts, err := p.Model.Posts(ctx)
	if err != nil {
		log.Warnf("Could not load posts: %s", err)
		htmlError(w, r, cErrServer, "")
		return
	}
	notices := middleware.Notices(ctx)
	middleware.SaveSession(ctx, w, r)
	fragment := view.Timeline(view.PageData{
		Posts:   posts,
		Now:     p.now(),
		Notices: notices,
	})
	if err := fragment.Render(ctx, w); err != nil {
		log.Warnf("Could not render timeline: %s", err)
	}
}

type postsResponse struct {
	Data []model.Post `json:"data"`
}

// Posts returns the timeline newest first in the persisted JSON layout.
func (p *PostController) Posts(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	ps, err := p.Model.Posts(ctx)
	if err != nil {
		jsonError(w, r, cErrServer, "")
		return
	}
	resp := postsResponse{
		Data: model.DisplayOrder(ps),
	}
	enc := json.NewEncoder(w)
	err = enc.Encode(&resp)
	if err != nil {
		jsonError(w, r, cErrServer, "")
		return
	}
}
