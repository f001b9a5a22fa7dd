package main

import (
	"errors"
	"flag"
	"net/http"

	"github.com/rs/xhandler"
	log "github.com/sirupsen/logrus"
	"github.com/zenazn/goji/web"
	"golang.org/x/net/context"

	"timeline/backend"
	"timeline/config"
	"timeline/controller"
	"timeline/middleware"
	"timeline/model"
)

var listen = flag.String("http", "", "Listen on, overrides TIMELINE_HTTP_ADDR")

func handle(ctx context.Context, handlerc xhandler.HandlerC) web.HandlerFunc {
	return func(c web.C, w http.ResponseWriter, r *http.Request) {
		newctx := middleware.WithURLParams(ctx, c.URLParams)
		handlerc.ServeHTTPC(newctx, w, r)
	}
}

// Obsolete pending pull request: https://github.com/rs/xhandler/pull/3
func handlerC(c xhandler.Chain, xh xhandler.HandlerC) xhandler.HandlerC {
	for i := len(c) - 1; i >= 0; i-- {
		xh = c[i](xh)
	}
	return xh
}

func newRouter(ctx context.Context, cfg config.Config, data controller.PostDataProvider, session *middleware.Session) *web.Mux {
	// Middleware
	c := xhandler.Chain{}
	c.UseC(xhandler.TimeoutHandler(cfg.RequestTimeout))
	c.UseC(middleware.RequestLogger())

	page := append(xhandler.Chain{}, c...)
	page.UseC(session.Enable("timeline"))
	page.UseC(middleware.HTMLWrapper())

	api := append(xhandler.Chain{}, c...)
	api.UseC(middleware.JSONWrapper())

	posts := &controller.PostController{Model: data}

	// Router
	mux := web.New()
	mux.Get("/", handle(ctx, handlerC(page, xhandler.HandlerFuncC(posts.Index))))
	mux.Get("/compose", handle(ctx, handlerC(page, xhandler.HandlerFuncC(posts.Compose))))
	mux.Get("/compose/count", handle(ctx, handlerC(page, xhandler.HandlerFuncC(posts.Count))))
	mux.Post("/posts", handle(ctx, handlerC(page, xhandler.HandlerFuncC(posts.Create))))
	mux.Post("/posts/:id/like", handle(ctx, handlerC(page, xhandler.HandlerFuncC(posts.Like))))
	mux.Post("/posts/:id/retweet", handle(ctx, handlerC(page, xhandler.HandlerFuncC(posts.Retweet))))
	mux.Get("/api/posts", handle(ctx, handlerC(api, xhandler.HandlerFuncC(posts.Posts))))
	return mux
}

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if *listen != "" {
		cfg.HTTPAddr = *listen
	}
	if err := cfg.ConfigureLogging(); err != nil {
		log.Fatal(err)
	}

	mainContext := context.Background()
	slot, closeSlot, err := backend.Open(mainContext, cfg)
	if err != nil {
		log.Fatalf("Could not open %s backend: %s", cfg.Backend, err)
	}
	defer closeSlot()

	store := model.NewStore(slot, model.WithAuthor(cfg.Author()))
	posts, err := store.Load(mainContext)
	switch {
	case errors.Is(err, model.ErrPersist):
		log.Warnf("Timeline loaded but not saved: %s", err)
	case err != nil:
		log.Fatalf("Could not load timeline: %s", err)
	}
	log.Infof("Loaded %d posts from %s backend", len(posts), cfg.Backend)

	hashKey, blockKey, err := cfg.SessionKeys()
	if err != nil {
		log.Fatal(err)
	}
	session := &middleware.Session{}
	session.Init(hashKey, blockKey)

	mux := newRouter(mainContext, cfg, store, session)
	log.Infof("Listening on %s", cfg.HTTPAddr)
	if err := http.ListenAndServe(cfg.HTTPAddr, mux); err != nil {
		closeSlot()
		log.Fatal(err)
	}
}
