package middleware

import (
	"net/http"

	"github.com/rs/xhandler"
	"golang.org/x/net/context"
)

func JSONWrapper() func(next xhandler.HandlerC) xhandler.HandlerC {
	return contentType("application/vnd.api+json")
}

func HTMLWrapper() func(next xhandler.HandlerC) xhandler.HandlerC {
	return contentType("text/html; charset=utf-8")
}

func contentType(value string) func(next xhandler.HandlerC) xhandler.HandlerC {
	return func(next xhandler.HandlerC) xhandler.HandlerC {
		return xhandler.HandlerFuncC(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", value)
			next.ServeHTTPC(ctx, w, r)
		})
	}
}
