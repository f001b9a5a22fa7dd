package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/xhandler"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type contextKey string

const sessionKey contextKey = "session"

type Session struct {
	store sessions.Store
}

func (m *Session) Init(hashKey, blockKey []byte) {
	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	m.store = store
}

func (m *Session) Enable(name string) func(next xhandler.HandlerC) xhandler.HandlerC {
	return func(next xhandler.HandlerC) xhandler.HandlerC {
		return xhandler.HandlerFuncC(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
			session, err := m.store.Get(r, name)
			if err != nil {
				log.Infof("Could not decode session %q from %q: %s", name, r.RemoteAddr, err)
			}
			ctx = context.WithValue(ctx, sessionKey, session)
			next.ServeHTTPC(ctx, w, r)
		})
	}
}

// SessionFromContext returns the session installed by Enable.
func SessionFromContext(ctx context.Context) (*sessions.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*sessions.Session)
	return session, ok && session != nil
}

// SaveSession writes the session cookie. It must run before the response
// body is written.
func SaveSession(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		log.Error("Context without valid session")
		return
	}
	if err := session.Save(r, w); err != nil {
		log.Warnf("Could not save session: %s", err)
	}
}
