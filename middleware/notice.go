package middleware

import (
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const noticeKey = "notice"

// AddNotice queues a one-shot message for the next render.
func AddNotice(ctx context.Context, msg string) {
	session, ok := SessionFromContext(ctx)
	if !ok {
		log.Error("Context without valid session")
		return
	}
	session.AddFlash(msg, noticeKey)
}

// Notices drains queued messages. Call SaveSession afterwards so they are
// not shown twice.
func Notices(ctx context.Context) []string {
	session, ok := SessionFromContext(ctx)
	if !ok {
		return nil
	}
	var out []string
	for _, f := range session.Flashes(noticeKey) {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}
