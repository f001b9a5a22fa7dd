package controller

import (
	"encoding/json"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
)

const (
	cErrClient int = http.StatusBadRequest
	cErrServer     = http.StatusInternalServerError
)

type errorResponse struct {
	Errors []controllerError `json:"errors"`
}

func jsonError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	log.Warnf("JSON Error: %d %s", code, msg)

	cerr := controllerError{
		Status: code,
		Title:  msg,
	}
	errResp := errorResponse{
		Errors: []controllerError{
			cerr,
		},
	}
	b, err := json.Marshal(errResp)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(code)
	w.Write(b)
}

func htmlError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	log.Warnf("HTML Error: %d %s", code, msg)
	if msg == "" {
		msg = http.StatusText(code)
	}
	http.Error(w, msg, code)
}

type controllerError struct {
	Status int    `json:"status,string"`
	Title  string `json:"title"`
}

// isHTMXRequest reports whether the request was issued by htmx and expects
// a fragment instead of a redirect.
func isHTMXRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}
