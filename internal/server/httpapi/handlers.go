package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/chronofeed/internal/common"
	"github.com/dmitrijs2005/chronofeed/internal/server/feed"
	"github.com/dmitrijs2005/chronofeed/internal/server/metrics"
)

type loginForm struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,max=256"`
}

type feedQuery struct {
	Skip  int `validate:"min=0"`
	Count int `validate:"min=0"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	user := s.currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	records := s.readFeed(r, 0, s.pageSize)

	s.render(w, r, "index.html", indexData{
		Title:   "Latest",
		User:    user,
		Records: records,
	})
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if s.currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.render(w, r, "login.html", loginData{
		Title: "Login",
		Flash: takeFlash(w, r),
	})
}

func (s *Server) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	form := loginForm{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if err := s.validate.Struct(form); err != nil {
		// Malformed submissions get the same answer as wrong
		// credentials.
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		setFlash(w, "invalid-login")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	user, err := s.ctl.CheckLogin(form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, common.ErrInvalidCredentials) {
			s.logger.Error(r.Context(), "login check", "error", err,
				"request_id", RequestID(r.Context()))
		}
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		setFlash(w, "invalid-login")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := s.setSessionCookie(w, user.UserID); err != nil {
		s.logger.Error(r.Context(), "minting session token", "error", err,
			"request_id", RequestID(r.Context()))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.logger.Info(r.Context(), "user logged in",
		"username", user.Username, "user_id", user.UserID,
		"request_id", RequestID(r.Context()))

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w)
	setFlash(w, "logged-out")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleAPIFeed serves a page of raw field mappings as JSON. It requires a
// valid session; skip and count default to 0 and the configured page size.
func (s *Server) handleAPIFeed(w http.ResponseWriter, r *http.Request) {
	if s.currentUser(r) == nil {
		writeJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	q := feedQuery{Skip: 0, Count: s.pageSize}
	var err error
	if v := r.URL.Query().Get("skip"); v != "" {
		if q.Skip, err = strconv.Atoi(v); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid skip")
			return
		}
	}
	if v := r.URL.Query().Get("count"); v != "" {
		if q.Count, err = strconv.Atoi(v); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid count")
			return
		}
	}
	if err := s.validate.Struct(q); err != nil {
		writeJSONError(w, http.StatusBadRequest, "skip and count must be non-negative")
		return
	}

	records, err := s.ctl.ListLatest(q.Skip, q.Count)
	if err != nil {
		s.observeFeedError(r, err)
		writeJSONError(w, http.StatusInternalServerError, "feed unavailable")
		return
	}
	metrics.FeedReadsTotal.Inc()

	writeJSON(w, http.StatusOK, map[string]any{"records": records})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readFeed fetches a page for HTML rendering. Store and decode failures
// degrade to an empty feed with a logged warning; they are never an error
// page for the end user.
func (s *Server) readFeed(r *http.Request, skip, count int) []map[string]string {
	records, err := s.ctl.ListLatest(skip, count)
	if err != nil {
		s.observeFeedError(r, err)
		return nil
	}
	metrics.FeedReadsTotal.Inc()
	return records
}

func (s *Server) observeFeedError(r *http.Request, err error) {
	kind := "store"
	var decodeErr *feed.DecodeError
	if errors.As(err, &decodeErr) {
		kind = "decode"
	}
	metrics.FeedReadErrorsTotal.WithLabelValues(kind).Inc()
	s.logger.Warn(r.Context(), "feed read failed", "kind", kind, "error", err,
		"request_id", RequestID(r.Context()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
