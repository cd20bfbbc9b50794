package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/chronofeed/internal/server/auth"
	"github.com/dmitrijs2005/chronofeed/internal/server/directory"
	"github.com/dmitrijs2005/chronofeed/internal/server/metrics"
)

const (
	sessionCookieName = "session"
	flashCookieName   = "flash"
)

// sessionToken extracts the raw user id from the signed session cookie.
// A missing, expired or tampered cookie yields nil: the transport never
// passes a token it could not verify.
func (s *Server) sessionToken(r *http.Request) *uint64 {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	id, err := auth.UserIDFromToken(cookie.Value, s.jwtSecret)
	if err != nil {
		return nil
	}
	return &id
}

// currentUser resolves the request's session to an identity, or nil for
// the anonymous path.
func (s *Server) currentUser(r *http.Request) *directory.User {
	user := s.ctl.Authenticate(s.sessionToken(r))
	if user == nil {
		metrics.SessionResolutionsTotal.WithLabelValues("anonymous").Inc()
	} else {
		metrics.SessionResolutionsTotal.WithLabelValues("resolved").Inc()
	}
	return user
}

func (s *Server) setSessionCookie(w http.ResponseWriter, userID uint64) error {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.sessionValidity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Flash messages survive exactly one redirect. The cookie stores a short
// code, not free text, so no escaping questions arise.
var flashMessages = map[string]string{
	"invalid-login": "Invalid username/password.",
	"logged-out":    "Successfully logged out.",
}

func setFlash(w http.ResponseWriter, code string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    code,
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash reads and clears the flash cookie, returning the display
// message or "".
func takeFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:   flashCookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	return flashMessages[cookie.Value]
}
