package web

import (
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/voltrack/voltrack/internal/domain"
	"github.com/voltrack/voltrack/internal/store"
)

const (
	sessionCookie = "voltrack_session"
	flashCookie   = "voltrack_flash"
)

// Flash is a one-shot message rendered on the next page.
type Flash struct {
	Level   string // "success", "info", "warning", "danger"
	Message string
}

// currentUser resolves the request's session cookie to a user record.
// Returns nil when not logged in.
func (s *Server) currentUser(r *http.Request) *domain.User {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	userID, ok := s.sessions.UserID(c.Value)
	if !ok {
		return nil
	}
	user, err := s.store.GetUser(userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("web: resolve session user: %v", err)
		}
		return nil
	}
	return user
}

// requireUser returns the logged-in user, or redirects to the login page
// and returns nil.
func (s *Server) requireUser(w http.ResponseWriter, r *http.Request) *domain.User {
	user := s.currentUser(r)
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil
	}
	return user
}

// authorize enforces the role gate: the caller's rank must reach min.
// On violation it writes a forbidden response and returns false. Invoked
// explicitly at the top of each privileged handler.
func (s *Server) authorize(w http.ResponseWriter, user *domain.User, min domain.Role) bool {
	if user.Role.AtLeast(min) {
		return true
	}
	http.Error(w, "403 Forbidden", http.StatusForbidden)
	return false
}

// setFlash queues a message for the next rendered page via a short-lived
// cookie, so it works for anonymous visitors too.
func setFlash(w http.ResponseWriter, level, message string) {
	value := base64.URLEncoding.EncodeToString([]byte(level + "|" + message))
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
	})
}

// takeFlash reads and clears the flash cookie.
func takeFlash(w http.ResponseWriter, r *http.Request) []Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	decoded, err := base64.URLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	level, message, ok := strings.Cut(string(decoded), "|")
	if !ok {
		return nil
	}
	return []Flash{{Level: level, Message: message}}
}

// setSessionCookie hands the session token to the browser.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie removes the session cookie on logout.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// redirectFlash is the validation-error path: queue a message and send the
// browser back without any write having happened.
func redirectFlash(w http.ResponseWriter, r *http.Request, target, level, message string) {
	setFlash(w, level, message)
	http.Redirect(w, r, target, http.StatusSeeOther)
}
