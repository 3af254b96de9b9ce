package web

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/voltrack/voltrack/internal/auth"
	"github.com/voltrack/voltrack/internal/store"
)

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if s.currentUser(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	s.render(w, r, "login", nil, nil)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("web: login lookup: %v", err)
		}
		redirectFlash(w, r, "/login", "danger", "Invalid username or password.")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		redirectFlash(w, r, "/login", "danger", "Invalid username or password.")
		return
	}

	setSessionCookie(w, s.sessions.Start(user.ID))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.End(c.Value)
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleForgotForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "forgot_password", s.currentUser(r), nil)
}

// handleForgot answers identically whether or not the address exists and
// whether or not the mail went out, so the form can't be used to probe
// for accounts. Failures are logged only.
func (s *Server) handleForgot(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		redirectFlash(w, r, "/forgot-password", "warning", "Please enter your email address.")
		return
	}

	user, err := s.store.GetUserByEmail(email)
	if err == nil {
		token, tokenErr := auth.NewResetToken(s.secret, user.ID, time.Now())
		if tokenErr != nil {
			log.Printf("web: issue reset token: %v", tokenErr)
		} else {
			resetURL := s.baseURL + "/reset-password/" + token
			if sendErr := s.mailer.SendPasswordReset(user.Email, user.FullName, resetURL); sendErr != nil {
				log.Printf("web: send reset mail: %v", sendErr)
			}
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("web: forgot-password lookup: %v", err)
	}

	redirectFlash(w, r, "/forgot-password", "info",
		"If that address belongs to an account, a reset link has been sent.")
}

func (s *Server) handleResetForm(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if _, err := auth.VerifyResetToken(s.secret, token); err != nil {
		redirectFlash(w, r, "/forgot-password", "danger", "That is an invalid or expired reset link.")
		return
	}
	s.render(w, r, "reset_password", nil, token)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	userID, err := auth.VerifyResetToken(s.secret, token)
	if err != nil {
		redirectFlash(w, r, "/forgot-password", "danger", "That is an invalid or expired reset link.")
		return
	}

	password := strings.TrimSpace(r.FormValue("password"))
	if password == "" {
		redirectFlash(w, r, "/reset-password/"+token, "warning", "Please enter a new password.")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("web: hash reset password: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := s.store.UpdateUserPassword(userID, hash); err != nil {
		log.Printf("web: reset password: %v", err)
		redirectFlash(w, r, "/forgot-password", "danger", "That is an invalid or expired reset link.")
		return
	}

	redirectFlash(w, r, "/login", "success", "Your password has been reset. Please log in.")
}
