package web

import (
	"log"
	"net/http"
	"strings"

	"github.com/voltrack/voltrack/internal/auth"
)

func (s *Server) handleProfileForm(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	s.render(w, r, "profile", user, nil)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	if fullName == "" || email == "" {
		redirectFlash(w, r, "/profile", "warning", "Name and email are required.")
		return
	}

	// Role is not editable here; only an admin changes roles.
	if err := s.store.UpdateUserProfile(user.ID, fullName, email, user.Role); err != nil {
		log.Printf("web: update profile: %v", err)
		redirectFlash(w, r, "/profile", "danger", "Could not update the profile.")
		return
	}
	redirectFlash(w, r, "/profile", "success", "Profile updated.")
}

func (s *Server) handleChangePasswordForm(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	s.render(w, r, "change_password", user, nil)
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	oldPw := r.FormValue("old_password")
	newPw := r.FormValue("new_password")
	confirm := r.FormValue("confirm_password")

	switch {
	case !auth.CheckPassword(user.PasswordHash, oldPw):
		redirectFlash(w, r, "/change-password", "danger", "Old password is incorrect.")
		return
	case newPw == "":
		redirectFlash(w, r, "/change-password", "warning", "Please enter a new password.")
		return
	case newPw != confirm:
		redirectFlash(w, r, "/change-password", "danger", "New passwords do not match.")
		return
	}

	hash, err := auth.HashPassword(newPw)
	if err != nil {
		log.Printf("web: hash password: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := s.store.UpdateUserPassword(user.ID, hash); err != nil {
		log.Printf("web: change password: %v", err)
		redirectFlash(w, r, "/change-password", "danger", "Could not change the password.")
		return
	}
	redirectFlash(w, r, "/profile", "success", "Password changed successfully.")
}
