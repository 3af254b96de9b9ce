package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/voltrack/voltrack/internal/auth"
	"github.com/voltrack/voltrack/internal/domain"
	"github.com/voltrack/voltrack/internal/store"
)

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	if !s.authorize(w, user, domain.RoleAdmin) {
		return
	}

	users, err := s.store.ListUsers()
	if err != nil {
		log.Printf("web: list users: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "admin_users", user, users)
}

func (s *Server) handleAdminNewUserForm(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	if !s.authorize(w, user, domain.RoleAdmin) {
		return
	}
	s.render(w, r, "admin_user_new", user, nil)
}

func (s *Server) handleAdminNewUser(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	if !s.authorize(w, user, domain.RoleAdmin) {
		return
	}

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	role := domain.Role(r.FormValue("role"))
	password := r.FormValue("password")

	if fullName == "" || username == "" || email == "" || password == "" {
		redirectFlash(w, r, "/admin/users/new", "warning", "All fields are required.")
		return
	}
	if !role.Valid() {
		redirectFlash(w, r, "/admin/users/new", "warning", "Unknown role.")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("web: hash new user password: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err := s.store.CreateUser(domain.User{
		FullName:     fullName,
		Username:     username,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}); err != nil {
		log.Printf("web: create user: %v", err)
		redirectFlash(w, r, "/admin/users/new", "danger", "Could not create the user (username and email must be unique).")
		return
	}
	redirectFlash(w, r, "/admin/users", "success", "User created.")
}

func (s *Server) adminTargetUser(w http.ResponseWriter, r *http.Request) *domain.User {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil
	}
	target, err := s.store.GetUser(id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return nil
	}
	if err != nil {
		log.Printf("web: get user: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	return target
}

func (s *Server) handleAdminEditUserForm(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	if !s.authorize(w, user, domain.RoleAdmin) {
		return
	}
	target := s.adminTargetUser(w, r)
	if target == nil {
		return
	}
	s.render(w, r, "admin_user_edit", user, target)
}

func (s *Server) handleAdminEditUser(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	if !s.authorize(w, user, domain.RoleAdmin) {
		return
	}
	target := s.adminTargetUser(w, r)
	if target == nil {
		return
	}

	backTo := "/admin/users/" + strconv.FormatInt(target.ID, 10) + "/edit"

	fullName := strings.TrimSpace(r.FormValue("full_name"))
	email := strings.TrimSpace(r.FormValue("email"))
	role := domain.Role(r.FormValue("role"))
	if fullName == "" || email == "" {
		redirectFlash(w, r, backTo, "warning", "Name and email are required.")
		return
	}
	if !role.Valid() {
		redirectFlash(w, r, backTo, "warning", "Unknown role.")
		return
	}

	if err := s.store.UpdateUserProfile(target.ID, fullName, email, role); err != nil {
		log.Printf("web: admin update user: %v", err)
		redirectFlash(w, r, backTo, "danger", "Could not update the user.")
		return
	}

	// Optional password reset from the same form.
	if newPw := r.FormValue("new_password"); newPw != "" {
		hash, err := auth.HashPassword(newPw)
		if err != nil {
			log.Printf("web: hash admin reset password: %v", err)
			http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
			return
		}
		if err := s.store.UpdateUserPassword(target.ID, hash); err != nil {
			log.Printf("web: admin reset password: %v", err)
			redirectFlash(w, r, backTo, "danger", "Could not reset the password.")
			return
		}
	}

	redirectFlash(w, r, "/admin/users", "success", "User updated successfully.")
}

// handleAdminDeleteUser removes a user and their entries, then kills any
// live sessions they still hold.
func (s *Server) handleAdminDeleteUser(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	if !s.authorize(w, user, domain.RoleAdmin) {
		return
	}
	target := s.adminTargetUser(w, r)
	if target == nil {
		return
	}
	if target.ID == user.ID {
		redirectFlash(w, r, "/admin/users", "warning", "You cannot delete your own account.")
		return
	}

	if err := s.store.DeleteUser(target.ID); err != nil {
		log.Printf("web: delete user: %v", err)
		redirectFlash(w, r, "/admin/users", "danger", "Could not delete the user.")
		return
	}
	s.sessions.EndAllFor(target.ID)
	redirectFlash(w, r, "/admin/users", "warning", "User "+target.Username+" deleted.")
}

func (s *Server) handleAdminEntries(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	if !s.authorize(w, user, domain.RoleAdmin) {
		return
	}

	entries, err := s.store.ListEntries()
	if err != nil {
		log.Printf("web: list all entries: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Resolve owner names for the listing.
	users, err := s.store.ListUsers()
	if err != nil {
		log.Printf("web: list users: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	names := make(map[int64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}

	type ownedEntry struct {
		domain.Entry
		OwnerName string
	}
	view := make([]ownedEntry, len(entries))
	for i, e := range entries {
		view[i] = ownedEntry{Entry: e, OwnerName: names[e.UserID]}
	}
	s.render(w, r, "admin_entries", user, view)
}
