// Package web serves the tracker's HTML interface. Handlers receive every
// dependency explicitly through Server; there is no ambient application
// state, and role checks are plain calls at the top of each handler.
package web

import (
	"log"
	"net/http"
	"time"

	"github.com/voltrack/voltrack/internal/auth"
	"github.com/voltrack/voltrack/internal/config"
	"github.com/voltrack/voltrack/internal/mail"
	"github.com/voltrack/voltrack/internal/store"
)

// Server handles HTTP requests for the tracker.
type Server struct {
	store     *store.Store
	sessions  *auth.Sessions
	mailer    mail.Mailer
	templates *Templates
	secret    []byte
	baseURL   string
	addr      string
}

// New creates a web server wired to its collaborators.
func New(cfg config.Config, s *store.Store, mailer mail.Mailer) *Server {
	return &Server{
		store:     s,
		sessions:  auth.NewSessions(time.Duration(cfg.SessionHours) * time.Hour),
		mailer:    mailer,
		templates: LoadTemplates(),
		secret:    []byte(cfg.SecretKey),
		baseURL:   cfg.BaseURL,
		addr:      cfg.Addr,
	}
}

// Routes builds the request mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleIndex)

	// Login and password recovery
	mux.HandleFunc("GET /login", s.handleLoginForm)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("GET /forgot-password", s.handleForgotForm)
	mux.HandleFunc("POST /forgot-password", s.handleForgot)
	mux.HandleFunc("GET /reset-password/{token}", s.handleResetForm)
	mux.HandleFunc("POST /reset-password/{token}", s.handleReset)

	// Entries
	mux.HandleFunc("GET /log", s.handleLogForm)
	mux.HandleFunc("POST /log", s.handleLogEntry)
	mux.HandleFunc("GET /entries/{id}/edit", s.handleEditEntryForm)
	mux.HandleFunc("POST /entries/{id}/edit", s.handleEditEntry)
	mux.HandleFunc("POST /entries/{id}/delete", s.handleDeleteEntry)
	mux.HandleFunc("GET /bulk", s.handleBulkForm)
	mux.HandleFunc("POST /bulk", s.handleBulkLog)

	// Reports and exports
	mux.HandleFunc("GET /summary", s.handleSummary)
	mux.HandleFunc("GET /summary/export", s.handleSummaryExport)
	mux.HandleFunc("GET /reports", s.handleReports)
	mux.HandleFunc("GET /reports/export", s.handleReportsExport)

	// Account
	mux.HandleFunc("GET /profile", s.handleProfileForm)
	mux.HandleFunc("POST /profile", s.handleProfile)
	mux.HandleFunc("GET /change-password", s.handleChangePasswordForm)
	mux.HandleFunc("POST /change-password", s.handleChangePassword)

	// Admin
	mux.HandleFunc("GET /admin/users", s.handleAdminUsers)
	mux.HandleFunc("GET /admin/users/new", s.handleAdminNewUserForm)
	mux.HandleFunc("POST /admin/users/new", s.handleAdminNewUser)
	mux.HandleFunc("GET /admin/users/{id}/edit", s.handleAdminEditUserForm)
	mux.HandleFunc("POST /admin/users/{id}/edit", s.handleAdminEditUser)
	mux.HandleFunc("POST /admin/users/{id}/delete", s.handleAdminDeleteUser)
	mux.HandleFunc("GET /admin/entries", s.handleAdminEntries)

	return mux
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	log.Printf("voltrack listening on %s", s.addr)
	return http.ListenAndServe(s.addr, s.Routes())
}
