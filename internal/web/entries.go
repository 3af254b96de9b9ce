package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/voltrack/voltrack/internal/domain"
	"github.com/voltrack/voltrack/internal/hours"
	"github.com/voltrack/voltrack/internal/store"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	entries, err := s.store.ListEntriesByUser(user.ID)
	if err != nil {
		log.Printf("web: list entries: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "index", user, entries)
}

func (s *Server) handleLogForm(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	s.render(w, r, "log", user, hours.Today())
}

// entryForm collects the raw shift fields from a submitted form. A blank
// date means today. The computed hours fall back to zero on unparseable
// input; the entry persists either way.
func entryForm(r *http.Request) (domain.Entry, bool) {
	date := strings.TrimSpace(r.FormValue("date"))
	if date == "" {
		date = hours.Today()
	}
	e := domain.Entry{
		Date:      date,
		Event:     strings.TrimSpace(r.FormValue("event")),
		StartTime: strings.TrimSpace(r.FormValue("start")),
		EndTime:   strings.TrimSpace(r.FormValue("end")),
		Notes:     strings.TrimSpace(r.FormValue("notes")),
	}
	var ok bool
	e.TotalHours, ok = hours.Compute(e.Date, e.StartTime, e.EndTime)
	return e, ok
}

func (s *Server) handleLogEntry(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	entry, ok := entryForm(r)
	if entry.Event == "" {
		redirectFlash(w, r, "/log", "warning", "Event is required.")
		return
	}
	entry.UserID = user.ID

	if _, err := s.store.CreateEntry(entry); err != nil {
		log.Printf("web: create entry: %v", err)
		redirectFlash(w, r, "/log", "danger", "Could not save the entry.")
		return
	}

	if !ok {
		setFlash(w, "warning", "Could not compute hours from the given times; logged 0 hours.")
	} else {
		setFlash(w, "success", "Entry logged.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loadOwnedEntry fetches the entry and enforces ownership: the owner or
// an admin may touch it, anyone else gets a forbidden response.
func (s *Server) loadOwnedEntry(w http.ResponseWriter, r *http.Request, user *domain.User) *domain.Entry {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return nil
	}
	entry, err := s.store.GetEntry(id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return nil
	}
	if err != nil {
		log.Printf("web: get entry: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return nil
	}
	if entry.UserID != user.ID && !user.Role.AtLeast(domain.RoleAdmin) {
		http.Error(w, "403 Forbidden", http.StatusForbidden)
		return nil
	}
	return entry
}

func (s *Server) handleEditEntryForm(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	entry := s.loadOwnedEntry(w, r, user)
	if entry == nil {
		return
	}
	s.render(w, r, "entry_edit", user, entry)
}

func (s *Server) handleEditEntry(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	entry := s.loadOwnedEntry(w, r, user)
	if entry == nil {
		return
	}

	updated, ok := entryForm(r)
	if updated.Event == "" {
		redirectFlash(w, r, r.URL.Path, "warning", "Event is required.")
		return
	}
	updated.ID = entry.ID
	updated.UserID = entry.UserID

	if err := s.store.UpdateEntry(updated); err != nil {
		log.Printf("web: update entry: %v", err)
		redirectFlash(w, r, r.URL.Path, "danger", "Could not save the entry.")
		return
	}

	if !ok {
		setFlash(w, "warning", "Could not compute hours from the given times; saved 0 hours.")
	} else {
		setFlash(w, "success", "Entry updated.")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	entry := s.loadOwnedEntry(w, r, user)
	if entry == nil {
		return
	}
	if err := s.store.DeleteEntry(entry.ID); err != nil {
		log.Printf("web: delete entry: %v", err)
		redirectFlash(w, r, "/", "danger", "Could not delete the entry.")
		return
	}
	redirectFlash(w, r, "/", "success", "Entry deleted.")
}

func (s *Server) handleBulkForm(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	if !s.authorize(w, user, domain.RoleReporter) {
		return
	}
	users, err := s.store.ListUsers()
	if err != nil {
		log.Printf("web: list users: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	s.render(w, r, "bulk", user, struct {
		Users []domain.User
		Today string
	}{users, hours.Today()})
}

// handleBulkLog records one event/date/span for several volunteers at
// once: one entry per selected user, identical computed hours.
func (s *Server) handleBulkLog(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	if !s.authorize(w, user, domain.RoleReporter) {
		return
	}

	entry, ok := entryForm(r)
	if entry.Event == "" {
		redirectFlash(w, r, "/bulk", "warning", "Event is required.")
		return
	}
	if err := r.ParseForm(); err != nil {
		redirectFlash(w, r, "/bulk", "warning", "Could not read the form.")
		return
	}
	ids := r.Form["volunteers"]
	if len(ids) == 0 {
		redirectFlash(w, r, "/bulk", "warning", "Select at least one volunteer.")
		return
	}

	logged := 0
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		if _, err := s.store.GetUser(id); err != nil {
			continue
		}
		e := entry
		e.UserID = id
		if _, err := s.store.CreateEntry(e); err != nil {
			log.Printf("web: bulk create entry: %v", err)
			continue
		}
		logged++
	}

	if logged == 0 {
		redirectFlash(w, r, "/bulk", "danger", "No entries were logged.")
		return
	}
	if !ok {
		setFlash(w, "warning", "Logged 0 hours for each volunteer; times were unparseable.")
	} else {
		setFlash(w, "success", "Hours logged for "+strconv.Itoa(logged)+" volunteers.")
	}
	http.Redirect(w, r, "/bulk", http.StatusSeeOther)
}
