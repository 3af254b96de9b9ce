package web

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/voltrack/voltrack/internal/domain"
	"github.com/voltrack/voltrack/internal/export"
	"github.com/voltrack/voltrack/internal/report"
)

// allTime is the range used when a summary is requested without bounds.
// Dates compare lexicographically, so these sort outside any real day.
const (
	allTimeStart = "0000-01-01"
	allTimeEnd   = "9999-12-31"
)

// rangeParams reads start_date/end_date query fields. Empty fields mean
// all time; partial or malformed input is a validation error.
func rangeParams(r *http.Request) (start, end string, bounded bool, err error) {
	start = r.URL.Query().Get("start_date")
	end = r.URL.Query().Get("end_date")
	if start == "" && end == "" {
		return allTimeStart, allTimeEnd, false, nil
	}
	if err := report.ValidateRange(start, end); err != nil {
		return "", "", false, err
	}
	return start, end, true, nil
}

// scopeFor applies the aggregation scoping rule: volunteers only see
// their own entries, reporter and above aggregate across all users.
func scopeFor(user *domain.User) *int64 {
	if user.Role.AtLeast(domain.RoleReporter) {
		return nil
	}
	return &user.ID
}

type summaryView struct {
	Totals    []report.Total
	StartDate string
	EndDate   string
	Bounded   bool
	AllUsers  bool
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}

	start, end, bounded, err := rangeParams(r)
	if err != nil {
		redirectFlash(w, r, "/summary", "warning", "Please provide a valid date range (start on or before end).")
		return
	}

	scope := scopeFor(user)
	rows, err := s.store.ReportRows(start, end, scope)
	if err != nil {
		log.Printf("web: summary rows: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := summaryView{
		Totals:   report.SortedTotals(report.TotalsByPerson(rows)),
		Bounded:  bounded,
		AllUsers: scope == nil,
	}
	if bounded {
		view.StartDate, view.EndDate = start, end
	}
	s.render(w, r, "summary", user, view)
}

type reportsView struct {
	Rows      []report.Row
	StartDate string
	EndDate   string
	Bounded   bool
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	if !s.authorize(w, user, domain.RoleReporter) {
		return
	}

	start, end, bounded, err := rangeParams(r)
	if err != nil {
		redirectFlash(w, r, "/reports", "warning", "Please provide a valid date range (start on or before end).")
		return
	}

	rows, err := s.store.ReportRows(start, end, nil)
	if err != nil {
		log.Printf("web: report rows: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}

	view := reportsView{Rows: rows, Bounded: bounded}
	if bounded {
		view.StartDate, view.EndDate = start, end
	}
	s.render(w, r, "reports", user, view)
}

// exportRange validates the mandatory range on export endpoints. Invalid
// dates redirect back to the report view with a message rather than a raw
// error.
func (s *Server) exportRange(w http.ResponseWriter, r *http.Request, backTo string) (start, end string, ok bool) {
	start = r.URL.Query().Get("start_date")
	end = r.URL.Query().Get("end_date")
	if err := report.ValidateRange(start, end); err != nil {
		redirectFlash(w, r, backTo, "warning", "Please provide a valid date range (start on or before end).")
		return "", "", false
	}
	return start, end, true
}

func sendAttachment(w http.ResponseWriter, name string, payload []byte) {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", url.PathEscape(name)))
	w.Write(payload)
}

func (s *Server) handleReportsExport(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	if !s.authorize(w, user, domain.RoleReporter) {
		return
	}

	start, end, ok := s.exportRange(w, r, "/reports")
	if !ok {
		return
	}

	rows, err := s.store.ReportRows(start, end, nil)
	if err != nil {
		log.Printf("web: export rows: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	payload, err := export.DetailXLSX(rows)
	if err != nil {
		log.Printf("web: build detail export: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	sendAttachment(w, fmt.Sprintf("volunteer_hours_%s_%s.xlsx", start, end), payload)
}

func (s *Server) handleSummaryExport(w http.ResponseWriter, r *http.Request) {
	user := s.requireUser(w, r)
	if user == nil {
		return
	}
	if !s.authorize(w, user, domain.RoleReporter) {
		return
	}

	start, end, ok := s.exportRange(w, r, "/summary")
	if !ok {
		return
	}

	rows, err := s.store.ReportRows(start, end, nil)
	if err != nil {
		log.Printf("web: export rows: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	totals := report.SortedTotals(report.TotalsByPerson(rows))
	payload, err := export.TotalsXLSX(totals)
	if err != nil {
		log.Printf("web: build totals export: %v", err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	sendAttachment(w, fmt.Sprintf("volunteer_totals_%s_%s.xlsx", start, end), payload)
}
