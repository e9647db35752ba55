package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusops/gradebook/internal/rbac"
	"github.com/campusops/gradebook/internal/report"
)

// MountReports wires plain-text performance reports under /reports.
func MountReports(r chi.Router, b *report.Builder) {
	r.Route("/reports", func(rr chi.Router) {
		rr.Use(rbac.Require("report:view"))
		rr.Get("/sections/{sectionID}", sectionReport(b))
		rr.Get("/sections/{sectionID}/enrollments/{enrollmentID}", studentReport(b))
	})
}

func sectionReport(b *report.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := b.Section(r.Context(), chi.URLParam(r, "sectionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(rep.Render()))
	}
}

func studentReport(b *report.Builder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := b.Student(r.Context(), chi.URLParam(r, "sectionID"), chi.URLParam(r, "enrollmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(rep.Render()))
	}
}
