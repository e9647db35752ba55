package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/campusops/gradebook/internal/grade"
	"github.com/campusops/gradebook/internal/rbac"
)

// MountGrades wires grade records under /grades. Reads need grade:view,
// writes grade:write.
func MountGrades(r chi.Router, svc *grade.Service) {
	r.Route("/grades", func(gr chi.Router) {
		gr.With(rbac.Require("grade:view")).Get("/", listGrades(svc))
		gr.With(rbac.Require("grade:view")).Get("/{id}", getGrade(svc))
		gr.With(rbac.Require("grade:view")).Get("/enrollment/{enrollmentID}", listGradesByEnrollment(svc))
		gr.With(rbac.Require("grade:view")).Get("/section/{sectionID}", listGradesBySection(svc))
		gr.With(rbac.Require("grade:write")).Post("/", createGrade(svc))
		gr.With(rbac.Require("grade:write")).Put("/{id}/value", updateGradeValue(svc))
		gr.With(rbac.Require("grade:write")).Delete("/{id}", deleteGrade(svc))
	})
}

func listGrades(svc *grade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getGrade(svc *grade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listGradesByEnrollment(svc *grade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListByEnrollment(r.Context(), chi.URLParam(r, "enrollmentID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listGradesBySection(svc *grade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListBySection(r.Context(), chi.URLParam(r, "sectionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createGrade(svc *grade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in grade.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		out, err := svc.Create(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

// PUT /grades/{id}/value  { "value": 7.5 }
func updateGradeValue(svc *grade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Value decimal.Decimal `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		out, err := svc.UpdateValue(r.Context(), chi.URLParam(r, "id"), req.Value)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func deleteGrade(svc *grade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
