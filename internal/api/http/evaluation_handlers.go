package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/campusops/gradebook/internal/evaluation"
	"github.com/campusops/gradebook/internal/rbac"
)

// MountEvaluations wires the evaluation catalog under /evaluations.
// Reads need evaluation:view, writes evaluation:write.
func MountEvaluations(r chi.Router, svc *evaluation.Service) {
	r.Route("/evaluations", func(er chi.Router) {
		er.With(rbac.Require("evaluation:view")).Get("/", listEvaluations(svc))
		er.With(rbac.Require("evaluation:view")).Get("/{id}", getEvaluation(svc))
		er.With(rbac.Require("evaluation:view")).Get("/section/{sectionID}", listEvaluationsBySection(svc))
		er.With(rbac.RequireAny("evaluation:view", "grade:view")).Post("/{id}/final-grade", finalGrade(svc))
		er.With(rbac.Require("evaluation:write")).Post("/", createEvaluation(svc))
		er.With(rbac.Require("evaluation:write")).Put("/{id}", updateEvaluation(svc))
		er.With(rbac.Require("evaluation:write")).Delete("/{id}", deleteEvaluation(svc))
	})
}

func listEvaluations(svc *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func listEvaluationsBySection(svc *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.ListBySection(r.Context(), chi.URLParam(r, "sectionID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func getEvaluation(svc *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func createEvaluation(svc *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in evaluation.Input
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

func updateEvaluation(svc *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in evaluation.Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		out, err := svc.Update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func deleteEvaluation(svc *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// POST /evaluations/{id}/final-grade  { "value": 8 }
func finalGrade(svc *evaluation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Value decimal.Decimal `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		id := strings.TrimSpace(chi.URLParam(r, "id"))
		out, err := svc.CalculateFinalGrade(r.Context(), id, req.Value)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]decimal.Decimal{"contribution": out})
	}
}
