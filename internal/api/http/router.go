// Package http exposes the grading core over JSON endpoints. Status
// mapping and response shape live here; the services stay wire-agnostic.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusops/gradebook/internal/auth"
	"github.com/campusops/gradebook/internal/evaluation"
	"github.com/campusops/gradebook/internal/grade"
	"github.com/campusops/gradebook/internal/report"
)

type Deps struct {
	Auth        *auth.Service
	Evaluations *evaluation.Service
	Grades      *grade.Service
	Reports     *report.Builder
	CORSOrigins []string
	Metrics     bool
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	if len(d.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   d.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	if d.Metrics {
		r.Use(MetricsMiddleware)
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/auth/login", auth.LoginHandler(d.Auth))

	r.Route("/api/v1", func(pr chi.Router) {
		pr.Use(auth.Middleware(d.Auth))
		MountEvaluations(pr, d.Evaluations)
		MountGrades(pr, d.Grades)
		MountReports(pr, d.Reports)
	})

	return r
}
