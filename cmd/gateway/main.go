package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/campusops/gradebook/internal/api/http"
	"github.com/campusops/gradebook/internal/auth"
	"github.com/campusops/gradebook/internal/config"
	"github.com/campusops/gradebook/internal/db"
	"github.com/campusops/gradebook/internal/enrollment"
	"github.com/campusops/gradebook/internal/evaluation"
	"github.com/campusops/gradebook/internal/grade"
	"github.com/campusops/gradebook/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	evalStore := evaluation.NewSQLStore(dbh)
	gradeStore := grade.NewSQLStore(dbh)
	enrollStore := enrollment.NewSQLStore(dbh)

	evalSvc := evaluation.NewService(evalStore, gradeStore)
	gradeSvc := grade.NewService(gradeStore, evalStore, enrollStore)
	reports := report.NewBuilder(evalStore, gradeStore)

	creds := make(map[string]auth.Credential, len(cfg.Users))
	for username, v := range cfg.Users {
		hash, role, err := config.ParseUser(v)
		if err != nil {
			log.Fatalf("user %q: %v", username, err)
		}
		creds[username] = auth.Credential{PassHash: hash, Role: role}
	}
	authSvc := auth.NewService(cfg.AuthSecret, creds)

	handler := api.NewRouter(api.Deps{
		Auth:        authSvc,
		Evaluations: evalSvc,
		Grades:      gradeSvc,
		Reports:     reports,
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     cfg.Metrics,
	})

	log.Printf("gradebook listening on %s (db=%s)", cfg.Addr, cfg.DBDriver)
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal(err)
	}
}
