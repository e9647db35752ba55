package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/campusops/gradebook/internal/apperr"
)

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
}

// writeError maps the error taxonomy onto status codes. Untyped errors
// are treated as internal and their details kept out of the response.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := errorBody{Error: "internal error"}

	var e *apperr.Error
	if errors.As(err, &e) {
		body = errorBody{Error: e.Msg, Kind: string(e.Kind), Field: e.Field}
		switch e.Kind {
		case apperr.KindInvalidArgument, apperr.KindInvalidEvaluationKind:
			status = http.StatusBadRequest
		case apperr.KindNotFound:
			status = http.StatusNotFound
		case apperr.KindConflict, apperr.KindWeightLimitExceeded:
			status = http.StatusConflict
		default:
			status = http.StatusInternalServerError
			body = errorBody{Error: "internal error", Kind: string(e.Kind)}
		}
	}
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
