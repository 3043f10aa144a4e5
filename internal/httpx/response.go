package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/bizlink/marketplace/internal/apperr"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		// nothing we can do at this point
		_ = err
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// Error renders a service error using the taxonomy's status and wire-kind
// mapping. Internal causes are logged with full context and never reach
// the body.
func Error(w http.ResponseWriter, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		log.Printf("internal error: %v", err)
	}
	resp := ErrorResponse{Error: string(apperr.WireKind(kind))}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		if kind != apperr.KindInternal && kind != apperr.KindForbidden {
			resp.Message = ae.Msg
		}
		if len(ae.Violations) > 0 {
			resp.Details = ae.Violations
		}
	}
	JSON(w, apperr.HTTPStatus(kind), resp)
}
