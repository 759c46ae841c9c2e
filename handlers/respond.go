package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"passdepot/backend/services"
)

// ErrorBody is the structured error every procedure returns on failure.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindUnauthenticated:
		return http.StatusUnauthorized
	case services.KindInvalidArgument:
		return http.StatusBadRequest
	case services.KindPermissionDenied:
		return http.StatusForbidden
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindFailedPrecondition:
		return http.StatusPreconditionFailed
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps a ledger error onto the failure envelope. Unclassified
// errors are logged server-side and surface as internal with a generic
// message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := services.KindOf(err)
	if kind == services.KindInternal {
		log.Printf("Internal error on %s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, statusForKind(kind), map[string]interface{}{
		"success": false,
		"error":   ErrorBody{Kind: string(kind), Message: services.MessageOf(err)},
	})
}

// writeSuccess merges the operation-specific fields into the success
// envelope.
func writeSuccess(w http.ResponseWriter, fields map[string]interface{}) {
	body := map[string]interface{}{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// decodeBody reads a JSON request payload, rejecting malformed input
// before the engine sees it.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return services.Errf(services.KindInvalidArgument, "invalid request body")
	}
	return nil
}

// HealthCheck reports process liveness.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
