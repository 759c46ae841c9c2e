package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"passdepot/backend/services"
)

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	body := envelope(t, rec)
	if body["status"] != "ok" {
		t.Errorf("status field = %v, want ok", body["status"])
	}
}

func TestStatusForKind(t *testing.T) {
	testCases := []struct {
		kind   services.ErrorKind
		status int
	}{
		{services.KindUnauthenticated, http.StatusUnauthorized},
		{services.KindInvalidArgument, http.StatusBadRequest},
		{services.KindPermissionDenied, http.StatusForbidden},
		{services.KindNotFound, http.StatusNotFound},
		{services.KindFailedPrecondition, http.StatusPreconditionFailed},
		{services.KindInternal, http.StatusInternalServerError},
	}
	for _, tc := range testCases {
		if got := statusForKind(tc.kind); got != tc.status {
			t.Errorf("statusForKind(%s) = %d, want %d", tc.kind, got, tc.status)
		}
	}
}

func TestWriteErrorHidesUnclassifiedDetail(t *testing.T) {
	req := httptest.NewRequest("GET", "/passes/mine", nil)
	rec := httptest.NewRecorder()
	writeError(rec, req, errors.New("firestore: rpc deadline exceeded at 10.0.0.3"))

	wantFailure(t, rec, http.StatusInternalServerError, services.KindInternal)
	if strings.Contains(rec.Body.String(), "10.0.0.3") {
		t.Error("internal error detail leaked to the client")
	}
}
