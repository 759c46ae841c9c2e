package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"passdepot/backend/middleware"
	"passdepot/backend/models"
	"passdepot/backend/services"
	"passdepot/backend/store"
)

const (
	testUserA   = "user-a"
	testUserB   = "user-b"
	testAdminID = "admin-gym-x"
	testGymX    = "gym-x"
)

// farFuture keeps seeded passes live against the engine's real clock.
var farFuture = time.Date(2099, 12, 31, 15, 59, 59, 999_000_000, time.UTC)

func newTestEngine(t *testing.T) (*services.Engine, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemory()
	users := map[string]models.User{
		testUserA:   {Name: "Alice", PhoneNumber: "+6591230001", TelegramID: "alice_tg"},
		testUserB:   {Name: "Bob", PhoneNumber: "+6591230002"},
		testAdminID: {Name: "Xavier", IsAdmin: true, AdminGym: testGymX},
	}
	for id, u := range users {
		if err := mem.Seed(models.CollectionUsers, id, u); err != nil {
			t.Fatalf("failed to seed user %s: %v", id, err)
		}
	}
	return services.NewEngine(mem), mem
}

// authedRequest builds a request carrying userID the way AuthMiddleware
// would have installed it.
func authedRequest(t *testing.T, method, target, userID string, payload interface{}) *http.Request {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &body)
	if userID != "" {
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	}
	return req
}

// envelope decodes the JSON response body.
func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

// wantFailure asserts status and the failure envelope's error kind.
func wantFailure(t *testing.T, rec *httptest.ResponseRecorder, status int, kind services.ErrorKind) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	body := envelope(t, rec)
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
	errBody, ok := body["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing error object in %v", body)
	}
	if errBody["kind"] != string(kind) {
		t.Errorf("error kind = %v, want %s", errBody["kind"], kind)
	}
	if errBody["message"] == "" {
		t.Error("error message is empty")
	}
}

// wantSuccess asserts a 200 with the success envelope and returns it.
func wantSuccess(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	body := envelope(t, rec)
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	return body
}
