package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"mealmatcher/internal/models"
	"mealmatcher/internal/service"
)

func TestUpdateProfile(t *testing.T) {
	t.Run("updates fields and returns fresh token", func(t *testing.T) {
		auth := authedMock()
		auth.updatedUser = &models.User{ID: 1, Email: "updated@example.com", Name: "Updated User"}
		auth.updatedToken = "fresh-token"
		r := newTestRouter(&service.Service{Authorization: auth})

		body := `{"name":"Updated User","email":"updated@example.com"}`
		w := doJSON(r, http.MethodPut, "/profile", body, "tok")
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}

		var m map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &m)
		if m["token"] != "fresh-token" {
			t.Fatalf("expected fresh token, got %v", m["token"])
		}
		if auth.lastUpdate.Name != "Updated User" || auth.lastUpdate.Email != "updated@example.com" {
			t.Fatalf("unexpected update passed to service: %+v", auth.lastUpdate)
		}
		// absent fields arrive as empty strings, i.e. "no change"
		if auth.lastUpdate.Password != "" || auth.lastUpdate.DietaryPrefs != "" {
			t.Fatalf("absent fields should stay empty: %+v", auth.lastUpdate)
		}
	})

	t.Run("dietary preferences only", func(t *testing.T) {
		auth := authedMock()
		auth.updatedUser = &models.User{ID: 1, Email: "a@x.com", DietaryPrefs: "Vegan"}
		auth.updatedToken = "tok2"
		r := newTestRouter(&service.Service{Authorization: auth})

		w := doJSON(r, http.MethodPut, "/profile", `{"dietaryPreferences":"Vegan"}`, "tok")
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if auth.lastUpdate.DietaryPrefs != "Vegan" {
			t.Fatalf("prefs not passed: %+v", auth.lastUpdate)
		}
	})

	t.Run("invalid new email", func(t *testing.T) {
		r := newTestRouter(&service.Service{Authorization: authedMock()})
		w := doJSON(r, http.MethodPut, "/profile", `{"email":"not-an-email"}`, "tok")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, want 400", w.Code)
		}
	})

	t.Run("short new password", func(t *testing.T) {
		r := newTestRouter(&service.Service{Authorization: authedMock()})
		w := doJSON(r, http.MethodPut, "/profile", `{"password":"123"}`, "tok")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, want 400", w.Code)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		auth := authedMock()
		auth.updateErr = service.ErrEmailTaken
		r := newTestRouter(&service.Service{Authorization: auth})
		w := doJSON(r, http.MethodPut, "/profile", `{"email":"taken@example.com"}`, "tok")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, want 400", w.Code)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		auth := authedMock()
		auth.updateErr = errors.New("db down")
		r := newTestRouter(&service.Service{Authorization: auth})
		w := doJSON(r, http.MethodPut, "/profile", `{"name":"X"}`, "tok")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("status=%d, want 500", w.Code)
		}
	})
}
