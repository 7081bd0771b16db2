package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/marketplace/commodity-api/internal/core/domain"
)

func runErrorHandler(t *testing.T, log zerolog.Logger, err error) (*httptest.ResponseRecorder, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/commodity", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(log)(err, c)

	var body errorResponse
	if jerr := json.Unmarshal(rec.Body.Bytes(), &body); jerr != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), jerr)
	}
	return rec, body
}

func TestHTTPErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &domain.ValidationError{Field: "title", Reason: "must be at least 6 characters"}, http.StatusBadRequest},
		{"role denial", domain.ErrRoleNotPermitted, http.StatusBadRequest},
		{"not owner", domain.ErrNotOwner, http.StatusForbidden},
		{"bare forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"commodity not found", domain.ErrCommodityNotFound, http.StatusBadRequest},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"store", domain.StoreError("find commodity", errors.New("dial tcp: refused")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, _ := runErrorHandler(t, zerolog.Nop(), tc.err)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestHTTPErrorHandler_ValidationCarriesField(t *testing.T) {
	_, body := runErrorHandler(t, zerolog.Nop(), &domain.ValidationError{Field: "price", Reason: "must be at least 1"})

	if body.Field != "price" {
		t.Fatalf("expected field price, got %q", body.Field)
	}
	if body.Error != "price must be at least 1" {
		t.Fatalf("unexpected message %q", body.Error)
	}
}

func TestHTTPErrorHandler_AuthorizationMessageIsSpecific(t *testing.T) {
	_, body := runErrorHandler(t, zerolog.Nop(), domain.ErrNotOwner)

	if !strings.Contains(body.Error, "owning business") {
		t.Fatalf("expected ownership message, got %q", body.Error)
	}
	if body.Field != "" {
		t.Fatalf("field must be empty for non-validation errors, got %q", body.Field)
	}
}

func TestHTTPErrorHandler_StoreErrorIsGenericAndLogged(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	_, body := runErrorHandler(t, log, domain.StoreError("insert commodity", errors.New("secret driver detail")))

	if body.Error != "internal server error" {
		t.Fatalf("expected generic message, got %q", body.Error)
	}
	if !strings.Contains(buf.String(), "secret driver detail") {
		t.Fatalf("expected cause in logs, got %q", buf.String())
	}
}
