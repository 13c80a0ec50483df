package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/tabaum/storefront/internal/core/domain"
)

func runErrorHandler(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var resp errorResponse
	if jerr := json.Unmarshal(rec.Body.Bytes(), &resp); jerr != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), jerr)
	}
	return rec.Code, resp.Error
}

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{domain.NewValidationError("A senha é obrigatória."), http.StatusBadRequest, "A senha é obrigatória."},
		{domain.ErrUserExists, http.StatusBadRequest, "E-mail já cadastrado."},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Credenciais inválidas."},
		{domain.ErrInvalidToken, http.StatusForbidden, "Token inválido"},
		{domain.ErrUserNotFound, http.StatusNotFound, "Usuário não encontrado"},
		{domain.ErrRateLimited, http.StatusTooManyRequests, "Muitas tentativas. Tente novamente mais tarde."},
		{echo.NewHTTPError(http.StatusUnauthorized, "Não autenticado"), http.StatusUnauthorized, "Não autenticado"},
		{errors.New("mongo: connection refused"), http.StatusInternalServerError, "Erro no servidor."},
	}
	for _, tc := range cases {
		code, msg := runErrorHandler(t, tc.err)
		if code != tc.code || msg != tc.msg {
			t.Fatalf("%v: expected %d %q, got %d %q", tc.err, tc.code, tc.msg, code, msg)
		}
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %d %q", rec.Code, rec.Body.String())
	}
}
