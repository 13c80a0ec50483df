package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tabaum/storefront/internal/storefront/storage"
	"github.com/tabaum/storefront/pkg/logger"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		if body["password"] != "pass1234" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Credenciais inválidas."}`))
			return
		}
		_, _ = w.Write([]byte(`{"message":"Login realizado com sucesso!","token":"tok","user":{"name":"Ana Souza","email":"ana@example.com"}}`))
	})
	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":"Token inválido"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"name":"Ana Souza","email":"ana@example.com"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, apiURL, storagePath, stdin string, args ...string) (string, error) {
	t.Helper()
	logger.Reset()
	t.Cleanup(logger.Reset)

	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(stdin), &out, &errOut)
	cmd.SetArgs(append([]string{"--api-url", apiURL, "--storage", storagePath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCartCommandsPersistAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")

	if _, err := run(t, "http://127.0.0.1:1", path, "", "add", "1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := run(t, "http://127.0.0.1:1", path, "", "add", "1"); err != nil {
		t.Fatalf("add: %v", err)
	}
	out, err := run(t, "http://127.0.0.1:1", path, "", "add", "2")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Total: R$ 949,70") {
		t.Fatalf("expected running total, got %q", out)
	}

	out, err = run(t, "http://127.0.0.1:1", path, "", "qty", "--", "2", "-1")
	if err != nil {
		t.Fatalf("qty: %v", err)
	}
	if strings.Contains(out, "#2") || !strings.Contains(out, "Total: R$ 599,80") {
		t.Fatalf("expected line 2 removed, got %q", out)
	}

	out, err = run(t, "http://127.0.0.1:1", path, "", "cart", "--badge")
	if err != nil {
		t.Fatalf("cart: %v", err)
	}
	if out != "Carrinho (2)\n" {
		t.Fatalf("unexpected badge output %q", out)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	if _, err := run(t, "http://127.0.0.1:1", path, "", "add", "99"); err == nil {
		t.Fatalf("expected error for unknown product")
	}
	if _, err := run(t, "http://127.0.0.1:1", path, "", "add", "abc"); err == nil {
		t.Fatalf("expected error for malformed id")
	}
}

func TestProductsFallsBackToBundledCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storage.json")
	out, err := run(t, "http://127.0.0.1:1", path, "", "products", "--category", "corte", "--sort", "high")
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	master := strings.Index(out, "Bloco de Corte Master")
	pro := strings.Index(out, "Tábua Churrasco Pro")
	if master < 0 || pro < 0 || master > pro {
		t.Fatalf("expected cut boards sorted by price desc, got %q", out)
	}
	if strings.Contains(out, "Tábua Elegance") {
		t.Fatalf("category filter ignored: %q", out)
	}
}

func TestLoginWhoamiLogout(t *testing.T) {
	srv := fakeAPI(t)
	api := srv.URL + "/api"
	path := filepath.Join(t.TempDir(), "storage.json")

	if _, err := run(t, api, path, "", "login", "--email", "ana@example.com", "--password", "wrong"); err == nil {
		t.Fatalf("expected login failure")
	}

	out, err := run(t, api, path, "", "login", "--email", "ana@example.com", "--password", "pass1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Login realizado com sucesso!") || !strings.Contains(out, "Olá, Ana (sair)") {
		t.Fatalf("unexpected login output %q", out)
	}

	out, err = run(t, api, path, "", "whoami")
	if err != nil || !strings.Contains(out, "Olá, Ana") {
		t.Fatalf("whoami: %q, %v", out, err)
	}

	out, err = run(t, api, path, "n\n", "logout")
	if err != nil || !strings.Contains(out, "Operação cancelada.") {
		t.Fatalf("logout cancel: %q, %v", out, err)
	}

	out, err = run(t, api, path, "s\n", "logout")
	if err != nil || !strings.Contains(out, "Sessão encerrada.") {
		t.Fatalf("logout: %q, %v", out, err)
	}

	st := storage.NewFile(path)
	if _, err := st.Get(storage.KeyToken); err != storage.ErrNotFound {
		t.Fatalf("expected token removed, got %v", err)
	}

	out, err = run(t, api, path, "", "logout")
	if err != nil || !strings.Contains(out, "Nenhuma sessão ativa") {
		t.Fatalf("logout when anonymous: %q, %v", out, err)
	}
}

func TestWhoamiClearsRejectedToken(t *testing.T) {
	srv := fakeAPI(t)
	path := filepath.Join(t.TempDir(), "storage.json")

	st := storage.NewFile(path)
	if err := st.Set(storage.KeyToken, "stale"); err != nil {
		t.Fatal(err)
	}
	if err := st.Set(storage.KeyUser, `{"name":"Ana","email":"ana@example.com"}`); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, srv.URL+"/api", path, "", "whoami")
	if err != nil || out != "Entrar\n" {
		t.Fatalf("expected anonymous after rejected token, got %q, %v", out, err)
	}
	if _, err := st.Get(storage.KeyUser); err != storage.ErrNotFound {
		t.Fatalf("expected user removed, got %v", err)
	}
}
