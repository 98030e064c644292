package handlers_test

import (
	"CloudVault/internal/config"
	"CloudVault/internal/groq"
	"CloudVault/internal/handlers"
	"CloudVault/internal/repo/bolt"
	"CloudVault/internal/repo/dual"
	"CloudVault/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

// stubClassifier подменяет внешний анализатор в тестах.
type stubClassifier struct {
	result groq.Classification
	err    error
}

func (s *stubClassifier) Analyze(_ context.Context, _, _ string) (groq.Classification, error) {
	return s.result, s.err
}

// newTestRouter поднимает полный роутер поверх реальных сервисов и двух
// bolt-хранилищ во временной директории.
func newTestRouter(t *testing.T) (http.Handler, *stubClassifier) {
	t.Helper()

	openStore := func(name string) *bolt.Store {
		s, err := bolt.Open(filepath.Join(t.TempDir(), name))
		if err != nil {
			t.Fatalf("open bolt: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	}

	logger := zap.NewNop().Sugar()
	store := dual.New(openStore("primary.db"), openStore("fallback.db"), logger, time.Second)

	cfg := &config.Config{AuthSecret: "test-secret"}
	classifier := &stubClassifier{result: groq.Classification{Verdict: "Looks fine.", Category: "Technical", RiskLevel: "Low"}}

	h := handlers.NewHandler(
		service.NewUserService(store, logger),
		service.NewShareService(store, logger),
		service.NewFileService(store, logger),
		service.NewAccessService(store, logger),
		service.NewNotificationService(store, logger),
		classifier,
		logger,
		cfg,
	)
	return h.Router, classifier
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
}

// registerAccount создаёт аккаунт через API и возвращает его внешнее
// представление.
func registerAccount(t *testing.T, router http.Handler, email string) map[string]any {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/api/register", map[string]string{"email": email, "password": "pw"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d, body %s", email, rr.Code, rr.Body.String())
	}
	var account map[string]any
	decodeBody(t, rr, &account)
	return account
}

// saveFile загружает один файл владельцу и возвращает его id из списка.
func saveFile(t *testing.T, router http.Handler, ownerID, name string) string {
	t.Helper()
	rr := doJSON(t, router, http.MethodPost, "/api/files/"+ownerID, []map[string]any{
		{"name": name, "size": 42, "type": "text/plain", "url": "https://cdn.example/" + name},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("save file: status %d, body %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, router, http.MethodGet, "/api/files/"+ownerID, nil)
	var files []map[string]any
	decodeBody(t, rr, &files)
	for _, f := range files {
		if f["name"] == name {
			return f["id"].(string)
		}
	}
	t.Fatalf("file %q not found after save", name)
	return ""
}
