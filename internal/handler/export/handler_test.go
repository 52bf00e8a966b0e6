package export

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	exportservice "github.com/wzhuang/simpatient/backend/internal/export"
	"github.com/wzhuang/simpatient/backend/internal/model/persona"
	"github.com/wzhuang/simpatient/backend/internal/service/ai"
	chatservice "github.com/wzhuang/simpatient/backend/internal/service/chat"
	"github.com/wzhuang/simpatient/backend/internal/store"
)

func setupRouter(t *testing.T) *chi.Mux {
	t.Helper()
	sessions, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore err: %v", err)
	}
	personas := persona.NewMemoryStore([]persona.Persona{
		{Name: "王先生", Age: 65, Gender: "male", Occupation: "退休教師", Description: "高血壓病史"},
	})
	controller := chatservice.NewController(sessions, personas, ai.NewStubProvider())
	if _, err := controller.SubmitTurn(context.Background(), "S1", "王先生", "你好"); err != nil {
		t.Fatalf("seed exchange: %v", err)
	}

	exporter, err := exportservice.NewPDFExporter(sessions, t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewPDFExporter err: %v", err)
	}

	r := chi.NewRouter()
	New(exporter).RegisterRoutes(r)
	return r
}

func TestExportReturnsPath(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/export/S1", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["path"] == "" {
		t.Fatal("expected artifact path in response")
	}
}

func TestExportUnknownStudent(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/export/unknown-student", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestDownloadServesPDF(t *testing.T) {
	r := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/export/S1/download", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type: %q", ct)
	}
}
