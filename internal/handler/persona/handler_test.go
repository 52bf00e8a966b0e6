package persona

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wzhuang/simpatient/backend/internal/model/persona"
)

func setupRouter() *chi.Mux {
	store := persona.NewMemoryStore([]persona.Persona{
		{Name: "王先生", Age: 65, Gender: "male", Occupation: "退休教師", Description: "高血壓病史"},
	})
	r := chi.NewRouter()
	New(store).RegisterRoutes(r)
	return r
}

func TestListNames(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/personas/names", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var names []string
	if err := json.Unmarshal(resp.Body.Bytes(), &names); err != nil {
		t.Fatalf("decode names: %v", err)
	}
	if len(names) != 1 || names[0] != "王先生" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestListPersonasIncludesCard(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/personas", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var cards []struct {
		Name string `json:"name"`
		Card string `json:"card"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &cards); err != nil {
		t.Fatalf("decode cards: %v", err)
	}
	if len(cards) != 1 || cards[0].Name != "王先生" || cards[0].Card == "" {
		t.Fatalf("unexpected cards: %+v", cards)
	}
}
