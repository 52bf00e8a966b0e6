package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	resp := httptest.NewRecorder()

	RespondJSON(resp, http.StatusCreated, map[string]string{"path": "/tmp/S1.pdf"})

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type: %q", ct)
	}
	var payload map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload["path"] != "/tmp/S1.pdf" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}

func TestRespondErrorEnvelope(t *testing.T) {
	resp := httptest.NewRecorder()

	RespondError(resp, http.StatusNotFound, "no saved session for student")

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if body.Error != "no saved session for student" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}
