package errmodel

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewAndFrom(t *testing.T) {
	e := Validation("missing", "field missing", map[string]any{"field": "category_id"})
	if e.Category != CategoryValidation || e.Code != "missing" {
		t.Fatalf("unexpected: %#v", e)
	}
	if got := From(e); got != e {
		t.Fatalf("From should return same error instance")
	}
	plain := From(errors.New("boom"))
	if plain.Category != CategorySystem || plain.Code != "internal" {
		t.Fatalf("unexpected plain conversion: %#v", plain)
	}
}

func TestFromStatus(t *testing.T) {
	cases := []struct {
		status   int
		category string
		code     string
		http     int
	}{
		{http.StatusNotFound, CategoryValidation, "not_found", http.StatusNotFound},
		{http.StatusUnprocessableEntity, CategoryValidation, "rejected", http.StatusUnprocessableEntity},
		{http.StatusUnauthorized, CategoryPolicy, "unauthorized", http.StatusUnauthorized},
		{http.StatusServiceUnavailable, CategoryServer, "upstream", http.StatusBadGateway},
	}
	for _, tc := range cases {
		e := FromStatus(tc.status, "", nil)
		if e.Category != tc.category || e.Code != tc.code {
			t.Fatalf("status %d: got %s/%s", tc.status, e.Category, e.Code)
		}
		if e.Message != http.StatusText(tc.status) {
			t.Fatalf("status %d: message=%q", tc.status, e.Message)
		}
		if got := HTTPStatus(e); got != tc.http {
			t.Fatalf("status %d: HTTPStatus=%d want %d", tc.status, got, tc.http)
		}
	}
}

func TestWriteHTTP_StatusAndEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	WriteHTTP(rr, req, Validation("bad_json", "oops", nil))
	if rr.Code != 400 {
		t.Fatalf("status=%d want 400", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "\"category\":\"validation\"") {
		t.Fatalf("body missing category: %s", body)
	}
	if !strings.Contains(body, "\"code\":\"bad_json\"") {
		t.Fatalf("body missing code: %s", body)
	}
}

func TestTruncateContext(t *testing.T) {
	long := strings.Repeat("x", 400)
	e := New(CategoryNetwork, "dial", "failed", map[string]any{"url": long, "ids": []string{"a"}})
	if got := e.Context["url"].(string); len(got) != 256 {
		t.Fatalf("url len=%d want 256", len(got))
	}
	if got := e.Context["ids"]; got != `["a"]` {
		t.Fatalf("ids=%v", got)
	}
	if !IsCategory(e, "NETWORK") {
		t.Fatalf("IsCategory should be case-insensitive")
	}
}
