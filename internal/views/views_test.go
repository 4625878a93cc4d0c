package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRender_WritesStatusAndPage(t *testing.T) {
	rec := httptest.NewRecorder()
	data := struct {
		Term        string
		Pets        []any
		PagesCount  int
		CurrentPage int
	}{PagesCount: 1, CurrentPage: 1}

	if err := Render(rec, http.StatusOK, "pets-index", data); err != nil {
		t.Fatalf("render: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("unexpected response %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "<!doctype html>") {
		t.Fatalf("expected full page, got %q", rec.Body.String())
	}
}

func TestRender_FailureWritesNothing(t *testing.T) {
	rec := httptest.NewRecorder()

	// el header se renderiza bien; falla al pedir .Pet
	err := Render(rec, http.StatusOK, "pets-show", struct{ Term string }{})
	if err == nil {
		t.Fatal("expected template error")
	}
	if rec.Body.Len() != 0 || rec.Header().Get("Content-Type") != "" {
		t.Fatalf("expected nothing written, got %q", rec.Body.String())
	}
}
