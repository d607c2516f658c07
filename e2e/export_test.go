package e2e

import (
	"net/http"
	"strings"
	"testing"
)

func TestExportPDF(t *testing.T) {
	ta := setupApp(t)

	resp, err := doRequest(ta.app, http.MethodPost, "/export/pdf", `{"lyrics":"Title: Trains\n\n[Verse 1]\nRolling on"}`, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusOK)
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("expected application/pdf, got %q", ct)
	}
	if body := readBody(t, resp); !strings.HasPrefix(body, "%PDF-") {
		t.Error("expected a PDF document")
	}
}

func TestExportPDF_Empty(t *testing.T) {
	ta := setupApp(t)

	resp, err := doRequest(ta.app, http.MethodPost, "/export/pdf", `{"lyrics":""}`, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	assertStatus(t, resp, http.StatusBadRequest)
	if code := errorCode(t, resp); code != "NOTHING_TO_EXPORT" {
		t.Errorf("expected NOTHING_TO_EXPORT, got %s", code)
	}
}

func TestExportShare_NoAuth(t *testing.T) {
	ta := setupApp(t, withAuth)

	resp, err := doRequest(ta.app, http.MethodPost, "/export/pdf/share", `{"lyrics":"hello"}`, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusUnauthorized)
}

func TestExportShare_NoStorage(t *testing.T) {
	ta := setupApp(t, withAuth)

	resp, err := doAuthRequest(t, ta.app, http.MethodPost, "/export/pdf/share", `{"lyrics":"hello"}`)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	assertStatus(t, resp, http.StatusServiceUnavailable)
}
