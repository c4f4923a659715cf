package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func testServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir, err := os.MkdirTemp("", "server_test_*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	return NewServer(&Config{Host: "localhost", Port: 0, ReportsDir: dir}), dir
}

func TestHandleListReports(t *testing.T) {
	srv, dir := testServer(t)

	if err := os.WriteFile(filepath.Join(dir, "enhanced-report.html"), []byte("<html></html>"), 0644); err != nil {
		t.Fatalf("Failed to write report: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "trends.json"), []byte("[]"), 0644); err != nil {
		t.Fatalf("Failed to write trends: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %v, want 200", rec.Code)
	}

	var body struct {
		Reports []reportInfo `json:"reports"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if len(body.Reports) != 1 {
		t.Fatalf("reports = %d, want 1 (only HTML files are listed)", len(body.Reports))
	}
	if body.Reports[0].Name != "enhanced-report.html" {
		t.Errorf("report name = %v, want enhanced-report.html", body.Reports[0].Name)
	}
}

func TestHandleGetReport(t *testing.T) {
	srv, dir := testServer(t)

	payload := `{"summary":{"totalTests":1}}`
	if err := os.WriteFile(filepath.Join(dir, "detailed-report.json"), []byte(payload), 0644); err != nil {
		t.Fatalf("Failed to write payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/reports/enhanced-report.html", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %v, want 200", rec.Code)
	}
	if rec.Body.String() != payload {
		t.Errorf("body = %v, want payload passthrough", rec.Body.String())
	}
}

func TestHandleGetReport_NotFound(t *testing.T) {
	srv, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/reports/missing.html", nil)
	rec := httptest.NewRecorder()
	srv.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %v, want 404", rec.Code)
	}
}
