package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRequest_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "req.json")
	body := `{"slots":1,"stats":[106,9],"scrolls":[{"percent":0.6,"dark":false,"cost":50,"stats":[2,1]}],"goal":[108,10]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write request: %v", err)
	}

	req, err := loadRequest(path)
	if err != nil {
		t.Fatalf("loadRequest: %v", err)
	}
	if req.Slots != 1 || len(req.Scrolls) != 1 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestLoadRequest_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "req.yaml")
	body := "slots: 2\nstats: [106, 9]\ngoal: [108, 10]\nscrolls:\n  - percent: 0.6\n    dark: false\n    cost: 50\n    stats: [2, 1]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write request: %v", err)
	}

	req, err := loadRequest(path)
	if err != nil {
		t.Fatalf("loadRequest: %v", err)
	}
	if req.Slots != 2 || len(req.Scrolls) != 1 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestLoadRequest_MissingFile(t *testing.T) {
	if _, err := loadRequest("/nonexistent/request.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
