package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestEvaluateOne_OK(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "req.json")
	body := `{"slots":1,"stats":[106,9],"scrolls":[{"percent":0.6,"dark":false,"cost":50,"stats":[2,1]}],"goal":[108,10]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write request: %v", err)
	}

	result := evaluateOne(context.Background(), path)
	if result.Error != "" {
		t.Fatalf("unexpected error: %s", result.Error)
	}
	if result.Response == nil || result.Response.PGoal != 0.6 {
		t.Fatalf("unexpected response: %+v", result.Response)
	}
}

func TestEvaluateOne_InvalidRequest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "req.json")
	body := `{"slots":1,"stats":[0],"scrolls":[],"goal":[1]}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write request: %v", err)
	}

	result := evaluateOne(context.Background(), path)
	if result.Error == "" {
		t.Fatalf("expected error for empty catalog")
	}
}
