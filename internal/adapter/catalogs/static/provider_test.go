package staticcatalogs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestProvider_IndexAndFile(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.json"), []byte(`{"catalogs":[]}`), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "starter.yaml"), []byte("scrolls: []"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	p := Provider{Root: root}
	index, err := p.Index(context.Background())
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if string(index) != `{"catalogs":[]}` {
		t.Fatalf("unexpected index content: %q", string(index))
	}

	b, err := p.File(context.Background(), "starter.yaml")
	if err != nil {
		t.Fatalf("file: %v", err)
	}
	if string(b) != "scrolls: []" {
		t.Fatalf("unexpected file content: %q", string(b))
	}
}

func TestProvider_FileRejectsUnsupportedExtension(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("not a catalog"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	p := Provider{Root: root}
	if _, err := p.File(context.Background(), "notes.txt"); err != ErrUnsupportedCatalogExtension {
		t.Fatalf("expected ErrUnsupportedCatalogExtension, got %v", err)
	}
}

func TestProvider_List(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"index.json":     `{"catalogs":[]}`,
		"starter.yaml":   "scrolls: []",
		"expansion.json": `{"scrolls":[]}`,
		"notes.txt":      "not a catalog",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(root, "subdir"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	p := Provider{Root: root}
	names, err := p.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	want := []string{"expansion.json", "starter.yaml"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestProvider_FileRejectsPathTraversal(t *testing.T) {
	root := t.TempDir()
	parent := filepath.Dir(root)
	outsidePath := filepath.Join(parent, "outside.txt")
	if err := os.WriteFile(outsidePath, []byte("secret"), 0o644); err != nil {
		t.Fatalf("write outside: %v", err)
	}
	t.Cleanup(func() { _ = os.Remove(outsidePath) })

	p := Provider{Root: root}

	if _, err := p.File(context.Background(), "../outside.txt"); err == nil {
		t.Fatalf("expected path traversal to be rejected")
	}
}
