package staticcatalogs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Provider serves catalog files (an index.json plus named YAML/JSON
// catalogs) straight off disk. It never sees the domain layer: the caller
// is responsible for parsing a served catalog into enhance.ScrollKind
// values.
type Provider struct {
	Root string
}

func (p Provider) Index(_ context.Context) ([]byte, error) {
	return os.ReadFile(filepath.Join(p.Root, "index.json"))
}

// allowedCatalogExtensions is the set of formats a scroll catalog can be
// authored in. A path that resolves safely under Root but names anything
// else is refused: it isn't catalog data, whatever it is.
var allowedCatalogExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
}

var (
	ErrInvalidCatalogPath          = errors.New("invalid catalog filepath")
	ErrUnsupportedCatalogExtension = errors.New("unsupported catalog file extension")
)

func (p Provider) File(_ context.Context, path string) ([]byte, error) {
	safePath, err := secureJoin(p.Root, path)
	if err != nil {
		return nil, err
	}
	if !allowedCatalogExtensions[strings.ToLower(filepath.Ext(safePath))] {
		return nil, ErrUnsupportedCatalogExtension
	}
	return os.ReadFile(safePath)
}

// List returns the names of catalog files directly under Root, sorted,
// excluding index.json itself. It skips subdirectories and any file whose
// extension File would reject.
func (p Provider) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(p.Root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == "index.json" {
			continue
		}
		if allowedCatalogExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func secureJoin(root, rel string) (string, error) {
	rel = strings.TrimSpace(rel)
	if rel == "" {
		return "", ErrInvalidCatalogPath
	}
	if filepath.IsAbs(rel) {
		return "", ErrInvalidCatalogPath
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	target := filepath.Clean(filepath.Join(rootAbs, rel))
	prefix := rootAbs + string(filepath.Separator)
	if target != rootAbs && !strings.HasPrefix(target, prefix) {
		return "", ErrInvalidCatalogPath
	}
	return target, nil
}
