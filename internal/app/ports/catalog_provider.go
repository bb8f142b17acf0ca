package ports

import "context"

// CatalogProvider serves pre-built, named scroll catalogs — a presentation
// convenience; the engine itself only ever sees a fully materialized
// catalog handed to it directly).
type CatalogProvider interface {
	Index(ctx context.Context) ([]byte, error)
	File(ctx context.Context, path string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}
