package catalogs

import (
	"context"

	"scrollforge/internal/app/ports"
)

// UseCase serves pre-built scroll catalogs, letting a caller skip
// constructing a Request's scroll list by hand.
type UseCase struct {
	Provider ports.CatalogProvider
}

func (u UseCase) Index(ctx context.Context) ([]byte, error) {
	return u.Provider.Index(ctx)
}

func (u UseCase) File(ctx context.Context, path string) ([]byte, error) {
	return u.Provider.File(ctx, path)
}

func (u UseCase) List(ctx context.Context) ([]string, error) {
	return u.Provider.List(ctx)
}
