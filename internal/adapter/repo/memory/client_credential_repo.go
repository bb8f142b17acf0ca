package memory

import (
	"context"
	"time"

	"scrollforge/internal/app/ports"
)

type ClientCredentialRepo struct {
	store *Store
}

func NewClientCredentialRepo(store *Store) ClientCredentialRepo {
	return ClientCredentialRepo{store: store}
}

func (r ClientCredentialRepo) Create(_ context.Context, record ports.ClientCredentialRecord) error {
	return r.store.createCredential(record)
}

func (r ClientCredentialRepo) GetByClientID(_ context.Context, clientID string) (ports.ClientCredentialRecord, error) {
	return r.store.getCredential(clientID)
}

func (r ClientCredentialRepo) Touch(_ context.Context, clientID string, at time.Time) error {
	return r.store.touchCredential(clientID, at)
}

func (r ClientCredentialRepo) Revoke(_ context.Context, clientID string) error {
	return r.store.revokeCredential(clientID)
}
