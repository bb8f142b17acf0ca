package memory

import (
	"context"

	"scrollforge/internal/app/ports"
)

type DecisionRepo struct {
	store *Store
}

func NewDecisionRepo(store *Store) DecisionRepo {
	return DecisionRepo{store: store}
}

func (r DecisionRepo) Save(_ context.Context, record ports.DecisionRecord) error {
	r.store.saveDecision(record)
	return nil
}

func (r DecisionRepo) ListByClientID(_ context.Context, clientID string, limit int) ([]ports.DecisionRecord, error) {
	return r.store.listDecisionsByClient(clientID, limit), nil
}
