package history

import (
	"context"
	"errors"
	"strings"

	"scrollforge/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid history request")

const defaultLimit = 50

// UseCase lists a client's past evaluations: a thin read path over one
// repository, no domain reconstruction, since a DecisionRecord is already
// the settled answer rather than an event to replay forward from.
type UseCase struct {
	Decisions ports.DecisionRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.ClientID) == "" || u.Decisions == nil {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	decisions, err := u.Decisions.ListByClientID(ctx, req.ClientID, limit)
	if err != nil {
		return Response{}, err
	}
	return Response{Decisions: decisions}, nil
}
