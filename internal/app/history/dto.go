package history

import "scrollforge/internal/app/ports"

type Request struct {
	ClientID string
	Limit    int
}

type Response struct {
	Decisions []ports.DecisionRecord `json:"decisions"`
}
