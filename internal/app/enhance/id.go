package enhance

import "github.com/google/uuid"

func newDecisionID() string {
	return uuid.New().String()
}
