package enhance

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"scrollforge/internal/app/ports"
	"scrollforge/internal/domain/enhance"
)

var (
	ErrInvalidRequest     = errors.New("invalid enhance request")
	ErrEmptyCatalog       = errors.New("scroll catalog must not be empty")
	ErrNegativeValue      = errors.New("slots, stats, and cost must be nonnegative")
	ErrInvalidProbability = errors.New("scroll probability must be in [0,1]")
	ErrTooManySlots       = errors.New("slots exceeds the configured maximum")
)

// defaultMaxSlots bounds request Slots when UseCase.MaxSlots is left at its
// zero value, matching SCROLLFORGE_MAX_SLOTS's documented default. This is
// a request-validation ceiling, not a core-engine concept: the core itself
// places no bound on slots beyond what recursion depth implies.
const defaultMaxSlots = 64

// UseCase validates an evaluation request, runs it through the domain
// engine, and reports outcome counters and an optional audit record: a
// plain struct of collaborators, none of which are required to be non-nil
// except where the operation genuinely needs them.
type UseCase struct {
	Decisions ports.DecisionRepository
	Metrics   ports.EngineMetrics
	Now       func() time.Time
	// MaxSlots caps Request.Slots; zero means defaultMaxSlots.
	MaxSlots uint32
}

// Execute validates req, runs the decision engine, and returns the §6
// Response. Validation failures are returned as one of the sentinel errors
// above (never reaching the engine); everything else — including the
// legitimate "goal unreachable" outcome — is a normally computed response
// with p_goal possibly 0.
func (u UseCase) Execute(ctx context.Context, clientID string, req Request) (Response, error) {
	scrolls, goal, err := u.validate(req)
	if err != nil {
		if u.Metrics != nil {
			u.Metrics.RecordInvalidRequest()
		}
		return Response{}, err
	}

	resp, err := u.evaluate(scrolls, goal, req)
	if err != nil {
		return Response{}, err
	}

	if u.Decisions != nil && clientID != "" {
		if err := u.recordDecision(ctx, clientID, req, resp); err != nil {
			return Response{}, err
		}
	}

	return resp, nil
}

// evaluate runs the domain engine and converts an *enhance.InvariantViolationError
// panic into a normal returned error, the same way the engine's other failure
// modes surface: a caller of Execute never observes a panic for a bug the
// engine itself detects.
func (u UseCase) evaluate(scrolls []enhance.ScrollKind, goal enhance.StatVector, req Request) (resp Response, err error) {
	evaluator := enhance.NewEvaluator(scrolls, goal)
	root := enhance.NewItemState(req.Slots, toStatVector(req.Stats))

	defer func() {
		if r := recover(); r != nil {
			invErr, ok := r.(*enhance.InvariantViolationError)
			if !ok {
				panic(r)
			}
			resp = Response{}
			err = invErr
		}
	}()

	if req.IncludeTree {
		tree := enhance.ExtractTree(evaluator, root)
		resp = Response{Choice: tree.Record.Choice, PGoal: tree.Record.PGoal, ECost: tree.Record.ECost, Tree: treeFromPolicyNode(tree)}
	} else {
		choice, pGoal, eCost := enhance.ExtractChoice(evaluator, root)
		resp = Response{Choice: choice, PGoal: pGoal, ECost: eCost}
	}

	if u.Metrics != nil {
		hits, misses := evaluator.CacheStats()
		u.Metrics.RecordEvaluated(resp.PGoal, evaluator.MemoSize(), hits, misses)
	}

	return resp, nil
}

func (u UseCase) recordDecision(ctx context.Context, clientID string, req Request, resp Response) error {
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	digest, err := requestDigest(req)
	if err != nil {
		return err
	}
	return u.Decisions.Save(ctx, ports.DecisionRecord{
		ID:        newDecisionID(),
		ClientID:  clientID,
		Digest:    digest,
		Slots:     req.Slots,
		Choice:    resp.Choice,
		PGoal:     resp.PGoal,
		ECost:     resp.ECost,
		CreatedAt: nowFn().UTC(),
	})
}

// validate runs the full validation-failure list against req, including a
// length check across all vectors in the request. It normalizes each
// scroll's Percent into a [0,1] probability and returns the fully
// materialized domain-layer inputs.
func (u UseCase) validate(req Request) ([]enhance.ScrollKind, enhance.StatVector, error) {
	if len(req.Scrolls) == 0 {
		return nil, nil, ErrEmptyCatalog
	}
	maxSlots := u.MaxSlots
	if maxSlots == 0 {
		maxSlots = defaultMaxSlots
	}
	if req.Slots > maxSlots {
		return nil, nil, ErrTooManySlots
	}
	n := len(req.Stats)
	if n == 0 || len(req.Goal) != n {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidRequest, &enhance.ErrVectorLength{Want: n, Got: len(req.Goal)})
	}
	for _, v := range req.Stats {
		if v < 0 {
			return nil, nil, ErrNegativeValue
		}
	}
	for _, v := range req.Goal {
		if v < 0 {
			return nil, nil, ErrNegativeValue
		}
	}

	scrolls := make([]enhance.ScrollKind, len(req.Scrolls))
	for i, s := range req.Scrolls {
		if len(s.Stats) != n {
			return nil, nil, fmt.Errorf("%w: scroll %d: %w", ErrInvalidRequest, i, &enhance.ErrVectorLength{Want: n, Got: len(s.Stats)})
		}
		for _, v := range s.Stats {
			if v < 0 {
				return nil, nil, ErrNegativeValue
			}
		}
		p := normalizePercent(s.Percent)
		if p < 0 || p > 1 {
			return nil, nil, ErrInvalidProbability
		}
		if s.Cost < 0 {
			return nil, nil, ErrNegativeValue
		}
		scrolls[i] = enhance.ScrollKind{
			P:     p,
			Dark:  s.Dark,
			Cost:  s.Cost,
			Delta: toStatVector(s.Stats),
		}
	}

	return scrolls, toStatVector(req.Goal), nil
}

// normalizePercent accepts either an integer 0-100 or a real in [0,1].
// Anything above 1 is assumed to be given on the 0-100 scale.
func normalizePercent(percent float64) float64 {
	if percent > 1 {
		return percent / 100
	}
	return percent
}

func toStatVector(v []int64) enhance.StatVector {
	out := make(enhance.StatVector, len(v))
	copy(out, v)
	return out
}

func requestDigest(req Request) (string, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
