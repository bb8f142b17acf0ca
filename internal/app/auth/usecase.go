package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"scrollforge/internal/app/ports"
)

// CredentialStatusActive and CredentialStatusRevoked mirror the shared
// status values in ports, kept as local aliases so callers of this package
// don't need to import ports just to compare a status string.
const (
	CredentialStatusActive  = ports.CredentialStatusActive
	CredentialStatusRevoked = ports.CredentialStatusRevoked
)

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid client credentials")
)

type RegisterRequest struct{}

type RegisterResponse struct {
	ClientID  string `json:"client_id"`
	ClientKey string `json:"client_key"`
	IssuedAt  string `json:"issued_at"`
}

type VerifyRequest struct {
	ClientID  string
	ClientKey string
}

// RegisterUseCase mints a new client identity, retrying a handful of times
// on the (astronomically unlikely) ID collision rather than failing outright.
type RegisterUseCase struct {
	Credentials ports.ClientCredentialRepository
	Now         func() time.Time
}

type VerifyUseCase struct {
	Credentials ports.ClientCredentialRepository
	Now         func() time.Time
}

type RevokeRequest struct {
	ClientID string
}

type RevokeUseCase struct {
	Credentials ports.ClientCredentialRepository
}

func (u RegisterUseCase) Execute(ctx context.Context, _ RegisterRequest) (RegisterResponse, error) {
	if u.Credentials == nil {
		return RegisterResponse{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()

	for i := 0; i < 3; i++ {
		clientID, err := newClientID(now)
		if err != nil {
			return RegisterResponse{}, err
		}
		clientKey, err := randomToken(32)
		if err != nil {
			return RegisterResponse{}, err
		}
		salt, err := randomBytes(16)
		if err != nil {
			return RegisterResponse{}, err
		}
		hash := credentialHash(salt, clientKey)

		err = u.Credentials.Create(ctx, ports.ClientCredentialRecord{
			ClientID:  clientID,
			KeySalt:   salt,
			KeyHash:   hash,
			Status:    CredentialStatusActive,
			CreatedAt: now,
		})
		if err == ports.ErrConflict {
			continue
		}
		if err != nil {
			return RegisterResponse{}, err
		}
		return RegisterResponse{
			ClientID:  clientID,
			ClientKey: clientKey,
			IssuedAt:  now.Format(time.RFC3339),
		}, nil
	}

	return RegisterResponse{}, ports.ErrConflict
}

func (u VerifyUseCase) Execute(ctx context.Context, req VerifyRequest) error {
	req.ClientID = strings.TrimSpace(req.ClientID)
	req.ClientKey = strings.TrimSpace(req.ClientKey)
	if req.ClientID == "" || req.ClientKey == "" || u.Credentials == nil {
		return ErrInvalidRequest
	}

	cred, err := u.Credentials.GetByClientID(ctx, req.ClientID)
	if err != nil {
		if err == ports.ErrNotFound {
			return ErrInvalidCredentials
		}
		return err
	}
	if cred.Status != CredentialStatusActive {
		return ErrInvalidCredentials
	}

	got := credentialHash(cred.KeySalt, req.ClientKey)
	if subtle.ConstantTimeCompare(got, cred.KeyHash) != 1 {
		return ErrInvalidCredentials
	}

	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	// Touch is bookkeeping, not part of the authentication decision: a
	// caller that presents valid credentials is authenticated even if the
	// last-used timestamp fails to write.
	_ = u.Credentials.Touch(ctx, cred.ClientID, nowFn().UTC())
	return nil
}

// Execute revokes a client's credential so future VerifyUseCase calls fail
// closed. It is idempotent-ish: revoking an already-revoked credential
// succeeds as long as the row still exists.
func (u RevokeUseCase) Execute(ctx context.Context, req RevokeRequest) error {
	req.ClientID = strings.TrimSpace(req.ClientID)
	if req.ClientID == "" || u.Credentials == nil {
		return ErrInvalidRequest
	}
	if err := u.Credentials.Revoke(ctx, req.ClientID); err != nil {
		if err == ports.ErrNotFound {
			return ErrInvalidCredentials
		}
		return err
	}
	return nil
}

func credentialHash(salt []byte, key string) []byte {
	b := make([]byte, 0, len(salt)+len(key))
	b = append(b, salt...)
	b = append(b, key...)
	sum := sha256.Sum256(b)
	return sum[:]
}

func newClientID(now time.Time) (string, error) {
	randPart, err := randomToken(9)
	if err != nil {
		return "", err
	}
	return "cli_" + now.Format("20060102") + "_" + randPart, nil
}

func randomToken(n int) (string, error) {
	b, err := randomBytes(n)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
