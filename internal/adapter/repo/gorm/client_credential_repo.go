package gormrepo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"scrollforge/internal/adapter/repo/gorm/model"
	"scrollforge/internal/app/ports"
)

type ClientCredentialRepo struct {
	db *gorm.DB
}

func NewClientCredentialRepo(db *gorm.DB) ClientCredentialRepo {
	return ClientCredentialRepo{db: db}
}

func (r ClientCredentialRepo) Create(ctx context.Context, credential ports.ClientCredentialRecord) error {
	row := model.ClientCredential{
		ClientID:  credential.ClientID,
		KeySalt:   credential.KeySalt,
		KeyHash:   credential.KeyHash,
		Status:    credential.Status,
		CreatedAt: credential.CreatedAt,
		UpdatedAt: credential.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isDuplicateClientID(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r ClientCredentialRepo) GetByClientID(ctx context.Context, clientID string) (ports.ClientCredentialRecord, error) {
	var row model.ClientCredential
	if err := r.db.WithContext(ctx).Where(&model.ClientCredential{ClientID: clientID}).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.ClientCredentialRecord{}, ports.ErrNotFound
		}
		return ports.ClientCredentialRecord{}, err
	}
	return ports.ClientCredentialRecord{
		ClientID:   row.ClientID,
		KeySalt:    row.KeySalt,
		KeyHash:    row.KeyHash,
		Status:     row.Status,
		CreatedAt:  row.CreatedAt,
		LastUsedAt: row.LastUsedAt,
	}, nil
}

// Touch stamps a successful verification without loading the row first.
// A miss (client deleted between GetByClientID and here) is not an error:
// there's no credential left to bookkeep against.
func (r ClientCredentialRepo) Touch(ctx context.Context, clientID string, at time.Time) error {
	err := r.db.WithContext(ctx).Model(&model.ClientCredential{}).
		Where("client_id = ?", clientID).
		Update("last_used_at", at).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

// Revoke sets status to revoked in place; it leaves the row (and its
// LastUsedAt history) intact rather than deleting it.
func (r ClientCredentialRepo) Revoke(ctx context.Context, clientID string) error {
	res := r.db.WithContext(ctx).Model(&model.ClientCredential{}).
		Where("client_id = ?", clientID).
		Updates(map[string]any{
			"status":     ports.CredentialStatusRevoked,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func isDuplicateClientID(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
