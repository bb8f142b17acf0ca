package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"scrollforge/internal/adapter/repo/gorm/model"
	"scrollforge/internal/app/ports"
)

type DecisionRepo struct {
	db *gorm.DB
}

func NewDecisionRepo(db *gorm.DB) DecisionRepo {
	return DecisionRepo{db: db}
}

func (r DecisionRepo) Save(ctx context.Context, record ports.DecisionRecord) error {
	row := model.Decision{
		ID:        record.ID,
		ClientID:  record.ClientID,
		Digest:    record.Digest,
		Slots:     record.Slots,
		Choice:    int32(record.Choice),
		PGoal:     record.PGoal,
		ECost:     record.ECost,
		CreatedAt: record.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

func (r DecisionRepo) ListByClientID(ctx context.Context, clientID string, limit int) ([]ports.DecisionRecord, error) {
	var rows []model.Decision
	q := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ports.DecisionRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.DecisionRecord{
			ID:        row.ID,
			ClientID:  row.ClientID,
			Digest:    row.Digest,
			Slots:     row.Slots,
			Choice:    int(row.Choice),
			PGoal:     row.PGoal,
			ECost:     row.ECost,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
