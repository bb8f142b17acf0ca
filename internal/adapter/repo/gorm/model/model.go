// Package model holds the gorm row types backing internal/adapter/repo/gorm.
// It is regenerated from a live schema by tools/modelgen; the hand-authored
// version here matches what that tool would emit for the migrations in
// migrations/.
package model

import "time"

type Decision struct {
	ID        string    `gorm:"column:id;primaryKey"`
	ClientID  string    `gorm:"column:client_id;index"`
	Digest    string    `gorm:"column:digest"`
	Slots     uint32    `gorm:"column:slots"`
	Choice    int32     `gorm:"column:choice"`
	PGoal     float64   `gorm:"column:p_goal"`
	ECost     float64   `gorm:"column:e_cost"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Decision) TableName() string { return "decisions" }

type ClientCredential struct {
	ClientID   string     `gorm:"column:client_id;primaryKey"`
	KeySalt    []byte     `gorm:"column:key_salt"`
	KeyHash    []byte     `gorm:"column:key_hash"`
	Status     string     `gorm:"column:status"`
	CreatedAt  time.Time  `gorm:"column:created_at"`
	UpdatedAt  time.Time  `gorm:"column:updated_at"`
	LastUsedAt *time.Time `gorm:"column:last_used_at"`
}

func (ClientCredential) TableName() string { return "client_credentials" }
