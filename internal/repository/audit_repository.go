package repository

import (
	"fmt"

	"gorm.io/gorm"

	"raidboard/internal/model"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(rec *model.InteractionRecord) error {
	if err := r.db.Create(rec).Error; err != nil {
		return fmt.Errorf("create audit record failed: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListRecent(limit int) ([]model.InteractionRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var records []model.InteractionRecord
	if err := r.db.Order("created_at DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list audit records failed: %w", err)
	}
	return records, nil
}

func (r *AuditRepository) ListByRaidCode(code string, limit int) ([]model.InteractionRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var records []model.InteractionRecord
	if err := r.db.Where("raid_code = ?", code).Order("created_at ASC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list audit records by raid failed: %w", err)
	}
	return records, nil
}
