package repositories

import (
	"context"
	"fmt"
	"konnadex/internal/models"

	"gorm.io/gorm"
)

// EventLogRepository stores emitted events for off-chain observers.
type EventLogRepository interface {
	Create(ctx context.Context, entry *models.EventLog) error
	List(ctx context.Context, contract string, limit, offset int) ([]models.EventLog, error)
}

type eventLogRepository struct {
	db *gorm.DB
}

func NewEventLogRepository(db *gorm.DB) EventLogRepository {
	return &eventLogRepository{db: db}
}

func (r *eventLogRepository) Create(ctx context.Context, entry *models.EventLog) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}
	return nil
}

func (r *eventLogRepository) List(ctx context.Context, contract string, limit, offset int) ([]models.EventLog, error) {
	var entries []models.EventLog
	err := r.db.WithContext(ctx).
		Where("contract = ?", contract).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return entries, nil
}
