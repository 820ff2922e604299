// Package notification persists and serves per-user in-app
// notifications. Rows are written by the NATS workers, never on the
// request path.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
)

type Service interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Notificacion, error)
	MarcarLeida(ctx context.Context, id, userID uuid.UUID) (*model.Notificacion, error)

	// Create is used by workers to persist a notification.
	Create(ctx context.Context, n *model.Notificacion) error
}

type notificationService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &notificationService{db: db}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID) ([]model.Notificacion, error) {
	var rows []model.Notificacion
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list notificaciones: %w", err)
	}
	return rows, nil
}

// MarcarLeida only touches rows owned by userID, so a paciente cannot
// mark someone else's notification.
func (s *notificationService) MarcarLeida(ctx context.Context, id, userID uuid.UUID) (*model.Notificacion, error) {
	res := s.db.WithContext(ctx).Model(&model.Notificacion{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("leida", true)
	if res.Error != nil {
		return nil, fmt.Errorf("update notificacion: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	var n model.Notificacion
	if err := s.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("find notificacion: %w", err)
	}
	return &n, nil
}

func (s *notificationService) Create(ctx context.Context, n *model.Notificacion) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("create notificacion: %w", err)
	}
	return nil
}
