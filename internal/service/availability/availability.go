// Package availability computes the open slot ladder for a provider and
// date. Ladders are cached in Redis with a short TTL and invalidated by
// the turno service whenever a booking changes the day.
package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/MarciaOrozco/nutrito-backend/internal/model"
)

const cacheTTL = 60 * time.Second

func redisKeySlots(nutricionistaID uuid.UUID, fecha string) string {
	return "slots:" + nutricionistaID.String() + ":" + fecha
}

type Service interface {
	// SlotsForDate returns the open slots for a provider on fecha
	// (YYYY-MM-DD). An unknown provider is an error; a weekday with no
	// configured ranges yields an empty (non-nil) slice.
	SlotsForDate(ctx context.Context, nutricionistaID uuid.UUID, fecha string) ([]Slot, error)

	// InvalidateDay drops the cached ladder for (provider, date).
	InvalidateDay(ctx context.Context, nutricionistaID uuid.UUID, fecha string)
}

type availabilityService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func New(db *gorm.DB, rdb *redis.Client) Service {
	return &availabilityService{db: db, rdb: rdb}
}

func (s *availabilityService) SlotsForDate(ctx context.Context, nutricionistaID uuid.UUID, fecha string) ([]Slot, error) {
	date, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return nil, ErrInvalidFecha
	}

	// Cache hit short-circuits the DB entirely.
	if cached, err := s.rdb.Get(ctx, redisKeySlots(nutricionistaID, fecha)).Bytes(); err == nil {
		var slots []Slot
		if err := json.Unmarshal(cached, &slots); err == nil {
			return slots, nil
		}
	}

	var profile model.NutricionistaProfile
	err = s.db.WithContext(ctx).
		Preload("Rangos").
		First(&profile, "id = ?", nutricionistaID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNutricionistaNotFound
		}
		return nil, fmt.Errorf("find nutricionista: %w", err)
	}

	var booked []model.Turno
	err = s.db.WithContext(ctx).
		Where("nutricionista_id = ? AND fecha = ? AND estado <> ?",
			nutricionistaID, date, model.TurnoCancelado).
		Find(&booked).Error
	if err != nil {
		return nil, fmt.Errorf("list turnos: %w", err)
	}

	ocupadas := make(map[string]bool, len(booked))
	for _, t := range booked {
		ocupadas[t.Hora] = true
	}

	slots := BuildSlots(profile.Rangos, date, ocupadas)

	if payload, err := json.Marshal(slots); err == nil {
		if err := s.rdb.Set(ctx, redisKeySlots(nutricionistaID, fecha), payload, cacheTTL).Err(); err != nil {
			slog.Debug("slots cache store failed", "nutricionista_id", nutricionistaID, "err", err)
		}
	}

	return slots, nil
}

func (s *availabilityService) InvalidateDay(ctx context.Context, nutricionistaID uuid.UUID, fecha string) {
	if err := s.rdb.Del(ctx, redisKeySlots(nutricionistaID, fecha)).Err(); err != nil {
		slog.Debug("slots cache invalidation failed", "nutricionista_id", nutricionistaID, "err", err)
	}
}
