package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/meridianhq/meridian/internal/models"
	"gorm.io/gorm"
)

// Config holds configuration for the gorm session repository
type Config struct {
	// DB is the gorm database handle
	DB *gorm.DB
}

// gormRepository implements the Repository interface using gorm
type gormRepository struct {
	db *gorm.DB
}

// NewGorm creates a new gorm-backed session repository
func NewGorm(cfg *Config) (*gormRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.DB == nil {
		return nil, errors.New("db cannot be nil")
	}

	return &gormRepository{
		db: cfg.DB,
	}, nil
}

// SaveSession persists a session, creating or updating it
func (r *gormRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if err := r.db.WithContext(ctx).Save(input.Session).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID
func (r *gormRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	var session models.Session
	err := r.db.WithContext(ctx).First(&session, "id = ?", input.SessionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// TransitionStatus moves a session between statuses with a guard on the
// expected current status
func (r *gormRepository) TransitionStatus(ctx context.Context, input *TransitionStatusInput) error {
	if input == nil || input.SessionID == "" {
		return errors.New("input and session ID cannot be empty")
	}

	result := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ? AND status = ?", input.SessionID, input.From).
		Updates(map[string]interface{}{
			"status":     input.To,
			"updated_at": input.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to transition status: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the session is gone or someone moved it first
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Session{}).
			Where("id = ?", input.SessionID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check session: %w", err)
		}

		if count == 0 {
			return ErrSessionNotFound
		}
		return ErrStatusConflict
	}

	return nil
}

// SaveComputeResult writes the session and its venues atomically, so a
// reader never observes the voting status with missing venue rows
func (r *gormRepository) SaveComputeResult(ctx context.Context, input *SaveComputeResultInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(input.Session).Error; err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		if len(input.Venues) > 0 {
			if err := tx.Create(input.Venues).Error; err != nil {
				return fmt.Errorf("failed to save venues: %w", err)
			}
		}

		return nil
	})
}
