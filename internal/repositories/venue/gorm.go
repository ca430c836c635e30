package venue

import (
	"context"
	"errors"
	"fmt"

	"github.com/meridianhq/meridian/internal/models"
	"gorm.io/gorm"
)

// Config holds configuration for the gorm venue repository
type Config struct {
	// DB is the gorm database handle
	DB *gorm.DB
}

// gormRepository implements the Repository interface using gorm
type gormRepository struct {
	db *gorm.DB
}

// NewGorm creates a new gorm-backed venue repository
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

// GetVenue retrieves a venue by ID
func (r *gormRepository) GetVenue(ctx context.Context, input *GetVenueInput) (*models.Venue, error) {
	if input == nil || input.VenueID == "" {
		return nil, errors.New("input and venue ID cannot be empty")
	}

	var venue models.Venue
	err := r.db.WithContext(ctx).First(&venue, "id = ?", input.VenueID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}

	return &venue, nil
}

// ListVenues retrieves all venues of a session, best score first
func (r *gormRepository) ListVenues(ctx context.Context, input *ListVenuesInput) ([]*models.Venue, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	var venues []*models.Venue
	err := r.db.WithContext(ctx).
		Where("session_id = ?", input.SessionID).
		Order("score DESC").
		Find(&venues).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}

	return venues, nil
}
