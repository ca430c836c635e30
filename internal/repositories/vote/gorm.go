package vote

import (
	"context"
	"errors"
	"fmt"

	"github.com/meridianhq/meridian/internal/models"
	"gorm.io/gorm"
)

// Config holds configuration for the gorm vote repository
type Config struct {
	// DB is the gorm database handle
	DB *gorm.DB
}

// gormRepository implements the Repository interface using gorm
type gormRepository struct {
	db *gorm.DB
}

// NewGorm creates a new gorm-backed vote repository
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

// SaveVote persists a vote, enforcing one vote per voter per session.
// The check runs inside the insert transaction and the unique index on
// (session_id, voter) backstops it under concurrency.
func (r *gormRepository) SaveVote(ctx context.Context, input *SaveVoteInput) error {
	if input == nil || input.Vote == nil {
		return errors.New("input and vote cannot be nil")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Vote{}).
			Where("session_id = ? AND voter = ?", input.Vote.SessionID, input.Vote.Voter).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing vote: %w", err)
		}

		if count > 0 {
			return ErrDuplicateVote
		}

		if err := tx.Create(input.Vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateVote
			}
			return fmt.Errorf("failed to save vote: %w", err)
		}

		return nil
	})

	return err
}

// ListVotes retrieves all votes of a session
func (r *gormRepository) ListVotes(ctx context.Context, input *ListVotesInput) ([]*models.Vote, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	var votes []*models.Vote
	err := r.db.WithContext(ctx).
		Where("session_id = ?", input.SessionID).
		Order("created_at ASC").
		Find(&votes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}

	return votes, nil
}
