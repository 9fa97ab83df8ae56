//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tubefetch/backend/internal/model"
	"tubefetch/backend/internal/repository"
)

// HistoryService exposes an authenticated user's download history.
type HistoryService interface {
	List(ctx context.Context, userID string) ([]model.VideoHistory, error)
	Delete(ctx context.Context, userID string, id int64) error
	Clear(ctx context.Context, userID string) error
}

type historyService struct {
	repo repository.HistoryRepository
}

// NewHistoryService creates a new history service.
func NewHistoryService(repo repository.HistoryRepository) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) List(ctx context.Context, userID string) ([]model.VideoHistory, error) {
	if userID == "" {
		return nil, ErrUnauthorized
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *historyService) Delete(ctx context.Context, userID string, id int64) error {
	if userID == "" {
		return ErrUnauthorized
	}
	err := s.repo.Delete(ctx, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: history entry %d", ErrNotFound, id)
	}
	return err
}

func (s *historyService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrUnauthorized
	}
	return s.repo.DeleteAllByUser(ctx, userID)
}
