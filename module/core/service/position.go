package service

import (
	"context"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/database"
)

// PositionService stores and serves observer position history.
type PositionService struct {
	repo database.PositionRepository
}

func NewPositionService(repo database.PositionRepository) *PositionService {
	return &PositionService{repo: repo}
}

func (s *PositionService) SavePosition(ctx context.Context, op *domain.ObserverPosition) error {
	return s.repo.Insert(ctx, op)
}

func (s *PositionService) GetLatest(ctx context.Context, observerID string) (*domain.ObserverPosition, error) {
	return s.repo.GetLatest(ctx, observerID)
}

func (s *PositionService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.ObserverPosition, error) {
	return s.repo.GetHistory(ctx, query)
}

func (s *PositionService) GetAllObservers(ctx context.Context) ([]domain.Observer, error) {
	return s.repo.GetAllObservers(ctx)
}
