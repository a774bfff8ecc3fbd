package database

import (
	"context"
	"errors"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
)

// ErrNotFound is returned when a lookup targets a row that does not exist.
var ErrNotFound = errors.New("not found")

type PlaceRepository interface {
	Insert(ctx context.Context, p *domain.Place) error
	Update(ctx context.Context, p *domain.Place) error
	Delete(ctx context.Context, name string) error
	Get(ctx context.Context, name string) (*domain.Place, error)
	List(ctx context.Context) ([]domain.Place, error)
}

type PositionRepository interface {
	Insert(ctx context.Context, op *domain.ObserverPosition) error
	GetLatest(ctx context.Context, observerID string) (*domain.ObserverPosition, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.ObserverPosition, error)
	GetAllObservers(ctx context.Context) ([]domain.Observer, error)
}

type TransitionRepository interface {
	Insert(ctx context.Context, tr *domain.Transition) error
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.Transition, error)
}
