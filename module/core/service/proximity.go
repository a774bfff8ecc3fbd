package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
	"github.com/akrivosnik/AR-GPS/module/core/internal/metrics"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/database"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/publisher"
)

// placeProvider supplies the ordered place catalog for each evaluation. The
// catalog is externally owned and may change between ticks, so it is re-read
// on every call; coordinates resolved by the geocoding collaborator are
// picked up on the next tick without a restart.
type placeProvider interface {
	ListPlaces(ctx context.Context) ([]domain.Place, error)
}

// ProximityService runs one ProximityEngine per observer and forwards
// transitions to the event publisher and the transition log.
type ProximityService struct {
	places        placeProvider
	transitions   database.TransitionRepository
	publisher     publisher.TransitionPublisher
	defaultRadius float64

	mu      sync.Mutex
	engines map[string]*ProximityEngine
}

func NewProximityService(places placeProvider, transitions database.TransitionRepository, pub publisher.TransitionPublisher, defaultRadius float64) *ProximityService {
	return &ProximityService{
		places:        places,
		transitions:   transitions,
		publisher:     pub,
		defaultRadius: defaultRadius,
		engines:       make(map[string]*ProximityEngine),
	}
}

func (s *ProximityService) engineFor(observerID string) *ProximityEngine {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.engines[observerID]
	if !ok {
		e = NewProximityEngine(s.defaultRadius)
		s.engines[observerID] = e
	}
	return e
}

// CheckAndNotify evaluates one position report against the current place
// catalog. When the observer's active place changed, the transition is
// recorded and published; consecutive evaluations that resolve to the same
// place emit nothing.
func (s *ProximityService) CheckAndNotify(ctx context.Context, op *domain.ObserverPosition) (*domain.Evaluation, error) {
	places, err := s.places.ListPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("list places: %w", err)
	}

	ev, err := s.engineFor(op.ObserverID).Evaluate(op.Position, places)
	if err != nil {
		return nil, err
	}
	if ev.Transition == nil {
		return ev, nil
	}

	tr := ev.Transition
	tr.ObserverID = op.ObserverID
	tr.Timestamp = op.Timestamp

	if err := s.transitions.Insert(ctx, tr); err != nil {
		return nil, fmt.Errorf("record transition: %w", err)
	}
	if err := s.publisher.PublishTransition(ctx, tr); err != nil {
		return nil, fmt.Errorf("publish transition: %w", err)
	}
	metrics.TransitionsTotal.WithLabelValues(string(tr.Event)).Inc()

	return ev, nil
}

// ActivePlace reports the currently active place for an observer, if any.
func (s *ProximityService) ActivePlace(observerID string) (domain.Place, bool) {
	s.mu.Lock()
	e, ok := s.engines[observerID]
	s.mu.Unlock()
	if !ok {
		return domain.Place{}, false
	}
	return e.ActivePlace()
}

// GetTransitions returns the recorded transition history for an observer.
func (s *ProximityService) GetTransitions(ctx context.Context, query *domain.HistoryQuery) ([]domain.Transition, error) {
	return s.transitions.GetHistory(ctx, query)
}
