package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/database"
)

type mockPositionService struct {
	getLatestFn       func(ctx context.Context, observerID string) (*domain.ObserverPosition, error)
	getHistoryFn      func(ctx context.Context, query *domain.HistoryQuery) ([]domain.ObserverPosition, error)
	getAllObserversFn func(ctx context.Context) ([]domain.Observer, error)
}

func (m *mockPositionService) GetLatest(ctx context.Context, observerID string) (*domain.ObserverPosition, error) {
	return m.getLatestFn(ctx, observerID)
}

func (m *mockPositionService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.ObserverPosition, error) {
	return m.getHistoryFn(ctx, query)
}

func (m *mockPositionService) GetAllObservers(ctx context.Context) ([]domain.Observer, error) {
	return m.getAllObserversFn(ctx)
}

type mockProximityService struct {
	activePlaceFn    func(observerID string) (domain.Place, bool)
	getTransitionsFn func(ctx context.Context, query *domain.HistoryQuery) ([]domain.Transition, error)
}

func (m *mockProximityService) ActivePlace(observerID string) (domain.Place, bool) {
	return m.activePlaceFn(observerID)
}

func (m *mockProximityService) GetTransitions(ctx context.Context, query *domain.HistoryQuery) ([]domain.Transition, error) {
	return m.getTransitionsFn(ctx, query)
}

func setupObserverRouter(positionSvc positionService, proximitySvc proximityService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewObserverHandler(positionSvc, proximitySvc)
	h.Register(r.Group(""))
	return r
}

func TestGetLatestPosition_Success(t *testing.T) {
	ts := time.Unix(1715003456, 0)
	svc := &mockPositionService{
		getLatestFn: func(_ context.Context, observerID string) (*domain.ObserverPosition, error) {
			if observerID != "visitor-001" {
				t.Fatalf("unexpected observerID: %s", observerID)
			}
			return &domain.ObserverPosition{
				ObserverID: "visitor-001",
				Position:   domain.Coordinate{Lat: 37.9715, Lon: 23.7267},
				Timestamp:  ts,
			}, nil
		},
	}

	r := setupObserverRouter(svc, &mockProximityService{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/observers/visitor-001/position", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp positionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Latitude != 37.9715 {
		t.Errorf("expected 37.9715, got %f", resp.Latitude)
	}
	if resp.Timestamp != ts.Unix() {
		t.Errorf("expected %d, got %d", ts.Unix(), resp.Timestamp)
	}
}

func TestGetLatestPosition_NotFound(t *testing.T) {
	svc := &mockPositionService{
		getLatestFn: func(_ context.Context, _ string) (*domain.ObserverPosition, error) {
			return nil, database.ErrNotFound
		},
	}

	r := setupObserverRouter(svc, &mockProximityService{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/observers/unknown/position", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestGetHistory_InvalidParams(t *testing.T) {
	r := setupObserverRouter(&mockPositionService{}, &mockProximityService{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/observers/visitor-001/history?start=abc&end=123", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetHistory_Success(t *testing.T) {
	svc := &mockPositionService{
		getHistoryFn: func(_ context.Context, query *domain.HistoryQuery) ([]domain.ObserverPosition, error) {
			if query.ObserverID != "visitor-001" {
				t.Fatalf("unexpected observerID: %s", query.ObserverID)
			}
			return []domain.ObserverPosition{
				{ObserverID: "visitor-001", Position: domain.Coordinate{Lat: 37.97, Lon: 23.72}, Timestamp: time.Unix(1715000001, 0)},
			}, nil
		},
	}

	r := setupObserverRouter(svc, &mockProximityService{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/observers/visitor-001/history?start=1715000000&end=1715009999", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var results []positionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestGetActivePlace_Active(t *testing.T) {
	prox := &mockProximityService{
		activePlaceFn: func(observerID string) (domain.Place, bool) {
			return domain.Place{
				Name:       "parthenon",
				Coordinate: &domain.Coordinate{Lat: 37.9715, Lon: 23.7267},
			}, true
		},
	}

	r := setupObserverRouter(&mockPositionService{}, prox)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/observers/visitor-001/active", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Active bool           `json:"active"`
		Place  *placeResponse `json:"place"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Active {
		t.Fatal("expected active=true")
	}
	if resp.Place == nil || resp.Place.Name != "parthenon" {
		t.Errorf("unexpected place: %+v", resp.Place)
	}
}

func TestGetActivePlace_None(t *testing.T) {
	prox := &mockProximityService{
		activePlaceFn: func(_ string) (domain.Place, bool) {
			return domain.Place{}, false
		},
	}

	r := setupObserverRouter(&mockPositionService{}, prox)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/observers/visitor-001/active", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Active bool `json:"active"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Active {
		t.Fatal("expected active=false")
	}
}

func TestGetTransitions_Success(t *testing.T) {
	prox := &mockProximityService{
		getTransitionsFn: func(_ context.Context, query *domain.HistoryQuery) ([]domain.Transition, error) {
			return []domain.Transition{
				{
					ObserverID: query.ObserverID,
					Event:      domain.PlaceActivated,
					To:         "parthenon",
					Position:   domain.Coordinate{Lat: 37.9715, Lon: 23.7267},
					Timestamp:  time.Unix(1715000500, 0),
				},
			}, nil
		},
	}

	r := setupObserverRouter(&mockPositionService{}, prox)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/observers/visitor-001/transitions?start=1715000000&end=1715009999", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var results []transitionResponse
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(results))
	}
	if results[0].Event != string(domain.PlaceActivated) {
		t.Errorf("expected place_activated, got %s", results[0].Event)
	}
}

func TestGetAllObservers_Empty(t *testing.T) {
	svc := &mockPositionService{
		getAllObserversFn: func(_ context.Context) ([]domain.Observer, error) {
			return nil, nil
		},
	}

	r := setupObserverRouter(svc, &mockProximityService{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/observers", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
