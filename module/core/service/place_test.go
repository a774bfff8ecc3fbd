package service

import (
	"context"
	"errors"
	"testing"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
)

type mockPlaceRepo struct {
	insertFn func(ctx context.Context, p *domain.Place) error
	updateFn func(ctx context.Context, p *domain.Place) error
	deleteFn func(ctx context.Context, name string) error
	getFn    func(ctx context.Context, name string) (*domain.Place, error)
	listFn   func(ctx context.Context) ([]domain.Place, error)
}

func (m *mockPlaceRepo) Insert(ctx context.Context, p *domain.Place) error { return m.insertFn(ctx, p) }
func (m *mockPlaceRepo) Update(ctx context.Context, p *domain.Place) error { return m.updateFn(ctx, p) }
func (m *mockPlaceRepo) Delete(ctx context.Context, name string) error     { return m.deleteFn(ctx, name) }
func (m *mockPlaceRepo) Get(ctx context.Context, name string) (*domain.Place, error) {
	return m.getFn(ctx, name)
}
func (m *mockPlaceRepo) List(ctx context.Context) ([]domain.Place, error) { return m.listFn(ctx) }

func TestCreatePlace_Success(t *testing.T) {
	var inserted *domain.Place
	repo := &mockPlaceRepo{
		insertFn: func(_ context.Context, p *domain.Place) error {
			inserted = p
			return nil
		},
	}

	svc := NewPlaceService(repo)
	err := svc.CreatePlace(context.Background(), &domain.Place{
		Name:        "parthenon",
		Coordinate:  coordPtr(37.9715, 23.7267),
		Description: "temple on the Acropolis",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inserted == nil {
		t.Fatal("expected Insert to be called")
	}
	if inserted.Name != "parthenon" {
		t.Errorf("expected parthenon, got %s", inserted.Name)
	}
}

func TestCreatePlace_UnresolvedCoordinateAllowed(t *testing.T) {
	repo := &mockPlaceRepo{
		insertFn: func(_ context.Context, _ *domain.Place) error { return nil },
	}

	svc := NewPlaceService(repo)
	err := svc.CreatePlace(context.Background(), &domain.Place{Name: "new-monument"})
	if err != nil {
		t.Fatalf("a place without a coordinate must be storable: %v", err)
	}
}

func TestCreatePlace_InvalidCoordinate(t *testing.T) {
	repo := &mockPlaceRepo{
		insertFn: func(_ context.Context, _ *domain.Place) error {
			t.Fatal("Insert must not be called for invalid input")
			return nil
		},
	}

	svc := NewPlaceService(repo)
	err := svc.CreatePlace(context.Background(), &domain.Place{
		Name:       "bad",
		Coordinate: coordPtr(95, 0),
	})
	if !errors.Is(err, domain.ErrInvalidCoordinate) {
		t.Fatalf("expected ErrInvalidCoordinate, got %v", err)
	}
}

func TestCreatePlace_MissingName(t *testing.T) {
	svc := NewPlaceService(&mockPlaceRepo{})
	if err := svc.CreatePlace(context.Background(), &domain.Place{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCreatePlace_NegativeRadius(t *testing.T) {
	svc := NewPlaceService(&mockPlaceRepo{})
	err := svc.CreatePlace(context.Background(), &domain.Place{Name: "x", RadiusMeters: -1})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestUpdatePlace_ResolvesCoordinate(t *testing.T) {
	var updated *domain.Place
	repo := &mockPlaceRepo{
		updateFn: func(_ context.Context, p *domain.Place) error {
			updated = p
			return nil
		},
	}

	svc := NewPlaceService(repo)
	err := svc.UpdatePlace(context.Background(), &domain.Place{
		Name:       "new-monument",
		Coordinate: coordPtr(37.97, 23.72),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated == nil || updated.Coordinate == nil {
		t.Fatal("expected the coordinate to be written")
	}
}

func TestListPlaces_RepoError(t *testing.T) {
	repo := &mockPlaceRepo{
		listFn: func(_ context.Context) ([]domain.Place, error) {
			return nil, errors.New("db error")
		},
	}

	svc := NewPlaceService(repo)
	if _, err := svc.ListPlaces(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
