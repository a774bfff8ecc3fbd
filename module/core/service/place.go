package service

import (
	"context"
	"fmt"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/database"
)

// PlaceService manages the tour place catalog. Places arrive without
// coordinates when only an address is known; the external geocoding
// collaborator fills coordinates in later through UpdatePlace.
type PlaceService struct {
	repo database.PlaceRepository
}

func NewPlaceService(repo database.PlaceRepository) *PlaceService {
	return &PlaceService{repo: repo}
}

func validatePlace(p *domain.Place) error {
	if p.Name == "" {
		return fmt.Errorf("place name: required")
	}
	if p.RadiusMeters < 0 {
		return fmt.Errorf("radius_meters: must not be negative")
	}
	if p.Coordinate != nil {
		if err := p.Coordinate.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (s *PlaceService) CreatePlace(ctx context.Context, p *domain.Place) error {
	if err := validatePlace(p); err != nil {
		return err
	}
	return s.repo.Insert(ctx, p)
}

func (s *PlaceService) UpdatePlace(ctx context.Context, p *domain.Place) error {
	if err := validatePlace(p); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *PlaceService) DeletePlace(ctx context.Context, name string) error {
	return s.repo.Delete(ctx, name)
}

func (s *PlaceService) GetPlace(ctx context.Context, name string) (*domain.Place, error) {
	return s.repo.Get(ctx, name)
}

func (s *PlaceService) ListPlaces(ctx context.Context) ([]domain.Place, error) {
	return s.repo.List(ctx)
}
