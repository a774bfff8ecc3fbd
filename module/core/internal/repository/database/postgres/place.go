package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/database"
)

var _ database.PlaceRepository = (*PlaceRepo)(nil)

// PlaceRepo stores the place catalog. Latitude, longitude and radius are
// nullable: a NULL coordinate pair means the place has not been geocoded yet.
type PlaceRepo struct {
	db *sql.DB
}

func NewPlaceRepo(db *sql.DB) *PlaceRepo {
	return &PlaceRepo{db: db}
}

func (r *PlaceRepo) Insert(ctx context.Context, p *domain.Place) error {
	lat, lon, radius := placeColumns(p)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO places (name, latitude, longitude, radius_meters, description, media_url, sort_order) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.Name, lat, lon, radius, p.Description, p.MediaURL, p.SortOrder,
	)
	return err
}

func (r *PlaceRepo) Update(ctx context.Context, p *domain.Place) error {
	lat, lon, radius := placeColumns(p)
	res, err := r.db.ExecContext(ctx,
		`UPDATE places SET latitude = $2, longitude = $3, radius_meters = $4, description = $5, media_url = $6, sort_order = $7 WHERE name = $1`,
		p.Name, lat, lon, radius, p.Description, p.MediaURL, p.SortOrder,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *PlaceRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM places WHERE name = $1`, name)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *PlaceRepo) Get(ctx context.Context, name string) (*domain.Place, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT name, latitude, longitude, radius_meters, description, media_url, sort_order FROM places WHERE name = $1`,
		name,
	)

	p, err := scanPlace(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// List returns the catalog in its stable activation order. The order is the
// first-match tie-break for proximity checks, so it must not vary between
// calls.
func (r *PlaceRepo) List(ctx context.Context) ([]domain.Place, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, latitude, longitude, radius_meters, description, media_url, sort_order FROM places ORDER BY sort_order ASC, name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Place
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *p)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlace(row rowScanner) (*domain.Place, error) {
	var (
		p                domain.Place
		lat, lon, radius sql.NullFloat64
	)
	if err := row.Scan(&p.Name, &lat, &lon, &radius, &p.Description, &p.MediaURL, &p.SortOrder); err != nil {
		return nil, err
	}
	if lat.Valid && lon.Valid {
		p.Coordinate = &domain.Coordinate{Lat: lat.Float64, Lon: lon.Float64}
	}
	if radius.Valid {
		p.RadiusMeters = radius.Float64
	}
	return &p, nil
}

func placeColumns(p *domain.Place) (lat, lon, radius sql.NullFloat64) {
	if p.Coordinate != nil {
		lat = sql.NullFloat64{Float64: p.Coordinate.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: p.Coordinate.Lon, Valid: true}
	}
	if p.RadiusMeters > 0 {
		radius = sql.NullFloat64{Float64: p.RadiusMeters, Valid: true}
	}
	return lat, lon, radius
}
