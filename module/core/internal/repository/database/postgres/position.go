package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/database"
)

var _ database.PositionRepository = (*PositionRepo)(nil)

type PositionRepo struct {
	db *sql.DB
}

func NewPositionRepo(db *sql.DB) *PositionRepo {
	return &PositionRepo{db: db}
}

func (r *PositionRepo) Insert(ctx context.Context, op *domain.ObserverPosition) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO observer_positions (observer_id, latitude, longitude, recorded_at) VALUES ($1, $2, $3, $4)`,
		op.ObserverID, op.Position.Lat, op.Position.Lon, op.Timestamp,
	)
	return err
}

func (r *PositionRepo) GetLatest(ctx context.Context, observerID string) (*domain.ObserverPosition, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT observer_id, latitude, longitude, recorded_at FROM observer_positions WHERE observer_id = $1 ORDER BY recorded_at DESC LIMIT 1`,
		observerID,
	)

	var op domain.ObserverPosition
	if err := row.Scan(&op.ObserverID, &op.Position.Lat, &op.Position.Lon, &op.Timestamp); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, database.ErrNotFound
		}
		return nil, err
	}
	return &op, nil
}

func (r *PositionRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.ObserverPosition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT observer_id, latitude, longitude, recorded_at FROM observer_positions WHERE observer_id = $1 AND recorded_at >= $2 AND recorded_at <= $3 ORDER BY recorded_at ASC`,
		query.ObserverID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.ObserverPosition
	for rows.Next() {
		var op domain.ObserverPosition
		if err := rows.Scan(&op.ObserverID, &op.Position.Lat, &op.Position.Lon, &op.Timestamp); err != nil {
			return nil, err
		}
		results = append(results, op)
	}
	return results, rows.Err()
}

func (r *PositionRepo) GetAllObservers(ctx context.Context) ([]domain.Observer, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT observer_id FROM observer_positions ORDER BY observer_id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Observer
	for rows.Next() {
		var o domain.Observer
		if err := rows.Scan(&o.ObserverID); err != nil {
			return nil, err
		}
		results = append(results, o)
	}
	return results, rows.Err()
}
