package postgres

import (
	"context"
	"database/sql"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/database"
)

var _ database.TransitionRepository = (*TransitionRepo)(nil)

type TransitionRepo struct {
	db *sql.DB
}

func NewTransitionRepo(db *sql.DB) *TransitionRepo {
	return &TransitionRepo{db: db}
}

func (r *TransitionRepo) Insert(ctx context.Context, tr *domain.Transition) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO proximity_transitions (observer_id, event, from_place, to_place, latitude, longitude, occurred_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tr.ObserverID, string(tr.Event), tr.From, tr.To, tr.Position.Lat, tr.Position.Lon, tr.Timestamp,
	)
	return err
}

func (r *TransitionRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.Transition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT observer_id, event, from_place, to_place, latitude, longitude, occurred_at FROM proximity_transitions WHERE observer_id = $1 AND occurred_at >= $2 AND occurred_at <= $3 ORDER BY occurred_at ASC`,
		query.ObserverID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Transition
	for rows.Next() {
		var (
			tr    domain.Transition
			event string
		)
		if err := rows.Scan(&tr.ObserverID, &event, &tr.From, &tr.To, &tr.Position.Lat, &tr.Position.Lon, &tr.Timestamp); err != nil {
			return nil, err
		}
		tr.Event = domain.ProximityEventType(event)
		results = append(results, tr)
	}
	return results, rows.Err()
}
