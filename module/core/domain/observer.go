package domain

import "time"

// ObserverPosition is one position report from an AR client.
type ObserverPosition struct {
	ObserverID string     `json:"observer_id"`
	Position   Coordinate `json:"position"`
	Timestamp  time.Time  `json:"timestamp"`
}

type Observer struct {
	ObserverID string `json:"observer_id"`
}

type HistoryQuery struct {
	ObserverID string
	Start      time.Time
	End        time.Time
}
