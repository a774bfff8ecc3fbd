package domain

import "time"

type ProximityEventType string

const (
	PlaceActivated ProximityEventType = "place_activated"
	PlaceCleared   ProximityEventType = "place_cleared"
)

// Transition records a change of the active place for an observer. From is
// empty when no place was active before; To is empty when the active place
// was cleared.
type Transition struct {
	ObserverID string             `json:"observer_id"`
	Event      ProximityEventType `json:"event"`
	From       string             `json:"from"`
	To         string             `json:"to"`
	Position   Coordinate         `json:"position"`
	Timestamp  time.Time          `json:"timestamp"`
}

// Evaluation is the result of one proximity check. Transition is nil when
// the active place did not change since the previous evaluation.
type Evaluation struct {
	Active         *Place
	DistanceMeters float64
	Transition     *Transition
}
