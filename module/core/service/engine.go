package service

import (
	"math"
	"sync"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
)

const earthRadiusMeters = 6371000

// DefaultRadiusMeters is the global activation threshold applied to places
// without a per-place radius override.
const DefaultRadiusMeters = 10.0

// ProximityEngine decides which single place, if any, counts as nearby for
// one observer, and reports a transition exactly when that decision changes.
// State is guarded by a mutex so the engine can be shared between the
// evaluation tick and concurrent readers of the active place.
type ProximityEngine struct {
	defaultRadius float64

	mu           sync.Mutex
	active       *domain.Place
	lastPosition domain.Coordinate
	evaluated    bool
}

func NewProximityEngine(defaultRadius float64) *ProximityEngine {
	if defaultRadius <= 0 {
		defaultRadius = DefaultRadiusMeters
	}
	return &ProximityEngine{defaultRadius: defaultRadius}
}

// Distance returns the great-circle distance in meters between a and b.
func Distance(a, b domain.Coordinate) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}
	return haversine(a.Lat, a.Lon, b.Lat, b.Lon), nil
}

// Evaluate scans places in their given order and selects the first one whose
// distance to position is within its effective radius (first-match policy:
// the catalog order is the tie-break, not geometric distance). Places with a
// nil or invalid coordinate are skipped and never match. The returned
// Evaluation carries a non-nil Transition only when the active place changed
// since the previous call, including a direct switch between two places.
func (e *ProximityEngine) Evaluate(position domain.Coordinate, places []domain.Place) (*domain.Evaluation, error) {
	if err := position.Validate(); err != nil {
		return nil, err
	}

	var (
		match *domain.Place
		dist  float64
	)
	for i := range places {
		p := places[i]
		if p.Coordinate == nil {
			continue
		}
		if p.Coordinate.Validate() != nil {
			continue
		}
		d := haversine(position.Lat, position.Lon, p.Coordinate.Lat, p.Coordinate.Lon)
		radius := p.RadiusMeters
		if radius <= 0 {
			radius = e.defaultRadius
		}
		if d <= radius {
			match = &p
			dist = d
			break
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	prev := ""
	if e.active != nil {
		prev = e.active.Name
	}
	next := ""
	if match != nil {
		next = match.Name
	}

	ev := &domain.Evaluation{Active: match, DistanceMeters: dist}
	if prev != next {
		event := domain.PlaceActivated
		if match == nil {
			event = domain.PlaceCleared
		}
		ev.Transition = &domain.Transition{
			Event:    event,
			From:     prev,
			To:       next,
			Position: position,
		}
	}
	e.active = match
	e.lastPosition = position
	e.evaluated = true
	return ev, nil
}

// ActivePlace returns a copy of the currently active place, if any.
func (e *ProximityEngine) ActivePlace() (domain.Place, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return domain.Place{}, false
	}
	return *e.active, true
}

// LastPosition returns the most recently evaluated observer coordinate.
func (e *ProximityEngine) LastPosition() (domain.Coordinate, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastPosition, e.evaluated
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h past 1 near antipodal points, which would feed a
	// negative value to Sqrt below
	if h > 1 {
		h = 1
	} else if h < 0 {
		h = 0
	}
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
