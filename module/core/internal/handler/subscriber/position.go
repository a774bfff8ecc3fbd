package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
	"github.com/akrivosnik/AR-GPS/module/core/internal/metrics"
)

const topicPattern = "/tour/observer/+/position"

type positionService interface {
	SavePosition(ctx context.Context, op *domain.ObserverPosition) error
}

type proximityService interface {
	CheckAndNotify(ctx context.Context, op *domain.ObserverPosition) (*domain.Evaluation, error)
}

type positionMessage struct {
	ObserverID string  `json:"observer_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Timestamp  int64   `json:"timestamp"`
}

// PositionSubscriber is the evaluation tick: each position message from an
// AR client drives one save plus one proximity check.
type PositionSubscriber struct {
	client       mqtt.Client
	positionSvc  positionService
	proximitySvc proximityService
}

func NewPositionSubscriber(client mqtt.Client, positionSvc positionService, proximitySvc proximityService) *PositionSubscriber {
	return &PositionSubscriber{
		client:       client,
		positionSvc:  positionSvc,
		proximitySvc: proximitySvc,
	}
}

func (s *PositionSubscriber) Start() error {
	token := s.client.Subscribe(topicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *PositionSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw positionMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid position message: %v", err)
		metrics.PositionsRejected.Inc()
		return
	}

	if err := validatePositionMessage(&raw); err != nil {
		log.Printf("validation error: %v", err)
		metrics.PositionsRejected.Inc()
		return
	}

	op := &domain.ObserverPosition{
		ObserverID: raw.ObserverID,
		Position:   domain.Coordinate{Lat: raw.Latitude, Lon: raw.Longitude},
		Timestamp:  time.Unix(raw.Timestamp, 0),
	}

	ctx := context.Background()

	if err := s.positionSvc.SavePosition(ctx, op); err != nil {
		log.Printf("save position error: %v", err)
		return
	}
	metrics.PositionsIngested.Inc()

	ev, err := s.proximitySvc.CheckAndNotify(ctx, op)
	if err != nil {
		log.Printf("proximity check error: %v", err)
		return
	}
	if ev.Transition != nil {
		log.Printf("observer %s: %s (%q -> %q)", op.ObserverID, ev.Transition.Event, ev.Transition.From, ev.Transition.To)
	}
}

func validatePositionMessage(msg *positionMessage) error {
	if msg.ObserverID == "" {
		return fmt.Errorf("observer_id: required")
	}
	if err := (domain.Coordinate{Lat: msg.Latitude, Lon: msg.Longitude}).Validate(); err != nil {
		return err
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return nil
}
