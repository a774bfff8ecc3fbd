package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/publisher"
)

var _ publisher.TransitionPublisher = (*TransitionPublisher)(nil)

const (
	exchangeName = "tour.events"
	queueName    = "proximity_transitions"
)

type TransitionPublisher struct {
	ch *amqp.Channel
}

func NewTransitionPublisher(conn *amqp.Connection) (*TransitionPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &TransitionPublisher{ch: ch}, nil
}

type transitionMessage struct {
	ObserverID string                    `json:"observer_id"`
	Event      domain.ProximityEventType `json:"event"`
	FromPlace  string                    `json:"from_place"`
	ToPlace    string                    `json:"to_place"`
	Location   transitionLocation        `json:"location"`
	Timestamp  int64                     `json:"timestamp"`
}

type transitionLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p *TransitionPublisher) PublishTransition(ctx context.Context, tr *domain.Transition) error {
	msg := transitionMessage{
		ObserverID: tr.ObserverID,
		Event:      tr.Event,
		FromPlace:  tr.From,
		ToPlace:    tr.To,
		Location: transitionLocation{
			Latitude:  tr.Position.Lat,
			Longitude: tr.Position.Lon,
		},
		Timestamp: tr.Timestamp.Unix(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal transition: %w", err)
	}

	return p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
}
