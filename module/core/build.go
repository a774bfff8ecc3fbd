package core

import (
	"database/sql"
	"fmt"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	handler "github.com/akrivosnik/AR-GPS/module/core/internal/handler/http"
	"github.com/akrivosnik/AR-GPS/module/core/internal/handler/subscriber"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/database/postgres"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/publisher/rabbitmq"
	"github.com/akrivosnik/AR-GPS/module/core/service"
)

type Module struct {
	PlaceSvc     *service.PlaceService
	PositionSvc  *service.PositionService
	ProximitySvc *service.ProximityService

	placeHandler    *handler.PlaceHandler
	observerHandler *handler.ObserverHandler
	subscriber      *subscriber.PositionSubscriber
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, defaultRadiusMeters float64) (*Module, error) {
	placeRepo := postgres.NewPlaceRepo(db)
	positionRepo := postgres.NewPositionRepo(db)
	transitionRepo := postgres.NewTransitionRepo(db)

	transitionPub, err := rabbitmq.NewTransitionPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("transition publisher: %w", err)
	}

	placeSvc := service.NewPlaceService(placeRepo)
	positionSvc := service.NewPositionService(positionRepo)
	proximitySvc := service.NewProximityService(placeSvc, transitionRepo, transitionPub, defaultRadiusMeters)

	placeHandler := handler.NewPlaceHandler(placeSvc)
	observerHandler := handler.NewObserverHandler(positionSvc, proximitySvc)
	sub := subscriber.NewPositionSubscriber(mqttClient, positionSvc, proximitySvc)

	return &Module{
		PlaceSvc:        placeSvc,
		PositionSvc:     positionSvc,
		ProximitySvc:    proximitySvc,
		placeHandler:    placeHandler,
		observerHandler: observerHandler,
		subscriber:      sub,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	m.placeHandler.Register(r)
	m.observerHandler.Register(r)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
