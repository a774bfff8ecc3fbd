package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/database"
)

type positionService interface {
	GetLatest(ctx context.Context, observerID string) (*domain.ObserverPosition, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.ObserverPosition, error)
	GetAllObservers(ctx context.Context) ([]domain.Observer, error)
}

type proximityService interface {
	ActivePlace(observerID string) (domain.Place, bool)
	GetTransitions(ctx context.Context, query *domain.HistoryQuery) ([]domain.Transition, error)
}

type positionResponse struct {
	ObserverID string  `json:"observer_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Timestamp  int64   `json:"timestamp"`
}

type transitionResponse struct {
	ObserverID string  `json:"observer_id"`
	Event      string  `json:"event"`
	FromPlace  string  `json:"from_place"`
	ToPlace    string  `json:"to_place"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Timestamp  int64   `json:"timestamp"`
}

type ObserverHandler struct {
	positionSvc  positionService
	proximitySvc proximityService
}

func NewObserverHandler(positionSvc positionService, proximitySvc proximityService) *ObserverHandler {
	return &ObserverHandler{positionSvc: positionSvc, proximitySvc: proximitySvc}
}

func (h *ObserverHandler) Register(r *gin.RouterGroup) {
	r.GET("/observers", h.GetAllObservers)
	r.GET("/observers/:observer_id/position", h.GetLatestPosition)
	r.GET("/observers/:observer_id/history", h.GetHistory)
	r.GET("/observers/:observer_id/active", h.GetActivePlace)
	r.GET("/observers/:observer_id/transitions", h.GetTransitions)
}

func (h *ObserverHandler) GetAllObservers(c *gin.Context) {
	observers, err := h.positionSvc.GetAllObservers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch observers"})
		return
	}

	c.JSON(http.StatusOK, observers)
}

func (h *ObserverHandler) GetLatestPosition(c *gin.Context) {
	observerID := c.Param("observer_id")

	op, err := h.positionSvc.GetLatest(c.Request.Context(), observerID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "observer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch position"})
		return
	}

	c.JSON(http.StatusOK, toPositionResponse(op))
}

func (h *ObserverHandler) GetHistory(c *gin.Context) {
	query, ok := h.parseHistoryQuery(c)
	if !ok {
		return
	}

	positions, err := h.positionSvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]positionResponse, len(positions))
	for i := range positions {
		results[i] = toPositionResponse(&positions[i])
	}
	c.JSON(http.StatusOK, results)
}

func (h *ObserverHandler) GetActivePlace(c *gin.Context) {
	observerID := c.Param("observer_id")

	place, ok := h.proximitySvc.ActivePlace(observerID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"active": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"active": true, "place": toPlaceResponse(&place)})
}

func (h *ObserverHandler) GetTransitions(c *gin.Context) {
	query, ok := h.parseHistoryQuery(c)
	if !ok {
		return
	}

	transitions, err := h.proximitySvc.GetTransitions(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch transitions"})
		return
	}

	results := make([]transitionResponse, len(transitions))
	for i, tr := range transitions {
		results[i] = transitionResponse{
			ObserverID: tr.ObserverID,
			Event:      string(tr.Event),
			FromPlace:  tr.From,
			ToPlace:    tr.To,
			Latitude:   tr.Position.Lat,
			Longitude:  tr.Position.Lon,
			Timestamp:  tr.Timestamp.Unix(),
		}
	}
	c.JSON(http.StatusOK, results)
}

func (h *ObserverHandler) parseHistoryQuery(c *gin.Context) (*domain.HistoryQuery, bool) {
	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return nil, false
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return nil, false
	}

	return &domain.HistoryQuery{
		ObserverID: c.Param("observer_id"),
		Start:      time.Unix(start, 0),
		End:        time.Unix(end, 0),
	}, true
}

func toPositionResponse(op *domain.ObserverPosition) positionResponse {
	return positionResponse{
		ObserverID: op.ObserverID,
		Latitude:   op.Position.Lat,
		Longitude:  op.Position.Lon,
		Timestamp:  op.Timestamp.Unix(),
	}
}
