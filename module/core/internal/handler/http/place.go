package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akrivosnik/AR-GPS/module/core/domain"
	"github.com/akrivosnik/AR-GPS/module/core/internal/repository/database"
)

type placeService interface {
	CreatePlace(ctx context.Context, p *domain.Place) error
	UpdatePlace(ctx context.Context, p *domain.Place) error
	DeletePlace(ctx context.Context, name string) error
	GetPlace(ctx context.Context, name string) (*domain.Place, error)
	ListPlaces(ctx context.Context) ([]domain.Place, error)
}

// placeRequest carries latitude/longitude as pointers: both absent means the
// place is not geocoded yet, which is distinct from any real coordinate.
type placeRequest struct {
	Name         string   `json:"name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters float64  `json:"radius_meters"`
	Description  string   `json:"description"`
	MediaURL     string   `json:"media_url"`
	SortOrder    int      `json:"sort_order"`
}

type placeResponse struct {
	Name         string   `json:"name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters float64  `json:"radius_meters,omitempty"`
	Description  string   `json:"description,omitempty"`
	MediaURL     string   `json:"media_url,omitempty"`
	SortOrder    int      `json:"sort_order"`
}

type PlaceHandler struct {
	placeSvc placeService
}

func NewPlaceHandler(placeSvc placeService) *PlaceHandler {
	return &PlaceHandler{placeSvc: placeSvc}
}

func (h *PlaceHandler) Register(r *gin.RouterGroup) {
	r.GET("/places", h.ListPlaces)
	r.POST("/places", h.CreatePlace)
	r.GET("/places/:name", h.GetPlace)
	r.PUT("/places/:name", h.UpdatePlace)
	r.DELETE("/places/:name", h.DeletePlace)
}

func (h *PlaceHandler) ListPlaces(c *gin.Context) {
	places, err := h.placeSvc.ListPlaces(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch places"})
		return
	}

	results := make([]placeResponse, len(places))
	for i := range places {
		results[i] = toPlaceResponse(&places[i])
	}
	c.JSON(http.StatusOK, results)
}

func (h *PlaceHandler) GetPlace(c *gin.Context) {
	p, err := h.placeSvc.GetPlace(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch place"})
		return
	}

	c.JSON(http.StatusOK, toPlaceResponse(p))
}

func (h *PlaceHandler) CreatePlace(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := toPlace(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.placeSvc.CreatePlace(c.Request.Context(), p); err != nil {
		if errors.Is(err, domain.ErrInvalidCoordinate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create place"})
		return
	}

	c.JSON(http.StatusCreated, toPlaceResponse(p))
}

func (h *PlaceHandler) UpdatePlace(c *gin.Context) {
	var req placeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req.Name = c.Param("name")
	p, err := toPlace(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.placeSvc.UpdatePlace(c.Request.Context(), p); err != nil {
		switch {
		case errors.Is(err, database.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
		case errors.Is(err, domain.ErrInvalidCoordinate):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update place"})
		}
		return
	}

	c.JSON(http.StatusOK, toPlaceResponse(p))
}

func (h *PlaceHandler) DeletePlace(c *gin.Context) {
	if err := h.placeSvc.DeletePlace(c.Request.Context(), c.Param("name")); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "place not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete place"})
		return
	}

	c.Status(http.StatusNoContent)
}

func toPlace(req *placeRequest) (*domain.Place, error) {
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return nil, errors.New("latitude and longitude must be set together")
	}

	p := &domain.Place{
		Name:         req.Name,
		RadiusMeters: req.RadiusMeters,
		Description:  req.Description,
		MediaURL:     req.MediaURL,
		SortOrder:    req.SortOrder,
	}
	if req.Latitude != nil {
		p.Coordinate = &domain.Coordinate{Lat: *req.Latitude, Lon: *req.Longitude}
	}
	return p, nil
}

func toPlaceResponse(p *domain.Place) placeResponse {
	resp := placeResponse{
		Name:         p.Name,
		RadiusMeters: p.RadiusMeters,
		Description:  p.Description,
		MediaURL:     p.MediaURL,
		SortOrder:    p.SortOrder,
	}
	if p.Coordinate != nil {
		lat, lon := p.Coordinate.Lat, p.Coordinate.Lon
		resp.Latitude = &lat
		resp.Longitude = &lon
	}
	return resp
}
