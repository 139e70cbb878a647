package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	geoapp "github.com/orderdesk/backend/internal/application/geo"
)

// GeoHandler handles the read-only country and state catalog endpoints
type GeoHandler struct {
	BaseHandler
	directoryService *geoapp.DirectoryService
}

// NewGeoHandler creates a new GeoHandler
func NewGeoHandler(directoryService *geoapp.DirectoryService) *GeoHandler {
	return &GeoHandler{directoryService: directoryService}
}

// RegisterRoutes registers geo routes on the given group
func (h *GeoHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/countries", h.ListCountries)
	rg.GET("/countries/:id/states", h.ListStates)
}

// ListCountries returns all countries ordered by name
func (h *GeoHandler) ListCountries(c *gin.Context) {
	countries, err := h.directoryService.ListCountries(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, countries)
}

// ListStates returns a country's states ordered by name
func (h *GeoHandler) ListStates(c *gin.Context) {
	countryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid country ID format")
		return
	}

	states, err := h.directoryService.ListStates(c.Request.Context(), countryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, states)
}
