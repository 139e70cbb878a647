package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shippingapp "github.com/orderdesk/backend/internal/application/shipping"
)

// ShippingZoneHandler handles shipping zone API endpoints
type ShippingZoneHandler struct {
	BaseHandler
	zoneService *shippingapp.ZoneService
}

// NewShippingZoneHandler creates a new ShippingZoneHandler
func NewShippingZoneHandler(zoneService *shippingapp.ZoneService) *ShippingZoneHandler {
	return &ShippingZoneHandler{zoneService: zoneService}
}

// RegisterRoutes registers zone routes on the given group
func (h *ShippingZoneHandler) RegisterRoutes(rg *gin.RouterGroup) {
	zones := rg.Group("/zones")
	zones.POST("", h.Create)
	zones.GET("", h.List)
	zones.GET("/:id", h.GetByID)
	zones.PUT("/:id", h.Rename)
	zones.DELETE("/:id", h.Delete)
}

// Create creates a new shipping zone for the store
func (h *ShippingZoneHandler) Create(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req shippingapp.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zone, err := h.zoneService.Create(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, zone)
}

// List returns one page of the store's zones ordered by name
func (h *ShippingZoneHandler) List(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	var req shippingapp.ListZonesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zones, err := h.zoneService.List(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, zones)
}

// GetByID returns a single zone
func (h *ShippingZoneHandler) GetByID(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	zone, err := h.zoneService.GetByID(c.Request.Context(), storeID, zoneID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, zone)
}

// Rename changes a zone's display name
func (h *ShippingZoneHandler) Rename(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	var req shippingapp.RenameZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	zone, err := h.zoneService.Rename(c.Request.Context(), storeID, zoneID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, zone)
}

// Delete removes a zone and every region assignment that references it
func (h *ShippingZoneHandler) Delete(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	zoneID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid zone ID format")
		return
	}

	if err := h.zoneService.Delete(c.Request.Context(), storeID, zoneID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
