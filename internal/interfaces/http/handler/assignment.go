package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shippingapp "github.com/orderdesk/backend/internal/application/shipping"
	"github.com/orderdesk/backend/internal/interfaces/http/dto"
)

// AssignmentHandler handles region assignment and zone resolution endpoints
type AssignmentHandler struct {
	BaseHandler
	assignmentService *shippingapp.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler
func NewAssignmentHandler(assignmentService *shippingapp.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// RegisterRoutes registers assignment routes on the given group
func (h *AssignmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/zones/:id/assignments/countries", h.AssignCountries)
	rg.POST("/zones/:id/assignments/states", h.AssignState)
	rg.POST("/zones/:id/assignments/zip-ranges", h.AssignZipRange)
	rg.DELETE("/assignments/:id", h.Delete)
	rg.GET("/assignments/countries", h.ListCountryAssignments)
	rg.GET("/assignments/zip-ranges", h.ListZipRanges)
	rg.GET("/assignments/matrix", h.Matrix)
	rg.GET("/resolve", h.Resolve)
}

// AssignCountries binds whole countries to a zone, replacing each country's
// previous country-wide rule wherever it lived
func (h *AssignmentHandler) AssignCountries(c *gin.Context) {
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

	var req shippingapp.AssignCountriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.assignmentService.AssignCountries(c.Request.Context(), storeID, zoneID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// AssignState binds a whole state to a zone. When the state's country already
// has a country-wide rule the assignment is reported as deferred.
func (h *AssignmentHandler) AssignState(c *gin.Context) {
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

	var req shippingapp.AssignStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.assignmentService.AssignState(c.Request.Context(), storeID, zoneID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if result.Deferred {
		h.Success(c, result)
		return
	}
	h.Created(c, result)
}

// AssignZipRange binds an inclusive zip interval within a state to a zone.
// Intersections with existing intervals are rejected with a 409 carrying the
// conflicting assignment IDs.
func (h *AssignmentHandler) AssignZipRange(c *gin.Context) {
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

	var req shippingapp.AssignZipRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.assignmentService.AssignZipRange(c.Request.Context(), storeID, zoneID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if result.HasConflicts() {
		h.Conflict(c, dto.ErrCodeZipRangeOverlap,
			"Zip range overlaps existing assignments", result)
		return
	}

	h.Created(c, result)
}

// Delete removes a single region assignment
func (h *AssignmentHandler) Delete(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	assignmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid assignment ID format")
		return
	}

	if err := h.assignmentService.Delete(c.Request.Context(), storeID, assignmentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListCountryAssignments returns the store's country-wide assignments
func (h *AssignmentHandler) ListCountryAssignments(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	entries, err := h.assignmentService.ListCountryAssignments(c.Request.Context(), storeID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// ListZipRanges returns a state's zip-range assignments ordered by lower bound
func (h *AssignmentHandler) ListZipRanges(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	stateID, err := uuid.Parse(c.Query("state_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing state_id")
		return
	}

	entries, err := h.assignmentService.ListZipRanges(c.Request.Context(), storeID, stateID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, entries)
}

// Matrix returns a country's state-by-state assignment view
func (h *AssignmentHandler) Matrix(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	countryID, err := uuid.Parse(c.Query("country_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing country_id")
		return
	}

	matrix, err := h.assignmentService.Matrix(c.Request.Context(), storeID, countryID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, matrix)
}

// Resolve determines which zone governs an address
func (h *AssignmentHandler) Resolve(c *gin.Context) {
	storeID, err := getStoreID(c)
	if err != nil {
		h.BadRequest(c, "Invalid store ID")
		return
	}

	countryID, err := uuid.Parse(c.Query("country_id"))
	if err != nil {
		h.BadRequest(c, "Invalid or missing country_id")
		return
	}

	req := shippingapp.ResolveRequest{CountryID: countryID}

	if raw := c.Query("state_id"); raw != "" {
		stateID, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid state_id")
			return
		}
		req.StateID = &stateID
	}

	if raw := c.Query("zip_code"); raw != "" {
		zip, err := strconv.Atoi(raw)
		if err != nil || zip < 0 {
			h.BadRequest(c, "Invalid zip_code")
			return
		}
		req.ZipCode = &zip
	}

	result, err := h.assignmentService.Resolve(c.Request.Context(), storeID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
