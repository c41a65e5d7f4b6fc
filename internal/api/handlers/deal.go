package handlers

import (
	"net/http"

	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DealHandler handles HTTP requests for deals
type DealHandler struct {
	service service.DealServiceInterface
}

// NewDealHandler creates a new deal handler
func NewDealHandler(service service.DealServiceInterface) *DealHandler {
	return &DealHandler{service: service}
}

// CreateDeal handles POST /api/v1/deals
// @Summary Create a new deal
// @Description Creates a deal with an owner, an account and one to five contacts, all in the actor's organization
// @Tags deals
// @Accept json
// @Produce json
// @Param deal body service.CreateDealRequest true "Deal data"
// @Success 201 {object} service.DealResponse
// @Failure 400 {object} map[string]interface{} "Invalid request, stage, currency or contact count"
// @Failure 403 {object} map[string]interface{} "Read-only role or reference in different organization"
// @Failure 404 {object} map[string]interface{} "Assigned owner, account or contacts not found"
// @Failure 409 {object} map[string]interface{} "Deal name already exists"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /deals [post]
func (h *DealHandler) CreateDeal(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	deal, err := h.service.Create(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, deal)
}

// GetDeal handles GET /api/v1/deals/:id
// @Summary Get deal by ID
// @Tags deals
// @Produce json
// @Param id path string true "Deal ID (UUID)"
// @Success 200 {object} service.DealResponse
// @Failure 400 {object} map[string]interface{} "Invalid deal ID"
// @Failure 403 {object} map[string]interface{} "Different organization"
// @Failure 404 {object} map[string]interface{} "Deal not found"
// @Security BearerAuth
// @Router /deals/{id} [get]
func (h *DealHandler) GetDeal(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	deal, err := h.service.GetByID(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

// ListDeals handles GET /api/v1/deals
// @Summary List deals
// @Description Lists the deals in the actor's organization with pagination
// @Tags deals
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.DealListResponse
// @Failure 403 {object} map[string]interface{} "Not affiliated with an organization"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /deals [get]
func (h *DealHandler) ListDeals(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	deals, err := h.service.List(actor, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deals)
}

// UpdateDeal handles PUT /api/v1/deals/:id
// @Summary Update a deal
// @Description Applies a partial update to a deal. Moving into WON or LOST stamps the close time.
// @Tags deals
// @Accept json
// @Produce json
// @Param id path string true "Deal ID (UUID)"
// @Param deal body service.UpdateDealRequest true "Fields to update"
// @Success 200 {object} service.DealResponse
// @Failure 400 {object} map[string]interface{} "Invalid request, stage, currency or contact count"
// @Failure 403 {object} map[string]interface{} "Read-only role or reference in different organization"
// @Failure 404 {object} map[string]interface{} "Deal or referenced entity not found"
// @Failure 409 {object} map[string]interface{} "Deal name already exists"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /deals/{id} [put]
func (h *DealHandler) UpdateDeal(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	deal, err := h.service.Update(actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deal)
}

// DeleteDeal handles DELETE /api/v1/deals/:id
// @Summary Delete a deal
// @Tags deals
// @Produce json
// @Param id path string true "Deal ID (UUID)"
// @Success 204 "No content"
// @Failure 400 {object} map[string]interface{} "Invalid deal ID"
// @Failure 403 {object} map[string]interface{} "Admin role required"
// @Failure 404 {object} map[string]interface{} "Deal not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /deals/{id} [delete]
func (h *DealHandler) DeleteDeal(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(actor, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
