package handlers

import (
	"net/http"

	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// LeadHandler handles HTTP requests for leads
type LeadHandler struct {
	service service.LeadServiceInterface
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(service service.LeadServiceInterface) *LeadHandler {
	return &LeadHandler{service: service}
}

// CreateLead handles POST /api/v1/leads
// @Summary Create a new lead
// @Description Creates a lead in the actor's organization with status NEW_LEAD
// @Tags leads
// @Accept json
// @Produce json
// @Param lead body service.CreateLeadRequest true "Lead data"
// @Success 201 {object} service.LeadResponse
// @Failure 400 {object} map[string]interface{} "Invalid request body or phone number"
// @Failure 403 {object} map[string]interface{} "Read-only role or owner in different organization"
// @Failure 404 {object} map[string]interface{} "Assigned owner not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /leads [post]
func (h *LeadHandler) CreateLead(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	lead, err := h.service.Create(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

// GetLead handles GET /api/v1/leads/:id
// @Summary Get lead by ID
// @Tags leads
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Success 200 {object} service.LeadResponse
// @Failure 400 {object} map[string]interface{} "Invalid lead ID"
// @Failure 403 {object} map[string]interface{} "Different organization"
// @Failure 404 {object} map[string]interface{} "Lead not found"
// @Security BearerAuth
// @Router /leads/{id} [get]
func (h *LeadHandler) GetLead(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	lead, err := h.service.GetByID(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// ListLeads handles GET /api/v1/leads
// @Summary List leads
// @Description Lists the leads in the actor's organization with pagination
// @Tags leads
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.LeadListResponse
// @Failure 403 {object} map[string]interface{} "Not affiliated with an organization"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /leads [get]
func (h *LeadHandler) ListLeads(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	leads, err := h.service.List(actor, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

// UpdateLead handles PUT /api/v1/leads/:id
// @Summary Update a lead
// @Description Applies a partial update to a lead. Only the current owner may mutate a lead.
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Param lead body service.UpdateLeadRequest true "Fields to update"
// @Success 200 {object} service.LeadResponse
// @Failure 400 {object} map[string]interface{} "Invalid request or phone number"
// @Failure 403 {object} map[string]interface{} "Not the lead owner"
// @Failure 404 {object} map[string]interface{} "Lead or assigned owner not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /leads/{id} [put]
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	lead, err := h.service.Update(actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// ChangeLeadStatus handles PUT /api/v1/leads/:id/status
// @Summary Change lead status
// @Description Moves a lead to a new status. The first change clears the new-lead marker.
// @Tags leads
// @Accept json
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Param request body service.ChangeLeadStatusRequest true "New status"
// @Success 200 {object} service.LeadResponse
// @Failure 400 {object} map[string]interface{} "Invalid status"
// @Failure 403 {object} map[string]interface{} "Not the lead owner"
// @Failure 404 {object} map[string]interface{} "Lead not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /leads/{id}/status [put]
func (h *LeadHandler) ChangeLeadStatus(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ChangeLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	lead, err := h.service.ChangeStatus(actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// ConvertLead handles POST /api/v1/leads/:id/convert
// @Summary Convert a lead to a contact
// @Description Atomically creates a contact from the lead's data and deletes the lead
// @Tags leads
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Success 201 {object} service.ContactResponse
// @Failure 400 {object} map[string]interface{} "Invalid lead ID"
// @Failure 403 {object} map[string]interface{} "Not the lead owner"
// @Failure 404 {object} map[string]interface{} "Lead not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /leads/{id}/convert [post]
func (h *LeadHandler) ConvertLead(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	contact, err := h.service.ConvertToContact(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// DeleteLead handles DELETE /api/v1/leads/:id
// @Summary Delete a lead
// @Description Deletes a lead. Admin-only, unlike other lead mutations.
// @Tags leads
// @Produce json
// @Param id path string true "Lead ID (UUID)"
// @Success 204 "No content"
// @Failure 400 {object} map[string]interface{} "Invalid lead ID"
// @Failure 403 {object} map[string]interface{} "Admin role required"
// @Failure 404 {object} map[string]interface{} "Lead not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /leads/{id} [delete]
func (h *LeadHandler) DeleteLead(c *gin.Context) {
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
