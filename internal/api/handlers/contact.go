package handlers

import (
	"net/http"

	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ContactHandler handles HTTP requests for contacts
type ContactHandler struct {
	service service.ContactServiceInterface
}

// NewContactHandler creates a new contact handler
func NewContactHandler(service service.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// CreateContact handles POST /api/v1/contacts
// @Summary Create a new contact
// @Description Creates a contact in the actor's organization, optionally linked to an account
// @Tags contacts
// @Accept json
// @Produce json
// @Param contact body service.CreateContactRequest true "Contact data"
// @Success 201 {object} service.ContactResponse
// @Failure 400 {object} map[string]interface{} "Invalid request body or phone number"
// @Failure 403 {object} map[string]interface{} "Read-only role or account in different organization"
// @Failure 404 {object} map[string]interface{} "Assigned account not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /contacts [post]
func (h *ContactHandler) CreateContact(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	contact, err := h.service.Create(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// GetContact handles GET /api/v1/contacts/:id
// @Summary Get contact by ID
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Success 200 {object} service.ContactResponse
// @Failure 400 {object} map[string]interface{} "Invalid contact ID"
// @Failure 403 {object} map[string]interface{} "Different organization"
// @Failure 404 {object} map[string]interface{} "Contact not found"
// @Security BearerAuth
// @Router /contacts/{id} [get]
func (h *ContactHandler) GetContact(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	contact, err := h.service.GetByID(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// ListContacts handles GET /api/v1/contacts
// @Summary List contacts
// @Description Lists the contacts in the actor's organization with pagination
// @Tags contacts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.ContactListResponse
// @Failure 403 {object} map[string]interface{} "Not affiliated with an organization"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /contacts [get]
func (h *ContactHandler) ListContacts(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	contacts, err := h.service.List(actor, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// UpdateContact handles PUT /api/v1/contacts/:id
// @Summary Update a contact
// @Description Applies a partial update to a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Param contact body service.UpdateContactRequest true "Fields to update"
// @Success 200 {object} service.ContactResponse
// @Failure 400 {object} map[string]interface{} "Invalid request or phone number"
// @Failure 403 {object} map[string]interface{} "Read-only role or different organization"
// @Failure 404 {object} map[string]interface{} "Contact or assigned account not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id} [put]
func (h *ContactHandler) UpdateContact(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	contact, err := h.service.Update(actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// DeleteContact handles DELETE /api/v1/contacts/:id
// @Summary Delete a contact
// @Description Deletes a contact and removes it from every deal's contact list atomically
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID (UUID)"
// @Success 204 "No content"
// @Failure 400 {object} map[string]interface{} "Invalid contact ID"
// @Failure 403 {object} map[string]interface{} "Admin role required"
// @Failure 404 {object} map[string]interface{} "Contact not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c *gin.Context) {
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
