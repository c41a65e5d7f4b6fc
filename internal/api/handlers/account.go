package handlers

import (
	"net/http"

	"crm-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles HTTP requests for accounts
type AccountHandler struct {
	service service.AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(service service.AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: service}
}

// CreateAccount handles POST /api/v1/accounts
// @Summary Create a new account
// @Description Creates a company account in the actor's organization
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body service.CreateAccountRequest true "Account data"
// @Success 201 {object} service.AccountResponse
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 403 {object} map[string]interface{} "Read-only role or no organization"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var req service.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	account, err := h.service.Create(actor, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// GetAccount handles GET /api/v1/accounts/:id
// @Summary Get account by ID
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Success 200 {object} service.AccountResponse
// @Failure 400 {object} map[string]interface{} "Invalid account ID"
// @Failure 403 {object} map[string]interface{} "Different organization"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	account, err := h.service.GetByID(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// ListAccounts handles GET /api/v1/accounts
// @Summary List accounts
// @Description Lists the accounts in the actor's organization with pagination
// @Tags accounts
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Page size" default(20)
// @Success 200 {object} service.AccountListResponse
// @Failure 403 {object} map[string]interface{} "Not affiliated with an organization"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	accounts, err := h.service.List(actor, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// UpdateAccount handles PUT /api/v1/accounts/:id
// @Summary Update an account
// @Description Applies a partial update to an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Param account body service.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} service.AccountResponse
// @Failure 400 {object} map[string]interface{} "Invalid request"
// @Failure 403 {object} map[string]interface{} "Read-only role or different organization"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	account, err := h.service.Update(actor, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// DeleteAccount handles DELETE /api/v1/accounts/:id
// @Summary Delete an account
// @Description Deletes an account. Deals referencing it are left in place.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID (UUID)"
// @Success 204 "No content"
// @Failure 400 {object} map[string]interface{} "Invalid account ID"
// @Failure 403 {object} map[string]interface{} "Admin role required"
// @Failure 404 {object} map[string]interface{} "Account not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
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
