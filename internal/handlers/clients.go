package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"spa-booking-server/internal/models"
	"spa-booking-server/internal/store"
	"spa-booking-server/internal/utils"
)

// ClientHandler handles client intake and maintenance requests.
type ClientHandler struct {
	Store store.ClientStore
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientStore store.ClientStore) *ClientHandler {
	return &ClientHandler{Store: clientStore}
}

// ListClients fetches clients, optionally narrowed by ?search= on name or email.
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.Store.ListClients(c.Request.Context(), c.Query("search"))
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch clients: "+err.Error())
		return
	}

	utils.Success(c, "Clients fetched successfully", clients)
}

// GetClientByID fetches a single client.
func (h *ClientHandler) GetClientByID(c *gin.Context) {
	client, err := h.Store.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Client not found")
		} else {
			utils.InternalServerError(c, "Failed to fetch client: "+err.Error())
		}
		return
	}

	utils.Success(c, "Client fetched successfully", client)
}

// CreateClientRequest represents the intake form.
type CreateClientRequest struct {
	Name           string `json:"name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required"`
	AreasOfConcern string `json:"areasOfConcern"`
}

// CreateClient registers a new client.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	client := models.Client{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		AreasOfConcern: req.AreasOfConcern,
	}

	if err := h.Store.CreateClient(c.Request.Context(), &client); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			utils.BadRequest(c, "Email already exists")
		} else {
			utils.InternalServerError(c, "Failed to create client: "+err.Error())
		}
		return
	}

	utils.Created(c, "Client created successfully", client)
}

// UpdateConcernRequest represents an areas-of-concern edit.
type UpdateConcernRequest struct {
	AreasOfConcern string `json:"areasOfConcern"`
}

// UpdateClientConcern replaces a client's areas-of-concern notes.
func (h *ClientHandler) UpdateClientConcern(c *gin.Context) {
	var req UpdateConcernRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	client, err := h.Store.UpdateClientConcern(c.Request.Context(), c.Param("id"), req.AreasOfConcern)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Client not found")
		} else {
			utils.InternalServerError(c, "Failed to update client: "+err.Error())
		}
		return
	}

	utils.Success(c, "Client updated successfully", client)
}
