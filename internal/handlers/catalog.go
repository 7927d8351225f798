package handlers

import (
	"github.com/gin-gonic/gin"

	"spa-booking-server/internal/models"
	"spa-booking-server/internal/utils"
)

// CatalogHandler serves the fixed treatment catalog the booking form
// chooses from.
type CatalogHandler struct {
	Catalog models.Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog models.Catalog) *CatalogHandler {
	return &CatalogHandler{Catalog: catalog}
}

// GetCatalog returns the treatment names and allowed durations.
func (h *CatalogHandler) GetCatalog(c *gin.Context) {
	utils.Success(c, "Treatment catalog fetched successfully", h.Catalog)
}
