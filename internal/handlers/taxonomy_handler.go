package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"finboard/internal/taxonomy"
)

// TaxonomyHandler serves the category catalogue.
type TaxonomyHandler struct {
	table *taxonomy.Table
}

// NewTaxonomyHandler creates a new TaxonomyHandler.
func NewTaxonomyHandler(table *taxonomy.Table) *TaxonomyHandler {
	return &TaxonomyHandler{table: table}
}

// TaxonomyResponse is the catalogue as served to clients.
type TaxonomyResponse struct {
	Version    string              `json:"version"`
	Categories []taxonomy.Category `json:"categories"`
}

// GetTaxonomy returns the catalogue
// @Summary     Category catalogue
// @Description Categories and their subcategories, in display order
// @Tags        taxonomy
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} TaxonomyResponse "Catalogue"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /taxonomy [get]
func (h *TaxonomyHandler) GetTaxonomy(c *gin.Context) {
	c.JSON(http.StatusOK, TaxonomyResponse{
		Version:    h.table.Version(),
		Categories: h.table.Categories(),
	})
}
