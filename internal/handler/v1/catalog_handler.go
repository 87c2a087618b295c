package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/medagenda/medagenda/internal/service"
)

type CatalogHandler struct {
	catalogs *service.CatalogService
}

func NewCatalogHandler(catalogs *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs}
}

type catalogEntryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (h *CatalogHandler) ListSpecialties(c *gin.Context) {
	entries, err := h.catalogs.ListSpecialties(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entries)
}

func (h *CatalogHandler) CreateSpecialty(c *gin.Context) {
	var req catalogEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.catalogs.CreateSpecialty(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, entry)
}

func (h *CatalogHandler) UpdateSpecialty(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req catalogEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.catalogs.UpdateSpecialty(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entry)
}

func (h *CatalogHandler) DeleteSpecialty(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogs.DeleteSpecialty(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": id})
}

func (h *CatalogHandler) ListPathologies(c *gin.Context) {
	entries, err := h.catalogs.ListPathologies(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entries)
}

func (h *CatalogHandler) CreatePathology(c *gin.Context) {
	var req catalogEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.catalogs.CreatePathology(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, entry)
}

func (h *CatalogHandler) UpdatePathology(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	var req catalogEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.catalogs.UpdatePathology(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, entry)
}

func (h *CatalogHandler) DeletePathology(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogs.DeletePathology(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": id})
}
