package handler

import (
	"net/http"

	"belezapos/internal/apierror"
	"belezapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PriceHandler serves the public price check endpoint.
// No authentication required — no side effects whatsoever.
type PriceHandler struct {
	svc service.CatalogService
}

func NewPriceHandler(svc service.CatalogService) *PriceHandler {
	return &PriceHandler{svc: svc}
}

// GetServicePrice returns the current price and duration of a catalog
// service, served from the Redis cache when warm.
func (h *PriceHandler) GetServicePrice(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.PriceCheck(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
