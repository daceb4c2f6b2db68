package handler

import (
	"net/http"

	"belezapos/internal/apierror"
	"belezapos/internal/dto"
	"belezapos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct{ svc service.ReportService }

func NewReportHandler(svc service.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Daily aggregates the day's settlements: gross revenue, discounts,
// commissions, breakdown by payment method and by professional.
func (h *ReportHandler) Daily(c *gin.Context) {
	var filter dto.DailyReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Filtro inválido: "+err.Error()))
		return
	}
	resp, err := h.svc.Daily(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
