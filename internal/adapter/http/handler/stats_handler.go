package handler

import (
	"tipbot/internal/adapter/http/dto"
	"tipbot/internal/core/ports"
	"tipbot/pkg/apperror"
	"tipbot/pkg/response"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the public tip board.
type StatsHandler struct {
	statsSvc ports.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsSvc ports.StatsService) *StatsHandler {
	return &StatsHandler{statsSvc: statsSvc}
}

// TopTippers handles GET /api/v1/stats/tippers.
func (h *StatsHandler) TopTippers(c *gin.Context) {
	var q dto.LimitQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	stats, err := h.statsSvc.TopTippers(c.Request.Context(), q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, stats)
}

// RecentTips handles GET /api/v1/stats/tips.
func (h *StatsHandler) RecentTips(c *gin.Context) {
	var q dto.LimitQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	tips, err := h.statsSvc.RecentTips(c.Request.Context(), q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.PublicTipResponse, 0, len(tips))
	for _, t := range tips {
		items = append(items, dto.NewPublicTipResponse(t))
	}
	response.List(c, items)
}

// Totals handles GET /api/v1/stats/totals.
func (h *StatsHandler) Totals(c *gin.Context) {
	totals, err := h.statsSvc.Totals(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, totals)
}
