package handler

import (
	"net/http"

	"github.com/aidar/capstone-api/internal/service"
)

// StatsHandler обрабатывает эндпоинты статистики
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler создает новый StatsHandler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// GetStats обрабатывает GET /api/admin/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.GetStats(r.Context())
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, "registration statistics retrieved", stats)
}
