package dashboard

import (
	"context"
	"net/http"

	"petcuidado/internal/api/respond"
	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
	"petcuidado/internal/pkg/middleware"
)

// DashboardService define o contrato que o Handler espera da camada de Serviço.
type DashboardService interface {
	Stats(ctx context.Context, caller domain.Caller) domain.DashboardStats
}

// Handler agrupa os métodos de Handler do painel inicial.
type Handler struct {
	Service DashboardService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc DashboardService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// StatsHandler lida com a requisição GET /v1/dashboard/stats.
// O serviço nunca retorna erro: contadores indisponíveis vêm zerados com ok=false.
// @Summary Retorna os contadores do painel inicial
// @Description Pets e consultas de hoje respeitam o escopo do chamador; vacinas pendentes e prescrições ativas são contagens globais.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.DashboardStats "Contadores do painel"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente"
// @Router /dashboard/stats [get]
func (h *Handler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Sessão ausente."), http.StatusOK)
		return
	}

	stats := h.Service.Stats(r.Context(), caller)
	respond.JSON(w, r, h.Logger, stats, nil, http.StatusOK)
}
