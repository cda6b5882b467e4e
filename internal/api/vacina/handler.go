package vacina

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"petcuidado/internal/api/respond"
	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
	"petcuidado/internal/pkg/middleware"
	"petcuidado/internal/service/vacinaservice"
)

// VacinaService define o contrato que o Handler espera da camada de Serviço.
type VacinaService interface {
	Create(ctx context.Context, caller domain.Caller, in vacinaservice.CreateInput) (domain.Vacina, error)
	List(ctx context.Context, caller domain.Caller, petID string) ([]domain.Vacina, error)
}

// CreateRequest representa o payload de entrada para registro de vacinação.
type CreateRequest struct {
	PetID         string     `json:"pet_id"`
	NomeVacina    string     `json:"nome_vacina"`
	DataAplicacao time.Time  `json:"data_aplicacao"`
	ProximaDose   *time.Time `json:"proxima_dose"`
	VeterinarioID string     `json:"veterinario_id"`
	Lote          string     `json:"lote"`
	Fabricante    string     `json:"fabricante"`
	Observacoes   string     `json:"observacoes"`
}

// Handler agrupa os métodos de Handler de vacinas.
type Handler struct {
	Service VacinaService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc VacinaService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateHandler lida com a requisição POST /v1/vacinas.
// Rota restrita a veterinários e admins via PermissionMiddleware.
// @Summary Registra uma vacinação aplicada
// @Tags vacinas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param vacina body CreateRequest true "Dados da vacinação"
// @Success 201 {object} domain.Vacina "Vacinação registrada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou campos obrigatórios ausentes"
// @Failure 403 {object} domain.ErrorResponse "Chamador sem permissão"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /vacinas [post]
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Sessão ausente."), http.StatusCreated)
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.JSON(w, r, h.Logger, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	created, err := h.Service.Create(r.Context(), caller, vacinaservice.CreateInput{
		PetID:         req.PetID,
		NomeVacina:    req.NomeVacina,
		DataAplicacao: req.DataAplicacao,
		ProximaDose:   req.ProximaDose,
		VeterinarioID: req.VeterinarioID,
		Lote:          req.Lote,
		Fabricante:    req.Fabricante,
		Observacoes:   req.Observacoes,
	})
	respond.JSON(w, r, h.Logger, created, err, http.StatusCreated)
}

// ListHandler lida com a requisição GET /v1/vacinas?pet_id=...
// @Summary Lista registros de vacinação
// @Description Sem pet_id a listagem retorna todas as linhas, independentemente do papel do chamador.
// @Tags vacinas
// @Produce json
// @Security BearerAuth
// @Param pet_id query string false "Filtra por mascota"
// @Success 200 {array} domain.Vacina "Vacinas ordenadas por data de aplicação decrescente"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /vacinas [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Sessão ausente."), http.StatusOK)
		return
	}

	vacinas, err := h.Service.List(r.Context(), caller, r.URL.Query().Get("pet_id"))
	respond.JSON(w, r, h.Logger, vacinas, err, http.StatusOK)
}
