package prescricao

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
	"petcuidado/internal/service/prescricaoservice"
)

// PrescricaoService define o contrato que o Handler espera da camada de Serviço.
type PrescricaoService interface {
	Create(ctx context.Context, caller domain.Caller, in prescricaoservice.CreateInput) (domain.Prescricao, error)
	List(ctx context.Context, caller domain.Caller, petID string) ([]domain.Prescricao, error)
}

// CreateRequest representa o payload de entrada para emissão de prescrição.
type CreateRequest struct {
	ConsultaID    string     `json:"consulta_id"`
	PetID         string     `json:"pet_id"`
	VeterinarioID string     `json:"veterinario_id,omitempty"` // apenas admin
	Medicamento   string     `json:"medicamento"`
	Dosagem       string     `json:"dosagem"`
	Frequencia    string     `json:"frequencia"`
	Duracao       string     `json:"duracao"`
	Instrucoes    string     `json:"instrucoes"`
	DataInicio    time.Time  `json:"data_inicio"`
	DataFim       *time.Time `json:"data_fim"`
	Status        string     `json:"status"`
}

// Handler agrupa os métodos de Handler de prescrições.
type Handler struct {
	Service PrescricaoService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc PrescricaoService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateHandler lida com a requisição POST /v1/prescricoes.
// Rota restrita a veterinários e admins via PermissionMiddleware.
// @Summary Emite uma prescrição
// @Description O veterinário emissor é sempre o chamador, exceto para admins.
// @Tags prescricoes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param prescricao body CreateRequest true "Dados da prescrição"
// @Success 201 {object} domain.Prescricao "Prescrição emitida"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou campos obrigatórios ausentes"
// @Failure 403 {object} domain.ErrorResponse "Chamador sem permissão"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /prescricoes [post]
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

	created, err := h.Service.Create(r.Context(), caller, prescricaoservice.CreateInput{
		ConsultaID:    req.ConsultaID,
		PetID:         req.PetID,
		VeterinarioID: req.VeterinarioID,
		Medicamento:   req.Medicamento,
		Dosagem:       req.Dosagem,
		Frequencia:    req.Frequencia,
		Duracao:       req.Duracao,
		Instrucoes:    req.Instrucoes,
		DataInicio:    req.DataInicio,
		DataFim:       req.DataFim,
		Status:        domain.PrescricaoStatus(req.Status),
	})
	respond.JSON(w, r, h.Logger, created, err, http.StatusCreated)
}

// ListHandler lida com a requisição GET /v1/prescricoes?pet_id=...
// @Summary Lista as prescrições visíveis ao chamador
// @Description Admin vê tudo; veterinário vê as que emitiu; tutor vê as das próprias mascotas.
// @Tags prescricoes
// @Produce json
// @Security BearerAuth
// @Param pet_id query string false "Filtra por mascota"
// @Success 200 {array} domain.Prescricao "Prescrições ordenadas por data de criação decrescente"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /prescricoes [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Sessão ausente."), http.StatusOK)
		return
	}

	prescricoes, err := h.Service.List(r.Context(), caller, r.URL.Query().Get("pet_id"))
	respond.JSON(w, r, h.Logger, prescricoes, err, http.StatusOK)
}
