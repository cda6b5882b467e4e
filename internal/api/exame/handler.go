package exame

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
	"petcuidado/internal/service/exameservice"
)

// ExameService define o contrato que o Handler espera da camada de Serviço.
type ExameService interface {
	Create(ctx context.Context, caller domain.Caller, in exameservice.CreateInput) (domain.Exame, error)
	List(ctx context.Context, caller domain.Caller, petID string) ([]domain.Exame, error)
}

// CreateRequest representa o payload de entrada para solicitação de exame.
type CreateRequest struct {
	ConsultaID    string    `json:"consulta_id,omitempty"` // opcional
	PetID         string    `json:"pet_id"`
	VeterinarioID string    `json:"veterinario_id,omitempty"` // apenas admin
	TipoExame     string    `json:"tipo_exame"`
	DataExame     time.Time `json:"data_exame"`
	Resultado     string    `json:"resultado"`
	ArquivoURL    string    `json:"arquivo_url"`
	Observacoes   string    `json:"observacoes"`
	Status        string    `json:"status"`
}

// Handler agrupa os métodos de Handler de exames.
type Handler struct {
	Service ExameService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ExameService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateHandler lida com a requisição POST /v1/exames.
// Rota restrita a veterinários e admins via PermissionMiddleware.
// @Summary Solicita um exame
// @Description Exames podem ser solicitados fora de uma consulta (consulta_id opcional).
// @Tags exames
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exame body CreateRequest true "Dados do exame"
// @Success 201 {object} domain.Exame "Exame solicitado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou campos obrigatórios ausentes"
// @Failure 403 {object} domain.ErrorResponse "Chamador sem permissão"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /exames [post]
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

	created, err := h.Service.Create(r.Context(), caller, exameservice.CreateInput{
		ConsultaID:    req.ConsultaID,
		PetID:         req.PetID,
		VeterinarioID: req.VeterinarioID,
		TipoExame:     req.TipoExame,
		DataExame:     req.DataExame,
		Resultado:     req.Resultado,
		ArquivoURL:    req.ArquivoURL,
		Observacoes:   req.Observacoes,
		Status:        domain.ExameStatus(req.Status),
	})
	respond.JSON(w, r, h.Logger, created, err, http.StatusCreated)
}

// ListHandler lida com a requisição GET /v1/exames?pet_id=...
// @Summary Lista os exames visíveis ao chamador
// @Description Admin vê tudo; veterinário vê os que solicitou; tutor vê os das próprias mascotas.
// @Tags exames
// @Produce json
// @Security BearerAuth
// @Param pet_id query string false "Filtra por mascota"
// @Success 200 {array} domain.Exame "Exames ordenados por data decrescente"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /exames [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Sessão ausente."), http.StatusOK)
		return
	}

	exames, err := h.Service.List(r.Context(), caller, r.URL.Query().Get("pet_id"))
	respond.JSON(w, r, h.Logger, exames, err, http.StatusOK)
}
