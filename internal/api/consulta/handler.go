package consulta

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
	"petcuidado/internal/service/consultaservice"
)

// ConsultaService define o contrato que o Handler espera da camada de Serviço.
type ConsultaService interface {
	Create(ctx context.Context, caller domain.Caller, in consultaservice.CreateInput) (domain.Consulta, error)
	List(ctx context.Context, caller domain.Caller, petID string) ([]domain.Consulta, error)
}

// CreateRequest representa o payload de entrada para agendamento de consulta.
type CreateRequest struct {
	PetID         string    `json:"pet_id"`
	VeterinarioID string    `json:"veterinario_id"`
	TutorID       string    `json:"tutor_id,omitempty"` // ignorado para tutores
	DataConsulta  time.Time `json:"data_consulta"`
	Motivo        string    `json:"motivo"`
	Sintomas      string    `json:"sintomas"`
	Diagnostico   string    `json:"diagnostico"`
	Tratamento    string    `json:"tratamento"`
	Observacoes   string    `json:"observacoes"`
	Status        string    `json:"status"`
}

// Handler agrupa os métodos de Handler de consultas.
type Handler struct {
	Service ConsultaService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ConsultaService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateHandler lida com a requisição POST /v1/consultas.
// @Summary Agenda uma consulta
// @Description Tutores sempre agendam para si mesmos; tutor_id só é respeitado para veterinários e admins.
// @Tags consultas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param consulta body CreateRequest true "Dados da consulta"
// @Success 201 {object} domain.Consulta "Consulta agendada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou campos obrigatórios ausentes"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /consultas [post]
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

	created, err := h.Service.Create(r.Context(), caller, consultaservice.CreateInput{
		PetID:         req.PetID,
		VeterinarioID: req.VeterinarioID,
		TutorID:       req.TutorID,
		DataConsulta:  req.DataConsulta,
		Motivo:        req.Motivo,
		Sintomas:      req.Sintomas,
		Diagnostico:   req.Diagnostico,
		Tratamento:    req.Tratamento,
		Observacoes:   req.Observacoes,
		Status:        domain.ConsultaStatus(req.Status),
	})
	respond.JSON(w, r, h.Logger, created, err, http.StatusCreated)
}

// ListHandler lida com a requisição GET /v1/consultas?pet_id=...
// @Summary Lista as consultas visíveis ao chamador
// @Description Não-admins veem a união das consultas em que são tutor ou veterinário.
// @Tags consultas
// @Produce json
// @Security BearerAuth
// @Param pet_id query string false "Filtra por mascota"
// @Success 200 {array} domain.Consulta "Consultas ordenadas por data decrescente, com pet, veterinário e tutor anexados"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /consultas [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Sessão ausente."), http.StatusOK)
		return
	}

	consultas, err := h.Service.List(r.Context(), caller, r.URL.Query().Get("pet_id"))
	respond.JSON(w, r, h.Logger, consultas, err, http.StatusOK)
}
