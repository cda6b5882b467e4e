package pet

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"petcuidado/internal/api/respond"
	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
	"petcuidado/internal/pkg/middleware"
	"petcuidado/internal/service/petservice"
)

// PetService define o contrato que o Handler espera da camada de Serviço.
type PetService interface {
	Create(ctx context.Context, caller domain.Caller, in petservice.CreateInput) (domain.Pet, error)
	List(ctx context.Context, caller domain.Caller) ([]domain.Pet, error)
	GetByID(ctx context.Context, caller domain.Caller, id string) (domain.Pet, error)
	Update(ctx context.Context, caller domain.Caller, id string, upd domain.PetUpdate) (domain.Pet, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}

// CreateRequest representa o payload de entrada para cadastro de mascota.
type CreateRequest struct {
	OwnerUserID string     `json:"owner_user_id,omitempty"` // apenas admin
	Name        string     `json:"name"`
	Species     string     `json:"species"`
	Breed       string     `json:"breed"`
	BirthDate   *time.Time `json:"birth_date"`
	Weight      *float64   `json:"weight"`
	Color       string     `json:"color"`
	Microchip   string     `json:"microchip"`
	Notes       string     `json:"notes"`
}

// Handler agrupa os métodos de Handler de mascotas.
type Handler struct {
	Service PetService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc PetService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateHandler lida com a requisição POST /v1/pets.
// @Summary Cadastra uma mascota
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pet body CreateRequest true "Dados da mascota"
// @Success 201 {object} domain.Pet "Mascota cadastrada"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou validação de negócio"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /pets [post]
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

	created, err := h.Service.Create(r.Context(), caller, petservice.CreateInput{
		OwnerUserID: req.OwnerUserID,
		Name:        req.Name,
		Species:     domain.Species(req.Species),
		Breed:       req.Breed,
		BirthDate:   req.BirthDate,
		Weight:      req.Weight,
		Color:       req.Color,
		Microchip:   req.Microchip,
		Notes:       req.Notes,
	})
	respond.JSON(w, r, h.Logger, created, err, http.StatusCreated)
}

// ListHandler lida com a requisição GET /v1/pets.
// @Summary Lista as mascotas visíveis ao chamador
// @Description Admin recebe todas as mascotas; tutores e veterinários recebem as próprias.
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Pet "Mascotas ordenadas por data de cadastro decrescente"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /pets [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Sessão ausente."), http.StatusOK)
		return
	}

	pets, err := h.Service.List(r.Context(), caller)
	respond.JSON(w, r, h.Logger, pets, err, http.StatusOK)
}

// GetByIDHandler lida com a requisição GET /v1/pets/{id}.
// @Summary Busca uma mascota pelo ID
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da mascota (UUID)"
// @Success 200 {object} domain.Pet "Mascota encontrada"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Mascota não encontrada ou fora do escopo do chamador"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /pets/{id} [get]
func (h *Handler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Sessão ausente."), http.StatusOK)
		return
	}

	pet, err := h.Service.GetByID(r.Context(), caller, chi.URLParam(r, "id"))
	respond.JSON(w, r, h.Logger, pet, err, http.StatusOK)
}

// UpdateHandler lida com a requisição PATCH /v1/pets/{id}.
// Campos ausentes do payload não são tocados.
// @Summary Atualiza parcialmente uma mascota
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da mascota (UUID)"
// @Param pet body domain.PetUpdate true "Campos a atualizar"
// @Success 200 {object} domain.Pet "Mascota atualizada"
// @Failure 400 {object} domain.ErrorResponse "Payload ou campos inválidos"
// @Failure 403 {object} domain.ErrorResponse "Chamador não é dono nem admin"
// @Failure 404 {object} domain.ErrorResponse "Mascota não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /pets/{id} [patch]
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Sessão ausente."), http.StatusOK)
		return
	}

	var upd domain.PetUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respond.JSON(w, r, h.Logger, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	updated, err := h.Service.Update(r.Context(), caller, chi.URLParam(r, "id"), upd)
	respond.JSON(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteHandler lida com a requisição DELETE /v1/pets/{id}.
// @Summary Remove uma mascota
// @Description Registros clínicos da mascota não são removidos em cascata.
// @Tags pets
// @Security BearerAuth
// @Param id path string true "ID da mascota (UUID)"
// @Success 204 "Mascota removida"
// @Failure 403 {object} domain.ErrorResponse "Chamador não é dono nem admin"
// @Failure 404 {object} domain.ErrorResponse "Mascota não encontrada"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /pets/{id} [delete]
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Sessão ausente."), http.StatusNoContent)
		return
	}

	err := h.Service.Delete(r.Context(), caller, chi.URLParam(r, "id"))
	respond.JSON(w, r, h.Logger, nil, err, http.StatusNoContent)
}
