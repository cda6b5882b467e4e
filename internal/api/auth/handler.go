package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"petcuidado/internal/api/respond"
	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
)

// AuthService define o contrato que o Handler espera da camada de Serviço.
type AuthService interface {
	Register(ctx context.Context, reg domain.UserRegistration) (domain.UserProfile, error)
	Login(ctx context.Context, email string, password string) (string, error)
	Logout(ctx context.Context, tokenString string) error
	CurrentUser(ctx context.Context) (domain.UserProfile, bool)
	ListVeterinarios(ctx context.Context) ([]domain.UserProfile, error)
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Handler agrupa os métodos de Handler de autenticação e perfis.
type Handler struct {
	Service AuthService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc AuthService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterHandler lida com a requisição POST /v1/register.
// @Summary Registra um novo perfil
// @Description Cria um perfil com a role informada nos metadados; roles desconhecidas viram tutor.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Dados de registro (email, senha, nome e role)"
// @Success 201 {object} domain.UserProfile "Perfil criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou campos obrigatórios ausentes"
// @Failure 409 {object} domain.ErrorResponse "Email já cadastrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var reg domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		respond.JSON(w, r, h.Logger, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusCreated)
		return
	}

	created, err := h.Service.Register(ctx, reg)
	respond.JSON(w, r, h.Logger, created, err, http.StatusCreated)
}

// LoginHandler lida com a requisição POST /v1/login.
// @Summary Autentica um usuário e retorna um JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body LoginRequest true "Credenciais do usuário (email e senha)"
// @Success 200 {object} map[string]string "Token JWT emitido"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		respond.JSON(w, r, h.Logger, nil, apperror.NewValidationError("Payload JSON inválido."), http.StatusOK)
		return
	}

	token, err := h.Service.Login(ctx, loginReq.Email, loginReq.Password)
	if err != nil {
		respond.JSON(w, r, h.Logger, nil, err, http.StatusOK)
		return
	}

	respond.JSON(w, r, h.Logger, map[string]string{"token": token}, nil, http.StatusOK)
}

// LogoutHandler lida com a requisição POST /v1/logout.
// O token corrente entra na denylist até sua expiração natural; chamadas com
// token já inválido também retornam 204.
// @Summary Encerra a sessão corrente
// @Tags auth
// @Security BearerAuth
// @Success 204 "Sessão encerrada"
// @Failure 500 {object} domain.ErrorResponse "Falha ao encerrar a sessão"
// @Router /logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	err := h.Service.Logout(r.Context(), tokenString)
	respond.JSON(w, r, h.Logger, nil, err, http.StatusNoContent)
}

// MeHandler lida com a requisição GET /v1/me.
// @Summary Retorna o perfil do usuário autenticado
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.UserProfile "Perfil do usuário corrente"
// @Failure 401 {object} domain.ErrorResponse "Sessão ausente ou perfil indisponível"
// @Router /me [get]
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	profile, ok := h.Service.CurrentUser(r.Context())
	if !ok {
		respond.JSON(w, r, h.Logger, nil, apperror.NewUnauthorizedError("Sessão ausente ou perfil indisponível."), http.StatusOK)
		return
	}

	respond.JSON(w, r, h.Logger, profile, nil, http.StatusOK)
}

// ListVeterinariosHandler lida com a requisição GET /v1/veterinarios.
// @Summary Lista os perfis de veterinários
// @Description Retorna todos os veterinários ordenados por nome, para seleção em agendamentos.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.UserProfile "Veterinários cadastrados"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /veterinarios [get]
func (h *Handler) ListVeterinariosHandler(w http.ResponseWriter, r *http.Request) {
	vets, err := h.Service.ListVeterinarios(r.Context())
	respond.JSON(w, r, h.Logger, vets, err, http.StatusOK)
}
