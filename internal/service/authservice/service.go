package authservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/cache"
	"petcuidado/internal/pkg/logger"
	"petcuidado/internal/pkg/middleware"
	"petcuidado/internal/pkg/token"
)

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(userID string, userRole string) (string, error)
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// Service implementa registro, login, logout e resolução do usuário corrente.
type Service struct {
	repo     domain.ProfileRepository
	tokenSvc TokenService
	cache    cache.Client
	logger   logger.Logger
}

// NewService cria uma nova instância do serviço de autenticação.
func NewService(repo domain.ProfileRepository, tokenSvc TokenService, cacheClient cache.Client, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		tokenSvc: tokenSvc,
		cache:    cacheClient,
		logger:   log,
	}
}

// Register registra um novo perfil no sistema. A role vem dos metadados do
// cadastro; valores desconhecidos são rebaixados para tutor.
func (s *Service) Register(ctx context.Context, reg domain.UserRegistration) (domain.UserProfile, error) {
	reg.Email = strings.TrimSpace(reg.Email)
	reg.Name = strings.TrimSpace(reg.Name)

	if reg.Email == "" || reg.Password == "" {
		return domain.UserProfile{}, apperror.NewValidationError("Email e senha são obrigatórios.")
	}
	if reg.Name == "" {
		return domain.UserProfile{}, apperror.NewValidationError("Nome é obrigatório.")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserProfile{}, apperror.NewInternalError("Falha ao gerar hash da senha.", err)
	}

	profile := domain.UserProfile{
		Email:        reg.Email,
		PasswordHash: string(hashedPassword),
		Role:         domain.NormalizeRole(reg.Role),
		Name:         reg.Name,
	}

	created, err := s.repo.Save(ctx, profile)
	if err != nil {
		// O repositório já traduz violação de unicidade para ConflictError.
		return domain.UserProfile{}, err
	}

	s.logger.Info("Perfil registrado.", map[string]interface{}{"user_id": created.ID, "role": created.Role})
	return created, nil
}

// Login autentica um usuário, verifica a senha e gera um JWT.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	profile, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// NotFound vira Unauthorized para não dar dicas a invasores.
		var notFoundErr *apperror.NotFoundError
		if errors.As(err, &notFoundErr) {
			return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(password)); err != nil {
		return "", apperror.NewUnauthorizedError("Credenciais inválidas.")
	}

	tokenString, err := s.tokenSvc.GenerateToken(profile.ID, string(profile.Role))
	if err != nil {
		return "", apperror.NewInternalError("Falha ao gerar token de autenticação.", err)
	}

	return tokenString, nil
}

// Logout invalida o token corrente colocando seu jti na denylist do Redis
// até a expiração natural do token.
func (s *Service) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.tokenSvc.ValidateToken(tokenString)
	if err != nil {
		// Token já inválido ou expirado: logout é idempotente.
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Set(ctx, middleware.DenylistKey(claims.ID), "1", ttl); err != nil {
		return apperror.NewInternalError("Falha ao encerrar a sessão.", err)
	}

	s.logger.Info("Sessão encerrada.", map[string]interface{}{"user_id": claims.UserID})
	return nil
}

// CurrentUser resolve o perfil do usuário autenticado a partir das claims do
// contexto. Retorna (perfil, true) quando há sessão e perfil; (zero, false)
// quando não há sessão OU quando o perfil não existe — inconsistência de
// provisionamento tratada como "não autorizado" pelas telas com role.
// Falhas de transporte no lookup são logadas e também resultam em ausente;
// o chamador não distingue "deslogado" de "serviço indisponível".
func (s *Service) CurrentUser(ctx context.Context) (domain.UserProfile, bool) {
	claims, ok := middleware.GetUserClaimsFromContext(ctx)
	if !ok || claims.UserID == "" {
		return domain.UserProfile{}, false
	}

	profile, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		var notFoundErr *apperror.NotFoundError
		if !errors.As(err, &notFoundErr) {
			s.logger.Error("Falha ao resolver perfil do usuário corrente.", err)
		}
		return domain.UserProfile{}, false
	}

	return profile, true
}

// ListVeterinarios retorna todos os perfis de veterinários, ordenados por nome.
func (s *Service) ListVeterinarios(ctx context.Context) ([]domain.UserProfile, error) {
	return s.repo.ListVeterinarios(ctx)
}
