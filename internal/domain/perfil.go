package domain

import (
	"context"
	"time"
)

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

// Constantes para os papéis de usuário do PetCuidado.
const (
	RoleAdmin       UserRole = "admin"
	RoleTutor       UserRole = "tutor"
	RoleVeterinario UserRole = "veterinario"
)

// NormalizeRole converte uma string de role para UserRole.
// Qualquer valor desconhecido é tratado como o papel mais restritivo (tutor).
func NormalizeRole(s string) UserRole {
	switch UserRole(s) {
	case RoleAdmin, RoleTutor, RoleVeterinario:
		return UserRole(s)
	default:
		return RoleTutor
	}
}

// UserProfile representa o perfil de um usuário autenticado (tabela profiles).
type UserProfile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Oculta o hash da senha no JSON de resposta
	Role         UserRole  `json:"role"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Caller identifica quem está executando uma operação (extraído do JWT).
// Os serviços derivam o escopo de visibilidade a partir dele, nunca de
// parâmetros soltos vindos do cliente.
type Caller struct {
	ID   string
	Role UserRole
}

// IsAdmin indica se o chamador tem visibilidade irrestrita.
func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// ProfileRepository define o contrato de persistência para a entidade UserProfile.
type ProfileRepository interface {
	Save(ctx context.Context, profile UserProfile) (UserProfile, error)
	FindByEmail(ctx context.Context, email string) (UserProfile, error)
	FindByID(ctx context.Context, id string) (UserProfile, error)
	ListVeterinarios(ctx context.Context) ([]UserProfile, error)
}
