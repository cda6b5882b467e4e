package middleware

import (
	"context"
	"net/http"
	"strings"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/cache"
	"petcuidado/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote.
// Usamos um tipo próprio para garantir que não haja conflito com chaves string.
type ContextKey int

const (
	// UserClaimsKey é a chave usada para armazenar as claims do usuário no contexto.
	UserClaimsKey ContextKey = iota
)

// UserClaims representa os dados do usuário extraídos do token JWT,
// que serão anexados ao contexto.
type UserClaims struct {
	UserID string
	Role   domain.UserRole
}

// TokenService define o contrato de validação necessário para o middleware.
type TokenService interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// NewAuthMiddleware cria um middleware que valida um JWT, rejeita tokens
// presentes na denylist de logout e anexa as claims (UserID e Role) ao
// contexto da requisição.
func NewAuthMiddleware(tokenSvc TokenService, cacheClient cache.Client) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			// 1. Extrair o Token do Header Authorization: Bearer <token>
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, apperror.NewUnauthorizedError("Token de autorização ausente ou malformado.").Error(), http.StatusUnauthorized)
				return
			}
			tokenString := strings.TrimSpace(authHeader[len("Bearer "):])

			// 2. Validar o Token
			claims, err := tokenSvc.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, apperror.NewUnauthorizedError("Token inválido ou expirado.").Error(), http.StatusUnauthorized)
				return
			}

			// 3. Rejeitar tokens invalidados via logout (denylist no Redis).
			// Erros de cache diferentes de miss não derrubam a autenticação.
			if _, err := cacheClient.Get(r.Context(), DenylistKey(claims.ID)); err == nil {
				http.Error(w, apperror.NewUnauthorizedError("Sessão encerrada. Faça login novamente.").Error(), http.StatusUnauthorized)
				return
			}

			// 4. Anexar Claims ao Contexto.
			// Roles desconhecidas são rebaixadas para tutor (papel mais restritivo).
			userClaims := UserClaims{
				UserID: claims.UserID,
				Role:   domain.NormalizeRole(claims.Role),
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}

// CallerFromContext converte as claims do contexto no Caller usado pela
// camada de serviço para derivar o escopo de visibilidade.
func CallerFromContext(ctx context.Context) (domain.Caller, bool) {
	claims, ok := GetUserClaimsFromContext(ctx)
	if !ok || claims.UserID == "" {
		return domain.Caller{}, false
	}
	return domain.Caller{ID: claims.UserID, Role: claims.Role}, true
}

// DenylistKey monta a chave de cache da denylist de tokens encerrados.
func DenylistKey(jti string) string {
	return "denylist:" + jti
}

// PermissionMiddleware restringe o acesso ao recurso às roles informadas.
// Deve ser aplicado após o NewAuthMiddleware.
func PermissionMiddleware(requiredRoles ...domain.UserRole) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok {
				http.Error(w, apperror.NewUnauthorizedError("Autorização necessária. Token não processado.").Error(), http.StatusUnauthorized)
				return
			}

			for _, requiredRole := range requiredRoles {
				if claims.Role == requiredRole {
					next.ServeHTTP(w, r)
					return
				}
			}

			http.Error(w, apperror.NewForbiddenError("Você não tem a permissão necessária.").Error(), http.StatusForbidden)
		})
	}
}
