package perfilrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/cache"
	"petcuidado/internal/pkg/logger"
)

// Chave e TTL do cache da listagem de veterinários.
const (
	veterinariosCacheKey = "profiles:veterinarios"
	veterinariosCacheTTL = 5 * time.Minute
)

// ProfileRepository implementa a interface domain.ProfileRepository.
type ProfileRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewProfileRepository cria uma nova instância do ProfileRepository, injetando o DB e o cache.
func NewProfileRepository(db *sql.DB, cacheClient cache.Client, dbTimeout time.Duration, log logger.Logger) *ProfileRepository {
	return &ProfileRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

const profileColumns = `id, email, password_hash, role, name, phone, created_at, updated_at`

// Save insere um novo perfil no banco de dados.
func (r *ProfileRepository) Save(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	profile.ID = uuid.NewString()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	const insertSQL = `INSERT INTO profiles (id, email, password_hash, role, name, phone, created_at, updated_at)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.DB.ExecContext(
		ctxTimeout,
		insertSQL,
		profile.ID,
		profile.Email,
		profile.PasswordHash,
		profile.Role,
		profile.Name,
		profile.Phone,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		// 23505 = unique_violation (email duplicado)
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domain.UserProfile{}, apperror.NewConflictError(
				fmt.Sprintf("O email '%s' já está em uso.", profile.Email),
			)
		}
		r.logger.Error("Falha ao inserir perfil no DB.", err)
		return domain.UserProfile{}, apperror.NewDBError("failed to insert profile", err)
	}

	// Um novo veterinário invalida o cache da listagem.
	if profile.Role == domain.RoleVeterinario {
		if err := r.Cache.Delete(ctx, veterinariosCacheKey); err != nil && err != cache.ErrCacheMiss {
			r.logger.Warn("Falha ao invalidar cache de veterinários.", map[string]interface{}{"error": err.Error()})
		}
	}

	return profile, nil
}

// FindByEmail busca um perfil pelo endereço de e-mail.
func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (domain.UserProfile, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	row := r.DB.QueryRowContext(ctxTimeout, query, email)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserProfile{}, apperror.NewNotFoundError(
				fmt.Sprintf("Perfil com email '%s' não encontrado", email),
			)
		}
		r.logger.Error("Falha ao buscar perfil por email no DB.", err)
		return domain.UserProfile{}, apperror.NewDBError("failed to find profile by email", err)
	}

	return profile, nil
}

// FindByID busca um perfil pelo ID.
func (r *ProfileRepository) FindByID(ctx context.Context, id string) (domain.UserProfile, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	row := r.DB.QueryRowContext(ctxTimeout, query, id)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UserProfile{}, apperror.NewNotFoundError(
				fmt.Sprintf("Perfil com id '%s' não encontrado", id),
			)
		}
		r.logger.Error("Falha ao buscar perfil por id no DB.", err)
		return domain.UserProfile{}, apperror.NewDBError("failed to find profile by id", err)
	}

	return profile, nil
}

// ListVeterinarios retorna todos os perfis com role veterinario, ordenados por
// nome crescente. Usa estratégia Cache-Aside no Redis: a listagem é estável e
// lida em toda tela de agendamento.
func (r *ProfileRepository) ListVeterinarios(ctx context.Context) ([]domain.UserProfile, error) {
	// 1. Tentar obter do Cache (Redis)
	if cached, err := r.Cache.Get(ctx, veterinariosCacheKey); err == nil {
		var profiles []domain.UserProfile
		if json.Unmarshal([]byte(cached), &profiles) == nil {
			r.logger.Debug("Cache HIT na listagem de veterinários.", nil)
			return profiles, nil
		}
	}

	// 2. Cache MISS: buscar no DB
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + profileColumns + ` FROM profiles WHERE role = $1 ORDER BY name ASC`
	rows, err := r.DB.QueryContext(ctxTimeout, query, domain.RoleVeterinario)
	if err != nil {
		r.logger.Error("Falha ao listar veterinários no DB.", err)
		return nil, apperror.NewDBError("failed to list veterinarios", err)
	}
	defer rows.Close()

	profiles := make([]domain.UserProfile, 0)
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan veterinario row", err)
		}
		profiles = append(profiles, profile)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate veterinario rows", err)
	}

	// 3. Popular o cache (falha de cache não impede a resposta)
	if payload, err := json.Marshal(profiles); err == nil {
		if err := r.Cache.Set(ctx, veterinariosCacheKey, string(payload), veterinariosCacheTTL); err != nil {
			r.logger.Warn("Falha ao popular cache de veterinários.", map[string]interface{}{"error": err.Error()})
		}
	}

	return profiles, nil
}

// scanner cobre *sql.Row e *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(s scanner) (domain.UserProfile, error) {
	var p domain.UserProfile
	var phone sql.NullString
	if err := s.Scan(
		&p.ID,
		&p.Email,
		&p.PasswordHash,
		&p.Role,
		&p.Name,
		&phone,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return domain.UserProfile{}, err
	}
	p.Phone = phone.String
	return p, nil
}
