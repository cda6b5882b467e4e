package petrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
)

// PetRepository implementa a interface domain.PetRepository.
type PetRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPetRepository cria uma nova instância do PetRepository, injetando o DB.
func NewPetRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *PetRepository {
	return &PetRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

const petColumns = `id, user_id, name, species, breed, birth_date, weight, color, microchip, notes, created_at, updated_at`

// Save insere uma nova mascota no banco de dados e retorna a linha armazenada
// com id e timestamps gerados.
func (r *PetRepository) Save(ctx context.Context, pet domain.Pet) (domain.Pet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	pet.ID = uuid.NewString()
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = pet.CreatedAt

	const insertSQL = `INSERT INTO pets (id, user_id, name, species, breed, birth_date, weight, color, microchip, notes, created_at, updated_at)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.DB.ExecContext(
		ctxTimeout,
		insertSQL,
		pet.ID,
		pet.UserID,
		pet.Name,
		pet.Species,
		pet.Breed,
		nullTime(pet.BirthDate),
		nullFloat(pet.Weight),
		pet.Color,
		pet.Microchip,
		pet.Notes,
		pet.CreatedAt,
		pet.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir mascota no DB.", err)
		return domain.Pet{}, apperror.NewDBError("failed to insert pet", err)
	}

	return pet, nil
}

// FindByID busca uma mascota pelo ID.
func (r *PetRepository) FindByID(ctx context.Context, id string) (domain.Pet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + petColumns + ` FROM pets WHERE id = $1`
	row := r.DB.QueryRowContext(ctxTimeout, query, id)

	pet, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Pet{}, apperror.NewNotFoundError(fmt.Sprintf("Mascota com id '%s' não encontrada", id))
		}
		r.logger.Error("Falha ao buscar mascota por id no DB.", err)
		return domain.Pet{}, apperror.NewDBError("failed to find pet by id", err)
	}

	return pet, nil
}

// FindAll lista mascotas ordenadas por created_at decrescente.
// ownerUserID vazio retorna todas as linhas (visão admin).
func (r *PetRepository) FindAll(ctx context.Context, ownerUserID string) ([]domain.Pet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + petColumns + ` FROM pets`
	args := []interface{}{}
	if ownerUserID != "" {
		query += ` WHERE user_id = $1`
		args = append(args, ownerUserID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar mascotas no DB.", err)
		return nil, apperror.NewDBError("failed to list pets", err)
	}
	defer rows.Close()

	pets := make([]domain.Pet, 0)
	for rows.Next() {
		pet, err := scanPet(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan pet row", err)
		}
		pets = append(pets, pet)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate pet rows", err)
	}

	return pets, nil
}

// Update persiste a mascota já mesclada pelo serviço e retorna a linha final.
func (r *PetRepository) Update(ctx context.Context, pet domain.Pet) (domain.Pet, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `UPDATE pets
	                   SET name = $2, species = $3, breed = $4, birth_date = $5,
	                       weight = $6, color = $7, microchip = $8, notes = $9, updated_at = $10
	                   WHERE id = $1`

	res, err := r.DB.ExecContext(
		ctxTimeout,
		updateSQL,
		pet.ID,
		pet.Name,
		pet.Species,
		pet.Breed,
		nullTime(pet.BirthDate),
		nullFloat(pet.Weight),
		pet.Color,
		pet.Microchip,
		pet.Notes,
		pet.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao atualizar mascota no DB.", err)
		return domain.Pet{}, apperror.NewDBError("failed to update pet", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Pet{}, apperror.NewNotFoundError(fmt.Sprintf("Mascota com id '%s' não encontrada", pet.ID))
	}

	return pet, nil
}

// Delete remove a mascota. Registros clínicos dependentes NÃO são removidos em
// cascata: a decisão de varrer órfãos fica fora desta camada.
func (r *PetRepository) Delete(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM pets WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover mascota no DB.", err)
		return apperror.NewDBError("failed to delete pet", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFoundError(fmt.Sprintf("Mascota com id '%s' não encontrada", id))
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPet(s scanner) (domain.Pet, error) {
	var p domain.Pet
	var breed, color, microchip, notes sql.NullString
	var birthDate sql.NullTime
	var weight sql.NullFloat64

	if err := s.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Species,
		&breed,
		&birthDate,
		&weight,
		&color,
		&microchip,
		&notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return domain.Pet{}, err
	}

	p.Breed = breed.String
	p.Color = color.String
	p.Microchip = microchip.String
	p.Notes = notes.String
	if birthDate.Valid {
		t := birthDate.Time
		p.BirthDate = &t
	}
	if weight.Valid {
		w := weight.Float64
		p.Weight = &w
	}

	return p, nil
}

// birth_date é DATE; weight é NUMERIC opcional.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
