package vacinarepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
)

// VacinaRepository implementa a interface domain.VacinaRepository.
type VacinaRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewVacinaRepository cria uma nova instância do VacinaRepository, injetando o DB.
func NewVacinaRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *VacinaRepository {
	return &VacinaRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save insere um novo registro de vacinação e retorna a linha armazenada.
func (r *VacinaRepository) Save(ctx context.Context, v domain.Vacina) (domain.Vacina, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	v.ID = uuid.NewString()
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt

	const insertSQL = `INSERT INTO vacinas (id, pet_id, nome_vacina, data_aplicacao, proxima_dose,
	                       veterinario_id, lote, fabricante, observacoes, created_at, updated_at)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	var vetID sql.NullString
	if v.VeterinarioID != "" {
		vetID = sql.NullString{String: v.VeterinarioID, Valid: true}
	}
	var proximaDose sql.NullTime
	if v.ProximaDose != nil {
		proximaDose = sql.NullTime{Time: *v.ProximaDose, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctxTimeout,
		insertSQL,
		v.ID,
		v.PetID,
		v.NomeVacina,
		v.DataAplicacao,
		proximaDose,
		vetID,
		v.Lote,
		v.Fabricante,
		v.Observacoes,
		v.CreatedAt,
		v.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir vacina no DB.", err)
		return domain.Vacina{}, apperror.NewDBError("failed to insert vacina", err)
	}

	return v, nil
}

// FindAll lista vacinas com as relações pet e veterinario anexadas, ordenadas
// por data_aplicacao decrescente. veterinario_id é opcional na tabela, então o
// join de perfil é LEFT JOIN.
func (r *VacinaRepository) FindAll(ctx context.Context, filter domain.VacinaFilter) ([]domain.Vacina, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT va.id, va.pet_id, va.nome_vacina, va.data_aplicacao, va.proxima_dose,
	                 va.veterinario_id, va.lote, va.fabricante, va.observacoes, va.created_at, va.updated_at,
	                 p.id, p.user_id, p.name, p.species, p.breed, p.birth_date,
	                 p.weight, p.color, p.microchip, p.notes, p.created_at, p.updated_at,
	                 v.id, v.email, v.role, v.name, v.phone
	          FROM vacinas va
	          JOIN pets p ON p.id = va.pet_id
	          LEFT JOIN profiles v ON v.id = va.veterinario_id`

	args := []interface{}{}
	if filter.PetID != "" {
		args = append(args, filter.PetID)
		query += ` WHERE va.pet_id = $1`
	}
	query += ` ORDER BY va.data_aplicacao DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar vacinas no DB.", err)
		return nil, apperror.NewDBError("failed to list vacinas", err)
	}
	defer rows.Close()

	vacinas := make([]domain.Vacina, 0)
	for rows.Next() {
		var v domain.Vacina
		var pet domain.Pet

		var vetID, lote, fabricante, observacoes sql.NullString
		var proximaDose sql.NullTime
		var petBreed, petColor, petMicrochip, petNotes sql.NullString
		var petBirthDate sql.NullTime
		var petWeight sql.NullFloat64
		var profID, profEmail, profRole, profName, profPhone sql.NullString

		if err := rows.Scan(
			&v.ID, &v.PetID, &v.NomeVacina, &v.DataAplicacao, &proximaDose,
			&vetID, &lote, &fabricante, &observacoes, &v.CreatedAt, &v.UpdatedAt,
			&pet.ID, &pet.UserID, &pet.Name, &pet.Species, &petBreed, &petBirthDate,
			&petWeight, &petColor, &petMicrochip, &petNotes, &pet.CreatedAt, &pet.UpdatedAt,
			&profID, &profEmail, &profRole, &profName, &profPhone,
		); err != nil {
			return nil, apperror.NewDBError("failed to scan vacina row", err)
		}

		v.VeterinarioID = vetID.String
		v.Lote = lote.String
		v.Fabricante = fabricante.String
		v.Observacoes = observacoes.String
		if proximaDose.Valid {
			t := proximaDose.Time
			v.ProximaDose = &t
		}

		pet.Breed = petBreed.String
		pet.Color = petColor.String
		pet.Microchip = petMicrochip.String
		pet.Notes = petNotes.String
		if petBirthDate.Valid {
			t := petBirthDate.Time
			pet.BirthDate = &t
		}
		if petWeight.Valid {
			w := petWeight.Float64
			pet.Weight = &w
		}
		v.Pet = &pet

		if profID.Valid {
			v.Veterinario = &domain.UserProfile{
				ID:    profID.String,
				Email: profEmail.String,
				Role:  domain.UserRole(profRole.String),
				Name:  profName.String,
				Phone: profPhone.String,
			}
		}

		vacinas = append(vacinas, v)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate vacina rows", err)
	}

	return vacinas, nil
}
