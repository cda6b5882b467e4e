package consultarepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
)

// ConsultaRepository implementa a interface domain.ConsultaRepository.
type ConsultaRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewConsultaRepository cria uma nova instância do ConsultaRepository, injetando o DB.
func NewConsultaRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *ConsultaRepository {
	return &ConsultaRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save insere uma nova consulta e retorna a linha armazenada com id e timestamps gerados.
func (r *ConsultaRepository) Save(ctx context.Context, c domain.Consulta) (domain.Consulta, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt

	const insertSQL = `INSERT INTO consultas (id, pet_id, veterinario_id, tutor_id, data_consulta,
	                       motivo, sintomas, diagnostico, tratamento, observacoes, status, created_at, updated_at)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.DB.ExecContext(
		ctxTimeout,
		insertSQL,
		c.ID,
		c.PetID,
		c.VeterinarioID,
		c.TutorID,
		c.DataConsulta,
		c.Motivo,
		c.Sintomas,
		c.Diagnostico,
		c.Tratamento,
		c.Observacoes,
		c.Status,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir consulta no DB.", err)
		return domain.Consulta{}, apperror.NewDBError("failed to insert consulta", err)
	}

	return c, nil
}

// FindAll lista consultas com as relações pet, veterinario e tutor anexadas,
// ordenadas por data_consulta decrescente. ParticipantID casa tutor_id OU
// veterinario_id (união de linhas, sem duplicatas).
func (r *ConsultaRepository) FindAll(ctx context.Context, filter domain.ConsultaFilter) ([]domain.Consulta, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT c.id, c.pet_id, c.veterinario_id, c.tutor_id, c.data_consulta,
	                 c.motivo, c.sintomas, c.diagnostico, c.tratamento, c.observacoes,
	                 c.status, c.created_at, c.updated_at,
	                 p.id, p.user_id, p.name, p.species, p.breed, p.birth_date,
	                 p.weight, p.color, p.microchip, p.notes, p.created_at, p.updated_at,
	                 v.id, v.email, v.role, v.name, v.phone,
	                 t.id, t.email, t.role, t.name, t.phone
	          FROM consultas c
	          JOIN pets p ON p.id = c.pet_id
	          JOIN profiles v ON v.id = c.veterinario_id
	          JOIN profiles t ON t.id = c.tutor_id`

	args := []interface{}{}
	conds := []string{}
	if filter.PetID != "" {
		args = append(args, filter.PetID)
		conds = append(conds, fmt.Sprintf("c.pet_id = $%d", len(args)))
	}
	if filter.ParticipantID != "" {
		args = append(args, filter.ParticipantID)
		n := len(args)
		conds = append(conds, fmt.Sprintf("(c.tutor_id = $%d OR c.veterinario_id = $%d)", n, n))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += ` ORDER BY c.data_consulta DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar consultas no DB.", err)
		return nil, apperror.NewDBError("failed to list consultas", err)
	}
	defer rows.Close()

	consultas := make([]domain.Consulta, 0)
	for rows.Next() {
		var c domain.Consulta
		var pet domain.Pet
		var vet, tutor domain.UserProfile

		var sintomas, diagnostico, tratamento, observacoes sql.NullString
		var petBreed, petColor, petMicrochip, petNotes sql.NullString
		var petBirthDate sql.NullTime
		var petWeight sql.NullFloat64
		var vetPhone, tutorPhone sql.NullString

		if err := rows.Scan(
			&c.ID, &c.PetID, &c.VeterinarioID, &c.TutorID, &c.DataConsulta,
			&c.Motivo, &sintomas, &diagnostico, &tratamento, &observacoes,
			&c.Status, &c.CreatedAt, &c.UpdatedAt,
			&pet.ID, &pet.UserID, &pet.Name, &pet.Species, &petBreed, &petBirthDate,
			&petWeight, &petColor, &petMicrochip, &petNotes, &pet.CreatedAt, &pet.UpdatedAt,
			&vet.ID, &vet.Email, &vet.Role, &vet.Name, &vetPhone,
			&tutor.ID, &tutor.Email, &tutor.Role, &tutor.Name, &tutorPhone,
		); err != nil {
			return nil, apperror.NewDBError("failed to scan consulta row", err)
		}

		c.Sintomas = sintomas.String
		c.Diagnostico = diagnostico.String
		c.Tratamento = tratamento.String
		c.Observacoes = observacoes.String

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

		vet.Phone = vetPhone.String
		tutor.Phone = tutorPhone.String

		c.Pet = &pet
		c.Veterinario = &vet
		c.Tutor = &tutor

		consultas = append(consultas, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate consulta rows", err)
	}

	return consultas, nil
}
