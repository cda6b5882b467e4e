package prescricaorepo

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

// PrescricaoRepository implementa a interface domain.PrescricaoRepository.
type PrescricaoRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewPrescricaoRepository cria uma nova instância do PrescricaoRepository, injetando o DB.
func NewPrescricaoRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *PrescricaoRepository {
	return &PrescricaoRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save insere uma nova prescrição e retorna a linha armazenada.
func (r *PrescricaoRepository) Save(ctx context.Context, p domain.Prescricao) (domain.Prescricao, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt

	const insertSQL = `INSERT INTO prescricoes (id, consulta_id, pet_id, veterinario_id, medicamento,
	                       dosagem, frequencia, duracao, instrucoes, data_inicio, data_fim, status, created_at, updated_at)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	var dataFim sql.NullTime
	if p.DataFim != nil {
		dataFim = sql.NullTime{Time: *p.DataFim, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctxTimeout,
		insertSQL,
		p.ID,
		p.ConsultaID,
		p.PetID,
		p.VeterinarioID,
		p.Medicamento,
		p.Dosagem,
		p.Frequencia,
		p.Duracao,
		p.Instrucoes,
		p.DataInicio,
		dataFim,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir prescrição no DB.", err)
		return domain.Prescricao{}, apperror.NewDBError("failed to insert prescricao", err)
	}

	return p, nil
}

// FindAll lista prescrições com as relações consulta, pet e veterinario anexadas,
// ordenadas por created_at decrescente. OwnerUserID restringe via dono da mascota.
func (r *PrescricaoRepository) FindAll(ctx context.Context, filter domain.PrescricaoFilter) ([]domain.Prescricao, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT pr.id, pr.consulta_id, pr.pet_id, pr.veterinario_id, pr.medicamento,
	                 pr.dosagem, pr.frequencia, pr.duracao, pr.instrucoes, pr.data_inicio,
	                 pr.data_fim, pr.status, pr.created_at, pr.updated_at,
	                 c.id, c.pet_id, c.veterinario_id, c.tutor_id, c.data_consulta, c.motivo, c.status,
	                 p.id, p.user_id, p.name, p.species, p.breed, p.birth_date,
	                 p.weight, p.color, p.microchip, p.notes, p.created_at, p.updated_at,
	                 v.id, v.email, v.role, v.name, v.phone
	          FROM prescricoes pr
	          JOIN consultas c ON c.id = pr.consulta_id
	          JOIN pets p ON p.id = pr.pet_id
	          JOIN profiles v ON v.id = pr.veterinario_id`

	args := []interface{}{}
	conds := []string{}
	if filter.PetID != "" {
		args = append(args, filter.PetID)
		conds = append(conds, fmt.Sprintf("pr.pet_id = $%d", len(args)))
	}
	if filter.VeterinarioID != "" {
		args = append(args, filter.VeterinarioID)
		conds = append(conds, fmt.Sprintf("pr.veterinario_id = $%d", len(args)))
	}
	if filter.OwnerUserID != "" {
		args = append(args, filter.OwnerUserID)
		conds = append(conds, fmt.Sprintf("p.user_id = $%d", len(args)))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += ` ORDER BY pr.created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar prescrições no DB.", err)
		return nil, apperror.NewDBError("failed to list prescricoes", err)
	}
	defer rows.Close()

	prescricoes := make([]domain.Prescricao, 0)
	for rows.Next() {
		var p domain.Prescricao
		var consulta domain.Consulta
		var pet domain.Pet
		var vet domain.UserProfile

		var instrucoes sql.NullString
		var dataFim sql.NullTime
		var petBreed, petColor, petMicrochip, petNotes sql.NullString
		var petBirthDate sql.NullTime
		var petWeight sql.NullFloat64
		var vetPhone sql.NullString

		if err := rows.Scan(
			&p.ID, &p.ConsultaID, &p.PetID, &p.VeterinarioID, &p.Medicamento,
			&p.Dosagem, &p.Frequencia, &p.Duracao, &instrucoes, &p.DataInicio,
			&dataFim, &p.Status, &p.CreatedAt, &p.UpdatedAt,
			&consulta.ID, &consulta.PetID, &consulta.VeterinarioID, &consulta.TutorID,
			&consulta.DataConsulta, &consulta.Motivo, &consulta.Status,
			&pet.ID, &pet.UserID, &pet.Name, &pet.Species, &petBreed, &petBirthDate,
			&petWeight, &petColor, &petMicrochip, &petNotes, &pet.CreatedAt, &pet.UpdatedAt,
			&vet.ID, &vet.Email, &vet.Role, &vet.Name, &vetPhone,
		); err != nil {
			return nil, apperror.NewDBError("failed to scan prescricao row", err)
		}

		p.Instrucoes = instrucoes.String
		if dataFim.Valid {
			t := dataFim.Time
			p.DataFim = &t
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

		vet.Phone = vetPhone.String

		p.Consulta = &consulta
		p.Pet = &pet
		p.Veterinario = &vet

		prescricoes = append(prescricoes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate prescricao rows", err)
	}

	return prescricoes, nil
}
