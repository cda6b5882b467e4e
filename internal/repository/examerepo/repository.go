package examerepo

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

// ExameRepository implementa a interface domain.ExameRepository.
type ExameRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewExameRepository cria uma nova instância do ExameRepository, injetando o DB.
func NewExameRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *ExameRepository {
	return &ExameRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// Save insere um novo exame e retorna a linha armazenada.
func (r *ExameRepository) Save(ctx context.Context, e domain.Exame) (domain.Exame, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	e.ID = uuid.NewString()
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt

	const insertSQL = `INSERT INTO exames (id, consulta_id, pet_id, veterinario_id, tipo_exame,
	                       data_exame, resultado, arquivo_url, observacoes, status, created_at, updated_at)
	                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	var consultaID sql.NullString
	if e.ConsultaID != "" {
		consultaID = sql.NullString{String: e.ConsultaID, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctxTimeout,
		insertSQL,
		e.ID,
		consultaID,
		e.PetID,
		e.VeterinarioID,
		e.TipoExame,
		e.DataExame,
		e.Resultado,
		e.ArquivoURL,
		e.Observacoes,
		e.Status,
		e.CreatedAt,
		e.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir exame no DB.", err)
		return domain.Exame{}, apperror.NewDBError("failed to insert exame", err)
	}

	return e, nil
}

// FindAll lista exames com as relações consulta, pet e veterinario anexadas,
// ordenados por data_exame decrescente. consulta_id é opcional na tabela,
// então o join de consulta é LEFT JOIN.
func (r *ExameRepository) FindAll(ctx context.Context, filter domain.ExameFilter) ([]domain.Exame, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT e.id, e.consulta_id, e.pet_id, e.veterinario_id, e.tipo_exame,
	                 e.data_exame, e.resultado, e.arquivo_url, e.observacoes, e.status,
	                 e.created_at, e.updated_at,
	                 c.id, c.pet_id, c.veterinario_id, c.tutor_id, c.data_consulta, c.motivo, c.status,
	                 p.id, p.user_id, p.name, p.species, p.breed, p.birth_date,
	                 p.weight, p.color, p.microchip, p.notes, p.created_at, p.updated_at,
	                 v.id, v.email, v.role, v.name, v.phone
	          FROM exames e
	          LEFT JOIN consultas c ON c.id = e.consulta_id
	          JOIN pets p ON p.id = e.pet_id
	          JOIN profiles v ON v.id = e.veterinario_id`

	args := []interface{}{}
	conds := []string{}
	if filter.PetID != "" {
		args = append(args, filter.PetID)
		conds = append(conds, fmt.Sprintf("e.pet_id = $%d", len(args)))
	}
	if filter.VeterinarioID != "" {
		args = append(args, filter.VeterinarioID)
		conds = append(conds, fmt.Sprintf("e.veterinario_id = $%d", len(args)))
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
	query += ` ORDER BY e.data_exame DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar exames no DB.", err)
		return nil, apperror.NewDBError("failed to list exames", err)
	}
	defer rows.Close()

	exames := make([]domain.Exame, 0)
	for rows.Next() {
		var e domain.Exame
		var pet domain.Pet
		var vet domain.UserProfile

		var consultaID, resultado, arquivoURL, observacoes sql.NullString
		var cID, cPetID, cVetID, cTutorID, cMotivo, cStatus sql.NullString
		var cData sql.NullTime
		var petBreed, petColor, petMicrochip, petNotes sql.NullString
		var petBirthDate sql.NullTime
		var petWeight sql.NullFloat64
		var vetPhone sql.NullString

		if err := rows.Scan(
			&e.ID, &consultaID, &e.PetID, &e.VeterinarioID, &e.TipoExame,
			&e.DataExame, &resultado, &arquivoURL, &observacoes, &e.Status,
			&e.CreatedAt, &e.UpdatedAt,
			&cID, &cPetID, &cVetID, &cTutorID, &cData, &cMotivo, &cStatus,
			&pet.ID, &pet.UserID, &pet.Name, &pet.Species, &petBreed, &petBirthDate,
			&petWeight, &petColor, &petMicrochip, &petNotes, &pet.CreatedAt, &pet.UpdatedAt,
			&vet.ID, &vet.Email, &vet.Role, &vet.Name, &vetPhone,
		); err != nil {
			return nil, apperror.NewDBError("failed to scan exame row", err)
		}

		e.ConsultaID = consultaID.String
		e.Resultado = resultado.String
		e.ArquivoURL = arquivoURL.String
		e.Observacoes = observacoes.String

		if cID.Valid {
			e.Consulta = &domain.Consulta{
				ID:            cID.String,
				PetID:         cPetID.String,
				VeterinarioID: cVetID.String,
				TutorID:       cTutorID.String,
				DataConsulta:  cData.Time,
				Motivo:        cMotivo.String,
				Status:        domain.ConsultaStatus(cStatus.String),
			}
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

		e.Pet = &pet
		e.Veterinario = &vet

		exames = append(exames, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate exame rows", err)
	}

	return exames, nil
}
