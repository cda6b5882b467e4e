package dashboardrepo

import (
	"context"
	"database/sql"
	"time"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
)

// DashboardRepository implementa a interface domain.DashboardRepository com
// queries de contagem (COUNT) dedicadas — nunca carrega as linhas.
type DashboardRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewDashboardRepository cria uma nova instância do DashboardRepository, injetando o DB.
func NewDashboardRepository(db *sql.DB, dbTimeout time.Duration, log logger.Logger) *DashboardRepository {
	return &DashboardRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    log,
	}
}

// CountPets conta mascotas. ownerUserID vazio conta todas (visão admin).
func (r *DashboardRepository) CountPets(ctx context.Context, ownerUserID string) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var count int
	var err error
	if ownerUserID == "" {
		err = r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM pets`).Scan(&count)
	} else {
		err = r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM pets WHERE user_id = $1`, ownerUserID).Scan(&count)
	}
	if err != nil {
		return 0, apperror.NewDBError("failed to count pets", err)
	}
	return count, nil
}

// CountConsultasBetween conta consultas com data_consulta em [from, to).
// tutorID vazio não restringe por tutor (visão admin).
func (r *DashboardRepository) CountConsultasBetween(ctx context.Context, from, to time.Time, tutorID string) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT COUNT(*) FROM consultas WHERE data_consulta >= $1 AND data_consulta < $2`
	args := []interface{}{from, to}
	if tutorID != "" {
		query += ` AND tutor_id = $3`
		args = append(args, tutorID)
	}

	var count int
	if err := r.DB.QueryRowContext(ctxTimeout, query, args...).Scan(&count); err != nil {
		return 0, apperror.NewDBError("failed to count consultas", err)
	}
	return count, nil
}

// CountVacinasComDoseVencida conta vacinas com proxima_dose não nula e <= until.
// Contagem global, sem escopo por usuário.
func (r *DashboardRepository) CountVacinasComDoseVencida(ctx context.Context, until time.Time) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var count int
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COUNT(*) FROM vacinas WHERE proxima_dose IS NOT NULL AND proxima_dose <= $1`,
		until,
	).Scan(&count)
	if err != nil {
		return 0, apperror.NewDBError("failed to count vacinas pendentes", err)
	}
	return count, nil
}

// CountPrescricoesAtivas conta prescrições com status ativa. Contagem global.
func (r *DashboardRepository) CountPrescricoesAtivas(ctx context.Context) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var count int
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COUNT(*) FROM prescricoes WHERE status = $1`,
		domain.PrescricaoAtiva,
	).Scan(&count)
	if err != nil {
		return 0, apperror.NewDBError("failed to count prescricoes ativas", err)
	}
	return count, nil
}
