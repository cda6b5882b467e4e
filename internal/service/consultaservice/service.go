package consultaservice

import (
	"context"
	"strings"
	"time"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
)

// Service implementa as regras de negócio de consultas veterinárias.
type Service struct {
	repo   domain.ConsultaRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Consultas.
func NewService(repo domain.ConsultaRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// CreateInput representa os dados de entrada para agendamento de consulta.
type CreateInput struct {
	PetID         string
	VeterinarioID string
	TutorID       string // considerado apenas quando o chamador não é tutor
	DataConsulta  time.Time
	Motivo        string
	Sintomas      string
	Diagnostico   string
	Tratamento    string
	Observacoes   string
	Status        domain.ConsultaStatus
}

// Create agenda uma consulta. Tutores sempre agendam para si mesmos; o
// tutor_id informado só é respeitado para veterinários e admins.
func (s *Service) Create(ctx context.Context, caller domain.Caller, in CreateInput) (domain.Consulta, error) {
	if strings.TrimSpace(in.PetID) == "" {
		return domain.Consulta{}, apperror.NewValidationError("Pet é obrigatório.")
	}
	if strings.TrimSpace(in.VeterinarioID) == "" {
		return domain.Consulta{}, apperror.NewValidationError("Veterinário é obrigatório.")
	}
	if in.DataConsulta.IsZero() {
		return domain.Consulta{}, apperror.NewValidationError("Data da consulta é obrigatória.")
	}
	if strings.TrimSpace(in.Motivo) == "" {
		return domain.Consulta{}, apperror.NewValidationError("Motivo é obrigatório.")
	}

	status := in.Status
	if status == "" {
		status = domain.ConsultaAgendada
	}
	if !domain.ValidConsultaStatus(status) {
		return domain.Consulta{}, apperror.NewValidationError("Status de consulta inválido.")
	}

	tutorID := strings.TrimSpace(in.TutorID)
	if caller.Role == domain.RoleTutor || tutorID == "" {
		tutorID = caller.ID
	}

	consulta := domain.Consulta{
		PetID:         strings.TrimSpace(in.PetID),
		VeterinarioID: strings.TrimSpace(in.VeterinarioID),
		TutorID:       tutorID,
		DataConsulta:  in.DataConsulta,
		Motivo:        strings.TrimSpace(in.Motivo),
		Sintomas:      strings.TrimSpace(in.Sintomas),
		Diagnostico:   strings.TrimSpace(in.Diagnostico),
		Tratamento:    strings.TrimSpace(in.Tratamento),
		Observacoes:   strings.TrimSpace(in.Observacoes),
		Status:        status,
	}

	created, err := s.repo.Save(ctx, consulta)
	if err != nil {
		return domain.Consulta{}, err
	}

	s.logger.Info("Consulta agendada.", map[string]interface{}{
		"consulta_id": created.ID,
		"pet_id":      created.PetID,
		"status":      created.Status,
	})
	return created, nil
}

// List retorna as consultas visíveis ao chamador, com pet, veterinário e
// tutor anexados, ordenadas por data_consulta decrescente. Para não-admins o
// filtro de participante é aplicado aqui: o chamador vê a união das linhas em
// que é tutor ou veterinário.
func (s *Service) List(ctx context.Context, caller domain.Caller, petID string) ([]domain.Consulta, error) {
	filter := domain.ConsultaFilter{PetID: strings.TrimSpace(petID)}
	if !caller.IsAdmin() {
		filter.ParticipantID = caller.ID
	}
	return s.repo.FindAll(ctx, filter)
}
