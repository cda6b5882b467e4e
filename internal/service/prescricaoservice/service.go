package prescricaoservice

import (
	"context"
	"strings"
	"time"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
)

// Service implementa as regras de negócio de prescrições.
type Service struct {
	repo   domain.PrescricaoRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Prescrições.
func NewService(repo domain.PrescricaoRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// CreateInput representa os dados de entrada para emissão de prescrição.
type CreateInput struct {
	ConsultaID    string
	PetID         string
	VeterinarioID string // considerado apenas quando o chamador é admin
	Medicamento   string
	Dosagem       string
	Frequencia    string
	Duracao       string
	Instrucoes    string
	DataInicio    time.Time
	DataFim       *time.Time
	Status        domain.PrescricaoStatus
}

// Create emite uma prescrição originada de uma consulta. O veterinário
// emissor é sempre o próprio chamador, exceto para admins.
func (s *Service) Create(ctx context.Context, caller domain.Caller, in CreateInput) (domain.Prescricao, error) {
	if strings.TrimSpace(in.ConsultaID) == "" {
		return domain.Prescricao{}, apperror.NewValidationError("Consulta é obrigatória.")
	}
	if strings.TrimSpace(in.PetID) == "" {
		return domain.Prescricao{}, apperror.NewValidationError("Pet é obrigatório.")
	}
	if strings.TrimSpace(in.Medicamento) == "" {
		return domain.Prescricao{}, apperror.NewValidationError("Medicamento é obrigatório.")
	}
	if strings.TrimSpace(in.Dosagem) == "" {
		return domain.Prescricao{}, apperror.NewValidationError("Dosagem é obrigatória.")
	}
	if strings.TrimSpace(in.Frequencia) == "" {
		return domain.Prescricao{}, apperror.NewValidationError("Frequência é obrigatória.")
	}
	if strings.TrimSpace(in.Duracao) == "" {
		return domain.Prescricao{}, apperror.NewValidationError("Duração é obrigatória.")
	}
	if in.DataInicio.IsZero() {
		return domain.Prescricao{}, apperror.NewValidationError("Data de início é obrigatória.")
	}

	status := in.Status
	if status == "" {
		status = domain.PrescricaoAtiva
	}
	if !domain.ValidPrescricaoStatus(status) {
		return domain.Prescricao{}, apperror.NewValidationError("Status de prescrição inválido.")
	}

	vetID := caller.ID
	if caller.IsAdmin() && strings.TrimSpace(in.VeterinarioID) != "" {
		vetID = strings.TrimSpace(in.VeterinarioID)
	}

	prescricao := domain.Prescricao{
		ConsultaID:    strings.TrimSpace(in.ConsultaID),
		PetID:         strings.TrimSpace(in.PetID),
		VeterinarioID: vetID,
		Medicamento:   strings.TrimSpace(in.Medicamento),
		Dosagem:       strings.TrimSpace(in.Dosagem),
		Frequencia:    strings.TrimSpace(in.Frequencia),
		Duracao:       strings.TrimSpace(in.Duracao),
		Instrucoes:    strings.TrimSpace(in.Instrucoes),
		DataInicio:    in.DataInicio,
		DataFim:       in.DataFim,
		Status:        status,
	}

	created, err := s.repo.Save(ctx, prescricao)
	if err != nil {
		return domain.Prescricao{}, err
	}

	s.logger.Info("Prescrição emitida.", map[string]interface{}{
		"prescricao_id": created.ID,
		"pet_id":        created.PetID,
	})
	return created, nil
}

// List retorna as prescrições visíveis ao chamador, com consulta, pet e
// veterinário anexados, ordenadas por created_at decrescente. Escopo por
// papel: admin vê tudo, veterinário vê as que emitiu, tutor vê as das
// próprias mascotas.
func (s *Service) List(ctx context.Context, caller domain.Caller, petID string) ([]domain.Prescricao, error) {
	filter := domain.PrescricaoFilter{PetID: strings.TrimSpace(petID)}
	switch caller.Role {
	case domain.RoleAdmin:
		// sem restrição adicional
	case domain.RoleVeterinario:
		filter.VeterinarioID = caller.ID
	default:
		filter.OwnerUserID = caller.ID
	}
	return s.repo.FindAll(ctx, filter)
}
