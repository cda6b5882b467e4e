package exameservice

import (
	"context"
	"strings"
	"time"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
)

// Service implementa as regras de negócio de exames.
type Service struct {
	repo   domain.ExameRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Exames.
func NewService(repo domain.ExameRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// CreateInput representa os dados de entrada para solicitação de exame.
// ConsultaID é opcional: exames podem ser solicitados fora de uma consulta.
type CreateInput struct {
	ConsultaID    string
	PetID         string
	VeterinarioID string // considerado apenas quando o chamador é admin
	TipoExame     string
	DataExame     time.Time
	Resultado     string
	ArquivoURL    string
	Observacoes   string
	Status        domain.ExameStatus
}

// Create solicita um exame para uma mascota.
func (s *Service) Create(ctx context.Context, caller domain.Caller, in CreateInput) (domain.Exame, error) {
	if strings.TrimSpace(in.PetID) == "" {
		return domain.Exame{}, apperror.NewValidationError("Pet é obrigatório.")
	}
	if strings.TrimSpace(in.TipoExame) == "" {
		return domain.Exame{}, apperror.NewValidationError("Tipo de exame é obrigatório.")
	}
	if in.DataExame.IsZero() {
		return domain.Exame{}, apperror.NewValidationError("Data do exame é obrigatória.")
	}

	status := in.Status
	if status == "" {
		status = domain.ExameSolicitado
	}
	if !domain.ValidExameStatus(status) {
		return domain.Exame{}, apperror.NewValidationError("Status de exame inválido.")
	}

	vetID := caller.ID
	if caller.IsAdmin() && strings.TrimSpace(in.VeterinarioID) != "" {
		vetID = strings.TrimSpace(in.VeterinarioID)
	}

	exame := domain.Exame{
		ConsultaID:    strings.TrimSpace(in.ConsultaID),
		PetID:         strings.TrimSpace(in.PetID),
		VeterinarioID: vetID,
		TipoExame:     strings.TrimSpace(in.TipoExame),
		DataExame:     in.DataExame,
		Resultado:     strings.TrimSpace(in.Resultado),
		ArquivoURL:    strings.TrimSpace(in.ArquivoURL),
		Observacoes:   strings.TrimSpace(in.Observacoes),
		Status:        status,
	}

	created, err := s.repo.Save(ctx, exame)
	if err != nil {
		return domain.Exame{}, err
	}

	s.logger.Info("Exame solicitado.", map[string]interface{}{
		"exame_id": created.ID,
		"pet_id":   created.PetID,
	})
	return created, nil
}

// List retorna os exames visíveis ao chamador, com consulta, pet e
// veterinário anexados, ordenados por data_exame decrescente. Escopo por
// papel: admin vê tudo, veterinário vê os que solicitou, tutor vê os das
// próprias mascotas.
func (s *Service) List(ctx context.Context, caller domain.Caller, petID string) ([]domain.Exame, error) {
	filter := domain.ExameFilter{PetID: strings.TrimSpace(petID)}
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
