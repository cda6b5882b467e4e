package vacinaservice

import (
	"context"
	"strings"
	"time"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
)

// Service implementa as regras de negócio de registros de vacinação.
type Service struct {
	repo   domain.VacinaRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Vacinas.
func NewService(repo domain.VacinaRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// CreateInput representa os dados de entrada para registro de vacinação.
type CreateInput struct {
	PetID         string
	NomeVacina    string
	DataAplicacao time.Time
	ProximaDose   *time.Time
	VeterinarioID string
	Lote          string
	Fabricante    string
	Observacoes   string
}

// Create registra uma vacinação aplicada.
func (s *Service) Create(ctx context.Context, caller domain.Caller, in CreateInput) (domain.Vacina, error) {
	if strings.TrimSpace(in.PetID) == "" {
		return domain.Vacina{}, apperror.NewValidationError("Pet é obrigatório.")
	}
	if strings.TrimSpace(in.NomeVacina) == "" {
		return domain.Vacina{}, apperror.NewValidationError("Nome da vacina é obrigatório.")
	}
	if in.DataAplicacao.IsZero() {
		return domain.Vacina{}, apperror.NewValidationError("Data de aplicação é obrigatória.")
	}

	// Veterinário aplicador: quando o chamador é veterinário e não informou
	// outro, assume o próprio.
	vetID := strings.TrimSpace(in.VeterinarioID)
	if vetID == "" && caller.Role == domain.RoleVeterinario {
		vetID = caller.ID
	}

	vacina := domain.Vacina{
		PetID:         strings.TrimSpace(in.PetID),
		NomeVacina:    strings.TrimSpace(in.NomeVacina),
		DataAplicacao: in.DataAplicacao,
		ProximaDose:   in.ProximaDose,
		VeterinarioID: vetID,
		Lote:          strings.TrimSpace(in.Lote),
		Fabricante:    strings.TrimSpace(in.Fabricante),
		Observacoes:   strings.TrimSpace(in.Observacoes),
	}

	created, err := s.repo.Save(ctx, vacina)
	if err != nil {
		return domain.Vacina{}, err
	}

	s.logger.Info("Vacinação registrada.", map[string]interface{}{
		"vacina_id": created.ID,
		"pet_id":    created.PetID,
	})
	return created, nil
}

// List retorna vacinas ordenadas por data_aplicacao decrescente, com pet e
// veterinário anexados. Esta listagem não tem escopo por usuário: sem petID
// qualquer papel recebe todas as linhas. A restrição por dono fica a cargo da
// tela chamadora — lacuna herdada do produto, mantida até decisão contrária.
func (s *Service) List(ctx context.Context, caller domain.Caller, petID string) ([]domain.Vacina, error) {
	return s.repo.FindAll(ctx, domain.VacinaFilter{PetID: strings.TrimSpace(petID)})
}
