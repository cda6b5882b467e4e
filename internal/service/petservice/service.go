package petservice

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
)

// Service implementa as regras de negócio de mascotas. O escopo de
// visibilidade é derivado do Caller aqui dentro: um tutor nunca consegue uma
// listagem global, mesmo que o handler esqueça de filtrar.
type Service struct {
	repo   domain.PetRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Mascotas.
func NewService(repo domain.PetRepository, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// CreateInput representa os dados de entrada para cadastro de mascota.
type CreateInput struct {
	OwnerUserID string // considerado apenas quando o chamador é admin
	Name        string
	Species     domain.Species
	Breed       string
	BirthDate   *time.Time
	Weight      *float64
	Color       string
	Microchip   string
	Notes       string
}

// Create cadastra uma mascota após validações de negócio.
func (s *Service) Create(ctx context.Context, caller domain.Caller, in CreateInput) (domain.Pet, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.Pet{}, apperror.NewValidationError("O nome da mascota é obrigatório.")
	}
	if !domain.ValidSpecies(in.Species) {
		return domain.Pet{}, apperror.NewValidationError("Espécie inválida: use 'cao' ou 'gato'.")
	}
	if in.Weight != nil && *in.Weight <= 0 {
		return domain.Pet{}, apperror.NewValidationError("O peso, quando informado, deve ser positivo.")
	}

	// Admin pode cadastrar em nome de um tutor; os demais sempre cadastram
	// para si mesmos.
	ownerID := caller.ID
	if caller.IsAdmin() && strings.TrimSpace(in.OwnerUserID) != "" {
		ownerID = strings.TrimSpace(in.OwnerUserID)
	}

	pet := domain.Pet{
		UserID:    ownerID,
		Name:      in.Name,
		Species:   in.Species,
		Breed:     strings.TrimSpace(in.Breed),
		BirthDate: in.BirthDate,
		Weight:    in.Weight,
		Color:     strings.TrimSpace(in.Color),
		Microchip: strings.TrimSpace(in.Microchip),
		Notes:     strings.TrimSpace(in.Notes),
	}

	created, err := s.repo.Save(ctx, pet)
	if err != nil {
		return domain.Pet{}, err
	}

	s.logger.Info("Mascota cadastrada.", map[string]interface{}{"pet_id": created.ID, "user_id": created.UserID})
	return created, nil
}

// List retorna as mascotas visíveis ao chamador, ordenadas por created_at
// decrescente: todas para admin, próprias para os demais papéis.
func (s *Service) List(ctx context.Context, caller domain.Caller) ([]domain.Pet, error) {
	if caller.IsAdmin() {
		return s.repo.FindAll(ctx, "")
	}
	return s.repo.FindAll(ctx, caller.ID)
}

// GetByID busca uma mascota pelo ID. Tutores só enxergam as próprias mascotas;
// a existência de mascotas alheias não é revelada (NotFound).
func (s *Service) GetByID(ctx context.Context, caller domain.Caller, id string) (domain.Pet, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Pet{}, apperror.NewValidationError("O ID da mascota deve ser um UUID válido.")
	}

	pet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Pet{}, err
	}

	if caller.Role == domain.RoleTutor && pet.UserID != caller.ID {
		return domain.Pet{}, apperror.NewNotFoundError("Mascota com id '" + id + "' não encontrada")
	}

	return pet, nil
}

// Update aplica um update parcial (campos nil não são tocados) e carimba
// updated_at. Apenas o dono ou um admin podem atualizar.
func (s *Service) Update(ctx context.Context, caller domain.Caller, id string, upd domain.PetUpdate) (domain.Pet, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Pet{}, apperror.NewValidationError("O ID da mascota deve ser um UUID válido.")
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Pet{}, err
	}
	if !caller.IsAdmin() && current.UserID != caller.ID {
		return domain.Pet{}, apperror.NewForbiddenError("Apenas o dono ou um admin podem atualizar a mascota.")
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return domain.Pet{}, apperror.NewValidationError("O nome da mascota não pode ser vazio.")
		}
		current.Name = name
	}
	if upd.Species != nil {
		if !domain.ValidSpecies(*upd.Species) {
			return domain.Pet{}, apperror.NewValidationError("Espécie inválida: use 'cao' ou 'gato'.")
		}
		current.Species = *upd.Species
	}
	if upd.Breed != nil {
		current.Breed = strings.TrimSpace(*upd.Breed)
	}
	if upd.BirthDate != nil {
		current.BirthDate = upd.BirthDate
	}
	if upd.Weight != nil {
		if *upd.Weight <= 0 {
			return domain.Pet{}, apperror.NewValidationError("O peso, quando informado, deve ser positivo.")
		}
		current.Weight = upd.Weight
	}
	if upd.Color != nil {
		current.Color = strings.TrimSpace(*upd.Color)
	}
	if upd.Microchip != nil {
		current.Microchip = strings.TrimSpace(*upd.Microchip)
	}
	if upd.Notes != nil {
		current.Notes = strings.TrimSpace(*upd.Notes)
	}

	current.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, current)
	if err != nil {
		return domain.Pet{}, err
	}

	s.logger.Info("Mascota atualizada.", map[string]interface{}{"pet_id": updated.ID})
	return updated, nil
}

// Delete remove a mascota. Apenas o dono ou um admin podem remover.
// Registros clínicos dependentes não são removidos em cascata.
func (s *Service) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NewValidationError("O ID da mascota deve ser um UUID válido.")
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && current.UserID != caller.ID {
		return apperror.NewForbiddenError("Apenas o dono ou um admin podem remover a mascota.")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Mascota removida.", map[string]interface{}{"pet_id": id})
	return nil
}
