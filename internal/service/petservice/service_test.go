package petservice_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
	"petcuidado/internal/service/petservice"
)

// MockPetRepository é uma implementação mock da interface domain.PetRepository.
type MockPetRepository struct {
	mock.Mock
}

func (m *MockPetRepository) Save(ctx context.Context, pet domain.Pet) (domain.Pet, error) {
	args := m.Called(ctx, pet)
	return args.Get(0).(domain.Pet), args.Error(1)
}

func (m *MockPetRepository) FindByID(ctx context.Context, id string) (domain.Pet, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Pet), args.Error(1)
}

func (m *MockPetRepository) FindAll(ctx context.Context, ownerUserID string) ([]domain.Pet, error) {
	args := m.Called(ctx, ownerUserID)
	return args.Get(0).([]domain.Pet), args.Error(1)
}

func (m *MockPetRepository) Update(ctx context.Context, pet domain.Pet) (domain.Pet, error) {
	args := m.Called(ctx, pet)
	return args.Get(0).(domain.Pet), args.Error(1)
}

func (m *MockPetRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// TestList_Tutor_ScopedToOwner garante que um tutor nunca recebe listagem global.
func TestList_Tutor_ScopedToOwner(t *testing.T) {
	mockRepo := new(MockPetRepository)
	svc := petservice.NewService(mockRepo, logger.NewLogger("error"))

	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}
	owned := []domain.Pet{{ID: uuid.NewString(), UserID: "tutor-1", Name: "Rex"}}

	mockRepo.On("FindAll", mock.Anything, "tutor-1").Return(owned, nil)

	pets, err := svc.List(context.Background(), tutor)

	assert.NoError(t, err)
	assert.Len(t, pets, 1)
	assert.Equal(t, "tutor-1", pets[0].UserID)
	mockRepo.AssertExpectations(t)
}

// TestList_Admin_Unscoped garante que o admin recebe todas as mascotas.
func TestList_Admin_Unscoped(t *testing.T) {
	mockRepo := new(MockPetRepository)
	svc := petservice.NewService(mockRepo, logger.NewLogger("error"))

	admin := domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}
	all := []domain.Pet{
		{ID: uuid.NewString(), UserID: "tutor-1", Name: "Rex"},
		{ID: uuid.NewString(), UserID: "tutor-2", Name: "Mimi"},
	}

	mockRepo.On("FindAll", mock.Anything, "").Return(all, nil)

	pets, err := svc.List(context.Background(), admin)

	assert.NoError(t, err)
	assert.Len(t, pets, 2)
	mockRepo.AssertExpectations(t)
}

// TestList_VeterinarioScopedComoTutor: veterinário também lista apenas as próprias
// mascotas (a visibilidade ampliada dele é sobre registros clínicos, não pets).
func TestList_VeterinarioScopedComoTutor(t *testing.T) {
	mockRepo := new(MockPetRepository)
	svc := petservice.NewService(mockRepo, logger.NewLogger("error"))

	vet := domain.Caller{ID: "vet-1", Role: domain.RoleVeterinario}
	mockRepo.On("FindAll", mock.Anything, "vet-1").Return([]domain.Pet{}, nil)

	pets, err := svc.List(context.Background(), vet)

	assert.NoError(t, err)
	assert.Len(t, pets, 0)
	mockRepo.AssertExpectations(t)
}

// TestCreate_Success verifica o round-trip do cadastro.
func TestCreate_Success(t *testing.T) {
	mockRepo := new(MockPetRepository)
	svc := petservice.NewService(mockRepo, logger.NewLogger("error"))

	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}
	weight := 12.5

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(p domain.Pet) bool {
		return p.UserID == "tutor-1" && p.Name == "Rex" && p.Species == domain.SpeciesCao
	})).Return(domain.Pet{ID: uuid.NewString(), UserID: "tutor-1", Name: "Rex", Species: domain.SpeciesCao, Weight: &weight}, nil)

	created, err := svc.Create(context.Background(), tutor, petservice.CreateInput{
		Name:    "Rex",
		Species: domain.SpeciesCao,
		Weight:  &weight,
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "tutor-1", created.UserID)
	mockRepo.AssertExpectations(t)
}

// TestCreate_Fail_PesoNaoPositivo rejeita peso zero ou negativo antes do repositório.
func TestCreate_Fail_PesoNaoPositivo(t *testing.T) {
	mockRepo := new(MockPetRepository)
	svc := petservice.NewService(mockRepo, logger.NewLogger("error"))

	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}
	weight := -1.0

	_, err := svc.Create(context.Background(), tutor, petservice.CreateInput{
		Name:    "Rex",
		Species: domain.SpeciesCao,
		Weight:  &weight,
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Save")
}

// TestCreate_Fail_EspecieInvalida rejeita espécies fora de {cao, gato}.
func TestCreate_Fail_EspecieInvalida(t *testing.T) {
	mockRepo := new(MockPetRepository)
	svc := petservice.NewService(mockRepo, logger.NewLogger("error"))

	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}

	_, err := svc.Create(context.Background(), tutor, petservice.CreateInput{
		Name:    "Piu",
		Species: domain.Species("passaro"),
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Save")
}

// TestGetByID_Tutor_NaoDono recebe NotFound: a existência de mascotas alheias
// não é revelada.
func TestGetByID_Tutor_NaoDono(t *testing.T) {
	mockRepo := new(MockPetRepository)
	svc := petservice.NewService(mockRepo, logger.NewLogger("error"))

	petID := uuid.NewString()
	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}

	mockRepo.On("FindByID", mock.Anything, petID).Return(domain.Pet{ID: petID, UserID: "tutor-2"}, nil)

	_, err := svc.GetByID(context.Background(), tutor, petID)

	assert.Error(t, err)
	assert.IsType(t, &apperror.NotFoundError{}, err)
	mockRepo.AssertExpectations(t)
}

// TestGetByID_Veterinario_Acessa: veterinário acessa o perfil de qualquer mascota.
func TestGetByID_Veterinario_Acessa(t *testing.T) {
	mockRepo := new(MockPetRepository)
	svc := petservice.NewService(mockRepo, logger.NewLogger("error"))

	petID := uuid.NewString()
	vet := domain.Caller{ID: "vet-1", Role: domain.RoleVeterinario}

	mockRepo.On("FindByID", mock.Anything, petID).Return(domain.Pet{ID: petID, UserID: "tutor-2"}, nil)

	pet, err := svc.GetByID(context.Background(), vet, petID)

	assert.NoError(t, err)
	assert.Equal(t, petID, pet.ID)
	mockRepo.AssertExpectations(t)
}

// TestUpdate_MergeParcial garante que campos nil não são tocados e que
// updated_at é carimbado.
func TestUpdate_MergeParcial(t *testing.T) {
	mockRepo := new(MockPetRepository)
	svc := petservice.NewService(mockRepo, logger.NewLogger("error"))

	petID := uuid.NewString()
	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}
	current := domain.Pet{ID: petID, UserID: "tutor-1", Name: "Rex", Species: domain.SpeciesCao, Color: "caramelo"}

	mockRepo.On("FindByID", mock.Anything, petID).Return(current, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(p domain.Pet) bool {
		// nome alterado, cor preservada, updated_at carimbado
		return p.Name == "Thor" && p.Color == "caramelo" && !p.UpdatedAt.IsZero()
	})).Return(current, nil)

	newName := "Thor"
	_, err := svc.Update(context.Background(), tutor, petID, domain.PetUpdate{Name: &newName})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestUpdate_Fail_NaoDono: tutor não pode atualizar mascota alheia.
func TestUpdate_Fail_NaoDono(t *testing.T) {
	mockRepo := new(MockPetRepository)
	svc := petservice.NewService(mockRepo, logger.NewLogger("error"))

	petID := uuid.NewString()
	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}

	mockRepo.On("FindByID", mock.Anything, petID).Return(domain.Pet{ID: petID, UserID: "tutor-2"}, nil)

	newName := "Thor"
	_, err := svc.Update(context.Background(), tutor, petID, domain.PetUpdate{Name: &newName})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ForbiddenError{}, err)
	mockRepo.AssertNotCalled(t, "Update")
}

// TestDelete_AdminPodeRemover: admin remove mascota de qualquer tutor.
func TestDelete_AdminPodeRemover(t *testing.T) {
	mockRepo := new(MockPetRepository)
	svc := petservice.NewService(mockRepo, logger.NewLogger("error"))

	petID := uuid.NewString()
	admin := domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}

	mockRepo.On("FindByID", mock.Anything, petID).Return(domain.Pet{ID: petID, UserID: "tutor-2"}, nil)
	mockRepo.On("Delete", mock.Anything, petID).Return(nil)

	err := svc.Delete(context.Background(), admin, petID)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestDelete_Fail_RepoError propaga o erro do repositório sem retry.
func TestDelete_Fail_RepoError(t *testing.T) {
	mockRepo := new(MockPetRepository)
	svc := petservice.NewService(mockRepo, logger.NewLogger("error"))

	petID := uuid.NewString()
	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}
	repoErr := apperror.NewDBError("delete failed", errors.New("connection lost"))

	mockRepo.On("FindByID", mock.Anything, petID).Return(domain.Pet{ID: petID, UserID: "tutor-1"}, nil)
	mockRepo.On("Delete", mock.Anything, petID).Return(repoErr)

	err := svc.Delete(context.Background(), tutor, petID)

	assert.Error(t, err)
	assert.Equal(t, repoErr, err)
	mockRepo.AssertExpectations(t)
}
