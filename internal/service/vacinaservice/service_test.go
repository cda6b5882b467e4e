package vacinaservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
	"petcuidado/internal/service/vacinaservice"
)

// MockVacinaRepository é uma implementação mock da interface domain.VacinaRepository.
type MockVacinaRepository struct {
	mock.Mock
}

func (m *MockVacinaRepository) Save(ctx context.Context, vacina domain.Vacina) (domain.Vacina, error) {
	args := m.Called(ctx, vacina)
	return args.Get(0).(domain.Vacina), args.Error(1)
}

func (m *MockVacinaRepository) FindAll(ctx context.Context, filter domain.VacinaFilter) ([]domain.Vacina, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Vacina), args.Error(1)
}

// TestCreate_VeterinarioAssumeAplicador: sem veterinário informado, o próprio
// veterinário chamador é registrado como aplicador.
func TestCreate_VeterinarioAssumeAplicador(t *testing.T) {
	mockRepo := new(MockVacinaRepository)
	svc := vacinaservice.NewService(mockRepo, logger.NewLogger("error"))

	vet := domain.Caller{ID: "vet-1", Role: domain.RoleVeterinario}
	proxima := time.Date(2026, 12, 1, 0, 0, 0, 0, time.Local)

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(v domain.Vacina) bool {
		return v.VeterinarioID == "vet-1" && v.NomeVacina == "Antirrábica" && v.ProximaDose != nil
	})).Return(domain.Vacina{ID: "vacina-1", VeterinarioID: "vet-1"}, nil)

	_, err := svc.Create(context.Background(), vet, vacinaservice.CreateInput{
		PetID:         "pet-1",
		NomeVacina:    "Antirrábica",
		DataAplicacao: time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local),
		ProximaDose:   &proxima,
		Lote:          "L-2026-08",
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestCreate_AdminSemAplicador: admin sem aplicador informado deixa o campo vazio.
func TestCreate_AdminSemAplicador(t *testing.T) {
	mockRepo := new(MockVacinaRepository)
	svc := vacinaservice.NewService(mockRepo, logger.NewLogger("error"))

	admin := domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(v domain.Vacina) bool {
		return v.VeterinarioID == ""
	})).Return(domain.Vacina{ID: "vacina-1"}, nil)

	_, err := svc.Create(context.Background(), admin, vacinaservice.CreateInput{
		PetID:         "pet-1",
		NomeVacina:    "V10",
		DataAplicacao: time.Date(2026, 8, 30, 0, 0, 0, 0, time.Local),
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestCreate_Fail_SemDataAplicacao rejeita registro sem data.
func TestCreate_Fail_SemDataAplicacao(t *testing.T) {
	mockRepo := new(MockVacinaRepository)
	svc := vacinaservice.NewService(mockRepo, logger.NewLogger("error"))

	_, err := svc.Create(context.Background(), domain.Caller{ID: "vet-1", Role: domain.RoleVeterinario}, vacinaservice.CreateInput{
		PetID:      "pet-1",
		NomeVacina: "V10",
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Save")
}

// TestList_SemEscopoPorUsuario: a listagem de vacinas não restringe por
// chamador — um tutor sem filtro de pet recebe todas as linhas. Este teste
// fixa o comportamento atual.
func TestList_SemEscopoPorUsuario(t *testing.T) {
	mockRepo := new(MockVacinaRepository)
	svc := vacinaservice.NewService(mockRepo, logger.NewLogger("error"))

	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}
	todas := []domain.Vacina{
		{ID: "vacina-1", PetID: "pet-1"},
		{ID: "vacina-2", PetID: "pet-de-outro-tutor"},
	}

	mockRepo.On("FindAll", mock.Anything, domain.VacinaFilter{}).Return(todas, nil)

	vacinas, err := svc.List(context.Background(), tutor, "")

	assert.NoError(t, err)
	assert.Len(t, vacinas, 2)
	mockRepo.AssertExpectations(t)
}

// TestList_FiltraPorPet aplica o filtro opcional de pet.
func TestList_FiltraPorPet(t *testing.T) {
	mockRepo := new(MockVacinaRepository)
	svc := vacinaservice.NewService(mockRepo, logger.NewLogger("error"))

	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}
	mockRepo.On("FindAll", mock.Anything, domain.VacinaFilter{PetID: "pet-1"}).
		Return([]domain.Vacina{{ID: "vacina-1", PetID: "pet-1"}}, nil)

	vacinas, err := svc.List(context.Background(), tutor, " pet-1 ")

	assert.NoError(t, err)
	assert.Len(t, vacinas, 1)
	mockRepo.AssertExpectations(t)
}
