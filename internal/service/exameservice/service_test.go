package exameservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
	"petcuidado/internal/service/exameservice"
)

// MockExameRepository é uma implementação mock da interface domain.ExameRepository.
type MockExameRepository struct {
	mock.Mock
}

func (m *MockExameRepository) Save(ctx context.Context, exame domain.Exame) (domain.Exame, error) {
	args := m.Called(ctx, exame)
	return args.Get(0).(domain.Exame), args.Error(1)
}

func (m *MockExameRepository) FindAll(ctx context.Context, filter domain.ExameFilter) ([]domain.Exame, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Exame), args.Error(1)
}

// TestCreate_SemConsultaVinculada: exames podem ser solicitados fora de consulta.
func TestCreate_SemConsultaVinculada(t *testing.T) {
	mockRepo := new(MockExameRepository)
	svc := exameservice.NewService(mockRepo, logger.NewLogger("error"))

	vet := domain.Caller{ID: "vet-1", Role: domain.RoleVeterinario}

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(e domain.Exame) bool {
		return e.ConsultaID == "" && e.VeterinarioID == "vet-1" && e.Status == domain.ExameSolicitado
	})).Return(domain.Exame{ID: "exame-1"}, nil)

	_, err := svc.Create(context.Background(), vet, exameservice.CreateInput{
		PetID:     "pet-1",
		TipoExame: "Hemograma completo",
		DataExame: time.Date(2026, 9, 2, 8, 0, 0, 0, time.Local),
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestCreate_StatusInformadoEhRespeitado: um status válido informado não é
// sobrescrito pelo padrão.
func TestCreate_StatusInformadoEhRespeitado(t *testing.T) {
	mockRepo := new(MockExameRepository)
	svc := exameservice.NewService(mockRepo, logger.NewLogger("error"))

	vet := domain.Caller{ID: "vet-1", Role: domain.RoleVeterinario}

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(e domain.Exame) bool {
		return e.Status == domain.ExameConcluido && e.Resultado == "Sem alterações"
	})).Return(domain.Exame{ID: "exame-1"}, nil)

	_, err := svc.Create(context.Background(), vet, exameservice.CreateInput{
		PetID:     "pet-1",
		TipoExame: "Raio-X",
		DataExame: time.Date(2026, 8, 20, 8, 0, 0, 0, time.Local),
		Resultado: "Sem alterações",
		Status:    domain.ExameConcluido,
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestCreate_Fail_StatusInvalido rejeita status fora do vocabulário.
func TestCreate_Fail_StatusInvalido(t *testing.T) {
	mockRepo := new(MockExameRepository)
	svc := exameservice.NewService(mockRepo, logger.NewLogger("error"))

	_, err := svc.Create(context.Background(), domain.Caller{ID: "vet-1", Role: domain.RoleVeterinario}, exameservice.CreateInput{
		PetID:     "pet-1",
		TipoExame: "Raio-X",
		DataExame: time.Date(2026, 8, 20, 8, 0, 0, 0, time.Local),
		Status:    domain.ExameStatus("cancelado"),
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
	mockRepo.AssertNotCalled(t, "Save")
}

// TestCreate_Fail_SemTipoExame rejeita solicitação sem tipo.
func TestCreate_Fail_SemTipoExame(t *testing.T) {
	mockRepo := new(MockExameRepository)
	svc := exameservice.NewService(mockRepo, logger.NewLogger("error"))

	_, err := svc.Create(context.Background(), domain.Caller{ID: "vet-1", Role: domain.RoleVeterinario}, exameservice.CreateInput{
		PetID:     "pet-1",
		DataExame: time.Date(2026, 8, 20, 8, 0, 0, 0, time.Local),
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestList_EscopoPorPapel verifica o filtro derivado de cada papel.
func TestList_EscopoPorPapel(t *testing.T) {
	cases := []struct {
		name   string
		caller domain.Caller
		want   domain.ExameFilter
	}{
		{"admin vê tudo", domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}, domain.ExameFilter{PetID: "pet-1"}},
		{"veterinário vê os que solicitou", domain.Caller{ID: "vet-1", Role: domain.RoleVeterinario}, domain.ExameFilter{PetID: "pet-1", VeterinarioID: "vet-1"}},
		{"tutor vê os das próprias mascotas", domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}, domain.ExameFilter{PetID: "pet-1", OwnerUserID: "tutor-1"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockExameRepository)
			svc := exameservice.NewService(mockRepo, logger.NewLogger("error"))

			mockRepo.On("FindAll", mock.Anything, tc.want).Return([]domain.Exame{}, nil)

			_, err := svc.List(context.Background(), tc.caller, "pet-1")

			assert.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}
