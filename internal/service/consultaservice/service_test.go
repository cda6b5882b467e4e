package consultaservice_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petcuidado/internal/domain"
	apperror "petcuidado/internal/errors"
	"petcuidado/internal/pkg/logger"
	"petcuidado/internal/service/consultaservice"
)

// MockConsultaRepository é uma implementação mock da interface domain.ConsultaRepository.
type MockConsultaRepository struct {
	mock.Mock
}

func (m *MockConsultaRepository) Save(ctx context.Context, consulta domain.Consulta) (domain.Consulta, error) {
	args := m.Called(ctx, consulta)
	return args.Get(0).(domain.Consulta), args.Error(1)
}

func (m *MockConsultaRepository) FindAll(ctx context.Context, filter domain.ConsultaFilter) ([]domain.Consulta, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Consulta), args.Error(1)
}

// TestCreate_TutorAgendaParaSiMesmo: o tutor_id informado é ignorado quando o
// chamador é tutor.
func TestCreate_TutorAgendaParaSiMesmo(t *testing.T) {
	mockRepo := new(MockConsultaRepository)
	svc := consultaservice.NewService(mockRepo, logger.NewLogger("error"))

	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(c domain.Consulta) bool {
		return c.TutorID == "tutor-1" && c.Status == domain.ConsultaAgendada
	})).Return(domain.Consulta{ID: "consulta-1", TutorID: "tutor-1"}, nil)

	_, err := svc.Create(context.Background(), tutor, consultaservice.CreateInput{
		PetID:         "pet-1",
		VeterinarioID: "vet-1",
		TutorID:       "tutor-99", // tentativa de agendar em nome de outro
		DataConsulta:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local),
		Motivo:        "Consulta de rotina",
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestCreate_VeterinarioAgendaParaTutor: veterinário pode informar o tutor.
func TestCreate_VeterinarioAgendaParaTutor(t *testing.T) {
	mockRepo := new(MockConsultaRepository)
	svc := consultaservice.NewService(mockRepo, logger.NewLogger("error"))

	vet := domain.Caller{ID: "vet-1", Role: domain.RoleVeterinario}

	mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(c domain.Consulta) bool {
		return c.TutorID == "tutor-2" && c.VeterinarioID == "vet-1"
	})).Return(domain.Consulta{ID: "consulta-1"}, nil)

	_, err := svc.Create(context.Background(), vet, consultaservice.CreateInput{
		PetID:         "pet-1",
		VeterinarioID: "vet-1",
		TutorID:       "tutor-2",
		DataConsulta:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local),
		Motivo:        "Vômito recorrente",
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

// TestCreate_Fail_CamposObrigatorios valida cada campo obrigatório.
func TestCreate_Fail_CamposObrigatorios(t *testing.T) {
	base := consultaservice.CreateInput{
		PetID:         "pet-1",
		VeterinarioID: "vet-1",
		DataConsulta:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local),
		Motivo:        "Consulta de rotina",
	}

	cases := []struct {
		name   string
		mutate func(in *consultaservice.CreateInput)
	}{
		{"sem pet", func(in *consultaservice.CreateInput) { in.PetID = " " }},
		{"sem veterinário", func(in *consultaservice.CreateInput) { in.VeterinarioID = "" }},
		{"sem data", func(in *consultaservice.CreateInput) { in.DataConsulta = time.Time{} }},
		{"sem motivo", func(in *consultaservice.CreateInput) { in.Motivo = "  " }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockConsultaRepository)
			svc := consultaservice.NewService(mockRepo, logger.NewLogger("error"))

			in := base
			tc.mutate(&in)

			_, err := svc.Create(context.Background(), domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}, in)

			assert.Error(t, err)
			assert.IsType(t, &apperror.ValidationError{}, err)
			mockRepo.AssertNotCalled(t, "Save")
		})
	}
}

// TestCreate_Fail_StatusInvalido rejeita status fora do vocabulário.
func TestCreate_Fail_StatusInvalido(t *testing.T) {
	mockRepo := new(MockConsultaRepository)
	svc := consultaservice.NewService(mockRepo, logger.NewLogger("error"))

	_, err := svc.Create(context.Background(), domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}, consultaservice.CreateInput{
		PetID:         "pet-1",
		VeterinarioID: "vet-1",
		DataConsulta:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local),
		Motivo:        "Consulta de rotina",
		Status:        domain.ConsultaStatus("arquivada"),
	})

	assert.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

// TestList_NaoAdmin_FiltraPorParticipante: veterinário e tutor veem a união
// das consultas em que participam.
func TestList_NaoAdmin_FiltraPorParticipante(t *testing.T) {
	for _, role := range []domain.UserRole{domain.RoleTutor, domain.RoleVeterinario} {
		t.Run(string(role), func(t *testing.T) {
			mockRepo := new(MockConsultaRepository)
			svc := consultaservice.NewService(mockRepo, logger.NewLogger("error"))

			caller := domain.Caller{ID: "user-1", Role: role}
			mockRepo.On("FindAll", mock.Anything, domain.ConsultaFilter{ParticipantID: "user-1"}).
				Return([]domain.Consulta{}, nil)

			_, err := svc.List(context.Background(), caller, "")

			assert.NoError(t, err)
			mockRepo.AssertExpectations(t)
		})
	}
}

// TestList_Admin_SemFiltroDeParticipante: admin lista tudo, opcionalmente por pet.
func TestList_Admin_SemFiltroDeParticipante(t *testing.T) {
	mockRepo := new(MockConsultaRepository)
	svc := consultaservice.NewService(mockRepo, logger.NewLogger("error"))

	admin := domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}
	mockRepo.On("FindAll", mock.Anything, domain.ConsultaFilter{PetID: "pet-1"}).
		Return([]domain.Consulta{{ID: "consulta-1"}}, nil)

	consultas, err := svc.List(context.Background(), admin, "pet-1")

	assert.NoError(t, err)
	assert.Len(t, consultas, 1)
	mockRepo.AssertExpectations(t)
}
