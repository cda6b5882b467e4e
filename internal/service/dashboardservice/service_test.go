package dashboardservice_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"petcuidado/internal/domain"
	"petcuidado/internal/pkg/logger"
	"petcuidado/internal/service/dashboardservice"
)

// MockDashboardRepository é uma implementação mock da interface domain.DashboardRepository.
type MockDashboardRepository struct {
	mock.Mock
}

func (m *MockDashboardRepository) CountPets(ctx context.Context, ownerUserID string) (int, error) {
	args := m.Called(ctx, ownerUserID)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardRepository) CountConsultasBetween(ctx context.Context, from, to time.Time, tutorID string) (int, error) {
	args := m.Called(ctx, from, to, tutorID)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardRepository) CountVacinasComDoseVencida(ctx context.Context, until time.Time) (int, error) {
	args := m.Called(ctx, until)
	return args.Int(0), args.Error(1)
}

func (m *MockDashboardRepository) CountPrescricoesAtivas(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newService(repo *MockDashboardRepository, at time.Time) *dashboardservice.Service {
	svc := dashboardservice.NewService(repo, logger.NewLogger("error"))
	svc.SetClock(func() time.Time { return at })
	return svc
}

// TestStats_Tutor_EscoposPorContador verifica o escopo de cada contador para
// um tutor: pets e consultas restritos, vacinas e prescrições globais.
func TestStats_Tutor_EscoposPorContador(t *testing.T) {
	mockRepo := new(MockDashboardRepository)

	// 15/03/2026, 14:30 local — o dia de "hoje" vai de 15/03 00:00 a 16/03 00:00.
	at := time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local)
	startOfToday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	startOfTomorrow := time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local)

	svc := newService(mockRepo, at)
	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}

	mockRepo.On("CountPets", mock.Anything, "tutor-1").Return(3, nil)
	mockRepo.On("CountConsultasBetween", mock.Anything, startOfToday, startOfTomorrow, "tutor-1").Return(2, nil)
	// Vacinas e prescrições não recebem o ID do tutor: contagem global.
	mockRepo.On("CountVacinasComDoseVencida", mock.Anything, startOfToday).Return(7, nil)
	mockRepo.On("CountPrescricoesAtivas", mock.Anything).Return(11, nil)

	stats := svc.Stats(context.Background(), tutor)

	assert.Equal(t, domain.StatCounter{Value: 3, OK: true}, stats.TotalPets)
	assert.Equal(t, domain.StatCounter{Value: 2, OK: true}, stats.ConsultasHoje)
	assert.Equal(t, domain.StatCounter{Value: 7, OK: true}, stats.VacinasPendentes)
	assert.Equal(t, domain.StatCounter{Value: 11, OK: true}, stats.PrescricoesAtivas)
	mockRepo.AssertExpectations(t)
}

// TestStats_Admin_SemEscopo: admin conta pets e consultas globalmente.
func TestStats_Admin_SemEscopo(t *testing.T) {
	mockRepo := new(MockDashboardRepository)
	at := time.Date(2026, 3, 15, 9, 0, 0, 0, time.Local)
	svc := newService(mockRepo, at)
	admin := domain.Caller{ID: "admin-1", Role: domain.RoleAdmin}

	mockRepo.On("CountPets", mock.Anything, "").Return(40, nil)
	mockRepo.On("CountConsultasBetween", mock.Anything, mock.Anything, mock.Anything, "").Return(9, nil)
	mockRepo.On("CountVacinasComDoseVencida", mock.Anything, mock.Anything).Return(5, nil)
	mockRepo.On("CountPrescricoesAtivas", mock.Anything).Return(6, nil)

	stats := svc.Stats(context.Background(), admin)

	assert.Equal(t, 40, stats.TotalPets.Value)
	assert.Equal(t, 9, stats.ConsultasHoje.Value)
	mockRepo.AssertExpectations(t)
}

// TestStats_DegradacaoIndependente: a falha de um contador zera apenas ele;
// os demais continuam com seus valores e OK=true.
func TestStats_DegradacaoIndependente(t *testing.T) {
	mockRepo := new(MockDashboardRepository)
	at := time.Date(2026, 3, 15, 9, 0, 0, 0, time.Local)
	svc := newService(mockRepo, at)
	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}

	mockRepo.On("CountPets", mock.Anything, "tutor-1").Return(0, errors.New("connection refused"))
	mockRepo.On("CountConsultasBetween", mock.Anything, mock.Anything, mock.Anything, "tutor-1").Return(4, nil)
	mockRepo.On("CountVacinasComDoseVencida", mock.Anything, mock.Anything).Return(1, nil)
	mockRepo.On("CountPrescricoesAtivas", mock.Anything).Return(2, nil)

	stats := svc.Stats(context.Background(), tutor)

	assert.Equal(t, domain.StatCounter{Value: 0, OK: false}, stats.TotalPets)
	assert.Equal(t, domain.StatCounter{Value: 4, OK: true}, stats.ConsultasHoje)
	assert.Equal(t, domain.StatCounter{Value: 1, OK: true}, stats.VacinasPendentes)
	assert.Equal(t, domain.StatCounter{Value: 2, OK: true}, stats.PrescricoesAtivas)
}

// TestStats_FalhaTotal: mesmo com todos os contadores falhando, Stats retorna
// um painel zerado em vez de erro.
func TestStats_FalhaTotal(t *testing.T) {
	mockRepo := new(MockDashboardRepository)
	at := time.Date(2026, 3, 15, 9, 0, 0, 0, time.Local)
	svc := newService(mockRepo, at)
	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}

	dbErr := errors.New("db down")
	mockRepo.On("CountPets", mock.Anything, mock.Anything).Return(0, dbErr)
	mockRepo.On("CountConsultasBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(0, dbErr)
	mockRepo.On("CountVacinasComDoseVencida", mock.Anything, mock.Anything).Return(0, dbErr)
	mockRepo.On("CountPrescricoesAtivas", mock.Anything).Return(0, dbErr)

	stats := svc.Stats(context.Background(), tutor)

	assert.False(t, stats.TotalPets.OK)
	assert.False(t, stats.ConsultasHoje.OK)
	assert.False(t, stats.VacinasPendentes.OK)
	assert.False(t, stats.PrescricoesAtivas.OK)
	assert.Zero(t, stats.TotalPets.Value)
}

// TestStats_LimiteDoDia: consultas de hoje usam o intervalo
// [00:00 de hoje, 00:00 de amanhã), inclusive no último segundo do dia.
func TestStats_LimiteDoDia(t *testing.T) {
	mockRepo := new(MockDashboardRepository)

	// 23:59:59 ainda pertence a hoje.
	at := time.Date(2026, 12, 31, 23, 59, 59, 0, time.Local)
	startOfToday := time.Date(2026, 12, 31, 0, 0, 0, 0, time.Local)
	startOfTomorrow := time.Date(2027, 1, 1, 0, 0, 0, 0, time.Local)

	svc := newService(mockRepo, at)
	tutor := domain.Caller{ID: "tutor-1", Role: domain.RoleTutor}

	mockRepo.On("CountPets", mock.Anything, mock.Anything).Return(0, nil)
	mockRepo.On("CountConsultasBetween", mock.Anything, startOfToday, startOfTomorrow, "tutor-1").Return(1, nil)
	mockRepo.On("CountVacinasComDoseVencida", mock.Anything, startOfToday).Return(0, nil)
	mockRepo.On("CountPrescricoesAtivas", mock.Anything).Return(0, nil)

	stats := svc.Stats(context.Background(), tutor)

	assert.Equal(t, 1, stats.ConsultasHoje.Value)
	mockRepo.AssertExpectations(t)
}
