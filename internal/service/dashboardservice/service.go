package dashboardservice

import (
	"context"
	"sync"
	"time"

	"petcuidado/internal/domain"
	"petcuidado/internal/pkg/logger"
)

// Service computa os contadores do painel inicial. Contrato best-effort:
// qualquer falha de contagem é logada e o contador degrada para zero com
// OK=false — o dashboard nunca devolve erro ao chamador.
type Service struct {
	repo   domain.DashboardRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria e retorna uma nova instância do Serviço de Dashboard.
func NewService(repo domain.DashboardRepository, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// Stats computa os quatro contadores para o chamador. As contagens são
// independentes e disparadas em paralelo.
//
// Escopo por papel:
//   - total de mascotas: global para admin, por dono para os demais;
//   - consultas de hoje: [00:00 de hoje, 00:00 de amanhã) no fuso local do
//     servidor, restritas ao tutor para não-admins;
//   - vacinas com dose vencida e prescrições ativas: SEMPRE globais,
//     independentemente do papel — comportamento herdado do produto, mantido
//     até decisão contrária (provável descuido; ver DESIGN.md).
func (s *Service) Stats(ctx context.Context, caller domain.Caller) domain.DashboardStats {
	now := s.now()
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfTomorrow := startOfToday.AddDate(0, 0, 1)

	ownerScope := caller.ID
	tutorScope := caller.ID
	if caller.IsAdmin() {
		ownerScope = ""
		tutorScope = ""
	}

	var stats domain.DashboardStats
	var wg sync.WaitGroup
	wg.Add(4)

	go func() {
		defer wg.Done()
		stats.TotalPets = s.counter("total_pets", func() (int, error) {
			return s.repo.CountPets(ctx, ownerScope)
		})
	}()
	go func() {
		defer wg.Done()
		stats.ConsultasHoje = s.counter("consultas_hoje", func() (int, error) {
			return s.repo.CountConsultasBetween(ctx, startOfToday, startOfTomorrow, tutorScope)
		})
	}()
	go func() {
		defer wg.Done()
		stats.VacinasPendentes = s.counter("vacinas_pendentes", func() (int, error) {
			return s.repo.CountVacinasComDoseVencida(ctx, startOfToday)
		})
	}()
	go func() {
		defer wg.Done()
		stats.PrescricoesAtivas = s.counter("prescricoes_ativas", func() (int, error) {
			return s.repo.CountPrescricoesAtivas(ctx)
		})
	}()

	wg.Wait()
	return stats
}

// counter executa uma contagem e aplica a degradação para zero em caso de falha.
func (s *Service) counter(name string, count func() (int, error)) domain.StatCounter {
	value, err := count()
	if err != nil {
		s.logger.Error("Falha ao computar contador do dashboard: "+name, err)
		return domain.StatCounter{Value: 0, OK: false}
	}
	return domain.StatCounter{Value: value, OK: true}
}
