package domain

import (
	"context"
	"time"
)

// StatCounter carrega um contador do dashboard junto com a flag de sucesso
// do cálculo. Um contador com OK=false significa "falhou ao computar" e não
// "genuinamente zero" — o dashboard degrada para zero em vez de quebrar.
type StatCounter struct {
	Value int  `json:"value"`
	OK    bool `json:"ok"`
}

// DashboardStats agrega os quatro contadores exibidos no painel inicial.
type DashboardStats struct {
	TotalPets         StatCounter `json:"total_pets"`
	ConsultasHoje     StatCounter `json:"consultas_hoje"`
	VacinasPendentes  StatCounter `json:"vacinas_pendentes"`
	PrescricoesAtivas StatCounter `json:"prescricoes_ativas"`
}

// DashboardRepository define as consultas de contagem usadas pelo dashboard.
// Parâmetros de escopo vazios significam contagem global (uso admin).
type DashboardRepository interface {
	CountPets(ctx context.Context, ownerUserID string) (int, error)
	CountConsultasBetween(ctx context.Context, from, to time.Time, tutorID string) (int, error)
	CountVacinasComDoseVencida(ctx context.Context, until time.Time) (int, error)
	CountPrescricoesAtivas(ctx context.Context) (int, error)
}
