package domain

import (
	"context"
	"time"
)

// PrescricaoStatus representa o estado de uma prescrição.
type PrescricaoStatus string

const (
	PrescricaoAtiva     PrescricaoStatus = "ativa"
	PrescricaoConcluida PrescricaoStatus = "concluida"
	PrescricaoSuspensa  PrescricaoStatus = "suspensa"
)

// ValidPrescricaoStatus verifica se o status informado é suportado.
func ValidPrescricaoStatus(s PrescricaoStatus) bool {
	switch s {
	case PrescricaoAtiva, PrescricaoConcluida, PrescricaoSuspensa:
		return true
	default:
		return false
	}
}

// Prescricao representa uma prescrição de medicamento originada de uma consulta.
type Prescricao struct {
	ID            string           `json:"id"`
	ConsultaID    string           `json:"consulta_id"`
	PetID         string           `json:"pet_id"`
	VeterinarioID string           `json:"veterinario_id"`
	Medicamento   string           `json:"medicamento"`
	Dosagem       string           `json:"dosagem"`
	Frequencia    string           `json:"frequencia"`
	Duracao       string           `json:"duracao"`
	Instrucoes    string           `json:"instrucoes,omitempty"`
	DataInicio    time.Time        `json:"data_inicio"`
	DataFim       *time.Time       `json:"data_fim,omitempty"`
	Status        PrescricaoStatus `json:"status"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	Consulta    *Consulta    `json:"consulta,omitempty"`
	Pet         *Pet         `json:"pet,omitempty"`
	Veterinario *UserProfile `json:"veterinario,omitempty"`
}

// PrescricaoFilter restringe a listagem de prescrições.
// OwnerUserID limita aos registros de mascotas pertencentes ao tutor informado.
type PrescricaoFilter struct {
	PetID         string
	VeterinarioID string
	OwnerUserID   string
}

// PrescricaoRepository define o contrato de persistência para a entidade Prescricao.
// Listagens ordenadas por created_at decrescente.
type PrescricaoRepository interface {
	Save(ctx context.Context, prescricao Prescricao) (Prescricao, error)
	FindAll(ctx context.Context, filter PrescricaoFilter) ([]Prescricao, error)
}
