package domain

import (
	"context"
	"time"
)

// ConsultaStatus representa o estado de uma consulta veterinária.
type ConsultaStatus string

const (
	ConsultaAgendada    ConsultaStatus = "agendada"
	ConsultaEmAndamento ConsultaStatus = "em_andamento"
	ConsultaConcluida   ConsultaStatus = "concluida"
	ConsultaCancelada   ConsultaStatus = "cancelada"
)

// ValidConsultaStatus verifica se o status informado é suportado.
func ValidConsultaStatus(s ConsultaStatus) bool {
	switch s {
	case ConsultaAgendada, ConsultaEmAndamento, ConsultaConcluida, ConsultaCancelada:
		return true
	default:
		return false
	}
}

// Consulta representa um atendimento veterinário agendado ou realizado.
// As relações (Pet, Veterinario, Tutor) vêm preenchidas nas listagens.
type Consulta struct {
	ID            string         `json:"id"`
	PetID         string         `json:"pet_id"`
	VeterinarioID string         `json:"veterinario_id"`
	TutorID       string         `json:"tutor_id"`
	DataConsulta  time.Time      `json:"data_consulta"`
	Motivo        string         `json:"motivo"`
	Sintomas      string         `json:"sintomas,omitempty"`
	Diagnostico   string         `json:"diagnostico,omitempty"`
	Tratamento    string         `json:"tratamento,omitempty"`
	Observacoes   string         `json:"observacoes,omitempty"`
	Status        ConsultaStatus `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Pet         *Pet         `json:"pet,omitempty"`
	Veterinario *UserProfile `json:"veterinario,omitempty"`
	Tutor       *UserProfile `json:"tutor,omitempty"`
}

// ConsultaFilter restringe a listagem de consultas.
// ParticipantID casa tanto tutor_id quanto veterinario_id (união, sem duplicatas).
type ConsultaFilter struct {
	PetID         string
	ParticipantID string
}

// ConsultaRepository define o contrato de persistência para a entidade Consulta.
// Listagens ordenadas por data_consulta decrescente, com relações anexadas.
type ConsultaRepository interface {
	Save(ctx context.Context, consulta Consulta) (Consulta, error)
	FindAll(ctx context.Context, filter ConsultaFilter) ([]Consulta, error)
}
