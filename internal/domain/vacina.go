package domain

import (
	"context"
	"time"
)

// Vacina representa um registro de vacinação aplicada a uma mascota.
type Vacina struct {
	ID            string     `json:"id"`
	PetID         string     `json:"pet_id"`
	NomeVacina    string     `json:"nome_vacina"`
	DataAplicacao time.Time  `json:"data_aplicacao"`
	ProximaDose   *time.Time `json:"proxima_dose,omitempty"`
	VeterinarioID string     `json:"veterinario_id,omitempty"`
	Lote          string     `json:"lote,omitempty"`
	Fabricante    string     `json:"fabricante,omitempty"`
	Observacoes   string     `json:"observacoes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Pet         *Pet         `json:"pet,omitempty"`
	Veterinario *UserProfile `json:"veterinario,omitempty"`
}

// VacinaFilter restringe a listagem de vacinas.
// Não há filtro por usuário: a visão de vacinas é por mascota ou global.
type VacinaFilter struct {
	PetID string
}

// VacinaRepository define o contrato de persistência para a entidade Vacina.
// Listagens ordenadas por data_aplicacao decrescente.
type VacinaRepository interface {
	Save(ctx context.Context, vacina Vacina) (Vacina, error)
	FindAll(ctx context.Context, filter VacinaFilter) ([]Vacina, error)
}
