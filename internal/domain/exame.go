package domain

import (
	"context"
	"time"
)

// ExameStatus representa o estado de um exame.
type ExameStatus string

const (
	ExameSolicitado  ExameStatus = "solicitado"
	ExameEmAndamento ExameStatus = "em_andamento"
	ExameConcluido   ExameStatus = "concluido"
)

// ValidExameStatus verifica se o status informado é suportado.
func ValidExameStatus(s ExameStatus) bool {
	switch s {
	case ExameSolicitado, ExameEmAndamento, ExameConcluido:
		return true
	default:
		return false
	}
}

// Exame representa um exame laboratorial ou de imagem solicitado para uma mascota.
// ConsultaID é opcional: exames podem ser solicitados fora de uma consulta.
type Exame struct {
	ID            string      `json:"id"`
	ConsultaID    string      `json:"consulta_id,omitempty"`
	PetID         string      `json:"pet_id"`
	VeterinarioID string      `json:"veterinario_id"`
	TipoExame     string      `json:"tipo_exame"`
	DataExame     time.Time   `json:"data_exame"`
	Resultado     string      `json:"resultado,omitempty"`
	ArquivoURL    string      `json:"arquivo_url,omitempty"`
	Observacoes   string      `json:"observacoes,omitempty"`
	Status        ExameStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`

	Consulta    *Consulta    `json:"consulta,omitempty"`
	Pet         *Pet         `json:"pet,omitempty"`
	Veterinario *UserProfile `json:"veterinario,omitempty"`
}

// ExameFilter restringe a listagem de exames.
// OwnerUserID limita aos registros de mascotas pertencentes ao tutor informado.
type ExameFilter struct {
	PetID         string
	VeterinarioID string
	OwnerUserID   string
}

// ExameRepository define o contrato de persistência para a entidade Exame.
// Listagens ordenadas por data_exame decrescente.
type ExameRepository interface {
	Save(ctx context.Context, exame Exame) (Exame, error)
	FindAll(ctx context.Context, filter ExameFilter) ([]Exame, error)
}
