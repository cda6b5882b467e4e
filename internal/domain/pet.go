package domain

import (
	"context"
	"time"
)

// Species define as espécies aceitas pelo sistema.
type Species string

const (
	SpeciesCao  Species = "cao"
	SpeciesGato Species = "gato"
)

// ValidSpecies verifica se a espécie informada é suportada.
func ValidSpecies(s Species) bool {
	return s == SpeciesCao || s == SpeciesGato
}

// Pet representa uma mascota registrada por um tutor.
type Pet struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"` // tutor dono da mascota
	Name      string     `json:"name"`
	Species   Species    `json:"species"`
	Breed     string     `json:"breed,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Weight    *float64   `json:"weight,omitempty"` // kg, deve ser positivo quando presente
	Color     string     `json:"color,omitempty"`
	Microchip string     `json:"microchip,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PetUpdate representa um update parcial: campos nil não são tocados.
type PetUpdate struct {
	Name      *string    `json:"name"`
	Species   *Species   `json:"species"`
	Breed     *string    `json:"breed"`
	BirthDate *time.Time `json:"birth_date"`
	Weight    *float64   `json:"weight"`
	Color     *string    `json:"color"`
	Microchip *string    `json:"microchip"`
	Notes     *string    `json:"notes"`
}

// PetRepository define o contrato de persistência para a entidade Pet.
// FindAll com ownerUserID vazio retorna todas as mascotas (uso admin),
// ordenadas por created_at decrescente.
type PetRepository interface {
	Save(ctx context.Context, pet Pet) (Pet, error)
	FindByID(ctx context.Context, id string) (Pet, error)
	FindAll(ctx context.Context, ownerUserID string) ([]Pet, error)
	Update(ctx context.Context, pet Pet) (Pet, error)
	Delete(ctx context.Context, id string) error
}
