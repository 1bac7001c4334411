package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperror "medstock/internal/errors"
)

// MedicineID é o handle opaco emitido pelo repositório para cada medicamento.
// A identidade é pelo handle, nunca pelo nome (dois medicamentos podem ter o mesmo nome).
type MedicineID = uuid.UUID

// Medicine representa um item do estoque de medicamentos (a Entidade).
type Medicine struct {
	ID         MedicineID `json:"id"`
	Name       string     `json:"name"`
	Quantity   int        `json:"quantity"`   // Nunca negativa
	Expiration time.Time  `json:"expiration"` // Data de validade, precisão de dia (meia-noite UTC)
}

// Fields retorna a parte mutável do medicamento.
func (m Medicine) Fields() MedicineFields {
	return MedicineFields{Name: m.Name, Quantity: m.Quantity, Expiration: m.Expiration}
}

// MedicineFields agrupa os campos que podem ser criados ou alterados por uma edição.
type MedicineFields struct {
	Name       string
	Quantity   int
	Expiration time.Time
}

// Validate verifica as invariantes da entidade antes de ela entrar no repositório.
func (f MedicineFields) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return apperror.NewFieldValidationError("name", "O nome do medicamento não pode ser vazio.")
	}
	if f.Quantity < 0 {
		return apperror.NewFieldValidationError("quantity", "A quantidade não pode ser negativa.")
	}
	if f.Expiration.IsZero() {
		return apperror.NewFieldValidationError("expiration", "A data de validade é obrigatória.")
	}
	return nil
}

// IsExpired informa se a validade é estritamente anterior a "hoje".
func (m Medicine) IsExpired(today time.Time) bool {
	return m.Expiration.Before(DateOf(today))
}
