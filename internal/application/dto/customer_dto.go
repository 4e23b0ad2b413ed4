package dto

import (
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
	"github.com/jhoicas/Clientes-api/internal/domain/result"
)

// CustomerDto salida de un cliente.
type CustomerDto struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Number       *string   `json:"number"`
	Notes        *string   `json:"notes"`
	CreatedDate  time.Time `json:"createdDate"`
	ModifiedDate time.Time `json:"modifiedDate"`
}

// NewCustomerDto proyecta la entidad al DTO de transporte.
func NewCustomerDto(c *entity.Customer) CustomerDto {
	return CustomerDto{
		ID:           c.ID(),
		Name:         c.Name(),
		Email:        c.Email(),
		Number:       c.Number(),
		Notes:        c.Notes(),
		CreatedDate:  c.CreatedDate(),
		ModifiedDate: c.ModifiedDate(),
	}
}

// CreateUpdateCustomerDto entrada para crear o actualizar un cliente.
// Las fechas las suministra el llamador, no el servidor.
type CreateUpdateCustomerDto struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Number       *string   `json:"number"`
	Notes        *string   `json:"notes"`
	CreatedDate  time.Time `json:"createdDate"`
	ModifiedDate time.Time `json:"modifiedDate"`
}

// Validate aplica las comprobaciones de contrato (campos requeridos).
// Es validación de presencia, no de formato: el dominio no valida el email.
func (d CreateUpdateCustomerDto) Validate() result.Status {
	return result.Merge(
		result.FailIf(d.Name == "", result.Validation("name", "Name is required.")),
		result.FailIf(d.Email == "", result.Validation("email", "Email is required.")),
		result.FailIf(d.CreatedDate.IsZero(), result.Validation("createdDate", "CreatedDate is required.")),
		result.FailIf(d.ModifiedDate.IsZero(), result.Validation("modifiedDate", "ModifiedDate is required.")),
	)
}
