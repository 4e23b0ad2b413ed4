package entity

import (
	"time"

	"github.com/jhoicas/Clientes-api/internal/domain/result"
)

// Customer representa un cliente de la empresa (raíz de agregado).
// Los campos son privados: el id es inmutable después de la creación y las
// mutaciones pasan por métodos Update* que devuelven un result.Status.
type Customer struct {
	id           string
	name         string
	email        string
	number       *string
	notes        *string
	createdDate  time.Time
	modifiedDate time.Time
}

// NewCustomer crea un cliente con valores ya validados en el contrato.
// No aplica validación propia: devuelve siempre éxito, pero mantiene la
// forma Result para que la capa de aplicación componga errores de forma
// uniforme.
func NewCustomer(
	id string,
	name string,
	email string,
	number *string,
	notes *string,
	createdDate time.Time,
	modifiedDate time.Time,
) result.Result[*Customer] {
	c := &Customer{
		id:           id,
		name:         name,
		email:        email,
		number:       number,
		notes:        notes,
		createdDate:  createdDate,
		modifiedDate: modifiedDate,
	}
	return result.Ok(c)
}

// RehydrateCustomer reconstruye un cliente desde la persistencia.
// Solo para adaptadores de almacenamiento; no usar en lógica de negocio.
func RehydrateCustomer(
	id string,
	name string,
	email string,
	number *string,
	notes *string,
	createdDate time.Time,
	modifiedDate time.Time,
) *Customer {
	return &Customer{
		id:           id,
		name:         name,
		email:        email,
		number:       number,
		notes:        notes,
		createdDate:  createdDate,
		modifiedDate: modifiedDate,
	}
}

// ID identificador inmutable del cliente.
func (c *Customer) ID() string { return c.id }

// Name nombre del cliente.
func (c *Customer) Name() string { return c.name }

// Email correo del cliente.
func (c *Customer) Email() string { return c.email }

// Number número del cliente (opcional).
func (c *Customer) Number() *string { return c.number }

// Notes notas del cliente (opcional).
func (c *Customer) Notes() *string { return c.notes }

// CreatedDate fecha de creación suministrada por el llamador.
func (c *Customer) CreatedDate() time.Time { return c.createdDate }

// ModifiedDate fecha de modificación suministrada por el llamador.
func (c *Customer) ModifiedDate() time.Time { return c.modifiedDate }

// UpdateName actualiza el nombre.
func (c *Customer) UpdateName(name string) result.Status {
	c.name = name
	return result.Success()
}

// UpdateEmail actualiza el correo.
func (c *Customer) UpdateEmail(email string) result.Status {
	c.email = email
	return result.Success()
}

// UpdateNumber actualiza el número.
func (c *Customer) UpdateNumber(number *string) result.Status {
	c.number = number
	return result.Success()
}

// UpdateNotes actualiza las notas.
func (c *Customer) UpdateNotes(notes *string) result.Status {
	c.notes = notes
	return result.Success()
}

// UpdateCreatedDate actualiza la fecha de creación.
func (c *Customer) UpdateCreatedDate(createdDate time.Time) result.Status {
	c.createdDate = createdDate
	return result.Success()
}

// UpdateModifiedDate actualiza la fecha de modificación.
func (c *Customer) UpdateModifiedDate(modifiedDate time.Time) result.Status {
	c.modifiedDate = modifiedDate
	return result.Success()
}
