package postgres

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// CustomerTable descriptor de la tabla customers para el repositorio y el
// servicio de consulta genéricos.
func CustomerTable() Table[*entity.Customer, string] {
	return Table[*entity.Customer, string]{
		Name:     "customers",
		IDColumn: "id",
		Columns:  []string{"id", "name", "email", "number", "notes", "created_date", "modified_date"},
		Values: func(c *entity.Customer) []any {
			return []any{
				c.ID(), c.Name(), c.Email(), c.Number(), c.Notes(),
				c.CreatedDate(), c.ModifiedDate(),
			}
		},
		Scan: func(row pgx.Row) (*entity.Customer, error) {
			var (
				id, name, email       string
				number, notes         *string
				createdAt, modifiedAt time.Time
			)
			if err := row.Scan(&id, &name, &email, &number, &notes, &createdAt, &modifiedAt); err != nil {
				return nil, err
			}
			return entity.RehydrateCustomer(id, name, email, number, notes, createdAt, modifiedAt), nil
		},
	}
}
