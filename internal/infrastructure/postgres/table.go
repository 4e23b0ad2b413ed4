package postgres

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Clientes-api/internal/domain/repository"
)

// Table describe el mapeo de una entidad a su tabla: nombre, columnas y
// las funciones de hidratación. Con este descriptor un único repositorio
// genérico sirve a cualquier entidad.
type Table[E repository.Entity[K], K cmp.Ordered] struct {
	// Name nombre de la tabla.
	Name string
	// IDColumn columna de la clave primaria.
	IDColumn string
	// Columns todas las columnas, con la clave primaria en primer lugar.
	Columns []string
	// Values devuelve los valores de la entidad en el orden de Columns.
	Values func(E) []any
	// Scan reconstruye la entidad desde una fila con las columnas en el
	// orden de Columns.
	Scan func(row pgx.Row) (E, error)
}

// columnList devuelve "col1, col2, ..." para SELECT e INSERT.
func (t Table[E, K]) columnList() string {
	return strings.Join(t.Columns, ", ")
}

// insertSQL genera el INSERT completo de una entidad.
func (t Table[E, K]) insertSQL() string {
	placeholders := make([]string, len(t.Columns))
	for i := range t.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		t.Name, t.columnList(), strings.Join(placeholders, ", "),
	)
}

// updateSQL genera el UPDATE de todas las columnas no-clave por id.
// Siempre se reemite la sentencia completa: sin tracking de cambios nativo,
// reescribir todas las columnas es el valor seguro.
func (t Table[E, K]) updateSQL() string {
	assignments := make([]string, 0, len(t.Columns)-1)
	for i, col := range t.Columns {
		if col == t.IDColumn {
			continue
		}
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+1))
	}
	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $1",
		t.Name, strings.Join(assignments, ", "), t.IDColumn,
	)
}

// deleteSQL genera el DELETE por id.
func (t Table[E, K]) deleteSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE %s = $1", t.Name, t.IDColumn)
}

// orderClause resuelve el ORDER BY: columna pedida o id ascendente por
// defecto. Los empates en la clave de orden los rompe el almacenamiento.
func (t Table[E, K]) orderClause(order *repository.Order[E]) string {
	column := t.IDColumn
	descending := false
	if order != nil && order.Column != "" {
		column = order.Column
		descending = order.Descending
	}
	if descending {
		return fmt.Sprintf("ORDER BY %s DESC", column)
	}
	return fmt.Sprintf("ORDER BY %s", column)
}
