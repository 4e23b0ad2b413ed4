// Package repository define los puertos de persistencia (DIP): el
// repositorio genérico de escritura, el servicio de consulta de solo
// lectura y la unidad de trabajo.
package repository

import (
	"cmp"
	"context"
)

// Entity restringe el tipo de entidad a uno con identificador ordenable.
// El orden del id permite paginar con un orden por defecto estable.
type Entity[K cmp.Ordered] interface {
	ID() K
}

// Filter es el predicado que viaja del caso de uso al adaptador. Como Go no
// tiene árboles de expresión, lleva las dos representaciones: el fragmento
// SQL (con placeholders $1..$n sobre Args) para el adaptador de PostgreSQL
// y la función Match para el adaptador en memoria.
type Filter[E any] struct {
	Where string
	Args  []any
	Match func(E) bool
}

// Order criterio de ordenación de una página. Column lo usa el adaptador
// SQL; Less el adaptador en memoria. El cero (nil) ordena por id ascendente.
type Order[E any] struct {
	Column     string
	Descending bool
	Less       func(a, b E) bool
}

// Repository puerto genérico CRUD + consulta para una entidad con clave K.
// Ninguna operación de escritura toca el almacenamiento: Add/Update/Delete
// encolan el cambio en la unidad de trabajo y solo SaveChanges lo persiste.
type Repository[E Entity[K], K cmp.Ordered] interface {
	// Count devuelve el total de entidades.
	Count(ctx context.Context) (int64, error)
	// CountWhere devuelve el total de entidades que cumplen el filtro.
	CountWhere(ctx context.Context, filter Filter[E]) (int64, error)
	// Exists indica si alguna entidad cumple el filtro.
	Exists(ctx context.Context, filter Filter[E]) (bool, error)
	// GetAll devuelve todas las entidades.
	GetAll(ctx context.Context) ([]E, error)
	// GetPage devuelve una página: ordena (por defecto id ascendente) y
	// aplica skip/take (paginación por offset).
	GetPage(ctx context.Context, skip, take int, order *Order[E]) ([]E, error)
	// GetPageWhere variante filtrada de GetPage.
	GetPageWhere(ctx context.Context, filter Filter[E], skip, take int, order *Order[E]) ([]E, error)
	// GetByID devuelve la entidad o el cero de E si no existe. Un id cero
	// corta en corto sin tocar el almacenamiento.
	GetByID(ctx context.Context, id K) (E, error)
	// Find devuelve las entidades que cumplen el filtro.
	Find(ctx context.Context, filter Filter[E]) ([]E, error)

	// Add encola la inserción de una entidad nueva.
	Add(ctx context.Context, e E) error
	// AddRange encola la inserción de varias entidades.
	AddRange(ctx context.Context, es []E) error
	// Update encola la actualización; si la entidad ya está registrada en
	// la unidad de trabajo es un no-op, no un error.
	Update(ctx context.Context, e E) error
	// UpdateRange encola la actualización de varias entidades.
	UpdateRange(ctx context.Context, es []E) error
	// Delete encola el borrado de una entidad.
	Delete(ctx context.Context, e E) error
	// DeleteRange encola el borrado de varias entidades.
	DeleteRange(ctx context.Context, es []E) error
	// DeleteRangeByIDs busca las entidades por id y encola su borrado
	// (dos viajes al almacenamiento, no un borrado masivo).
	DeleteRangeByIDs(ctx context.Context, ids []K) error
}
