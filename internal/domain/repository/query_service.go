package repository

import (
	"cmp"
	"context"
)

// QueryService puerto de consulta de solo lectura: misma superficie de
// lectura que Repository pero proyectando DTOs en lugar de entidades.
// Las lecturas nunca pasan por la unidad de trabajo (sin tracking, sin
// escrituras accidentales); la proyección la inyecta la raíz de composición.
type QueryService[E Entity[K], K cmp.Ordered, D any] interface {
	// Count devuelve el total de entidades.
	Count(ctx context.Context) (int64, error)
	// CountWhere devuelve el total de entidades que cumplen el filtro.
	CountWhere(ctx context.Context, filter Filter[E]) (int64, error)
	// Exists indica si alguna entidad cumple el filtro.
	Exists(ctx context.Context, filter Filter[E]) (bool, error)
	// GetAll devuelve todas las entidades proyectadas.
	GetAll(ctx context.Context) ([]D, error)
	// GetPage devuelve una página proyectada (orden por defecto: id asc).
	GetPage(ctx context.Context, skip, take int, order *Order[E]) ([]D, error)
	// GetPageWhere variante filtrada de GetPage.
	GetPageWhere(ctx context.Context, filter Filter[E], skip, take int, order *Order[E]) ([]D, error)
	// GetByID devuelve el DTO o nil si la entidad no existe.
	GetByID(ctx context.Context, id K) (*D, error)
	// Find devuelve las entidades que cumplen el filtro, proyectadas.
	Find(ctx context.Context, filter Filter[E]) ([]D, error)
}
