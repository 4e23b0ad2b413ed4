package dto

// Page página de resultados con el total de elementos disponibles.
// Items nunca es nil: una página vacía serializa como lista vacía.
type Page[T any] struct {
	TotalCount int64 `json:"totalCount"`
	Items      []T   `json:"items"`
}

// NewPage construye una página garantizando Items no nil.
func NewPage[T any](totalCount int64, items []T) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{TotalCount: totalCount, Items: items}
}

// ErrorResponse cuerpo de error HTTP genérico.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationProblem cuerpo de error de validación: mensajes agrupados por
// campo.
type ValidationProblem struct {
	Code   string              `json:"code"`
	Errors map[string][]string `json:"errors"`
}
