// Package result implementa el tipo de resultado etiquetado que usan el
// dominio y la capa de aplicación: un valor o una lista de errores de
// negocio. Las excepciones (panics, errores de Go) quedan reservadas para
// fallos realmente inesperados.
package result

// Status resultado sin valor: éxito o uno o más errores acumulados.
type Status struct {
	errs []Error
}

// Success devuelve un Status exitoso.
func Success() Status { return Status{} }

// Failure devuelve un Status fallido con los errores dados.
func Failure(errs ...Error) Status { return Status{errs: errs} }

// FailIf devuelve un Status fallido con err si cond es verdadera; si no,
// éxito. Útil para componer validaciones independientes con Merge.
func FailIf(cond bool, err Error) Status {
	if cond {
		return Failure(err)
	}
	return Success()
}

// Merge combina varios Status acumulando todos sus errores; no corta en el
// primer fallo.
func Merge(statuses ...Status) Status {
	var errs []Error
	for _, s := range statuses {
		errs = append(errs, s.errs...)
	}
	return Status{errs: errs}
}

// IsFailed indica si el Status contiene errores.
func (s Status) IsFailed() bool { return len(s.errs) > 0 }

// Errors devuelve los errores acumulados (nil en éxito).
func (s Status) Errors() []Error { return s.errs }

// Result resultado con valor: o bien un valor de tipo T, o bien errores.
type Result[T any] struct {
	value T
	errs  []Error
}

// Ok devuelve un Result exitoso con el valor dado.
func Ok[T any](value T) Result[T] { return Result[T]{value: value} }

// Fail devuelve un Result fallido con los errores dados.
func Fail[T any](errs ...Error) Result[T] { return Result[T]{errs: errs} }

// FailFrom convierte un Status fallido en un Result fallido del tipo pedido.
func FailFrom[T any](s Status) Result[T] { return Result[T]{errs: s.errs} }

// IsFailed indica si el Result contiene errores.
func (r Result[T]) IsFailed() bool { return len(r.errs) > 0 }

// Value devuelve el valor; solo tiene sentido si IsFailed() es falso.
func (r Result[T]) Value() T { return r.value }

// Errors devuelve los errores (nil en éxito).
func (r Result[T]) Errors() []Error { return r.errs }

// Status descarta el valor y devuelve el Status equivalente.
func (r Result[T]) Status() Status { return Status{errs: r.errs} }
