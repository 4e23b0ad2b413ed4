package result

import "fmt"

// Kind clasifica un error de negocio para que las capas superiores
// (application, http) puedan mapearlo sin conocer el tipo concreto.
type Kind int

const (
	// KindUnknown error no clasificado (fallos de infraestructura, etc.).
	KindUnknown Kind = iota
	// KindNotFound el recurso pedido no existe.
	KindNotFound
	// KindValidation un campo de entrada no cumple las reglas.
	KindValidation
	// KindConflict la operación choca con el estado actual.
	KindConflict
	// KindAccessDenied el usuario no está autenticado o no tiene permisos.
	KindAccessDenied
)

// Error es un error de negocio etiquetado. Las operaciones de dominio y de
// aplicación devuelven valores (Result/Status) con estos errores en lugar de
// propagar errores de Go para condiciones esperadas.
type Error interface {
	error
	Kind() Kind
}

// NotFoundError recurso no encontrado.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// Kind implementa Error.
func (e *NotFoundError) Kind() Kind { return KindNotFound }

// ValidationError error de validación etiquetado por campo.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Message) }

// Kind implementa Error.
func (e *ValidationError) Kind() Kind { return KindValidation }

// ConflictError conflicto con el estado actual del sistema.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Kind implementa Error.
func (e *ConflictError) Kind() Kind { return KindConflict }

// AccessDeniedError acceso denegado (no autenticado o sin rol suficiente).
type AccessDeniedError struct {
	Message string
}

func (e *AccessDeniedError) Error() string { return e.Message }

// Kind implementa Error.
func (e *AccessDeniedError) Kind() Kind { return KindAccessDenied }

// UnknownError envuelve un error de Go inesperado (storage caído, etc.).
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string { return e.Err.Error() }

// Kind implementa Error.
func (e *UnknownError) Kind() Kind { return KindUnknown }

// Unwrap permite errors.Is/errors.As sobre el error original.
func (e *UnknownError) Unwrap() error { return e.Err }

// NotFound construye un NotFoundError.
func NotFound(message string) Error { return &NotFoundError{Message: message} }

// Validation construye un ValidationError para el campo dado.
func Validation(field, message string) Error {
	return &ValidationError{Field: field, Message: message}
}

// Conflict construye un ConflictError.
func Conflict(message string) Error { return &ConflictError{Message: message} }

// AccessDenied construye un AccessDeniedError.
func AccessDenied(message string) Error { return &AccessDeniedError{Message: message} }

// Unknown envuelve un error de Go como error de negocio no clasificado.
func Unknown(err error) Error { return &UnknownError{Err: err} }
