// Package application contiene las piezas compartidas de la capa de
// aplicación: validación de paginación y puertos de servicios auxiliares.
package application

import (
	"fmt"

	"github.com/jhoicas/Clientes-api/internal/domain/result"
)

// Límites de paginación de los servicios de aplicación.
const (
	// DefaultPageSize tamaño de página cuando el llamador no envía take.
	DefaultPageSize = 50
	// MaxPageSize tamaño máximo de página admitido en take.
	MaxPageSize = 100
)

// ValidatePagination valida los parámetros skip y take. Las tres
// comprobaciones son independientes y se combinan con Merge: no se corta en
// el primer fallo. Los valores por defecto (0 y DefaultPageSize) los aplica
// el llamador después de que la validación pase.
func ValidatePagination(skip, take *int) result.Status {
	skipResult := result.FailIf(
		skip != nil && *skip < 0,
		result.Validation("skip", "Skip cannot be negative."),
	)
	takeMinimumResult := result.FailIf(
		take != nil && *take < 1,
		result.Validation("take", "Take must be at least 1."),
	)
	takeMaximumResult := result.FailIf(
		take != nil && *take > MaxPageSize,
		result.Validation("take", fmt.Sprintf("Take cannot exceed %d.", MaxPageSize)),
	)
	return result.Merge(skipResult, takeMinimumResult, takeMaximumResult)
}

// ApplyPaginationDefaults devuelve skip y take efectivos tras una
// validación exitosa.
func ApplyPaginationDefaults(skip, take *int) (int, int) {
	s := 0
	if skip != nil {
		s = *skip
	}
	t := DefaultPageSize
	if take != nil {
		t = *take
	}
	return s, t
}
