package usecase

import "github.com/jhoicas/Clientes-api/internal/domain/result"

// mapErrorsToResult aplica la política de mapeo de errores del servicio de
// aplicación: si hay algún NotFound se devuelve solo el primero (suprime el
// resto); si no, si hay errores de validación se devuelven todos; en otro
// caso los errores pasan sin cambios (cubre Conflict y no clasificados).
func mapErrorsToResult(errs []result.Error) []result.Error {
	for _, e := range errs {
		if e.Kind() == result.KindNotFound {
			return []result.Error{e}
		}
	}
	var validations []result.Error
	for _, e := range errs {
		if e.Kind() == result.KindValidation {
			validations = append(validations, e)
		}
	}
	if len(validations) > 0 {
		return validations
	}
	return errs
}
