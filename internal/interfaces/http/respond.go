package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain/result"
)

// respondErrors traduce los errores de un resultado fallido a HTTP. El
// primer error decide: NotFound responde 404 sin cuerpo, Conflict 409 con
// mensaje, Validation 422 con los mensajes agrupados por campo,
// AccessDenied 403 sin cuerpo y todo lo demás 500 con el primer mensaje.
func respondErrors(c *fiber.Ctx, errs []result.Error) error {
	if len(errs) == 0 {
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "unknown error"})
	}
	switch first := errs[0].(type) {
	case *result.NotFoundError:
		// SendStatus rellenaría el cuerpo con el texto del estado.
		return c.Status(fiber.StatusNotFound).SendString("")
	case *result.ConflictError:
		return c.Status(fiber.StatusConflict).
			JSON(dto.ErrorResponse{Code: "CONFLICT", Message: first.Error()})
	case *result.ValidationError:
		return c.Status(fiber.StatusUnprocessableEntity).
			JSON(validationProblem(errs))
	case *result.AccessDeniedError:
		return c.Status(fiber.StatusForbidden).SendString("")
	default:
		return c.Status(fiber.StatusInternalServerError).
			JSON(dto.ErrorResponse{Code: "INTERNAL", Message: first.Error()})
	}
}

// validationProblem agrupa los mensajes de validación por campo. Errores
// sin campo caen bajo la clave vacía.
func validationProblem(errs []result.Error) dto.ValidationProblem {
	grouped := make(map[string][]string)
	for _, e := range errs {
		v, ok := e.(*result.ValidationError)
		if !ok {
			continue
		}
		grouped[v.Field] = append(grouped[v.Field], v.Message)
	}
	return dto.ValidationProblem{Code: "VALIDATION", Errors: grouped}
}
