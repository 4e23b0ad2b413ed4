package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/domain/result"
)

// El primer NotFound suprime cualquier otro error de la lista.
func TestMapErrors_NotFoundGanaYSuprimeElResto(t *testing.T) {
	errs := []result.Error{
		result.Validation("name", "Name is required."),
		result.NotFound("Customer with ID 'c1' was not found."),
		result.NotFound("Customer with ID 'c2' was not found."),
		result.Conflict("A user with that email already exists."),
	}

	mapped := mapErrorsToResult(errs)

	require.Len(t, mapped, 1)
	assert.Equal(t, result.KindNotFound, mapped[0].Kind())
	assert.Equal(t, "Customer with ID 'c1' was not found.", mapped[0].Error())
}

// Sin NotFound, los errores de validación se devuelven todos y filtran al
// resto de clases.
func TestMapErrors_ValidacionesSeAcumulan(t *testing.T) {
	errs := []result.Error{
		result.Conflict("conflicto"),
		result.Validation("skip", "Skip cannot be negative."),
		result.Validation("take", "Take cannot exceed 100."),
	}

	mapped := mapErrorsToResult(errs)

	require.Len(t, mapped, 2)
	assert.Equal(t, result.KindValidation, mapped[0].Kind())
	assert.Equal(t, "skip: Skip cannot be negative.", mapped[0].Error())
	assert.Equal(t, "take: Take cannot exceed 100.", mapped[1].Error())
}

// Sin NotFound ni validaciones la lista pasa sin cambios: Conflict y los
// errores no clasificados conservan orden e identidad.
func TestMapErrors_ConflictYDesconocidosPasanTalCual(t *testing.T) {
	cause := errors.New("conexión perdida")
	errs := []result.Error{
		result.Conflict("Users cannot delete their own account."),
		result.Unknown(cause),
	}

	mapped := mapErrorsToResult(errs)

	require.Len(t, mapped, 2)
	assert.Equal(t, result.KindConflict, mapped[0].Kind())
	assert.Equal(t, result.KindUnknown, mapped[1].Kind())
	assert.True(t, errors.Is(mapped[1], cause))
}
