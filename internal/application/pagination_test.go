package application_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/application"
	"github.com/jhoicas/Clientes-api/internal/domain/result"
)

func intPtr(n int) *int { return &n }

func TestValidatePagination_ValoresValidos(t *testing.T) {
	cases := []struct {
		name string
		skip *int
		take *int
	}{
		{"ambos nil", nil, nil},
		{"skip cero", intPtr(0), nil},
		{"skip positivo", intPtr(250), nil},
		{"take mínimo", nil, intPtr(1)},
		{"take máximo", nil, intPtr(100)},
		{"ambos presentes", intPtr(10), intPtr(25)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, application.ValidatePagination(tc.skip, tc.take).IsFailed())
		})
	}
}

func TestValidatePagination_SkipNegativo(t *testing.T) {
	st := application.ValidatePagination(intPtr(-1), nil)
	require.True(t, st.IsFailed())
	require.Len(t, st.Errors(), 1)
	verr := st.Errors()[0].(*result.ValidationError)
	assert.Equal(t, "skip", verr.Field)
	assert.Equal(t, "Skip cannot be negative.", verr.Message)
}

func TestValidatePagination_TakeFueraDeRango(t *testing.T) {
	st := application.ValidatePagination(nil, intPtr(0))
	require.True(t, st.IsFailed())
	assert.Equal(t, "Take must be at least 1.", st.Errors()[0].(*result.ValidationError).Message)

	st = application.ValidatePagination(nil, intPtr(101))
	require.True(t, st.IsFailed())
	assert.Equal(t, "Take cannot exceed 100.", st.Errors()[0].(*result.ValidationError).Message)
}

// Las comprobaciones son independientes: skip y take inválidos a la vez
// reportan ambos errores.
func TestValidatePagination_ErroresIndependientes(t *testing.T) {
	st := application.ValidatePagination(intPtr(-5), intPtr(0))
	require.True(t, st.IsFailed())
	require.Len(t, st.Errors(), 2)
	assert.Equal(t, "skip", st.Errors()[0].(*result.ValidationError).Field)
	assert.Equal(t, "take", st.Errors()[1].(*result.ValidationError).Field)
}

func TestApplyPaginationDefaults(t *testing.T) {
	skip, take := application.ApplyPaginationDefaults(nil, nil)
	assert.Equal(t, 0, skip)
	assert.Equal(t, application.DefaultPageSize, take)

	skip, take = application.ApplyPaginationDefaults(intPtr(30), intPtr(10))
	assert.Equal(t, 30, skip)
	assert.Equal(t, 10, take)
}
