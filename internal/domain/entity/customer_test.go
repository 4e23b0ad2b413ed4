package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

func TestNewCustomer(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	number := "3001234567"

	res := entity.NewCustomer("c1", "Ana", "ana@example.com", &number, nil, created, created)
	require.False(t, res.IsFailed())

	c := res.Value()
	assert.Equal(t, "c1", c.ID())
	assert.Equal(t, "Ana", c.Name())
	assert.Equal(t, "ana@example.com", c.Email())
	require.NotNil(t, c.Number())
	assert.Equal(t, number, *c.Number())
	assert.Nil(t, c.Notes())
	assert.Equal(t, created, c.CreatedDate())
}

func TestCustomer_Updates(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := entity.RehydrateCustomer("c1", "Ana", "ana@example.com", nil, nil, now, now)

	require.False(t, c.UpdateName("Ana María").IsFailed())
	require.False(t, c.UpdateEmail("ana.maria@example.com").IsFailed())
	notes := "cliente preferente"
	require.False(t, c.UpdateNotes(&notes).IsFailed())
	later := now.Add(time.Hour)
	require.False(t, c.UpdateModifiedDate(later).IsFailed())

	assert.Equal(t, "Ana María", c.Name())
	assert.Equal(t, "ana.maria@example.com", c.Email())
	require.NotNil(t, c.Notes())
	assert.Equal(t, notes, *c.Notes())
	assert.Equal(t, later, c.ModifiedDate())

	// Los campos opcionales pueden volver a nil.
	require.False(t, c.UpdateNotes(nil).IsFailed())
	assert.Nil(t, c.Notes())
}
