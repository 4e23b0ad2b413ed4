// Package idgen genera identificadores de entidad.
package idgen

import "github.com/google/uuid"

// UUIDv7 generador de ids ordenables por tiempo de creación.
type UUIDv7 struct{}

// NewID devuelve un UUID v7 en texto. Si la fuente de entropía falla cae
// a un UUID v4 aleatorio.
func (UUIDv7) NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
