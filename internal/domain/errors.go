package domain

import "errors"

// ErrDuplicate lo emiten los adaptadores de persistencia ante una violación
// de unicidad; la capa de aplicación lo traduce con errors.Is. Las demás
// condiciones de negocio esperadas viajan como result.Error (la ausencia de
// un registro es un valor cero, no un error).
var ErrDuplicate = errors.New("recurso duplicado")
