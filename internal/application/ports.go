package application

// IDGenerator genera identificadores únicos para entidades nuevas.
// Se inyecta en la raíz de composición; la implementación de producción usa
// UUID v7 (ordenados en el tiempo, mejor localidad de índice).
type IDGenerator interface {
	NewID() string
}
