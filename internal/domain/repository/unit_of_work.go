package repository

import "context"

// UnitOfWork delimita una frontera transaccional sobre los repositorios.
// Los repositorios encolan mutaciones; nada llega al almacenamiento hasta
// SaveChanges. No llamar a SaveChanges es un no-op silencioso, no un error.
type UnitOfWork interface {
	// SaveChanges persiste las mutaciones pendientes y devuelve el número
	// de registros afectados. Si hay una transacción abierta ejecuta dentro
	// de ella; si no, usa una transacción implícita por llamada. Un rechazo
	// del almacenamiento se propaga como error irrecuperable, sin reintento.
	SaveChanges(ctx context.Context) (int64, error)
	// BeginTransaction abre una transacción. Si ya hay una abierta es un
	// no-op: solo puede haber una transacción por instancia.
	BeginTransaction(ctx context.Context) error
	// CommitTransaction confirma la transacción abierta; no-op si no hay.
	CommitTransaction(ctx context.Context) error
	// RollbackTransaction revierte la transacción abierta; no-op si no hay.
	RollbackTransaction(ctx context.Context) error
	// Close libera la unidad de trabajo; una transacción aún abierta se
	// revierte sin confirmar (rollback por abandono).
	Close(ctx context.Context) error
}
