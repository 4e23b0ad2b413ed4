package memory

import (
	"cmp"
	"context"
	"sync"
)

// change mutación pendiente del changeset en memoria.
type change struct {
	apply func() (int64, error)
	key   string
}

// storeHandle acceso tipo-borrado al snapshot de un almacén adscrito.
type storeHandle struct {
	snapshot func() any
	restore  func(any)
}

// UnitOfWork changeset en memoria con la misma semántica que el adaptador
// de base de datos: las escrituras se encolan y SaveChanges las aplica de
// una vez; la transacción abierta se implementa con snapshots de los
// almacenes adscritos.
type UnitOfWork struct {
	mu      sync.Mutex
	pending []change
	tracked map[string]struct{}
	stores  []storeHandle
	txSnaps []any
	inTx    bool
}

// NewUnitOfWork crea la unidad de trabajo vacía.
func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{tracked: make(map[string]struct{})}
}

// Attach adscribe un almacén a la unidad de trabajo para que participe en
// los snapshots de transacción.
func Attach[E any, K cmp.Ordered](u *UnitOfWork, s *Store[E, K]) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.stores = append(u.stores, storeHandle{
		snapshot: func() any { return s.Snapshot() },
		restore:  func(v any) { s.Restore(v.(map[K]E)) },
	})
}

func (u *UnitOfWork) enqueue(apply func() (int64, error), trackKey string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = append(u.pending, change{apply: apply, key: trackKey})
	u.tracked[trackKey] = struct{}{}
}

func (u *UnitOfWork) isTracked(trackKey string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, ok := u.tracked[trackKey]
	return ok
}

func (u *UnitOfWork) snapshotAll() []any {
	snaps := make([]any, len(u.stores))
	for i, h := range u.stores {
		snaps[i] = h.snapshot()
	}
	return snaps
}

func (u *UnitOfWork) restoreAll(snaps []any) {
	for i, h := range u.stores {
		h.restore(snaps[i])
	}
}

// SaveChanges aplica las mutaciones pendientes en orden de encolado. Si
// alguna falla se restaura el estado previo a la llamada y el lote queda
// descartado, igual que en el adaptador de base de datos: un reintento es
// un no-op. Sin pendientes devuelve cero sin error.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int64, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	pending := u.pending
	u.pending = nil
	u.tracked = make(map[string]struct{})

	if len(pending) == 0 {
		return 0, nil
	}

	before := u.snapshotAll()
	var affected int64
	for _, c := range pending {
		n, err := c.apply()
		if err != nil {
			u.restoreAll(before)
			return 0, err
		}
		affected += n
	}
	return affected, nil
}

// BeginTransaction abre la transacción tomando snapshots; no-op si ya hay
// una abierta.
func (u *UnitOfWork) BeginTransaction(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.inTx {
		return nil
	}
	u.txSnaps = u.snapshotAll()
	u.inTx = true
	return nil
}

// CommitTransaction confirma descartando los snapshots; no-op sin
// transacción abierta.
func (u *UnitOfWork) CommitTransaction(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.inTx {
		return nil
	}
	u.txSnaps = nil
	u.inTx = false
	return nil
}

// RollbackTransaction restaura los almacenes al estado del Begin y
// descarta lo pendiente; no-op sin transacción abierta.
func (u *UnitOfWork) RollbackTransaction(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.inTx {
		return nil
	}
	u.restoreAll(u.txSnaps)
	u.txSnaps = nil
	u.inTx = false
	u.pending = nil
	u.tracked = make(map[string]struct{})
	return nil
}

// Close revierte la transacción abandonada si la hay.
func (u *UnitOfWork) Close(ctx context.Context) error {
	return u.RollbackTransaction(ctx)
}
