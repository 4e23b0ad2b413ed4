// Package memory implementa los puertos de persistencia sobre mapas en
// memoria protegidos por mutex. Se usa en pruebas y como adaptador de
// arranque sin base de datos.
package memory

import (
	"cmp"
	"slices"
	"sync"
)

// Store mapa genérico clave-entidad con clonado defensivo. El clon se
// aplica en cada entrada y salida para que los llamadores no muten el
// estado guardado por referencia compartida.
type Store[E any, K cmp.Ordered] struct {
	mu    sync.RWMutex
	items map[K]E
	clone func(E) E
}

// NewStore crea el almacén con su función de clonado.
func NewStore[E any, K cmp.Ordered](clone func(E) E) *Store[E, K] {
	return &Store[E, K]{
		items: make(map[K]E),
		clone: clone,
	}
}

// Get devuelve la entidad y si existe.
func (s *Store[E, K]) Get(id K) (E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.items[id]
	if !ok {
		var zero E
		return zero, false
	}
	return s.clone(e), true
}

// All devuelve todas las entidades ordenadas por clave.
func (s *Store[E, K]) All() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]K, 0, len(s.items))
	for k := range s.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	list := make([]E, 0, len(keys))
	for _, k := range keys {
		list = append(list, s.clone(s.items[k]))
	}
	return list
}

// Put guarda o reemplaza la entidad.
func (s *Store[E, K]) Put(id K, e E) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = s.clone(e)
}

// Has indica si existe la clave.
func (s *Store[E, K]) Has(id K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.items[id]
	return ok
}

// Delete elimina la entidad; devuelve si existía.
func (s *Store[E, K]) Delete(id K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.items[id]
	delete(s.items, id)
	return ok
}

// Len devuelve el número de entidades.
func (s *Store[E, K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Snapshot copia el estado actual para poder restaurarlo después.
func (s *Store[E, K]) Snapshot() map[K]E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[K]E, len(s.items))
	for k, e := range s.items {
		snap[k] = s.clone(e)
	}
	return snap
}

// Restore reemplaza el estado con una copia previa.
func (s *Store[E, K]) Restore(snap map[K]E) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[K]E, len(snap))
	for k, e := range snap {
		s.items[k] = s.clone(e)
	}
}
