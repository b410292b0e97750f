// Package memstore implementa en memoria los repositorios y el TxRunner para tests.
//
// Run serializa las transacciones con un mutex (equivalente a bloquear todas las filas),
// toma una instantánea del estado y la restaura si fn falla: mismas garantías de
// Commit/Rollback que PostgreSQL para los casos de uso. FailOn permite inyectar errores
// en operaciones concretas ("garbage.create", "history.append", "commit", …).
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Activos-api/internal/application/ports"
	"github.com/jhoicas/Activos-api/internal/domain/entity"
)

var _ ports.TxRunner = (*Store)(nil)

type row[T any] struct {
	v   T
	seq int64
}

// table mapa id → fila con orden de inserción (seq) para listar "más recientes primero".
type table[T any] struct {
	rows map[string]*row[T]
	next int64
}

func newTable[T any]() table[T] {
	return table[T]{rows: map[string]*row[T]{}}
}

// clone copia el mapa; las filas son inmutables (put reemplaza el puntero), así que basta copia superficial.
func (t table[T]) clone() table[T] {
	m := make(map[string]*row[T], len(t.rows))
	for k, v := range t.rows {
		m[k] = v
	}
	return table[T]{rows: m, next: t.next}
}

func (t *table[T]) put(id string, v T) {
	if r, ok := t.rows[id]; ok {
		t.rows[id] = &row[T]{v: v, seq: r.seq}
		return
	}
	t.next++
	t.rows[id] = &row[T]{v: v, seq: t.next}
}

func (t table[T]) get(id string) (T, bool) {
	r, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return r.v, true
}

func (t *table[T]) del(id string) {
	delete(t.rows, id)
}

// all devuelve las filas que cumplen keep, más recientes primero.
func (t table[T]) all(keep func(T) bool) []T {
	rows := make([]*row[T], 0, len(t.rows))
	for _, r := range t.rows {
		if keep == nil || keep(r.v) {
			rows = append(rows, r)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.v)
	}
	return out
}

type state struct {
	assets      table[entity.Asset]
	issues      table[entity.Issue]
	transfers   table[entity.Transfer]
	garbage     table[entity.Garbage]
	history     table[entity.HistoryEvent]
	software    table[entity.Software]
	assignments table[entity.SoftwareAssignment]
	users       table[entity.User]
}

func newState() state {
	return state{
		assets:      newTable[entity.Asset](),
		issues:      newTable[entity.Issue](),
		transfers:   newTable[entity.Transfer](),
		garbage:     newTable[entity.Garbage](),
		history:     newTable[entity.HistoryEvent](),
		software:    newTable[entity.Software](),
		assignments: newTable[entity.SoftwareAssignment](),
		users:       newTable[entity.User](),
	}
}

func (s state) clone() state {
	return state{
		assets:      s.assets.clone(),
		issues:      s.issues.clone(),
		transfers:   s.transfers.clone(),
		garbage:     s.garbage.clone(),
		history:     s.history.clone(),
		software:    s.software.clone(),
		assignments: s.assignments.clone(),
		users:       s.users.clone(),
	}
}

// Store almacén en memoria.
type Store struct {
	mu       sync.Mutex
	data     state
	failures map[string]error
	commits  int
}

// New crea un almacén vacío.
func New() *Store {
	return &Store{data: newState(), failures: map[string]error{}}
}

// FailOn hace que la operación op devuelva err hasta que se llame ClearFailures.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// ClearFailures elimina los errores inyectados.
func (s *Store) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = map[string]error{}
}

// Commits número de transacciones confirmadas.
func (s *Store) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// Run implementa ports.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(r ports.TxRepos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	snapshot := s.data.clone()
	if err := fn(s.repos(true)); err != nil {
		s.data = snapshot
		return err
	}
	if err := s.failures["commit"]; err != nil {
		s.data = snapshot
		return err
	}
	s.commits++
	return nil
}

// Repos repositorios fuera de transacción (cada llamada toma el lock).
func (s *Store) Repos() ports.TxRepos {
	return s.repos(false)
}

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo {
	return &UserRepo{base{s: s}}
}

func (s *Store) repos(inTx bool) ports.TxRepos {
	b := base{s: s, inTx: inTx}
	return ports.TxRepos{
		Assets:    &AssetRepo{b},
		Issues:    &IssueRepo{b},
		Transfers: &TransferRepo{b},
		Garbage:   &GarbageRepo{b},
		History:   &HistoryRepo{b},
		Software:  &SoftwareRepo{b},
	}
}

// base comparte el acceso al estado; dentro de Run el lock ya está tomado.
type base struct {
	s    *Store
	inTx bool
}

func (b base) do(op string, fn func(st *state) error) error {
	if !b.inTx {
		b.s.mu.Lock()
		defer b.s.mu.Unlock()
	}
	if err := b.s.failures[op]; err != nil {
		return err
	}
	return fn(&b.s.data)
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

func ptr[T any](v T) *T {
	return &v
}

func ptrs[T any](list []T) []*T {
	out := make([]*T, 0, len(list))
	for i := range list {
		out = append(out, ptr(list[i]))
	}
	return out
}
