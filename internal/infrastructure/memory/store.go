// Package memory implementa los puertos de persistencia en memoria. Se usa en
// tests y como backend de desarrollo (STORAGE_DRIVER=memory).
package memory

import (
	"sync"

	"github.com/jhoicas/envos-stock/internal/domain/entity"
)

// state es el conjunto de datos; se clona para cada transacción.
type state struct {
	articles  map[string]entity.Article
	movements []entity.Movement
	loads     map[string]entity.OperationalLoad
	closings  map[string]entity.MonthClosing
	users     map[string]entity.User // por email
}

func newState() *state {
	return &state{
		articles: make(map[string]entity.Article),
		loads:    make(map[string]entity.OperationalLoad),
		closings: make(map[string]entity.MonthClosing),
		users:    make(map[string]entity.User),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.articles {
		c.articles[k] = v
	}
	c.movements = append([]entity.Movement(nil), s.movements...)
	for k, v := range s.loads {
		c.loads[k] = cloneLoad(v)
	}
	for k, v := range s.closings {
		c.closings[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	return c
}

func cloneLoad(l entity.OperationalLoad) entity.OperationalLoad {
	cons := make(map[string]int64, len(l.Consumptions))
	for k, v := range l.Consumptions {
		cons[k] = v
	}
	l.Consumptions = cons
	return l
}

// access da acceso exclusivo al estado: con bloqueo (Store) o sin él (dentro de una tx).
type access interface {
	with(fn func(st *state) error) error
}

// Store base de datos en memoria. Las transacciones se serializan y trabajan
// sobre una copia que solo se publica si fn termina sin error.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) with(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// txView acceso al clon de una transacción; el Store ya está bloqueado.
type txView struct {
	st *state
}

func (v txView) with(fn func(st *state) error) error {
	return fn(v.st)
}

// Articles devuelve el repositorio de artículos.
func (s *Store) Articles() *ArticleRepo { return &ArticleRepo{db: s} }

// Movements devuelve el repositorio del ledger.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{db: s} }

// Loads devuelve el repositorio de cargas.
func (s *Store) Loads() *LoadRepo { return &LoadRepo{db: s} }

// Closings devuelve el repositorio de cierres.
func (s *Store) Closings() *ClosingRepo { return &ClosingRepo{db: s} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{db: s} }

// Analytics devuelve el repositorio de consultas agregadas.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{db: s} }
