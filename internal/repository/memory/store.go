// Package memory is the embedded store used when no database is configured.
// It honors the same repository contracts as the Postgres implementation.
package memory

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/maxviazov/petclinic-service/internal/seed"
)

// Store holds every table behind one RWMutex. Rows are kept flat, the way a
// relational schema would, and joined on read.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	state
}

type state struct {
	owners      map[int64]model.Owner
	pets        map[int64]model.Pet
	visits      map[int64]model.Visit
	types       map[int64]model.PetType
	vets        []model.Vet
	nextOwnerID int64
	nextPetID   int64
	nextVisitID int64
}

// New builds a store, optionally preloaded with a dataset.
func New(ds *seed.Dataset) *Store {
	s := &Store{state: state{
		owners: map[int64]model.Owner{},
		pets:   map[int64]model.Pet{},
		visits: map[int64]model.Visit{},
		types:  map[int64]model.PetType{},
	}}
	if ds == nil {
		return s
	}
	for _, t := range ds.Types {
		s.types[t.ID] = t
	}
	for _, v := range ds.Vets {
		v.Specialties = append([]model.Specialty{}, v.Specialties...)
		s.vets = append(s.vets, v)
	}
	for _, o := range ds.Owners {
		o.Pets = nil
		s.owners[o.ID] = o
		s.nextOwnerID = max(s.nextOwnerID, o.ID)
	}
	for _, p := range ds.Pets() {
		p.Visits = nil
		s.pets[p.ID] = p
		s.nextPetID = max(s.nextPetID, p.ID)
	}
	for _, v := range ds.Visits() {
		s.visits[v.ID] = v
		s.nextVisitID = max(s.nextVisitID, v.ID)
	}
	return s
}

func (s state) clone() state {
	c := s
	c.owners = maps.Clone(s.owners)
	c.pets = maps.Clone(s.pets)
	c.visits = maps.Clone(s.visits)
	c.types = maps.Clone(s.types)
	return c
}

// owner joins an owner row with its pets (ordered by name) and their visits. Caller holds mu.
func (s *Store) owner(o model.Owner, withVisits bool) model.Owner {
	o.Pets = []model.Pet{}
	for _, p := range s.pets {
		if p.OwnerID != o.ID {
			continue
		}
		if withVisits {
			p = s.pet(p)
		} else {
			p.Type = s.types[p.Type.ID]
			p.Visits = []model.Visit{}
		}
		o.Pets = append(o.Pets, p)
	}
	sort.Slice(o.Pets, func(i, j int) bool {
		if o.Pets[i].Name != o.Pets[j].Name {
			return o.Pets[i].Name < o.Pets[j].Name
		}
		return o.Pets[i].ID < o.Pets[j].ID
	})
	return o
}

// pet attaches visits ordered by date. Caller holds mu.
func (s *Store) pet(p model.Pet) model.Pet {
	p.Type = s.types[p.Type.ID]
	p.Visits = s.visitsOf(p.ID)
	return p
}

func (s *Store) visitsOf(petID int64) []model.Visit {
	out := []model.Visit{}
	for _, v := range s.visits {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	sortVisits(out, func(i int) model.Visit { return out[i] })
	return out
}

func sortVisits[T any](vs []T, at func(i int) model.Visit) {
	sort.Slice(vs, func(i, j int) bool {
		a, b := at(i), at(j)
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})
}

func (s *Store) nameTaken(ownerID, exceptPetID int64, name string) bool {
	for _, p := range s.pets {
		if p.OwnerID == ownerID && p.ID != exceptPetID && strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}

type txManager struct{ s *Store }

// NewTxManager serializes units of work and restores a snapshot when one fails.
// Writers outside a unit wait for it to finish (see Store.lock), so the snapshot
// only ever covers the unit's own writes.
func NewTxManager(s *Store) repository.TxManager { return &txManager{s: s} }

type txKey struct{}

func (m *txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.s.txMu.Lock()
	defer m.s.txMu.Unlock()

	m.s.mu.RLock()
	snapshot := m.s.state.clone()
	m.s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		m.s.mu.Lock()
		m.s.state = snapshot
		m.s.mu.Unlock()
		return err
	}
	return nil
}

// lock takes the write lock and returns its release. Outside a unit of work it first
// waits for the running unit, if any, so a rollback cannot discard this write.
func (s *Store) lock(ctx context.Context) func() {
	if ctx.Value(txKey{}) != nil {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

type pinger struct{}

// NewPinger reports the in-process store as ready for as long as the caller's
// context is live; there is no connection to check.
func NewPinger() repository.Pinger { return pinger{} }

func (pinger) Ping(ctx context.Context) error { return ctx.Err() }
