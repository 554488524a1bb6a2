package memory

import (
	"context"
	"sort"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
)

type petRepository struct{ s *Store }

func NewPetRepository(s *Store) repository.PetRepository { return &petRepository{s: s} }

func (r *petRepository) Create(ctx context.Context, p model.Pet) (model.Pet, error) {
	defer r.s.lock(ctx)()
	if _, ok := r.s.owners[p.OwnerID]; !ok {
		return model.Pet{}, repository.ErrConflict
	}
	if _, ok := r.s.types[p.Type.ID]; !ok {
		return model.Pet{}, repository.ErrConflict
	}
	if r.s.nameTaken(p.OwnerID, 0, p.Name) {
		return model.Pet{}, repository.ErrAlreadyExists
	}
	r.s.nextPetID++
	p.ID = r.s.nextPetID
	p.BirthDate = model.Date(p.BirthDate)
	p.Visits = nil
	r.s.pets[p.ID] = p
	return r.s.pet(p), nil
}

func (r *petRepository) Update(ctx context.Context, p model.Pet) (model.Pet, error) {
	defer r.s.lock(ctx)()
	cur, ok := r.s.pets[p.ID]
	if !ok {
		return model.Pet{}, repository.ErrNotFound
	}
	if _, ok := r.s.types[p.Type.ID]; !ok {
		return model.Pet{}, repository.ErrConflict
	}
	if r.s.nameTaken(cur.OwnerID, cur.ID, p.Name) {
		return model.Pet{}, repository.ErrAlreadyExists
	}
	cur.Name = p.Name
	cur.BirthDate = model.Date(p.BirthDate)
	cur.Type = model.PetType{ID: p.Type.ID}
	r.s.pets[cur.ID] = cur
	return r.s.pet(cur), nil
}

func (r *petRepository) GetByID(_ context.Context, id int64) (model.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.pets[id]
	if !ok {
		return model.Pet{}, repository.ErrNotFound
	}
	return r.s.pet(p), nil
}

func (r *petRepository) ListTypes(_ context.Context) ([]model.PetType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.PetType, 0, len(r.s.types))
	for _, t := range r.s.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
