package memory

import (
	"context"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
)

type vetRepository struct{ s *Store }

func NewVetRepository(s *Store) repository.VetRepository { return &vetRepository{s: s} }

func (r *vetRepository) ListAll(_ context.Context) ([]model.Vet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Vet, len(r.s.vets))
	for i, v := range r.s.vets {
		v.Specialties = append([]model.Specialty{}, v.Specialties...)
		out[i] = v
	}
	return out, nil
}
