package memory

import (
	"context"
	"time"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
)

type visitRepository struct{ s *Store }

func NewVisitRepository(s *Store) repository.VisitRepository { return &visitRepository{s: s} }

func (r *visitRepository) Create(ctx context.Context, v model.Visit) (model.Visit, error) {
	defer r.s.lock(ctx)()
	if _, ok := r.s.pets[v.PetID]; !ok {
		return model.Visit{}, repository.ErrConflict
	}
	r.s.nextVisitID++
	v.ID = r.s.nextVisitID
	v.Date = model.Date(v.Date)
	r.s.visits[v.ID] = v
	return v, nil
}

func (r *visitRepository) ListByPet(_ context.Context, petID int64) ([]model.Visit, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.visitsOf(petID), nil
}

func (r *visitRepository) ListBetween(_ context.Context, start, end time.Time) ([]model.UpcomingVisit, error) {
	start, end = model.Date(start), model.Date(end)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.UpcomingVisit, 0)
	for _, v := range r.s.visits {
		if v.Date.Before(start) || v.Date.After(end) {
			continue
		}
		p := r.s.pets[v.PetID]
		o := r.s.owners[p.OwnerID]
		out = append(out, model.UpcomingVisit{
			Visit: v,
			Pet:   model.PetRef{ID: p.ID, Name: p.Name},
			Owner: model.OwnerRef{ID: o.ID, FirstName: o.FirstName, LastName: o.LastName},
		})
	}
	sortVisits(out, func(i int) model.Visit { return out[i].Visit })
	return out, nil
}
