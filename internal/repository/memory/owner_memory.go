package memory

import (
	"context"
	"sort"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
)

type ownerRepository struct{ s *Store }

func NewOwnerRepository(s *Store) repository.OwnerRepository { return &ownerRepository{s: s} }

func (r *ownerRepository) Create(ctx context.Context, o model.Owner) (model.Owner, error) {
	defer r.s.lock(ctx)()
	r.s.nextOwnerID++
	o.ID = r.s.nextOwnerID
	o.Pets = nil
	r.s.owners[o.ID] = o
	o.Pets = []model.Pet{}
	return o, nil
}

func (r *ownerRepository) Update(ctx context.Context, o model.Owner) (model.Owner, error) {
	defer r.s.lock(ctx)()
	if _, ok := r.s.owners[o.ID]; !ok {
		return model.Owner{}, repository.ErrNotFound
	}
	o.Pets = nil
	r.s.owners[o.ID] = o
	return r.s.owner(o, true), nil
}

func (r *ownerRepository) GetByID(_ context.Context, id int64) (model.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	o, ok := r.s.owners[id]
	if !ok {
		return model.Owner{}, repository.ErrNotFound
	}
	return r.s.owner(o, true), nil
}

func (r *ownerRepository) ListByLastNamePrefix(_ context.Context, prefix string, p repository.Page) (repository.PageResult[model.Owner], error) {
	return r.list(repository.LastNamePrefix(prefix), p), nil
}

func (r *ownerRepository) Search(_ context.Context, c repository.OwnerCriteria, p repository.Page) (repository.PageResult[model.Owner], error) {
	return r.list(c.Predicates(), p), nil
}

func (r *ownerRepository) list(preds []repository.OwnerPredicate, p repository.Page) repository.PageResult[model.Owner] {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	matched := r.s.filterOwners(func(o model.Owner) bool { return repository.MatchAll(preds, o) })
	res := repository.Slice(matched, p)
	for i := range res.Items {
		res.Items[i] = r.s.owner(res.Items[i], false)
	}
	return res
}

func (r *ownerRepository) FindByNameAndTelephone(_ context.Context, firstName, lastName, telephone string) ([]model.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := r.s.filterOwners(func(o model.Owner) bool {
		return o.FirstName == firstName && o.LastName == lastName && o.Telephone == telephone
	})
	for i := range out {
		out[i] = r.s.owner(out[i], false)
	}
	return out, nil
}

// filterOwners returns matching owner rows ordered by id. Caller holds mu.
func (s *Store) filterOwners(keep func(model.Owner) bool) []model.Owner {
	out := make([]model.Owner, 0)
	for _, o := range s.owners {
		if keep(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
