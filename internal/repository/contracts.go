package repository

import (
	"context"
	"time"

	"github.com/maxviazov/petclinic-service/internal/model"
)

// Pinger is the readiness check a store exposes.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// OwnerRepository declares persistence operations for owners.
// Listing operations return one row per owner, ordered by id, with pets loaded.
type OwnerRepository interface {
	Create(ctx context.Context, o model.Owner) (model.Owner, error)
	Update(ctx context.Context, o model.Owner) (model.Owner, error)
	// GetByID loads the owner with pets and each pet's visits.
	GetByID(ctx context.Context, id int64) (model.Owner, error)
	// ListByLastNamePrefix is the last-name-only search path (case-sensitive prefix; "" matches all).
	ListByLastNamePrefix(ctx context.Context, prefix string, p Page) (PageResult[model.Owner], error)
	// Search applies the supplied criteria conjunctively.
	Search(ctx context.Context, c OwnerCriteria, p Page) (PageResult[model.Owner], error)
	// FindByNameAndTelephone is used to detect duplicates before creation.
	FindByNameAndTelephone(ctx context.Context, firstName, lastName, telephone string) ([]model.Owner, error)
}

// PetRepository declares persistence operations for pets and pet types.
type PetRepository interface {
	Create(ctx context.Context, p model.Pet) (model.Pet, error)
	Update(ctx context.Context, p model.Pet) (model.Pet, error)
	GetByID(ctx context.Context, id int64) (model.Pet, error)
	ListTypes(ctx context.Context) ([]model.PetType, error)
}

// VisitRepository declares persistence operations for visits.
type VisitRepository interface {
	Create(ctx context.Context, v model.Visit) (model.Visit, error)
	ListByPet(ctx context.Context, petID int64) ([]model.Visit, error)
	// ListBetween returns visits with start <= date <= end ascending by date, pet and owner preloaded.
	ListBetween(ctx context.Context, start, end time.Time) ([]model.UpcomingVisit, error)
}

// VetRepository declares read operations for vets.
type VetRepository interface {
	// ListAll returns every vet with specialties, ordered by id.
	ListAll(ctx context.Context) ([]model.Vet, error)
}
