// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
)

// Page sizes of the paginated listings.
const (
	OwnerPageSize = 5
	VetPageSize   = 5
)

// DefaultUpcomingDays is the look-ahead used when a caller does not pick one.
const DefaultUpcomingDays = 7

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrIdentityMismatch means an update payload names a different entity than the path it was posted to.
var ErrIdentityMismatch = errors.New("identity mismatch")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// OwnerQuery is the owner search form. Page is 1-based.
type OwnerQuery struct {
	LastName  string
	Telephone string
	City      string
	Page      int
}

// OwnerInput is the owner create/edit form. ID is only set when the form carries one.
type OwnerInput struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	Telephone string `json:"telephone" validate:"required,number,len=10"`
}

// PetInput is the pet create/edit form.
type PetInput struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	BirthDate time.Time `json:"birthDate" validate:"required"`
	TypeID    int64     `json:"type" validate:"required"`
}

// VisitInput is the new-visit form. A zero Date means today.
type VisitInput struct {
	Date        time.Time `json:"date"`
	Description string    `json:"description" validate:"required"`
}

// VetQuery drives the vet directory. Page is 1-based.
type VetQuery struct {
	LastName  string
	Specialty string
	Page      int
}

// VetDirectory is one rendered page of the vet listing plus its filter controls.
type VetDirectory struct {
	Specialties       []string                         `json:"specialties"`
	SelectedSpecialty string                           `json:"selectedSpecialty"`
	LastName          string                           `json:"lastName"`
	Vets              repository.PageResult[model.Vet] `json:"vets"`
}

// Upcoming is the visit agenda for [From, To].
type Upcoming struct {
	Days   int                   `json:"days"`
	From   time.Time             `json:"from"`
	To     time.Time             `json:"to"`
	Visits []model.UpcomingVisit `json:"visits"`
}

// OwnerService defines owner-oriented use cases.
type OwnerService interface {
	FindOwners(ctx context.Context, q OwnerQuery) (repository.PageResult[model.Owner], error)
	GetOwner(ctx context.Context, id int64) (model.Owner, error)
	CreateOwner(ctx context.Context, in OwnerInput) (model.Owner, error)
	UpdateOwner(ctx context.Context, id int64, in OwnerInput) (model.Owner, error)
}

// PetService defines pet-oriented use cases. Pets are always addressed through their owner.
type PetService interface {
	ListPetTypes(ctx context.Context) ([]model.PetType, error)
	GetPet(ctx context.Context, ownerID, petID int64) (model.Pet, error)
	CreatePet(ctx context.Context, ownerID int64, in PetInput) (model.Pet, error)
	UpdatePet(ctx context.Context, ownerID, petID int64, in PetInput) (model.Pet, error)
}

// VisitService defines visit use cases.
type VisitService interface {
	AddVisit(ctx context.Context, ownerID, petID int64, in VisitInput) (model.Visit, error)
	UpcomingVisits(ctx context.Context, days int) (Upcoming, error)
}

// VetService defines the vet listing use cases.
type VetService interface {
	ListVets(ctx context.Context) (model.Vets, error)
	Directory(ctx context.Context, q VetQuery) (VetDirectory, error)
}
