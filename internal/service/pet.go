package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/rs/zerolog"
)

type petService struct {
	pets   repository.PetRepository
	owners repository.OwnerRepository
	now    func() time.Time
	log    zerolog.Logger
}

func NewPetService(pets repository.PetRepository, owners repository.OwnerRepository, logger zerolog.Logger) PetService {
	l := logger.With().Str("module", "service").Str("component", "pet").Logger()
	return &petService{pets: pets, owners: owners, now: time.Now, log: l}
}

func (s *petService) ListPetTypes(ctx context.Context) ([]model.PetType, error) {
	return s.pets.ListTypes(ctx)
}

// GetPet loads a pet and checks that it belongs to ownerID; a pet of another owner is not found.
func (s *petService) GetPet(ctx context.Context, ownerID, petID int64) (model.Pet, error) {
	if ownerID <= 0 || petID <= 0 {
		return model.Pet{}, repository.ErrNotFound
	}
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return model.Pet{}, err
	}
	if p.OwnerID != ownerID {
		return model.Pet{}, repository.ErrNotFound
	}
	return p, nil
}

func (s *petService) CreatePet(ctx context.Context, ownerID int64, in PetInput) (model.Pet, error) {
	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		return model.Pet{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	pt, ferrs, err := s.check(ctx, owner, 0, in)
	if err != nil {
		return model.Pet{}, err
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Int64("owner_id", ownerID).Msg("pet validation failed")
		return model.Pet{}, err
	}

	out, err := s.pets.Create(ctx, model.Pet{OwnerID: ownerID, Name: in.Name, BirthDate: in.BirthDate, Type: pt})
	if err != nil {
		return model.Pet{}, s.storeError(err, ownerID)
	}
	s.log.Info().Int64("owner_id", ownerID).Int64("pet_id", out.ID).Msg("pet created")
	return out, nil
}

func (s *petService) UpdatePet(ctx context.Context, ownerID, petID int64, in PetInput) (model.Pet, error) {
	if in.ID != 0 && in.ID != petID {
		return model.Pet{}, ErrIdentityMismatch
	}
	if _, err := s.GetPet(ctx, ownerID, petID); err != nil {
		return model.Pet{}, err
	}
	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		return model.Pet{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	pt, ferrs, err := s.check(ctx, owner, petID, in)
	if err != nil {
		return model.Pet{}, err
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Pet{}, err
	}

	out, err := s.pets.Update(ctx, model.Pet{ID: petID, OwnerID: ownerID, Name: in.Name, BirthDate: in.BirthDate, Type: pt})
	if err != nil {
		return model.Pet{}, s.storeError(err, ownerID)
	}
	s.log.Info().Int64("owner_id", ownerID).Int64("pet_id", petID).Msg("pet updated")
	return out, nil
}

// check validates a pet form against its owner: tags first, then the rules that need data.
func (s *petService) check(ctx context.Context, owner model.Owner, petID int64, in PetInput) (model.PetType, []FieldError, error) {
	ferrs := validateStruct(in)

	if in.Name != "" {
		if other, ok := owner.Pet(in.Name); ok && other.ID != petID {
			ferrs = append(ferrs, FieldError{Field: "name", Message: "already exists"})
		}
	}
	if !in.BirthDate.IsZero() && model.Date(in.BirthDate).After(model.Date(s.now())) {
		ferrs = append(ferrs, FieldError{Field: "birthDate", Message: "must not be in the future"})
	}

	var pt model.PetType
	if in.TypeID != 0 {
		types, err := s.pets.ListTypes(ctx)
		if err != nil {
			return model.PetType{}, nil, err
		}
		found := false
		for _, t := range types {
			if t.ID == in.TypeID {
				pt, found = t, true
				break
			}
		}
		if !found {
			ferrs = append(ferrs, FieldError{Field: "type", Message: "unknown pet type"})
		}
	}
	return pt, ferrs, nil
}

// storeError turns constraint failures that slipped past the checks into field errors.
func (s *petService) storeError(err error, ownerID int64) error {
	switch {
	case errors.Is(err, repository.ErrAlreadyExists):
		return newInvalidInput([]FieldError{{Field: "name", Message: "already exists"}})
	case errors.Is(err, repository.ErrNotFound):
		return err
	default:
		s.log.Error().Err(err).Int64("owner_id", ownerID).Msg("pet write failed")
		return err
	}
}
