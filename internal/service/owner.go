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

type ownerService struct {
	owners repository.OwnerRepository
	tx     repository.TxManager
	log    zerolog.Logger
}

func NewOwnerService(owners repository.OwnerRepository, tx repository.TxManager, logger zerolog.Logger) OwnerService {
	l := logger.With().Str("module", "service").Str("component", "owner").Logger()
	return &ownerService{owners: owners, tx: tx, log: l}
}

// FindOwners runs the owner search. Without telephone and city it takes the last-name-only
// path (case-sensitive prefix); otherwise every supplied criterion is ANDed.
func (s *ownerService) FindOwners(ctx context.Context, q OwnerQuery) (repository.PageResult[model.Owner], error) {
	q.LastName = strings.TrimSpace(q.LastName)
	q.Telephone = strings.TrimSpace(q.Telephone)
	q.City = strings.TrimSpace(q.City)

	var ferrs []FieldError
	if q.Page < 1 {
		ferrs = append(ferrs, FieldError{Field: "page", Message: "must be >= 1"})
	}
	if q.Telephone != "" && !IsNumeric(q.Telephone) {
		ferrs = append(ferrs, FieldError{Field: "telephone", Message: "Telephone must contain only numeric characters"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return repository.PageResult[model.Owner]{}, err
	}

	page := repository.PageNumber(q.Page, OwnerPageSize)
	var (
		res repository.PageResult[model.Owner]
		err error
	)
	if q.Telephone == "" && q.City == "" {
		res, err = s.owners.ListByLastNamePrefix(ctx, q.LastName, page)
	} else {
		res, err = s.owners.Search(ctx, repository.OwnerCriteria{LastName: q.LastName, Telephone: q.Telephone, City: q.City}, page)
	}
	if err != nil {
		s.log.Error().Err(err).Str("last_name", q.LastName).Str("city", q.City).Int("page", q.Page).Msg("owner search failed")
		return repository.PageResult[model.Owner]{}, err
	}
	res.Page = page
	s.log.Debug().Str("last_name", q.LastName).Str("telephone", q.Telephone).Str("city", q.City).
		Int("page", q.Page).Int("total", res.Total).Msg("owner search")
	return res, nil
}

func (s *ownerService) GetOwner(ctx context.Context, id int64) (model.Owner, error) {
	if id <= 0 {
		return model.Owner{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.owners.GetByID(ctx, id)
}

func (s *ownerService) CreateOwner(ctx context.Context, in OwnerInput) (model.Owner, error) {
	start := time.Now()
	in = trimOwnerInput(in)
	if err := newInvalidInput(validateStruct(in)); err != nil {
		s.log.Debug().Interface("field_errors", FieldErrors(err)).Msg("owner validation failed")
		return model.Owner{}, err
	}

	var out model.Owner
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		dups, err := s.owners.FindByNameAndTelephone(ctx, in.FirstName, in.LastName, in.Telephone)
		if err != nil {
			return err
		}
		if len(dups) > 0 {
			return newInvalidInput([]FieldError{{Field: "telephone", Message: "an owner with this name and telephone already exists"}})
		}
		out, err = s.owners.Create(ctx, ownerFromInput(in))
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidInput) {
			s.log.Error().Err(err).Str("ln", in.LastName).Msg("create owner failed")
		}
		return model.Owner{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("owner_id", out.ID).Msg("owner created")
	return out, nil
}

// UpdateOwner rewrites the owner at id. A form that names another id is rejected before any write.
func (s *ownerService) UpdateOwner(ctx context.Context, id int64, in OwnerInput) (model.Owner, error) {
	if id <= 0 {
		return model.Owner{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	if in.ID != 0 && in.ID != id {
		s.log.Warn().Int64("path_id", id).Int64("form_id", in.ID).Msg("owner update identity mismatch")
		return model.Owner{}, ErrIdentityMismatch
	}
	in = trimOwnerInput(in)
	if err := newInvalidInput(validateStruct(in)); err != nil {
		return model.Owner{}, err
	}

	o := ownerFromInput(in)
	o.ID = id
	out, err := s.owners.Update(ctx, o)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("owner_id", id).Msg("update owner failed")
		}
		return model.Owner{}, err
	}
	s.log.Info().Int64("owner_id", id).Msg("owner updated")
	return out, nil
}

func ownerFromInput(in OwnerInput) model.Owner {
	return model.Owner{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Address:   in.Address,
		City:      in.City,
		Telephone: in.Telephone,
	}
}
