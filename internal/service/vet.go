package service

import (
	"context"
	"strings"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/rs/zerolog"
)

type vetService struct {
	vets repository.VetRepository
	log  zerolog.Logger
}

func NewVetService(vets repository.VetRepository, logger zerolog.Logger) VetService {
	l := logger.With().Str("module", "service").Str("component", "vet").Logger()
	return &vetService{vets: vets, log: l}
}

func (s *vetService) ListVets(ctx context.Context) (model.Vets, error) {
	all, err := s.vets.ListAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list vets failed")
		return model.Vets{}, err
	}
	return model.Vets{VetList: all}, nil
}

// Directory pages the vet list in memory: scope by last name, collect the specialty
// choices from that scope, then filter by the selected specialty and slice the page.
func (s *vetService) Directory(ctx context.Context, q VetQuery) (VetDirectory, error) {
	if q.Page < 1 {
		return VetDirectory{}, newInvalidInput([]FieldError{{Field: "page", Message: "must be >= 1"}})
	}
	all, err := s.vets.ListAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("list vets failed")
		return VetDirectory{}, err
	}
	selected := strings.TrimSpace(q.Specialty)
	scoped := ScopeByLastName(all, q.LastName)
	filtered := FilterBySpecialty(scoped, selected)
	return VetDirectory{
		Specialties:       SpecialtyNames(scoped),
		SelectedSpecialty: selected,
		LastName:          q.LastName,
		Vets:              repository.Slice(filtered, repository.PageNumber(q.Page, VetPageSize)),
	}, nil
}
