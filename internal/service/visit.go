package service

import (
	"context"
	"strings"
	"time"

	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/rs/zerolog"
)

type visitService struct {
	visits repository.VisitRepository
	pets   PetService
	now    func() time.Time
	log    zerolog.Logger
}

func NewVisitService(visits repository.VisitRepository, pets PetService, logger zerolog.Logger) VisitService {
	l := logger.With().Str("module", "service").Str("component", "visit").Logger()
	return &visitService{visits: visits, pets: pets, now: time.Now, log: l}
}

func (s *visitService) AddVisit(ctx context.Context, ownerID, petID int64, in VisitInput) (model.Visit, error) {
	if _, err := s.pets.GetPet(ctx, ownerID, petID); err != nil {
		return model.Visit{}, err
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.Date.IsZero() {
		in.Date = s.now()
	}
	if err := newInvalidInput(validateStruct(in)); err != nil {
		return model.Visit{}, err
	}

	out, err := s.visits.Create(ctx, model.Visit{PetID: petID, Date: model.Date(in.Date), Description: in.Description})
	if err != nil {
		s.log.Error().Err(err).Int64("pet_id", petID).Msg("create visit failed")
		return model.Visit{}, err
	}
	s.log.Info().Int64("pet_id", petID).Int64("visit_id", out.ID).Time("date", out.Date).Msg("visit booked")
	return out, nil
}

// UpcomingVisits lists visits from today through today+days, both ends included.
func (s *visitService) UpcomingVisits(ctx context.Context, days int) (Upcoming, error) {
	if days < 0 {
		return Upcoming{}, newInvalidInput([]FieldError{{Field: "days", Message: "must be >= 0"}})
	}
	from := model.Date(s.now())
	to := from.AddDate(0, 0, days)
	visits, err := s.visits.ListBetween(ctx, from, to)
	if err != nil {
		s.log.Error().Err(err).Int("days", days).Msg("list upcoming visits failed")
		return Upcoming{}, err
	}
	return Upcoming{Days: days, From: from, To: to, Visits: visits}, nil
}
