package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
)

type visitRepository struct{ pool *pgxpool.Pool }

func NewVisitRepository(pool *pgxpool.Pool) repository.VisitRepository {
	return &visitRepository{pool: pool}
}

func (r *visitRepository) Create(ctx context.Context, v model.Visit) (model.Visit, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Visit{}, err
	}
	exec := getQ(ctx, r.pool)
	v.Date = model.Date(v.Date)
	err := exec.QueryRow(ctx,
		`INSERT INTO visits (pet_id, visit_date, description)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		v.PetID, v.Date, v.Description,
	).Scan(&v.ID)
	if err != nil {
		return model.Visit{}, repository.MapPgError(err)
	}
	return v, nil
}

func (r *visitRepository) ListByPet(ctx context.Context, petID int64) ([]model.Visit, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	visits, err := loadVisits(ctx, getQ(ctx, r.pool), []int64{petID})
	if err != nil {
		return nil, err
	}
	if visits[petID] == nil {
		return []model.Visit{}, nil
	}
	return visits[petID], nil
}

// ListBetween loads visits in [start, end] together with their pet and owner in one round trip.
func (r *visitRepository) ListBetween(ctx context.Context, start, end time.Time) ([]model.UpcomingVisit, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT v.id, v.pet_id, v.visit_date, v.description,
		        p.id, p.name,
		        o.id, o.first_name, o.last_name
		 FROM visits v
		 JOIN pets p ON p.id = v.pet_id
		 JOIN owners o ON o.id = p.owner_id
		 WHERE v.visit_date BETWEEN $1 AND $2
		 ORDER BY v.visit_date, v.id`,
		model.Date(start), model.Date(end),
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	out := make([]model.UpcomingVisit, 0)
	for rows.Next() {
		var u model.UpcomingVisit
		if err := rows.Scan(
			&u.ID, &u.PetID, &u.Date, &u.Description,
			&u.Pet.ID, &u.Pet.Name,
			&u.Owner.ID, &u.Owner.FirstName, &u.Owner.LastName,
		); err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, u)
	}
	return out, repository.MapPgError(rows.Err())
}
