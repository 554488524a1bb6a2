package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
)

type vetRepository struct{ pool *pgxpool.Pool }

func NewVetRepository(pool *pgxpool.Pool) repository.VetRepository {
	return &vetRepository{pool: pool}
}

func (r *vetRepository) ListAll(ctx context.Context) ([]model.Vet, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT v.id, v.first_name, v.last_name, s.id, s.name
		 FROM vets v
		 LEFT JOIN vet_specialties vs ON vs.vet_id = v.id
		 LEFT JOIN specialties s ON s.id = vs.specialty_id
		 ORDER BY v.id, s.name`,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	out := make([]model.Vet, 0)
	for rows.Next() {
		var (
			v        model.Vet
			specID   *int64
			specName *string
		)
		if err := rows.Scan(&v.ID, &v.FirstName, &v.LastName, &specID, &specName); err != nil {
			return nil, repository.MapPgError(err)
		}
		// rows arrive grouped by vet; start a new entry when the id changes
		if n := len(out); n == 0 || out[n-1].ID != v.ID {
			v.Specialties = []model.Specialty{}
			out = append(out, v)
		}
		if specID != nil && specName != nil {
			last := &out[len(out)-1]
			last.Specialties = append(last.Specialties, model.Specialty{ID: *specID, Name: *specName})
		}
	}
	return out, repository.MapPgError(rows.Err())
}
