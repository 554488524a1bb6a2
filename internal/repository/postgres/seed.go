package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
	"github.com/maxviazov/petclinic-service/internal/seed"
)

// Seed loads the dataset with its own ids in a single transaction, then moves the
// sequences past them. A database that already has pet types is left alone.
func Seed(ctx context.Context, pool *pgxpool.Pool, ds *seed.Dataset) (bool, error) {
	if err := ensurePool(pool); err != nil {
		return false, err
	}
	applied := false
	err := NewTxManager(pool).WithinTx(ctx, func(ctx context.Context) error {
		exec := getQ(ctx, pool)
		var seeded bool
		if err := exec.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM types)`).Scan(&seeded); err != nil {
			return err
		}
		if seeded {
			return nil
		}

		b := &pgx.Batch{}
		for _, t := range ds.Types {
			b.Queue(`INSERT INTO types (id, name) VALUES ($1, $2)`, t.ID, t.Name)
		}
		for _, s := range ds.Specialties {
			b.Queue(`INSERT INTO specialties (id, name) VALUES ($1, $2)`, s.ID, s.Name)
		}
		for _, v := range ds.Vets {
			b.Queue(`INSERT INTO vets (id, first_name, last_name) VALUES ($1, $2, $3)`, v.ID, v.FirstName, v.LastName)
			for _, s := range v.Specialties {
				b.Queue(`INSERT INTO vet_specialties (vet_id, specialty_id) VALUES ($1, $2)`, v.ID, s.ID)
			}
		}
		for _, o := range ds.Owners {
			b.Queue(`INSERT INTO owners (id, first_name, last_name, address, city, telephone) VALUES ($1, $2, $3, $4, $5, $6)`,
				o.ID, o.FirstName, o.LastName, o.Address, o.City, o.Telephone)
		}
		for _, p := range ds.Pets() {
			b.Queue(`INSERT INTO pets (id, owner_id, type_id, name, birth_date) VALUES ($1, $2, $3, $4, $5)`,
				p.ID, p.OwnerID, p.Type.ID, p.Name, model.Date(p.BirthDate))
		}
		for _, v := range ds.Visits() {
			b.Queue(`INSERT INTO visits (id, pet_id, visit_date, description) VALUES ($1, $2, $3, $4)`,
				v.ID, v.PetID, model.Date(v.Date), v.Description)
		}
		for _, table := range []string{"types", "specialties", "vets", "owners", "pets", "visits"} {
			b.Queue(fmt.Sprintf(
				`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`,
				table,
			))
		}
		if err := exec.SendBatch(ctx, b).Close(); err != nil {
			return repository.MapPgError(err)
		}
		applied = true
		return nil
	})
	return applied, err
}
