package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
)

type petRepository struct{ pool *pgxpool.Pool }

func NewPetRepository(pool *pgxpool.Pool) repository.PetRepository {
	return &petRepository{pool: pool}
}

const petSelect = `SELECT p.id, p.owner_id, p.name, p.birth_date, t.id, t.name
	FROM pets p JOIN types t ON t.id = p.type_id`

func scanPet(row pgx.Row, p *model.Pet) error {
	return row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.BirthDate, &p.Type.ID, &p.Type.Name)
}

func (r *petRepository) Create(ctx context.Context, p model.Pet) (model.Pet, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Pet{}, err
	}
	exec := getQ(ctx, r.pool)
	var id int64
	err := exec.QueryRow(ctx,
		`INSERT INTO pets (owner_id, type_id, name, birth_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		p.OwnerID, p.Type.ID, p.Name, model.Date(p.BirthDate),
	).Scan(&id)
	if err != nil {
		return model.Pet{}, repository.MapPgError(err)
	}
	return r.GetByID(ctx, id)
}

// Update rewrites name, birth date and type. The owning owner never changes.
func (r *petRepository) Update(ctx context.Context, p model.Pet) (model.Pet, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Pet{}, err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx,
		`UPDATE pets SET type_id = $1, name = $2, birth_date = $3 WHERE id = $4`,
		p.Type.ID, p.Name, model.Date(p.BirthDate), p.ID,
	)
	if err != nil {
		return model.Pet{}, repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.Pet{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, p.ID)
}

func (r *petRepository) GetByID(ctx context.Context, id int64) (model.Pet, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Pet{}, err
	}
	exec := getQ(ctx, r.pool)
	var p model.Pet
	if err := scanPet(exec.QueryRow(ctx, petSelect+` WHERE p.id = $1`, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Pet{}, repository.ErrNotFound
		}
		return model.Pet{}, repository.MapPgError(err)
	}
	visits, err := loadVisits(ctx, exec, []int64{id})
	if err != nil {
		return model.Pet{}, err
	}
	p.Visits = visits[id]
	if p.Visits == nil {
		p.Visits = []model.Visit{}
	}
	return p, nil
}

func (r *petRepository) ListTypes(ctx context.Context) ([]model.PetType, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, `SELECT id, name FROM types ORDER BY name`)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	out := make([]model.PetType, 0, 8)
	for rows.Next() {
		var t model.PetType
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, t)
	}
	return out, repository.MapPgError(rows.Err())
}

// loadPets fetches the pets of the given owners keyed by owner id, each list ordered by name.
// Visits are left empty.
func loadPets(ctx context.Context, exec q, ownerIDs []int64) (map[int64][]model.Pet, error) {
	out := make(map[int64][]model.Pet, len(ownerIDs))
	if len(ownerIDs) == 0 {
		return out, nil
	}
	rows, err := exec.Query(ctx, petSelect+` WHERE p.owner_id = ANY($1) ORDER BY p.name, p.id`, ownerIDs)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var p model.Pet
		if err := scanPet(rows, &p); err != nil {
			return nil, repository.MapPgError(err)
		}
		p.Visits = []model.Visit{}
		out[p.OwnerID] = append(out[p.OwnerID], p)
	}
	return out, repository.MapPgError(rows.Err())
}

// loadVisits fetches the visits of the given pets keyed by pet id, each list ordered by date.
func loadVisits(ctx context.Context, exec q, petIDs []int64) (map[int64][]model.Visit, error) {
	out := make(map[int64][]model.Visit, len(petIDs))
	if len(petIDs) == 0 {
		return out, nil
	}
	rows, err := exec.Query(ctx,
		`SELECT id, pet_id, visit_date, description
		 FROM visits
		 WHERE pet_id = ANY($1)
		 ORDER BY visit_date, id`,
		petIDs,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	for rows.Next() {
		var v model.Visit
		if err := rows.Scan(&v.ID, &v.PetID, &v.Date, &v.Description); err != nil {
			return nil, repository.MapPgError(err)
		}
		out[v.PetID] = append(out[v.PetID], v)
	}
	return out, repository.MapPgError(rows.Err())
}
