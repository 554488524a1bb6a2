package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/petclinic-service/internal/model"
	"github.com/maxviazov/petclinic-service/internal/repository"
)

type ownerRepository struct{ pool *pgxpool.Pool }

func NewOwnerRepository(pool *pgxpool.Pool) repository.OwnerRepository {
	return &ownerRepository{pool: pool}
}

const ownerColumns = `o.id, o.first_name, o.last_name, o.address, o.city, o.telephone`

func scanOwner(row pgx.Row, o *model.Owner, extra ...any) error {
	dest := append([]any{&o.ID, &o.FirstName, &o.LastName, &o.Address, &o.City, &o.Telephone}, extra...)
	return row.Scan(dest...)
}

func (r *ownerRepository) Create(ctx context.Context, o model.Owner) (model.Owner, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Owner{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO owners (first_name, last_name, address, city, telephone)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		o.FirstName, o.LastName, o.Address, o.City, o.Telephone,
	)
	if err := row.Scan(&o.ID); err != nil {
		return model.Owner{}, repository.MapPgError(err)
	}
	o.Pets = []model.Pet{}
	return o, nil
}

func (r *ownerRepository) Update(ctx context.Context, o model.Owner) (model.Owner, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Owner{}, err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx,
		`UPDATE owners
		 SET first_name = $1, last_name = $2, address = $3, city = $4, telephone = $5
		 WHERE id = $6`,
		o.FirstName, o.LastName, o.Address, o.City, o.Telephone, o.ID,
	)
	if err != nil {
		return model.Owner{}, repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return model.Owner{}, repository.ErrNotFound
	}
	return r.GetByID(ctx, o.ID)
}

func (r *ownerRepository) GetByID(ctx context.Context, id int64) (model.Owner, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Owner{}, err
	}
	exec := getQ(ctx, r.pool)
	var o model.Owner
	err := scanOwner(exec.QueryRow(ctx, `SELECT `+ownerColumns+` FROM owners o WHERE o.id = $1`, id), &o)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Owner{}, repository.ErrNotFound
		}
		return model.Owner{}, repository.MapPgError(err)
	}

	pets, err := loadPets(ctx, exec, []int64{id})
	if err != nil {
		return model.Owner{}, err
	}
	o.Pets = pets[id]
	if o.Pets == nil {
		o.Pets = []model.Pet{}
	}
	ids := make([]int64, 0, len(o.Pets))
	for _, p := range o.Pets {
		ids = append(ids, p.ID)
	}
	visits, err := loadVisits(ctx, exec, ids)
	if err != nil {
		return model.Owner{}, err
	}
	for i := range o.Pets {
		if vs, ok := visits[o.Pets[i].ID]; ok {
			o.Pets[i].Visits = vs
		}
	}
	return o, nil
}

func (r *ownerRepository) ListByLastNamePrefix(ctx context.Context, prefix string, p repository.Page) (repository.PageResult[model.Owner], error) {
	return r.list(ctx, repository.LastNamePrefix(prefix), p)
}

func (r *ownerRepository) Search(ctx context.Context, c repository.OwnerCriteria, p repository.Page) (repository.PageResult[model.Owner], error) {
	return r.list(ctx, c.Predicates(), p)
}

// list pages owners only; pets are loaded afterwards so each owner appears once
// no matter how many pets it has.
func (r *ownerRepository) list(ctx context.Context, preds []repository.OwnerPredicate, p repository.Page) (repository.PageResult[model.Owner], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Owner]{}, err
	}
	where, args, err := ownerWhere(preds)
	if err != nil {
		return repository.PageResult[model.Owner]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)

	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total
		 FROM owners o %s
		 ORDER BY o.id
		 LIMIT $%d OFFSET $%d`,
		ownerColumns, where, len(args)+1, len(args)+2,
	)
	rows, err := exec.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return repository.PageResult[model.Owner]{}, repository.MapPgError(err)
	}
	defer rows.Close()

	res := repository.PageResult[model.Owner]{Items: make([]model.Owner, 0, limit), Page: repository.Page{Limit: limit, Offset: offset}}
	for rows.Next() {
		var o model.Owner
		if err := scanOwner(rows, &o, &res.Total); err != nil {
			return repository.PageResult[model.Owner]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, o)
	}
	if err := rows.Err(); err != nil {
		return repository.PageResult[model.Owner]{}, repository.MapPgError(err)
	}

	if len(res.Items) == 0 {
		// the window function has no row to ride on past the last page
		if offset > 0 {
			if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM owners o `+where, args...).Scan(&res.Total); err != nil {
				return repository.PageResult[model.Owner]{}, repository.MapPgError(err)
			}
		}
		return res, nil
	}
	if err := attachPets(ctx, exec, res.Items); err != nil {
		return repository.PageResult[model.Owner]{}, err
	}
	return res, nil
}

func (r *ownerRepository) FindByNameAndTelephone(ctx context.Context, firstName, lastName, telephone string) ([]model.Owner, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+ownerColumns+`
		 FROM owners o
		 WHERE o.first_name = $1 AND o.last_name = $2 AND o.telephone = $3
		 ORDER BY o.id`,
		firstName, lastName, telephone,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	out := make([]model.Owner, 0)
	for rows.Next() {
		var o model.Owner
		if err := scanOwner(rows, &o); err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	if err := attachPets(ctx, exec, out); err != nil {
		return nil, err
	}
	return out, nil
}

func attachPets(ctx context.Context, exec q, owners []model.Owner) error {
	if len(owners) == 0 {
		return nil
	}
	ids := make([]int64, len(owners))
	for i, o := range owners {
		ids[i] = o.ID
	}
	pets, err := loadPets(ctx, exec, ids)
	if err != nil {
		return err
	}
	for i := range owners {
		owners[i].Pets = pets[owners[i].ID]
		if owners[i].Pets == nil {
			owners[i].Pets = []model.Pet{}
		}
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ownerWhere renders predicates as a WHERE clause with positional args starting at $1.
func ownerWhere(preds []repository.OwnerPredicate) (string, []any, error) {
	if len(preds) == 0 {
		return "", nil, nil
	}
	conds := make([]string, 0, len(preds))
	args := make([]any, 0, len(preds))
	for _, p := range preds {
		var col string
		switch p.Field {
		case repository.FieldLastName, repository.FieldTelephone, repository.FieldCity:
			col = "o." + string(p.Field)
		default:
			return "", nil, fmt.Errorf("unsupported owner field %q", p.Field)
		}
		n := len(args) + 1
		switch p.Op {
		case repository.OpPrefixFold:
			conds = append(conds, fmt.Sprintf("lower(%s) LIKE $%d", col, n))
			args = append(args, likeEscaper.Replace(strings.ToLower(p.Value))+"%")
		case repository.OpEquals:
			conds = append(conds, fmt.Sprintf("%s = $%d", col, n))
			args = append(args, p.Value)
		case repository.OpContainsFold:
			conds = append(conds, fmt.Sprintf("lower(%s) LIKE $%d", col, n))
			args = append(args, "%"+likeEscaper.Replace(strings.ToLower(p.Value))+"%")
		case repository.OpPrefix:
			conds = append(conds, fmt.Sprintf("%s LIKE $%d", col, n))
			args = append(args, likeEscaper.Replace(p.Value)+"%")
		default:
			return "", nil, fmt.Errorf("unsupported match op %d", p.Op)
		}
	}
	return "WHERE " + strings.Join(conds, " AND "), args, nil
}
