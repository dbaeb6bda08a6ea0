package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/refurnish/refurnish-backend/internal/projecterr"
)

// ErrNotFound aliases projecterr.ErrNotFound so subroute packages can match
// it without importing this package (which imports images and regions).
var ErrNotFound = projecterr.ErrNotFound

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Project struct {
	ID            int64     `json:"-"`
	PublicID      string    `json:"public_id"`
	Name          string    `json:"name"`
	FurnitureType string    `json:"furniture_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r *Repo) Create(ctx context.Context, userDBID, name, furnitureType string) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	for i := 0; i < 5; i++ {
		publicID, err := NewPublicID("furnish")
		if err != nil {
			return nil, err
		}

		const q = `
insert into projects (public_id, user_id, name, furniture_type)
values ($1, $2::uuid, $3, $4)
returning id, public_id, name, furniture_type, created_at, updated_at;
`
		var p Project
		err = r.db.QueryRow(ctx, q, publicID, userDBID, name, furnitureType).
			Scan(&p.ID, &p.PublicID, &p.Name, &p.FurnitureType, &p.CreatedAt, &p.UpdatedAt)

		if err == nil {
			return &p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

func (r *Repo) List(ctx context.Context, userDBID string) ([]Project, error) {
	const q = `
select id, public_id, name, furniture_type, created_at, updated_at
from projects
where user_id = $1::uuid
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.PublicID, &p.Name, &p.FurnitureType, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, userDBID, publicID string) (*Project, error) {
	const q = `
select id, public_id, name, furniture_type, created_at, updated_at
from projects
where user_id = $1::uuid and public_id = $2;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userDBID, publicID).
		Scan(&p.ID, &p.PublicID, &p.Name, &p.FurnitureType, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ResolveID maps a user-scoped public id to the internal row id. Subroutes
// (images, regions, canvas) use it to both authorize and resolve in one query.
func (r *Repo) ResolveID(ctx context.Context, userDBID, publicID string) (int64, error) {
	const q = `select id from projects where user_id = $1::uuid and public_id = $2;`

	var id int64
	err := r.db.QueryRow(ctx, q, userDBID, publicID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repo) Update(ctx context.Context, userDBID, publicID, name, furnitureType string) (*Project, error) {
	const q = `
update projects
set name = $3, furniture_type = $4, updated_at = now()
where user_id = $1::uuid and public_id = $2
returning id, public_id, name, furniture_type, created_at, updated_at;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userDBID, publicID, name, furnitureType).
		Scan(&p.ID, &p.PublicID, &p.Name, &p.FurnitureType, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the project row; images, regions and canvas state go with
// it through the on delete cascade constraints.
func (r *Repo) Delete(ctx context.Context, userDBID, publicID string) (bool, error) {
	const q = `delete from projects where user_id = $1::uuid and public_id = $2;`

	ct, err := r.db.Exec(ctx, q, userDBID, publicID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
