package colors

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MaxRecent bounds the per-user recent color list.
const MaxRecent = 12

type RecentColor struct {
	ColorHex string    `json:"color_hex"`
	UsedAt   time.Time `json:"used_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Touch records a color use. Re-using a color bumps it to the front; the
// list is then trimmed back to MaxRecent.
func (r *Repo) Touch(ctx context.Context, userDBID, colorHex string) error {
	const upsert = `
insert into recent_colors (user_id, color_hex, used_at)
values ($1::uuid, $2, now())
on conflict (user_id, color_hex) do update set used_at = now();
`
	if _, err := r.db.Exec(ctx, upsert, userDBID, colorHex); err != nil {
		return err
	}

	const trim = `
delete from recent_colors
where user_id = $1::uuid and id not in (
    select id from recent_colors
    where user_id = $1::uuid
    order by used_at desc
    limit $2
);
`
	_, err := r.db.Exec(ctx, trim, userDBID, MaxRecent)
	return err
}

func (r *Repo) List(ctx context.Context, userDBID string) ([]RecentColor, error) {
	const q = `
select color_hex, used_at
from recent_colors
where user_id = $1::uuid
order by used_at desc
limit $2;
`
	rows, err := r.db.Query(ctx, q, userDBID, MaxRecent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RecentColor, 0, MaxRecent)
	for rows.Next() {
		var rc RecentColor
		if err := rows.Scan(&rc.ColorHex, &rc.UsedAt); err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}
