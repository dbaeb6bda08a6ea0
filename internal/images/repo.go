package images

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Image struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"-"`
	URL         string    `json:"url"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *Repo) Add(ctx context.Context, img *Image) error {
	const q = `
insert into project_images (project_id, url, filename, content_type, size_bytes, width, height)
values ($1, $2, $3, $4, $5, $6, $7)
returning id, created_at;
`
	return r.db.QueryRow(ctx, q,
		img.ProjectID, img.URL, img.Filename, img.ContentType, img.SizeBytes, img.Width, img.Height,
	).Scan(&img.ID, &img.CreatedAt)
}

func (r *Repo) ListByProject(ctx context.Context, projectID int64) ([]Image, error) {
	const q = `
select id, project_id, url, filename, content_type, size_bytes, width, height, created_at
from project_images
where project_id = $1
order by created_at asc;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Image, 0, 4)
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.ProjectID, &img.URL, &img.Filename, &img.ContentType,
			&img.SizeBytes, &img.Width, &img.Height, &img.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *Repo) Delete(ctx context.Context, projectID, imageID int64) (bool, error) {
	const q = `delete from project_images where project_id = $1 and id = $2;`

	ct, err := r.db.Exec(ctx, q, projectID, imageID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
