package regions

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("color region not found")

// Shape kinds a region can carry. "brush" is a freehand path.
const (
	ShapeRect    = "rect"
	ShapeEllipse = "ellipse"
	ShapePolygon = "polygon"
	ShapeBrush   = "brush"
)

// Blend modes supported by the editor when compositing a region's fill
// over the photo.
var BlendModes = map[string]bool{
	"normal":   true,
	"multiply": true,
	"screen":   true,
	"overlay":  true,
	"darken":   true,
	"lighten":  true,
	"color":    true,
	"hue":      true,
}

func ValidShapeKind(k string) bool {
	switch k {
	case ShapeRect, ShapeEllipse, ShapePolygon, ShapeBrush:
		return true
	}
	return false
}

type Region struct {
	ID        int64           `json:"id"`
	ProjectID int64           `json:"-"`
	Name      string          `json:"name"`
	ColorHex  string          `json:"color_hex"`
	ShapeKind string          `json:"shape_kind"`
	Geometry  json.RawMessage `json:"geometry"`
	Opacity   float64         `json:"opacity"`
	BlendMode string          `json:"blend_mode"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Add(ctx context.Context, reg *Region) error {
	const q = `
insert into color_regions (project_id, name, color_hex, shape_kind, geometry, opacity, blend_mode)
values ($1, $2, $3, $4, $5, $6, $7)
returning id, created_at, updated_at;
`
	return r.db.QueryRow(ctx, q,
		reg.ProjectID, reg.Name, reg.ColorHex, reg.ShapeKind, []byte(reg.Geometry), reg.Opacity, reg.BlendMode,
	).Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
}

func (r *Repo) Update(ctx context.Context, reg *Region) error {
	const q = `
update color_regions
set name = $3, color_hex = $4, shape_kind = $5, geometry = $6, opacity = $7, blend_mode = $8, updated_at = now()
where project_id = $1 and id = $2
returning created_at, updated_at;
`
	err := r.db.QueryRow(ctx, q,
		reg.ProjectID, reg.ID, reg.Name, reg.ColorHex, reg.ShapeKind, []byte(reg.Geometry), reg.Opacity, reg.BlendMode,
	).Scan(&reg.CreatedAt, &reg.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func (r *Repo) Delete(ctx context.Context, projectID, regionID int64) (bool, error) {
	const q = `delete from color_regions where project_id = $1 and id = $2;`

	ct, err := r.db.Exec(ctx, q, projectID, regionID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) ListByProject(ctx context.Context, projectID int64) ([]Region, error) {
	const q = `
select id, project_id, name, color_hex, shape_kind, geometry, opacity, blend_mode, created_at, updated_at
from color_regions
where project_id = $1
order by created_at asc;
`
	rows, err := r.db.Query(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Region, 0, 8)
	for rows.Next() {
		var reg Region
		var geom []byte
		if err := rows.Scan(&reg.ID, &reg.ProjectID, &reg.Name, &reg.ColorHex, &reg.ShapeKind,
			&geom, &reg.Opacity, &reg.BlendMode, &reg.CreatedAt, &reg.UpdatedAt); err != nil {
			return nil, err
		}
		reg.Geometry = json.RawMessage(geom)
		out = append(out, reg)
	}
	return out, rows.Err()
}
