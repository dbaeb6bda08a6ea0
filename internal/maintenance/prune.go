package maintenance

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// orphanAge protects files that were uploaded but not yet attached to a
// project; the editor does that in a second request.
const orphanAge = 24 * time.Hour

// Pruner removes rows and files nothing references anymore: recent colors
// beyond the per-user bound and local upload files no project image points
// at. With the s3 driver the file sweep is skipped (uploadDir empty).
type Pruner struct {
	db        *pgxpool.Pool
	uploadDir string
}

func NewPruner(db *pgxpool.Pool, uploadDir string) *Pruner {
	return &Pruner{db: db, uploadDir: uploadDir}
}

type Report struct {
	ColorsDeleted int64     `json:"colors_deleted"`
	FilesDeleted  int       `json:"files_deleted"`
	RanAt         time.Time `json:"ran_at"`
}

func (p *Pruner) Run(ctx context.Context) (*Report, error) {
	rep := &Report{RanAt: time.Now().UTC()}

	n, err := p.sweepRecentColors(ctx)
	if err != nil {
		return nil, fmt.Errorf("sweep recent colors: %w", err)
	}
	rep.ColorsDeleted = n

	if p.uploadDir != "" {
		m, err := p.sweepOrphanFiles(ctx)
		if err != nil {
			return nil, fmt.Errorf("sweep orphan files: %w", err)
		}
		rep.FilesDeleted = m
	}

	log.Printf("[prune] colors=%d files=%d", rep.ColorsDeleted, rep.FilesDeleted)
	return rep, nil
}

// sweepRecentColors trims every user back to the 12 most recent colors.
// The write path already does this; the sweep is for rows written before
// the bound existed.
func (p *Pruner) sweepRecentColors(ctx context.Context) (int64, error) {
	const q = `
delete from recent_colors rc
using (
    select id, row_number() over (partition by user_id order by used_at desc) as rn
    from recent_colors
) ranked
where rc.id = ranked.id and ranked.rn > 12;
`
	ct, err := p.db.Exec(ctx, q)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func (p *Pruner) sweepOrphanFiles(ctx context.Context) (int, error) {
	const q = `select filename from project_images;`

	rows, err := p.db.Query(ctx, q)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	referenced := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return 0, err
		}
		referenced[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	entries, err := os.ReadDir(p.uploadDir)
	if err != nil {
		return 0, err
	}

	deleted := 0
	cutoff := time.Now().Add(-orphanAge)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := referenced[e.Name()]; ok {
			continue
		}
		info, err := e.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(p.uploadDir, e.Name())); err != nil {
			log.Printf("[prune] remove %s: %v", e.Name(), err)
			continue
		}
		deleted++
	}
	return deleted, nil
}
