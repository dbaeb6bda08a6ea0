package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/refurnish/refurnish-backend/internal/canvas/domain"
)

// StateRepository handles PostgreSQL operations for canvas state snapshots
type StateRepository struct {
	db *sql.DB
}

// NewStateRepository creates a new StateRepository
func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

// Upsert creates or replaces the canvas state for a project.
// Uses ON CONFLICT so there is never more than one row per project.
func (r *StateRepository) Upsert(ctx context.Context, state *domain.State) error {
	query := `
		INSERT INTO canvas_states (project_id, state, zoom)
		VALUES ($1, $2, $3)
		ON CONFLICT (project_id) DO UPDATE SET
			state = EXCLUDED.state,
			zoom = EXCLUDED.zoom,
			updated_at = NOW()
		RETURNING updated_at
	`

	if len(state.State) == 0 || !json.Valid(state.State) {
		return fmt.Errorf("canvas state must be valid JSON")
	}

	err := r.db.QueryRowContext(ctx, query, state.ProjectID, []byte(state.State), state.Zoom).
		Scan(&state.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert canvas state: %w", err)
	}

	return nil
}

// Get retrieves the canvas state for a project
func (r *StateRepository) Get(ctx context.Context, projectID int64) (*domain.State, error) {
	query := `
		SELECT state, zoom, updated_at
		FROM canvas_states
		WHERE project_id = $1
	`

	var raw []byte
	st := &domain.State{ProjectID: projectID}
	err := r.db.QueryRowContext(ctx, query, projectID).Scan(&raw, &st.Zoom, &st.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrStateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get canvas state: %w", err)
	}

	st.State = json.RawMessage(raw)
	return st, nil
}
