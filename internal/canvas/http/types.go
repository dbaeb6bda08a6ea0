package http

import (
	"context"
	"encoding/json"

	"github.com/refurnish/refurnish-backend/internal/canvas/domain"
)

// ProjectResolver maps a user-scoped public project id to the internal id.
type ProjectResolver interface {
	ResolveID(ctx context.Context, userDBID, publicID string) (int64, error)
}

// StateStore persists the single canvas state row per project.
type StateStore interface {
	Upsert(ctx context.Context, state *domain.State) error
	Get(ctx context.Context, projectID int64) (*domain.State, error)
}

// HistoryStore is the per-project undo/redo buffer.
type HistoryStore interface {
	Push(ctx context.Context, publicID, snapshot string) (*domain.History, error)
	Undo(ctx context.Context, publicID string) (string, error)
	Redo(ctx context.Context, publicID string) (string, error)
	Meta(ctx context.Context, publicID string) (cursor, length int, err error)
	Drop(ctx context.Context, publicID string) error
}

type saveReq struct {
	State json.RawMessage `json:"state"`
	Zoom  *float64        `json:"zoom"`
}

type historyMeta struct {
	Cursor   int  `json:"cursor"`
	Length   int  `json:"length"`
	Capacity int  `json:"capacity"`
	CanUndo  bool `json:"can_undo"`
	CanRedo  bool `json:"can_redo"`
}
