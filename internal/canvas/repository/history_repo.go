package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/refurnish/refurnish-backend/internal/canvas/domain"
)

const (
	historyKeyPrefix = "canvas:history:"    // canvas:history:{project_public_id}
	historyTTL       = 7 * 24 * time.Hour   // editing sessions older than a week are gone
)

// HistoryRepository handles Redis operations for per-project undo/redo
// histories. The whole history is stored as one JSON document and mutated
// through the domain.History type.
type HistoryRepository struct {
	client *redis.Client
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(client *redis.Client) *HistoryRepository {
	return &HistoryRepository{client: client}
}

// Push appends a snapshot to the project's history, creating the history
// when none exists, and returns the updated history.
func (r *HistoryRepository) Push(ctx context.Context, publicID, snapshot string) (*domain.History, error) {
	h, err := r.load(ctx, publicID)
	if err != nil && !errors.Is(err, domain.ErrHistoryNotFound) {
		return nil, err
	}
	if h == nil {
		h = &domain.History{}
	}

	h.Push(snapshot)

	if err := r.save(ctx, publicID, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Undo moves the cursor back and returns the snapshot at the new cursor.
func (r *HistoryRepository) Undo(ctx context.Context, publicID string) (string, error) {
	h, err := r.load(ctx, publicID)
	if err != nil {
		return "", err
	}

	snapshot, err := h.Undo()
	if err != nil {
		return "", err
	}

	if err := r.save(ctx, publicID, h); err != nil {
		return "", err
	}
	return snapshot, nil
}

// Redo moves the cursor forward and returns the snapshot at the new cursor.
func (r *HistoryRepository) Redo(ctx context.Context, publicID string) (string, error) {
	h, err := r.load(ctx, publicID)
	if err != nil {
		return "", err
	}

	snapshot, err := h.Redo()
	if err != nil {
		return "", err
	}

	if err := r.save(ctx, publicID, h); err != nil {
		return "", err
	}
	return snapshot, nil
}

// Meta reports cursor position and length without mutating the history.
func (r *HistoryRepository) Meta(ctx context.Context, publicID string) (cursor, length int, err error) {
	h, err := r.load(ctx, publicID)
	if errors.Is(err, domain.ErrHistoryNotFound) {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	return h.Cursor, h.Len(), nil
}

// Drop removes the history for a project (called when the project goes away).
func (r *HistoryRepository) Drop(ctx context.Context, publicID string) error {
	return r.client.Del(ctx, r.key(publicID)).Err()
}

func (r *HistoryRepository) load(ctx context.Context, publicID string) (*domain.History, error) {
	data, err := r.client.Get(ctx, r.key(publicID)).Result()
	if err == redis.Nil {
		return nil, domain.ErrHistoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	var h domain.History
	if err := json.Unmarshal([]byte(data), &h); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}
	return &h, nil
}

func (r *HistoryRepository) save(ctx context.Context, publicID string, h *domain.History) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := r.client.Set(ctx, r.key(publicID), data, historyTTL).Err(); err != nil {
		return fmt.Errorf("failed to save history: %w", err)
	}
	return nil
}

func (r *HistoryRepository) key(publicID string) string {
	return historyKeyPrefix + publicID
}
