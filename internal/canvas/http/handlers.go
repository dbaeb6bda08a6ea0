package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/refurnish/refurnish-backend/internal/auth"
	"github.com/refurnish/refurnish-backend/internal/canvas/domain"
	"github.com/refurnish/refurnish-backend/internal/projects"
)

type Handler struct {
	resolver ProjectResolver
	states   StateStore
	history  HistoryStore
}

func NewHandler(resolver ProjectResolver, states StateStore, history HistoryStore) *Handler {
	return &Handler{resolver: resolver, states: states, history: history}
}

// save upserts the canvas state and pushes the snapshot onto the history.
func (h *Handler) save(c *gin.Context) {
	publicID := c.Param("public_id")

	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if len(req.State) == 0 || !json.Valid(req.State) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "state must be valid JSON"})
		return
	}

	zoom := 1.0
	if req.Zoom != nil {
		zoom = *req.Zoom
	}
	if !domain.ValidZoom(zoom) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "zoom out of range"})
		return
	}

	projectID, ok := h.resolveProject(c, publicID)
	if !ok {
		return
	}

	state := &domain.State{ProjectID: projectID, State: req.State, Zoom: zoom}
	if err := h.states.Upsert(c.Request.Context(), state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to save canvas"})
		return
	}

	hist, err := h.history.Push(c.Request.Context(), publicID, string(req.State))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to record history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "canvas": state, "history": metaOf(hist)})
}

func (h *Handler) undo(c *gin.Context) {
	h.step(c, h.history.Undo)
}

func (h *Handler) redo(c *gin.Context) {
	h.step(c, h.history.Redo)
}

// step runs one undo or redo move. The snapshot at the new cursor becomes
// the persisted canvas state and is returned to the client. Moving past
// either end of the buffer is a conflict, not an error.
func (h *Handler) step(c *gin.Context, move func(ctx context.Context, publicID string) (string, error)) {
	publicID := c.Param("public_id")

	projectID, ok := h.resolveProject(c, publicID)
	if !ok {
		return
	}

	snapshot, err := move(c.Request.Context(), publicID)
	switch {
	case errors.Is(err, domain.ErrNothingToUndo), errors.Is(err, domain.ErrNothingToRedo):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
		return
	case errors.Is(err, domain.ErrHistoryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "no history for project"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "history operation failed"})
		return
	}

	// Keep the stored zoom; only the object state moves through history.
	zoom := 1.0
	if prev, err := h.states.Get(c.Request.Context(), projectID); err == nil {
		zoom = prev.Zoom
	}

	state := &domain.State{ProjectID: projectID, State: json.RawMessage(snapshot), Zoom: zoom}
	if err := h.states.Upsert(c.Request.Context(), state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to save canvas"})
		return
	}

	cursor, length, err := h.history.Meta(c.Request.Context(), publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "history operation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "canvas": state, "history": historyMeta{
		Cursor:   cursor,
		Length:   length,
		Capacity: domain.HistoryCapacity,
		CanUndo:  cursor > 0,
		CanRedo:  cursor < length-1,
	}})
}

func (h *Handler) historyInfo(c *gin.Context) {
	publicID := c.Param("public_id")

	if _, ok := h.resolveProject(c, publicID); !ok {
		return
	}

	cursor, length, err := h.history.Meta(c.Request.Context(), publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "history operation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "history": historyMeta{
		Cursor:   cursor,
		Length:   length,
		Capacity: domain.HistoryCapacity,
		CanUndo:  cursor > 0,
		CanRedo:  length > 0 && cursor < length-1,
	}})
}

func metaOf(hist *domain.History) historyMeta {
	return historyMeta{
		Cursor:   hist.Cursor,
		Length:   hist.Len(),
		Capacity: domain.HistoryCapacity,
		CanUndo:  hist.CanUndo(),
		CanRedo:  hist.CanRedo(),
	}
}

// resolveProject authorizes and resolves the public id, writing the error
// response itself when it fails.
func (h *Handler) resolveProject(c *gin.Context, publicID string) (int64, bool) {
	userID := auth.UserDBID(c)
	projectID, err := h.resolver.ResolveID(c.Request.Context(), userID, publicID)
	if errors.Is(err, projects.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return 0, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to resolve project"})
		return 0, false
	}
	return projectID, true
}
