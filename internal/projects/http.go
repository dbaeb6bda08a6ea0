package projects

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/refurnish/refurnish-backend/internal/auth"
	canvasdomain "github.com/refurnish/refurnish-backend/internal/canvas/domain"
	"github.com/refurnish/refurnish-backend/internal/images"
	"github.com/refurnish/refurnish-backend/internal/regions"
)

type Store interface {
	Create(ctx context.Context, userDBID, name, furnitureType string) (*Project, error)
	List(ctx context.Context, userDBID string) ([]Project, error)
	Get(ctx context.Context, userDBID, publicID string) (*Project, error)
	Update(ctx context.Context, userDBID, publicID, name, furnitureType string) (*Project, error)
	Delete(ctx context.Context, userDBID, publicID string) (bool, error)
}

// ImageSource, RegionSource and CanvasSource feed the aggregate detail
// response; the project detail endpoint returns everything the editor
// needs to restore a session in one round trip.
type ImageSource interface {
	ListByProject(ctx context.Context, projectID int64) ([]images.Image, error)
}

type RegionSource interface {
	ListByProject(ctx context.Context, projectID int64) ([]regions.Region, error)
}

type CanvasSource interface {
	Get(ctx context.Context, projectID int64) (*canvasdomain.State, error)
}

// HistoryDropper lets project deletion discard the redis-side undo buffer.
type HistoryDropper interface {
	Drop(ctx context.Context, publicID string) error
}

type Handler struct {
	store   Store
	images  ImageSource
	regions RegionSource
	canvas  CanvasSource
	history HistoryDropper
}

func Register(rg *gin.RouterGroup, store Store, imgs ImageSource, regs RegionSource, canvas CanvasSource, history HistoryDropper) {
	h := &Handler{store: store, images: imgs, regions: regs, canvas: canvas, history: history}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:public_id", h.detail)
	rg.PUT("/:public_id", h.update)
	rg.DELETE("/:public_id", h.delete)
}

type upsertReq struct {
	Name          string `json:"name"`
	FurnitureType string `json:"furniture_type"`
}

func (h *Handler) create(c *gin.Context) {
	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.store.Create(c.Request.Context(), userID, strings.TrimSpace(req.Name), strings.TrimSpace(req.FurnitureType))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

// detail aggregates the project with its images, color regions and canvas
// state so the editor restores in one request.
func (h *Handler) detail(c *gin.Context) {
	userID := auth.UserDBID(c)
	publicID := c.Param("public_id")

	p, err := h.store.Get(c.Request.Context(), userID, publicID)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load project"})
		return
	}

	imgs, err := h.images.ListByProject(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load images"})
		return
	}

	regs, err := h.regions.ListByProject(c.Request.Context(), p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load regions"})
		return
	}

	var canvasState *canvasdomain.State
	state, err := h.canvas.Get(c.Request.Context(), p.ID)
	switch {
	case err == nil:
		canvasState = state
	case errors.Is(err, canvasdomain.ErrStateNotFound):
		// a fresh project has no canvas yet
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to load canvas"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"project": p,
		"images":  imgs,
		"regions": regs,
		"canvas":  canvasState,
	})
}

func (h *Handler) update(c *gin.Context) {
	publicID := c.Param("public_id")

	var req upsertReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.store.Update(c.Request.Context(), userID, publicID, strings.TrimSpace(req.Name), strings.TrimSpace(req.FurnitureType))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to update project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	publicID := c.Param("public_id")
	userID := auth.UserDBID(c)

	deleted, err := h.store.Delete(c.Request.Context(), userID, publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to delete project"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	// Best effort; the history has a TTL anyway.
	_ = h.history.Drop(c.Request.Context(), publicID)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
