package images

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/refurnish/refurnish-backend/internal/auth"
	"github.com/refurnish/refurnish-backend/internal/projecterr"
)

// Resolver maps a user-scoped public project id to the internal id.
type Resolver interface {
	ResolveID(ctx context.Context, userDBID, publicID string) (int64, error)
}

type Store interface {
	Add(ctx context.Context, img *Image) error
	ListByProject(ctx context.Context, projectID int64) ([]Image, error)
	Delete(ctx context.Context, projectID, imageID int64) (bool, error)
}

type Handler struct {
	resolver Resolver
	store    Store
}

// RegisterProjectsSubroutes mounts the image routes under the projects group.
func RegisterProjectsSubroutes(rg *gin.RouterGroup, resolver Resolver, store Store) {
	h := &Handler{resolver: resolver, store: store}

	rg.POST("/:public_id/images", h.add)
	rg.DELETE("/:public_id/images/:image_id", h.delete)
}

type addReq struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	SizeBytes   int64  `json:"size_bytes"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

func (h *Handler) add(c *gin.Context) {
	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if strings.TrimSpace(req.URL) == "" || strings.TrimSpace(req.Filename) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "url and filename required"})
		return
	}
	if req.Width <= 0 || req.Height <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "width and height must be positive"})
		return
	}

	projectID, ok := h.resolve(c)
	if !ok {
		return
	}

	img := &Image{
		ProjectID:   projectID,
		URL:         req.URL,
		Filename:    req.Filename,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		Width:       req.Width,
		Height:      req.Height,
	}
	if err := h.store.Add(c.Request.Context(), img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to attach image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "image": img})
}

func (h *Handler) delete(c *gin.Context) {
	imageID, err := strconv.ParseInt(c.Param("image_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid image id"})
		return
	}

	projectID, ok := h.resolve(c)
	if !ok {
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), projectID, imageID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to delete image"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "image not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) resolve(c *gin.Context) (int64, bool) {
	userID := auth.UserDBID(c)
	projectID, err := h.resolver.ResolveID(c.Request.Context(), userID, c.Param("public_id"))
	if errors.Is(err, projecterr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return 0, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to resolve project"})
		return 0, false
	}
	return projectID, true
}
