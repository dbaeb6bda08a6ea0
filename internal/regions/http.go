package regions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/refurnish/refurnish-backend/internal/auth"
	"github.com/refurnish/refurnish-backend/internal/palette"
	"github.com/refurnish/refurnish-backend/internal/projecterr"
)

type Resolver interface {
	ResolveID(ctx context.Context, userDBID, publicID string) (int64, error)
}

type Store interface {
	Add(ctx context.Context, reg *Region) error
	Update(ctx context.Context, reg *Region) error
	Delete(ctx context.Context, projectID, regionID int64) (bool, error)
	ListByProject(ctx context.Context, projectID int64) ([]Region, error)
}

type Handler struct {
	resolver Resolver
	store    Store
}

// RegisterProjectsSubroutes mounts the region routes under the projects group.
func RegisterProjectsSubroutes(rg *gin.RouterGroup, resolver Resolver, store Store) {
	h := &Handler{resolver: resolver, store: store}

	rg.GET("/:public_id/regions", h.list)
	rg.POST("/:public_id/regions", h.add)
	rg.PUT("/:public_id/regions/:region_id", h.update)
	rg.DELETE("/:public_id/regions/:region_id", h.delete)
}

type regionReq struct {
	Name      string          `json:"name"`
	ColorHex  string          `json:"color_hex"`
	ShapeKind string          `json:"shape_kind"`
	Geometry  json.RawMessage `json:"geometry"`
	Opacity   *float64        `json:"opacity"`
	BlendMode string          `json:"blend_mode"`
}

// toRegion validates the request and fills a Region, returning a message
// for the 400 response when something is off.
func (req *regionReq) toRegion() (*Region, string) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, "name required"
	}

	hex, ok := palette.Normalize(req.ColorHex)
	if !ok {
		return nil, "color_hex must be #rrggbb"
	}

	if !ValidShapeKind(req.ShapeKind) {
		return nil, "unknown shape_kind"
	}

	geometry := req.Geometry
	if len(geometry) == 0 {
		geometry = json.RawMessage(`{}`)
	}
	if !json.Valid(geometry) {
		return nil, "geometry must be valid JSON"
	}

	opacity := 1.0
	if req.Opacity != nil {
		opacity = *req.Opacity
	}
	if opacity < 0 || opacity > 1 {
		return nil, "opacity must be in [0,1]"
	}

	blend := req.BlendMode
	if blend == "" {
		blend = "multiply"
	}
	if !BlendModes[blend] {
		return nil, "unknown blend_mode"
	}

	return &Region{
		Name:      name,
		ColorHex:  hex,
		ShapeKind: req.ShapeKind,
		Geometry:  geometry,
		Opacity:   opacity,
		BlendMode: blend,
	}, ""
}

func (h *Handler) list(c *gin.Context) {
	projectID, ok := h.resolve(c)
	if !ok {
		return
	}

	items, err := h.store.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list regions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "regions": items})
}

func (h *Handler) add(c *gin.Context) {
	var req regionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	reg, msg := req.toRegion()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
		return
	}

	projectID, ok := h.resolve(c)
	if !ok {
		return
	}

	reg.ProjectID = projectID
	if err := h.store.Add(c.Request.Context(), reg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to create region"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "region": reg})
}

func (h *Handler) update(c *gin.Context) {
	regionID, err := strconv.ParseInt(c.Param("region_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid region id"})
		return
	}

	var req regionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	reg, msg := req.toRegion()
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
		return
	}

	projectID, ok := h.resolve(c)
	if !ok {
		return
	}

	reg.ID = regionID
	reg.ProjectID = projectID
	err = h.store.Update(c.Request.Context(), reg)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "region not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to update region"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "region": reg})
}

func (h *Handler) delete(c *gin.Context) {
	regionID, err := strconv.ParseInt(c.Param("region_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid region id"})
		return
	}

	projectID, ok := h.resolve(c)
	if !ok {
		return
	}

	deleted, err := h.store.Delete(c.Request.Context(), projectID, regionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to delete region"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "region not found"})
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
