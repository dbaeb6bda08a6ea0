package colors

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/refurnish/refurnish-backend/internal/auth"
	"github.com/refurnish/refurnish-backend/internal/palette"
)

type Store interface {
	Touch(ctx context.Context, userDBID, colorHex string) error
	List(ctx context.Context, userDBID string) ([]RecentColor, error)
}

type Handler struct {
	store Store
}

func Register(rg *gin.RouterGroup, store Store) {
	h := &Handler{store: store}

	rg.GET("/recent", h.list)
	rg.POST("/recent", h.touch)
}

type touchReq struct {
	ColorHex string `json:"color_hex"`
}

func (h *Handler) touch(c *gin.Context) {
	var req touchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	hex, ok := palette.Normalize(req.ColorHex)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "color_hex must be #rrggbb"})
		return
	}
	if !palette.Contains(hex) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "color is not in the palette"})
		return
	}

	userID := auth.UserDBID(c)
	if err := h.store.Touch(c.Request.Context(), userID, hex); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to record color"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to list colors"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "colors": items})
}
