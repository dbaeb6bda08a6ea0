package uploads

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	store    Storage
	maxBytes int64
}

func NewHandler(store Storage, maxBytes int64) *Handler {
	return &Handler{store: store, maxBytes: maxBytes}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
}

func (h *Handler) upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "image file is required"})
		return
	}

	if file.Size > h.maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":    false,
			"error": fmt.Sprintf("file exceeds the %d byte limit", h.maxBytes),
		})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to read upload"})
		return
	}
	defer f.Close()

	// Size was checked from the multipart header; cap the read anyway.
	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to read upload"})
		return
	}
	if int64(len(data)) > h.maxBytes {
		c.JSON(http.StatusBadRequest, gin.H{
			"ok":    false,
			"error": fmt.Sprintf("file exceeds the %d byte limit", h.maxBytes),
		})
		return
	}

	info, err := Inspect(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	filename := uuid.New().String() + info.Ext
	url, err := h.store.Save(c.Request.Context(), filename, data, info.ContentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "failed to store upload"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"ok":           true,
		"url":          url,
		"filename":     filename,
		"content_type": info.ContentType,
		"size_bytes":   len(data),
		"width":        info.Width,
		"height":       info.Height,
	})
}
