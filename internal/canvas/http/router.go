package http

import "github.com/gin-gonic/gin"

// RegisterProjectsSubroutes mounts the canvas routes under the projects group.
func RegisterProjectsSubroutes(rg *gin.RouterGroup, h *Handler) {
	rg.POST("/:public_id/canvas", h.save)
	rg.POST("/:public_id/canvas/undo", h.undo)
	rg.POST("/:public_id/canvas/redo", h.redo)
	rg.GET("/:public_id/canvas/history", h.historyInfo)
}
