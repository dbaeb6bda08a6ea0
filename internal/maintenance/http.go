package maintenance

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register mounts the admin trigger for the prune job. The group is
// expected to carry the API-key middleware.
func Register(rg *gin.RouterGroup, pruner *Pruner) {
	rg.POST("/prune", func(c *gin.Context) {
		rep, err := pruner.Run(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "prune failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "report": rep})
	})
}
