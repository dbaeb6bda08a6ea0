package palette

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Register(rg *gin.RouterGroup) {
	rg.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "palette": Groups})
	})
}
