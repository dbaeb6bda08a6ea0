package auth

import (
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/refurnish/refurnish-backend/internal/users"
)

const (
	CtxExternalUID = "external_uid"
	CtxUserDBID    = "user_db_id"
)

// WithUser resolves the calling user and stores the internal user id in the
// Gin context. With a Firebase client configured, a Bearer token is required
// and verified. Without one (development), the X-User-Id header is trusted
// and falls back to "demo-user".
func WithUser(userRepo *users.Repo, authClient *fbauth.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var upsert users.UpsertUser

		if authClient != nil {
			token := extractBearer(c)
			if token == "" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing authorization token"})
				return
			}
			decoded, err := authClient.VerifyIDToken(c.Request.Context(), token)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "invalid token"})
				return
			}
			upsert.ExternalUID = decoded.UID
			if email, ok := decoded.Claims["email"].(string); ok {
				upsert.Email = email
			}
			if name, ok := decoded.Claims["name"].(string); ok {
				upsert.DisplayName = name
			}
		} else {
			uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
			if uid == "" {
				uid = "demo-user"
			}
			upsert.ExternalUID = uid
			upsert.Email = c.GetHeader("X-User-Email")
			upsert.DisplayName = c.GetHeader("X-User-Name")
		}

		uid, err := userRepo.EnsureUser(c.Request.Context(), upsert)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			return
		}

		c.Set(CtxExternalUID, upsert.ExternalUID)
		c.Set(CtxUserDBID, uid)
		c.Next()
	}
}

func UserDBID(c *gin.Context) string {
	v := c.GetString(CtxUserDBID)
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}

// extractBearer extracts the Bearer token from the Authorization header
func extractBearer(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
