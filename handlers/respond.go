package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"skillquiz/apperrors"
	"skillquiz/middleware"
	"skillquiz/models"
)

// respondError is the single point where service errors become HTTP
// responses. Internal causes are logged, never sent to the client; the
// upstream AI payload is echoed only when the error carries one.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal("internal server error", err)
	}

	if appErr.Kind == apperrors.KindInternal || appErr.Kind == apperrors.KindUpstreamFormat {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), appErr)
	}

	body := gin.H{"message": appErr.Message}
	if appErr.Upstream != nil {
		body["error"] = appErr.Upstream
	}
	c.JSON(apperrors.Status(appErr.Kind), body)
}

// currentUser returns the user record the auth middleware resolved.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(middleware.UserKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return nil, false
	}
	return user, true
}
