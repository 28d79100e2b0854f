package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dborovskis/filevault/internal/common"
	"github.com/dborovskis/filevault/internal/server/models"
)

// identityKey is the gin context key under which the resolved identity is
// stored. The value is a *models.User, or absent for anonymous requests.
const identityKey = "identity"

// identify resolves the X-Token header into an identity and attaches it to
// the request context. It never aborts: endpoints that serve anonymous
// callers (public content) share the chain with endpoints that require a
// user, so the authentication decision stays with each handler.
func (s *Server) identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(common.TokenHeaderName)

		user, err := s.resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			s.logger.Error(c.Request.Context(), "identity resolution failed", "error", err.Error())
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
			return
		}

		if user != nil {
			c.Set(identityKey, user)
		}
		c.Next()
	}
}

// identityFrom returns the resolved identity, nil for anonymous requests.
func identityFrom(c *gin.Context) *models.User {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	return v.(*models.User)
}
