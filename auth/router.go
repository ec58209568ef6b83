package auth

import (
	"net/http"

	"github.com/Franklin-pro/simpo-planet-studio-bn/models"

	"github.com/gin-gonic/gin"
)

// User is authenticated and passed every requirement
type HandlerFunc func(c *gin.Context, user *models.User)

// Requirement is a check the session user must pass
type Requirement func(user *models.User) bool

var (
	Admin      Requirement = (*models.User).IsAdmin
	SuperAdmin Requirement = (*models.User).IsSuperAdmin
)

// Router is a wrapper class that adds auth checks + User pre-loading
type Router struct {
	Base gin.IRoutes
}

func deny(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message, "error": http.StatusText(status)})
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, required []Requirement) {
	session := LoadSession(c)
	user := session.User(c)
	if user.ID == 0 {
		deny(c, http.StatusUnauthorized, "authentication required")
		return
	}
	for _, ok := range required {
		if !ok(&user) {
			deny(c, http.StatusForbidden, "access denied")
			return
		}
	}
	handler(c, &user)
}

func (cr *Router) POST(path string, handler HandlerFunc, required ...Requirement) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) GET(path string, handler HandlerFunc, required ...Requirement) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc, required ...Requirement) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}

func (cr *Router) DELETE(path string, handler HandlerFunc, required ...Requirement) {
	cr.Base.DELETE(path, func(c *gin.Context) {
		cr.baseExec(c, handler, required)
	})
}
