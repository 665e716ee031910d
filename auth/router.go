package auth

import (
	"net/http"

	"blog/models"

	"github.com/gin-gonic/gin"
)

// LoginPath is where unauthenticated actors get sent; the login flow
// itself lives with the identity handlers.
const LoginPath = "/user/login"

// HandlerFunc receives the already authenticated user
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper class that adds the auth check + User pre-loading.
// Anonymous requests to guarded routes are redirected to the login page.
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc) {
	session := LoadSession(c)
	user := session.User()
	if user.ID == 0 {
		c.Redirect(http.StatusFound, LoginPath)
		return
	}
	handler(c, &user)
}

func (cr *Router) GET(path string, handler HandlerFunc) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler)
	})
}
