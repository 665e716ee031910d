package handlers

import (
	"errors"
	"net/http"

	"blog/auth"
	"blog/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserSignupRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type UserLoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

func UserSignup(c *gin.Context) {
	r := UserSignupRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	user, err := models.UserCreate(r.Username, r.Password)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, Response{"username and password must not be empty"})
			return
		}
		// Most likely the username is taken
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	session := auth.LoadSession(c)
	session.LoginUser(&user)
	c.JSON(http.StatusOK, gin.H{"error": "", "id": user.ID, "username": user.Username})
}

func UserLogin(c *gin.Context) {
	r := UserLoginRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	user, success := models.UserLogin(r.Username, r.Password)
	if !success {
		c.JSON(http.StatusUnauthorized, Response{"invalid credentials"})
		return
	}
	session := auth.LoadSession(c)
	session.LoginUser(&user)
	c.JSON(http.StatusOK, gin.H{"error": "", "id": user.ID, "username": user.Username})
}

func UserLogout(c *gin.Context, user *models.User) {
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, OKResponse)
}

// UserGetStatus reports who the session belongs to
func UserGetStatus(c *gin.Context) {
	session := auth.LoadSession(c)
	user := session.User()
	if user.ID == 0 {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "id": user.ID, "username": user.Username})
}
