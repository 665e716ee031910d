package handlers

import (
	"net/http"

	"blog/feed"
	"blog/models"

	"github.com/gin-gonic/gin"
)

// CacheClear drops the cached landing page so the next read recomputes it
func CacheClear(c *gin.Context, user *models.User) {
	feedCache.Invalidate(feed.GlobalKey)
	c.JSON(http.StatusOK, OKResponse)
}
