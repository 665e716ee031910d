package handlers

import (
	"errors"
	"net/http"

	"blog/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type GroupCreateRequest struct {
	Title       string `form:"title" binding:"required"`
	Slug        string `form:"slug" binding:"required"`
	Description string `form:"description"`
}

func GroupCreate(c *gin.Context, user *models.User) {
	r := GroupCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	group, err := models.GroupCreate(r.Title, r.Slug, r.Description)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, Response{"title and slug must not be empty"})
			return
		}
		// Most likely a duplicate slug
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	c.JSON(http.StatusOK, groupInfoFrom(&group))
}

// GroupDelete removes the group. Its posts survive with their group
// reference cleared.
func GroupDelete(c *gin.Context, user *models.User) {
	group, err := models.GroupBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{"no such group"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	if err = models.GroupDelete(group.ID); err != nil {
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	c.JSON(http.StatusOK, "DELETED")
}
