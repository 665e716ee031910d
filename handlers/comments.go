package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"blog/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type CommentForm struct {
	Text string `form:"text"`
}

// CommentAdd attaches a comment to the post and sends the actor back to
// the detail view. Comments are immutable once created.
func CommentAdd(c *gin.Context, user *models.User) {
	postID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, Response{"no such post"})
		return
	}
	r := CommentForm{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	_, err := models.CommentCreate(postID, user.ID, r.Text)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty", "text": r.Text})
			return
		}
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{"no such post"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(postID, 10))
}
