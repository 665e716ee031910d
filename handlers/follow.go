package handlers

import (
	"errors"
	"net/http"

	"blog/feed"
	"blog/models"

	"github.com/gin-gonic/gin"
)

// FollowIndex is the personalized feed: posts by every author the viewer
// follows. An empty follow set is an empty page, not an error.
func FollowIndex(c *gin.Context, user *models.User) {
	page, err := feed.Following(user.ID, pageParam(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	c.JSON(http.StatusOK, pageInfoFrom(&page))
}

// ProfileFollow starts following the author. Following yourself is
// silently ignored; following twice keeps a single edge.
func ProfileFollow(c *gin.Context, user *models.User) {
	username := c.Param("username")
	author, err := models.UserByUsername(username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{"no such user"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	if _, err = models.FollowAuthor(user.ID, author.ID); err != nil {
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username)
}

func ProfileUnfollow(c *gin.Context, user *models.User) {
	username := c.Param("username")
	author, err := models.UserByUsername(username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{"no such user"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	if err = models.UnfollowAuthor(user.ID, author.ID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{"not following"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username)
}
