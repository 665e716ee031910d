package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"blog/auth"
	"blog/feed"
	"blog/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type PostForm struct {
	Text    string `form:"text"`
	GroupID uint64 `form:"group"`
}

// PostIndex is the landing page: the global feed, newest first. Page 1 is
// served through the shared cache and may lag behind writes until the TTL
// runs out.
func PostIndex(c *gin.Context) {
	page := pageParam(c)
	var result feed.Page
	var err error
	if page == 1 {
		result, err = feedCache.GetOrCompute(feed.GlobalKey, cacheTTL(), func() (feed.Page, error) {
			return feed.Global(1)
		})
	} else {
		result, err = feed.Global(page)
	}
	if err != nil {
		log.Printf("global feed: %v", err)
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	c.JSON(http.StatusOK, pageInfoFrom(&result))
}

func GroupPosts(c *gin.Context) {
	group, page, err := feed.Group(c.Param("slug"), pageParam(c))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{"no such group"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"group": groupInfoFrom(&group),
		"posts": pageInfoFrom(&page),
	})
}

func Profile(c *gin.Context) {
	viewerID := auth.LoadSession(c).UserID()
	view, err := feed.Author(c.Param("username"), viewerID, pageParam(c))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{"no such user"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"author":    userInfoFrom(&view.Author),
		"posts":     pageInfoFrom(&view.Page),
		"count":     view.PostCount,
		"following": view.Following,
	})
}

func PostDetail(c *gin.Context) {
	postID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, Response{"no such post"})
		return
	}
	post, err := models.PostGet(postID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{"no such post"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	comments, err := models.CommentsForPost(postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	commentInfos := []CommentInfo{}
	for i := range comments {
		commentInfos = append(commentInfos, CommentInfo{
			ID:      comments[i].ID,
			Created: comments[i].CreatedAt,
			Text:    comments[i].Text,
			Author:  userInfoFrom(&comments[i].User),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"post":     postInfoFrom(&post),
		"comments": commentInfos,
	})
}

func PostCreate(c *gin.Context, user *models.User) {
	r := PostForm{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	image, err := saveUploadedImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	_, err = models.PostCreate(user.ID, r.Text, groupIDOrNil(r.GroupID), image)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			// Validation errors are recovered inline: the submission comes
			// back with the message so the form can be re-shown.
			c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty", "text": r.Text})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

// PostEdit updates a post's text, group and image. A non-owner is sent
// back to the read-only detail view with nothing changed and no error
// surfaced.
func PostEdit(c *gin.Context, user *models.User) {
	postID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, Response{"no such post"})
		return
	}
	post, err := models.PostGet(postID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{"no such post"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	detailPath := "/posts/" + strconv.FormatUint(postID, 10)
	if !post.CanEdit(user.ID) {
		c.Redirect(http.StatusFound, detailPath)
		return
	}
	r := PostForm{}
	if err = c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	image, err := saveUploadedImage(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{err.Error()})
		return
	}
	if err = models.PostUpdate(&post, r.Text, groupIDOrNil(r.GroupID), image); err != nil {
		if errors.Is(err, models.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "text must not be empty", "text": r.Text})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	c.Redirect(http.StatusFound, detailPath)
}

// PostDelete removes the post together with its comments and stored
// image. The same ownership rule applies as for editing.
func PostDelete(c *gin.Context, user *models.User) {
	postID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, Response{"no such post"})
		return
	}
	post, err := models.PostGet(postID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, Response{"no such post"})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	if !post.CanEdit(user.ID) {
		c.Redirect(http.StatusFound, "/posts/"+strconv.FormatUint(postID, 10))
		return
	}
	if err = models.PostDelete(postID); err != nil {
		c.JSON(http.StatusInternalServerError, Response{"DB error"})
		return
	}
	deleteStoredImage(post.Image)
	c.Redirect(http.StatusFound, "/profile/"+user.Username)
}

func groupIDOrNil(id uint64) *uint64 {
	if id == 0 {
		return nil
	}
	return &id
}
