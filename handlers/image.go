package handlers

import (
	"bytes"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"blog/storage"
	"blog/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const thumbSize = 1280

// saveUploadedImage stores the optional "image" form file and returns the
// opaque key kept on the post. Missing file is not an error.
func saveUploadedImage(c *gin.Context) (string, error) {
	header, err := c.FormFile("image")
	if err == http.ErrMissingFile || err == http.ErrNotMultipart || header == nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		return "", nil // no bucket configured, post goes out without the image
	}
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	name := uuid.NewString()
	key := "posts/" + name + strings.ToLower(filepath.Ext(header.Filename))
	if _, err = store.Save(key, file); err != nil {
		return "", err
	}
	// Thumbnail is best effort; the original is what matters
	if _, err = file.Seek(0, 0); err == nil {
		var thumb bytes.Buffer
		if _, err = utils.CreateThumb(thumbSize, file, &thumb); err == nil {
			if _, err = store.Save("posts/thumb/"+name+".jpg", &thumb); err != nil {
				log.Printf("thumb save failed for %s: %v", key, err)
			}
		}
	}
	return key, nil
}

func deleteStoredImage(key string) {
	if key == "" {
		return
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		return
	}
	if err := store.Delete(key); err != nil {
		log.Printf("image delete failed for %s: %v", key, err)
	}
	name := strings.TrimSuffix(filepath.Base(key), filepath.Ext(key))
	_ = store.Delete("posts/thumb/" + name + ".jpg")
}

// ImageFetch serves a stored image by its key
func ImageFetch(c *gin.Context) {
	path := c.Query("path")
	if path == "" || strings.Contains(path, "..") || !strings.HasPrefix(path, "posts/") {
		c.JSON(http.StatusNotFound, Response{"no such image"})
		return
	}
	store := storage.GetDefaultStorage()
	if store == nil {
		c.JSON(http.StatusNotFound, Response{"no such image"})
		return
	}
	store.Serve(path, c.Request, c.Writer)
}
