package handlers

import (
	"strconv"
	"time"

	"blog/config"
	"blog/feed"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Error string `json:"error"`
}

var OKResponse = Response{}

// feedCache is the shared landing-page cache, injected from main
var feedCache *feed.Cache

func Setup(cache *feed.Cache) {
	feedCache = cache
}

func cacheTTL() time.Duration {
	return time.Duration(config.FEED_CACHE_SECONDS) * time.Second
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func idParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
