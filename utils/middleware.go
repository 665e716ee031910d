package utils

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
)

// CacheRouter sets a blanket cache-control header on every response it
// wraps. Handlers that need a different policy set the header themselves
// and the router is configured with CacheCustom.
type CacheRouter struct {
	CacheTime int // seconds; CacheNoCache disables caching
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cr.CacheTime != CacheCustom {
			if cr.CacheTime == CacheNoCache {
				c.Header("cache-control", "no-cache")
			} else {
				c.Header("cache-control", "private, max-age="+strconv.Itoa(cr.CacheTime))
			}
		}
		c.Next()
	}
}

type errorBodyWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorBodyWriter) Write(b []byte) (int, error) {
	if status := w.gc.Writer.Status(); status >= 400 {
		log.Printf("[DEBUG ERROR]: Status %d, Body: %s", status, string(b))
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware logs the bodies of error responses. Must run before
// the gzip middleware or the logged body is compressed.
func ErrorLogMiddleware(c *gin.Context) {
	c.Writer = &errorBodyWriter{gc: c, ResponseWriter: c.Writer}
	c.Next()
}
