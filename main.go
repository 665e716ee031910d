package main

import (
	"log"
	"strings"
	"time"

	"blog/auth"
	"blog/config"
	"blog/db"
	"blog/feed"
	"blog/handlers"
	"blog/models"
	"blog/storage"
	"blog/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	models.Init()
	storage.Init()
	handlers.Setup(feed.NewCache())

	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/image/fetch"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default

	// Custom Auth Router - redirects anonymous users to the login page
	authRouter := &auth.Router{Base: router}

	// Feeds and post reads
	router.GET("/", handlers.PostIndex)
	router.GET("/group/:slug", handlers.GroupPosts)
	router.GET("/profile/:username", handlers.Profile)
	router.GET("/posts/:id", handlers.PostDetail)
	authRouter.GET("/follow", handlers.FollowIndex)
	// Post mutations
	authRouter.POST("/create", handlers.PostCreate)
	authRouter.POST("/posts/:id/edit", handlers.PostEdit)
	authRouter.POST("/posts/:id/delete", handlers.PostDelete)
	authRouter.POST("/posts/:id/comment", handlers.CommentAdd)
	// Social graph
	authRouter.POST("/profile/:username/follow", handlers.ProfileFollow)
	authRouter.POST("/profile/:username/unfollow", handlers.ProfileUnfollow)
	// Groups
	authRouter.POST("/group/create", handlers.GroupCreate)
	authRouter.POST("/group/:slug/delete", handlers.GroupDelete)
	// Identity
	router.POST("/user/signup", handlers.UserSignup)
	router.POST("/user/login", handlers.UserLogin)
	authRouter.POST("/user/logout", handlers.UserLogout)
	router.GET("/user/status", handlers.UserGetStatus)
	// Images
	router.GET("/image/fetch", handlers.ImageFetch)
	// Admin
	authRouter.POST("/admin/cache/clear", handlers.CacheClear)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
