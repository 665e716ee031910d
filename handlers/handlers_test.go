package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"blog/auth"
	"blog/config"
	"blog/db"
	"blog/feed"
	"blog/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

var testDBOnce sync.Once

func testInit(t *testing.T) {
	t.Helper()
	testDBOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		config.MYSQL_DSN = ""
		config.SQLITE_FILE = "file::memory:?cache=shared"
		db.Init()
		models.Init()
	})
	Setup(feed.NewCache())
	for _, table := range []string{"follows", "comments", "posts", "groups", "users"} {
		if err := db.Instance.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("wiping %s: %v", table, err)
		}
	}
}

// newTestRouter mirrors the route table in main.go, with an in-memory
// cookie session store instead of the gorm-backed one.
func newTestRouter() *gin.Engine {
	router := gin.New()
	store := cookie.NewStore([]byte("test session key"))
	router.Use(sessions.Sessions("token", store))
	authRouter := &auth.Router{Base: router}

	router.GET("/", PostIndex)
	router.GET("/group/:slug", GroupPosts)
	router.GET("/profile/:username", Profile)
	router.GET("/posts/:id", PostDetail)
	authRouter.GET("/follow", FollowIndex)
	authRouter.POST("/create", PostCreate)
	authRouter.POST("/posts/:id/edit", PostEdit)
	authRouter.POST("/posts/:id/delete", PostDelete)
	authRouter.POST("/posts/:id/comment", CommentAdd)
	authRouter.POST("/profile/:username/follow", ProfileFollow)
	authRouter.POST("/profile/:username/unfollow", ProfileUnfollow)
	router.POST("/user/signup", UserSignup)
	router.POST("/user/login", UserLogin)
	authRouter.POST("/admin/cache/clear", CacheClear)
	return router
}

func postForm(router *gin.Engine, path string, form url.Values, cookies []string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.Header.Add("Cookie", c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPath(router *gin.Engine, path string, cookies []string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	for _, c := range cookies {
		req.Header.Add("Cookie", c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// signup registers the user and returns the session cookies to act as them
func signup(t *testing.T, router *gin.Engine, username string) []string {
	t.Helper()
	w := postForm(router, "/user/signup", url.Values{
		"username": {username},
		"password": {"secret"},
	}, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("signup %q: status %d, body %s", username, w.Code, w.Body.String())
	}
	var cookies []string
	for _, c := range w.Result().Cookies() {
		cookies = append(cookies, c.Name+"="+c.Value)
	}
	if len(cookies) == 0 {
		t.Fatalf("signup %q: no session cookie", username)
	}
	return cookies
}

func TestUnauthenticatedMutationRedirectsToLogin(t *testing.T) {
	testInit(t)
	router := newTestRouter()

	w := postForm(router, "/create", url.Values{"text": {"hello"}}, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if got := w.Header().Get("Location"); got != auth.LoginPath {
		t.Errorf("redirect = %q, want %q", got, auth.LoginPath)
	}
	var count int64
	db.Instance.Model(&models.Post{}).Count(&count)
	if count != 0 {
		t.Errorf("post created despite missing auth")
	}
}

func TestPostCreateAndValidation(t *testing.T) {
	testInit(t)
	router := newTestRouter()
	cookies := signup(t, router, "leo")

	w := postForm(router, "/create", url.Values{"text": {"my first post"}}, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302, body %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != "/profile/leo" {
		t.Errorf("redirect = %q, want /profile/leo", got)
	}

	// Empty text comes back inline as a validation error
	w = postForm(router, "/create", url.Values{"text": {"   "}}, cookies)
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty text status = %d, want 400", w.Code)
	}
	var count int64
	db.Instance.Model(&models.Post{}).Count(&count)
	if count != 1 {
		t.Errorf("post count = %d, want 1", count)
	}
}

func TestEditByNonOwnerSilentlyRedirects(t *testing.T) {
	testInit(t)
	router := newTestRouter()
	signup(t, router, "owner")
	strangerCookies := signup(t, router, "stranger")

	owner, err := models.UserByUsername("owner")
	if err != nil {
		t.Fatalf("UserByUsername: %v", err)
	}
	post, err := models.PostCreate(owner.ID, "original text", nil, "")
	if err != nil {
		t.Fatalf("PostCreate: %v", err)
	}

	detail := fmt.Sprintf("/posts/%d", post.ID)
	w := postForm(router, detail+"/edit", url.Values{"text": {"hijacked"}}, strangerCookies)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302 (no error surfaced)", w.Code)
	}
	if got := w.Header().Get("Location"); got != detail {
		t.Errorf("redirect = %q, want the post detail view", got)
	}
	got, err := models.PostGet(post.ID)
	if err != nil {
		t.Fatalf("PostGet: %v", err)
	}
	if got.Text != "original text" {
		t.Errorf("post text = %q, non-owner edit must not mutate", got.Text)
	}
}

func TestEditByOwner(t *testing.T) {
	testInit(t)
	router := newTestRouter()
	cookies := signup(t, router, "owner")

	owner, err := models.UserByUsername("owner")
	if err != nil {
		t.Fatalf("UserByUsername: %v", err)
	}
	post, err := models.PostCreate(owner.ID, "original text", nil, "")
	if err != nil {
		t.Fatalf("PostCreate: %v", err)
	}

	w := postForm(router, fmt.Sprintf("/posts/%d/edit", post.ID), url.Values{"text": {"edited text"}}, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302, body %s", w.Code, w.Body.String())
	}
	got, err := models.PostGet(post.ID)
	if err != nil {
		t.Fatalf("PostGet: %v", err)
	}
	if got.Text != "edited text" {
		t.Errorf("post text = %q, want %q", got.Text, "edited text")
	}
}

func TestSelfFollowIsNoOpRedirect(t *testing.T) {
	testInit(t)
	router := newTestRouter()
	cookies := signup(t, router, "leo")

	w := postForm(router, "/profile/leo/follow", nil, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	var count int64
	db.Instance.Model(&models.Follow{}).Count(&count)
	if count != 0 {
		t.Errorf("self-follow stored %d edges, want 0", count)
	}
}

func TestUnfollowWithoutEdgeIs404(t *testing.T) {
	testInit(t)
	router := newTestRouter()
	cookies := signup(t, router, "leo")
	signup(t, router, "mia")

	w := postForm(router, "/profile/mia/unfollow", nil, cookies)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestUnknownGroupAndProfileAre404(t *testing.T) {
	testInit(t)
	router := newTestRouter()

	if w := getPath(router, "/group/nope", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown group status = %d, want 404", w.Code)
	}
	if w := getPath(router, "/profile/nobody", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown profile status = %d, want 404", w.Code)
	}
	if w := getPath(router, "/posts/12345", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown post status = %d, want 404", w.Code)
	}
}

func TestCommentFlow(t *testing.T) {
	testInit(t)
	router := newTestRouter()
	cookies := signup(t, router, "leo")

	leo, err := models.UserByUsername("leo")
	if err != nil {
		t.Fatalf("UserByUsername: %v", err)
	}
	post, err := models.PostCreate(leo.ID, "comment on me", nil, "")
	if err != nil {
		t.Fatalf("PostCreate: %v", err)
	}

	detail := fmt.Sprintf("/posts/%d", post.ID)
	w := postForm(router, detail+"/comment", url.Values{"text": {"nice one"}}, cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302, body %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Location"); got != detail {
		t.Errorf("redirect = %q, want %s", got, detail)
	}
	w = getPath(router, detail, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("detail status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "nice one") {
		t.Errorf("detail view is missing the comment: %s", w.Body.String())
	}
}

func TestIndexServesCachedPageUntilCleared(t *testing.T) {
	testInit(t)
	router := newTestRouter()
	cookies := signup(t, router, "leo")

	leo, err := models.UserByUsername("leo")
	if err != nil {
		t.Fatalf("UserByUsername: %v", err)
	}
	if _, err = models.PostCreate(leo.ID, "first", nil, ""); err != nil {
		t.Fatalf("PostCreate: %v", err)
	}

	index := func() PageInfo {
		w := getPath(router, "/", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("index status = %d", w.Code)
		}
		var page PageInfo
		if err := json.Unmarshal(w.Body.Bytes(), &page); err != nil {
			t.Fatalf("bad index payload: %v", err)
		}
		return page
	}

	if got := index(); len(got.Posts) != 1 {
		t.Fatalf("index posts = %d, want 1", len(got.Posts))
	}
	// A new post stays invisible on the cached landing page
	if _, err = models.PostCreate(leo.ID, "second", nil, ""); err != nil {
		t.Fatalf("PostCreate: %v", err)
	}
	if got := index(); len(got.Posts) != 1 {
		t.Errorf("index posts after write = %d, want still 1 (stale cache)", len(got.Posts))
	}
	// Manual invalidation forces recomputation on the next read
	if w := postForm(router, "/admin/cache/clear", nil, cookies); w.Code != http.StatusOK {
		t.Fatalf("cache clear status = %d", w.Code)
	}
	if got := index(); len(got.Posts) != 2 {
		t.Errorf("index posts after clear = %d, want 2", len(got.Posts))
	}
}
