package models

import (
	"sync"
	"testing"

	"blog/config"
	"blog/db"
)

var testDBOnce sync.Once

// testInit points the global DB handle at a shared in-memory SQLite
// database and wipes all rows so each test starts clean.
func testInit(t *testing.T) {
	t.Helper()
	testDBOnce.Do(func() {
		config.MYSQL_DSN = ""
		config.SQLITE_FILE = "file::memory:?cache=shared"
		db.Init()
		Init()
	})
	for _, table := range []string{"follows", "comments", "posts", "groups", "users"} {
		if err := db.Instance.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("wiping %s: %v", table, err)
		}
	}
}

func mustUser(t *testing.T, username string) User {
	t.Helper()
	u, err := UserCreate(username, "secret")
	if err != nil {
		t.Fatalf("UserCreate(%q): %v", username, err)
	}
	return u
}

func mustPost(t *testing.T, authorID uint64, text string, groupID *uint64) Post {
	t.Helper()
	p, err := PostCreate(authorID, text, groupID, "")
	if err != nil {
		t.Fatalf("PostCreate: %v", err)
	}
	return p
}
