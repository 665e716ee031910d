package models

import (
	"time"

	"blog/db"

	"gorm.io/gorm/clause"
)

// Follow is a directed edge: User receives Author's posts in their feed.
type Follow struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UserID    uint64 `gorm:"not null;index:uniq_follow,priority:1,unique"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AuthorID  uint64 `gorm:"not null;index:uniq_follow,priority:2,unique"`
	Author    User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// FollowAuthor has get-or-create semantics. Self-follows store nothing and
// return no error; the returned edge has a zero ID in that case.
// Concurrent calls for the same pair resolve to a single row via the unique
// index plus a conflict-tolerant insert.
func FollowAuthor(userID, authorID uint64) (f Follow, err error) {
	if userID == authorID {
		return f, nil
	}
	f = Follow{
		CreatedAt: time.Now().Unix(),
		UserID:    userID,
		AuthorID:  authorID,
	}
	err = db.Instance.Clauses(clause.OnConflict{DoNothing: true}).Create(&f).Error
	if err != nil {
		return f, err
	}
	if f.ID == 0 {
		// The edge already existed
		err = db.Instance.First(&f, "user_id = ? AND author_id = ?", userID, authorID).Error
	}
	return f, err
}

func UnfollowAuthor(userID, authorID uint64) error {
	result := db.Instance.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func IsFollowing(userID, authorID uint64) bool {
	if userID == 0 {
		return false
	}
	var count int64
	db.Instance.Model(&Follow{}).Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count)
	return count > 0
}

// FollowedAuthorIDs returns the ids whose posts make up the user's
// following feed.
func FollowedAuthorIDs(userID uint64) (ids []uint64, err error) {
	err = db.Instance.Model(&Follow{}).Where("user_id = ?", userID).Pluck("author_id", &ids).Error
	return
}
