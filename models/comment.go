package models

import (
	"errors"
	"strings"
	"time"

	"blog/db"

	"gorm.io/gorm"
)

type Comment struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	PostID    uint64 `gorm:"not null;index"`
	Post      Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID    uint64 `gorm:"not null"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Text      string `gorm:"type:text"`
}

func CommentCreate(postID, authorID uint64, text string) (c Comment, err error) {
	if strings.TrimSpace(text) == "" {
		return c, ErrValidation
	}
	var post Post
	if err = db.Instance.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c, ErrNotFound
		}
		return c, err
	}
	c = Comment{
		CreatedAt: time.Now().Unix(),
		PostID:    postID,
		UserID:    authorID,
		Text:      text,
	}
	return c, db.Instance.Create(&c).Error
}

func CommentsForPost(postID uint64) (comments []Comment, err error) {
	err = db.Instance.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return
}
