package models

import (
	"errors"
	"strings"
	"time"

	"blog/db"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"index"`
	UserID    uint64 `gorm:"not null;index"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	GroupID   *uint64
	Group     *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Text      string `gorm:"type:text"`
	Image     string `gorm:"type:varchar(300)"` // opaque storage key, empty if no image
}

// PostDefaultOrder is the feed ordering: newest first, id as tie-breaker
// for posts created within the same second.
const PostDefaultOrder = "created_at DESC, id DESC"

func (p *Post) CanEdit(userID uint64) bool {
	return p.UserID == userID
}

func PostCreate(authorID uint64, text string, groupID *uint64, image string) (p Post, err error) {
	if strings.TrimSpace(text) == "" {
		return p, ErrValidation
	}
	p = Post{
		CreatedAt: time.Now().Unix(),
		UserID:    authorID,
		GroupID:   groupID,
		Text:      text,
		Image:     image,
	}
	return p, db.Instance.Create(&p).Error
}

func PostGet(postID uint64) (p Post, err error) {
	err = db.Instance.Preload("User").Preload("Group").First(&p, postID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, ErrNotFound
	}
	return p, err
}

// PostUpdate changes the mutable fields. Authorship and creation time are
// never touched. An empty image keeps the current one. The ownership check
// is the caller's job (Post.CanEdit).
func PostUpdate(p *Post, text string, groupID *uint64, image string) error {
	if strings.TrimSpace(text) == "" {
		return ErrValidation
	}
	fields := map[string]interface{}{
		"text":     text,
		"group_id": groupID,
	}
	if image != "" {
		fields["image"] = image
	}
	return db.Instance.Model(p).Updates(fields).Error
}

// PostDelete removes the post and all of its comments.
func PostDelete(postID uint64) error {
	if err := db.Instance.Where("post_id = ?", postID).Delete(&Comment{}).Error; err != nil {
		return err
	}
	result := db.Instance.Delete(&Post{}, postID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
