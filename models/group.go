package models

import (
	"errors"
	"strings"
	"time"

	"blog/db"

	"gorm.io/gorm"
)

type Group struct {
	ID          uint64 `gorm:"primaryKey"`
	CreatedAt   int64
	Title       string `gorm:"type:varchar(200)"`
	Slug        string `gorm:"type:varchar(255);index:uniq_slug,unique"`
	Description string `gorm:"type:text"`
}

func GroupCreate(title, slug, description string) (g Group, err error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(slug) == "" {
		return g, ErrValidation
	}
	g = Group{
		CreatedAt:   time.Now().Unix(),
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	return g, db.Instance.Create(&g).Error
}

func GroupBySlug(slug string) (g Group, err error) {
	err = db.Instance.First(&g, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return g, ErrNotFound
	}
	return g, err
}

// GroupDelete removes the group but keeps its posts: their group reference
// is cleared first so the rows survive the delete.
func GroupDelete(groupID uint64) error {
	if err := db.Instance.Model(&Post{}).Where("group_id = ?", groupID).Update("group_id", nil).Error; err != nil {
		return err
	}
	result := db.Instance.Delete(&Group{}, groupID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
