package models

import (
	"errors"
	"strings"
	"time"

	"blog/db"
	"blog/utils"

	"gorm.io/gorm"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	Username  string `gorm:"type:varchar(150);index:uniq_username,unique"`
	Password  string `gorm:"type:varchar(128)"`
	PassSalt  string `gorm:"type:varchar(200)"`
}

const saltSize = 60

func UserCreate(username, plainTextPassword string) (u User, err error) {
	if strings.TrimSpace(username) == "" || plainTextPassword == "" {
		return u, ErrValidation
	}
	u.Username = username
	u.CreatedAt = time.Now().Unix()
	u.PassSalt = utils.RandSalt(saltSize)
	u.Password = utils.Sha512String(plainTextPassword + u.PassSalt)
	return u, db.Instance.Create(&u).Error
}

func UserLogin(username, plainTextPassword string) (u User, success bool) {
	result := db.Instance.First(&u, "username = ?", username)
	if result.Error != nil {
		return User{}, false
	}
	if u.Password != utils.Sha512String(plainTextPassword+u.PassSalt) {
		return User{}, false
	}
	return u, true
}

func UserByUsername(username string) (u User, err error) {
	err = db.Instance.First(&u, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return u, ErrNotFound
	}
	return u, err
}

func (u *User) SetPassword(plainTextPassword string) {
	u.PassSalt = utils.RandSalt(saltSize)
	u.Password = utils.Sha512String(plainTextPassword + u.PassSalt)
}

// UserDelete removes the user together with their posts (and the comments on
// those posts), their own comments and all follow edges touching the account.
func UserDelete(userID uint64) error {
	var postIDs []uint64
	if err := db.Instance.Model(&Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
		return err
	}
	if len(postIDs) > 0 {
		if err := db.Instance.Where("post_id IN ?", postIDs).Delete(&Comment{}).Error; err != nil {
			return err
		}
		if err := db.Instance.Where("user_id = ?", userID).Delete(&Post{}).Error; err != nil {
			return err
		}
	}
	if err := db.Instance.Where("user_id = ?", userID).Delete(&Comment{}).Error; err != nil {
		return err
	}
	if err := db.Instance.Where("user_id = ? OR author_id = ?", userID, userID).Delete(&Follow{}).Error; err != nil {
		return err
	}
	result := db.Instance.Delete(&User{}, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
