package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username       string `json:"username" gorm:"size:100"`
	Email          string `json:"email" gorm:"uniqueIndex;not null"`
	Password       string `json:"-"`
	SocialLogin    bool   `json:"socialLogin"`
	SocialProvider string `json:"socialProvider"`
	IsAdmin        bool   `json:"isAdmin" gorm:"default:false;index"`
}
