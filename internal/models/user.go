package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Name         string `gorm:"not null"`
	Currency     string `gorm:"default:'USD'"`
	TokenVersion int    `gorm:"default:1"`
}
