package models

import "time"

type Category struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	UserID    uint   `gorm:"uniqueIndex:idx_user_category;not null" json:"user_id"`
	Name      string `gorm:"uniqueIndex:idx_user_category;not null" json:"name"`
	Icon      string `json:"icon"`
	Type      string `gorm:"uniqueIndex:idx_user_category;not null" json:"type"`
	CreatedAt time.Time
}
