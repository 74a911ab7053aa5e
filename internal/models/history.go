package models

// MonthHistory is the per-day aggregate bucket. Month is 0-indexed to match
// the bucket keys the journal derives from UTC dates.
type MonthHistory struct {
	UserID  uint    `gorm:"primarykey;autoIncrement:false" json:"user_id"`
	Day     int     `gorm:"primarykey;autoIncrement:false" json:"day"`
	Month   int     `gorm:"primarykey;autoIncrement:false" json:"month"`
	Year    int     `gorm:"primarykey;autoIncrement:false" json:"year"`
	Income  float64 `gorm:"default:0" json:"income"`
	Expense float64 `gorm:"default:0" json:"expense"`
}

// YearHistory is the per-month aggregate bucket.
type YearHistory struct {
	UserID  uint    `gorm:"primarykey;autoIncrement:false" json:"user_id"`
	Month   int     `gorm:"primarykey;autoIncrement:false" json:"month"`
	Year    int     `gorm:"primarykey;autoIncrement:false" json:"year"`
	Income  float64 `gorm:"default:0" json:"income"`
	Expense float64 `gorm:"default:0" json:"expense"`
}
