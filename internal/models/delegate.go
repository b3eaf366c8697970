package models

import "time"

// DelegateRole 定義代表在會議中的角色
type DelegateRole string

const (
	RoleDelegate DelegateRole = "delegate"
	RoleChair    DelegateRole = "chair"
)

// Delegate 以呼叫端提供的 userID 為主鍵，重複加入只會更新國家與角色
type Delegate struct {
	UserID    string       `gorm:"primaryKey;type:varchar(128)" json:"userId"`
	SessionID uint         `gorm:"index;not null" json:"-"`
	Country   string       `gorm:"type:varchar(100)" json:"country"`
	Role      DelegateRole `gorm:"type:varchar(20);not null" json:"role"`
	Score     int          `gorm:"not null" json:"score"`
	CreatedAt time.Time    `json:"-"`
	UpdatedAt time.Time    `json:"-"`
}
