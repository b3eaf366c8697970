package models

import "time"

const (
	ChatTypeChat   = "chat"
	ChatTypeMotion = "motion"

	ChitTagGeneral = "General"
)

// ChatEntry 是公開聊天室的一則訊息，建立後不再修改
type ChatEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID uint      `gorm:"index;not null" json:"-"`
	UserID    string    `gorm:"type:varchar(128)" json:"userId"`
	Country   string    `gorm:"type:varchar(100)" json:"country"`
	Message   string    `gorm:"type:text" json:"message"`
	Type      string    `gorm:"type:varchar(50);not null" json:"type"` // chat、motion、point_order ...
	Timestamp time.Time `json:"timestamp"`
}

func (ChatEntry) TableName() string {
	return "chats"
}

// Chit 是代表之間的私人紙條，可經由主席團（EB）轉交
type Chit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessionID   uint      `gorm:"index;not null" json:"-"`
	FromUserID  string    `gorm:"type:varchar(128)" json:"fromUserId"`
	ToUserID    string    `gorm:"type:varchar(128)" json:"toUserId"`
	FromCountry string    `gorm:"type:varchar(100)" json:"fromCountry"`
	ToCountry   string    `gorm:"type:varchar(100)" json:"toCountry"`
	Message     string    `gorm:"type:text" json:"message"`
	IsRead      bool      `gorm:"not null;default:false" json:"isRead"` // 目前沒有操作會設定已讀
	IsViaEb     bool      `gorm:"not null" json:"isViaEb"`
	Tag         string    `gorm:"type:varchar(50)" json:"tag"` // Question、Reply、General
	Timestamp   time.Time `json:"timestamp"`
}
