package models

import (
	"time"

	"gorm.io/gorm"
)

// SessionID 是唯一會議紀錄的固定主鍵，系統中只會有這一筆
const SessionID uint = 1

// SessionState 定義會議狀態
type SessionState string

const (
	SessionStateIdle     SessionState = "idle"
	SessionStateDebating SessionState = "debating"
	SessionStateVoting   SessionState = "voting"
)

func (s SessionState) Valid() bool {
	switch s {
	case SessionStateIdle, SessionStateDebating, SessionStateVoting:
		return true
	}
	return false
}

// SessionConfig 是會議設定（如 gslTime、modTime 計時器），內容原樣保存，值不限型別
type SessionConfig map[string]any

// SpeakerEntry 是發言名單中的一筆，結構由前端決定
type SpeakerEntry map[string]any

type SpeakerQueue []SpeakerEntry

// Session 表示整場會議的共享狀態
type Session struct {
	gorm.Model
	State              SessionState  `gorm:"type:varchar(20);not null"`
	ChairUserID        *string       `gorm:"type:varchar(128)"`
	CurrentSpeechStart *time.Time
	Config             SessionConfig `gorm:"type:jsonb;serializer:json"`
	SpeakerQueue       SpeakerQueue  `gorm:"type:jsonb;serializer:json"`
	Vote               Vote          `gorm:"type:jsonb;serializer:json"`

	Delegates []Delegate  `gorm:"foreignKey:SessionID"`
	Chats     []ChatEntry `gorm:"foreignKey:SessionID"`
	Chits     []Chit      `gorm:"foreignKey:SessionID"`
}

// NewSession 建立預設狀態的會議：閒置、無主席、空發言名單、無進行中的投票
func NewSession(config SessionConfig) *Session {
	cfg := make(SessionConfig, len(config))
	for k, v := range config {
		cfg[k] = v
	}
	s := &Session{
		State:        SessionStateIdle,
		Config:       cfg,
		SpeakerQueue: SpeakerQueue{},
		Vote:         InactiveVote(),
	}
	s.ID = SessionID
	return s
}

// All 回傳需要遷移的模型，父表在前
func All() []interface{} {
	return []interface{}{&Session{}, &Delegate{}, &ChatEntry{}, &Chit{}}
}
