package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"digimun_backend/internal/models"
	"digimun_backend/internal/service"
)

// SessionHandler 處理會議狀態、發言名單、聊天與紙條
type SessionHandler struct {
	sessionService *service.SessionService
}

func NewSessionHandler(sessionService *service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// optionalString 區分欄位未提供、明確給 null 與給字串三種情況
type optionalString struct {
	Set   bool
	Value *string
}

func (o *optionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	return json.Unmarshal(data, &o.Value)
}

// UpdateSessionInput 中未提供的欄位保持不變；"chairUserId": null 會清除主席
type UpdateSessionInput struct {
	State         *string              `json:"state" binding:"omitempty,oneof=idle debating voting"`
	ChairUserID   optionalString       `json:"chairUserId"`
	SessionConfig models.SessionConfig `json:"sessionConfig"`
}

type UpdateSpeakersInput struct {
	List   models.SpeakerQueue `json:"list" binding:"required"`
	Action string              `json:"action" binding:"omitempty,oneof=start end pause"`
}

type SendMessageInput struct {
	UserID   string `json:"userId" binding:"required"`
	Country  string `json:"country" binding:"required"`
	Message  string `json:"message" binding:"required"`
	Type     string `json:"type" binding:"max=50"`
	IsMotion bool   `json:"isMotion"` // 舊版前端欄位
}

type SendChitInput struct {
	FromUserID  string `json:"fromUserId" binding:"required"`
	ToUserID    string `json:"toUserId"`
	FromCountry string `json:"fromCountry"`
	ToCountry   string `json:"toCountry"`
	Message     string `json:"message" binding:"required"`
	IsViaEb     bool   `json:"isViaEb"`
	Tag         string `json:"tag" binding:"max=50"`
}

// GetSession 回傳完整狀態快照
func (h *SessionHandler) GetSession(c *gin.Context) {
	snapshot, err := h.sessionService.Snapshot(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// UpdateSession 處理主席對會議狀態、主席與計時設定的更新
func (h *SessionHandler) UpdateSession(c *gin.Context) {
	var input UpdateSessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	patch := service.SessionPatch{
		SetChair:    input.ChairUserID.Set,
		ChairUserID: input.ChairUserID.Value,
		Config:      input.SessionConfig,
	}
	if input.State != nil {
		state := models.SessionState(*input.State)
		patch.State = &state
	}

	if err := h.sessionService.ApplyPatch(c.Request.Context(), patch); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// UpdateSpeakers 整份取代發言名單
func (h *SessionHandler) UpdateSpeakers(c *gin.Context) {
	var input UpdateSpeakersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	err := h.sessionService.ReplaceSpeakerQueue(c.Request.Context(), input.List, service.SpeechAction(input.Action))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "speakers updated"})
}

// SendMessage 新增聊天訊息或動議
func (h *SessionHandler) SendMessage(c *gin.Context) {
	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	msgType := input.Type
	if msgType == "" && input.IsMotion {
		msgType = models.ChatTypeMotion
	}

	if err := h.sessionService.PostChat(c.Request.Context(), input.UserID, input.Country, input.Message, msgType); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "sent"})
}

// SendChit 傳送紙條
func (h *SessionHandler) SendChit(c *gin.Context) {
	var input SendChitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	err := h.sessionService.PostChit(c.Request.Context(), models.Chit{
		FromUserID:  input.FromUserID,
		ToUserID:    input.ToUserID,
		FromCountry: input.FromCountry,
		ToCountry:   input.ToCountry,
		Message:     input.Message,
		IsViaEb:     input.IsViaEb,
		Tag:         input.Tag,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "chit sent"})
}
