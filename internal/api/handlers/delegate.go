package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"digimun_backend/internal/models"
	"digimun_backend/internal/service"
)

// DelegateHandler 處理代表加入與評分
type DelegateHandler struct {
	delegateService *service.DelegateService
}

func NewDelegateHandler(delegateService *service.DelegateService) *DelegateHandler {
	return &DelegateHandler{delegateService: delegateService}
}

type JoinInput struct {
	UserID  string `json:"userId" binding:"required,max=128"`
	Country string `json:"country" binding:"required,max=100"`
	Role    string `json:"role" binding:"required,oneof=delegate chair"`
}

type MarkInput struct {
	UserID string `json:"userId" binding:"required"`
	Score  *int   `json:"score" binding:"required"` // 分數增減量
}

// Join 處理加入會議的請求
func (h *DelegateHandler) Join(c *gin.Context) {
	var input JoinInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	err := h.delegateService.Join(c.Request.Context(), input.UserID, input.Country, models.DelegateRole(input.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "joined"})
}

// GetDelegate 回傳單一代表，前端重新整理後用來確認自己的身分
func (h *DelegateHandler) GetDelegate(c *gin.Context) {
	delegate, err := h.delegateService.GetDelegate(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, delegate)
}

// Mark 處理主席為代表加減分
func (h *DelegateHandler) Mark(c *gin.Context) {
	var input MarkInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.delegateService.AdjustScore(c.Request.Context(), input.UserID, *input.Score); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "marked"})
}
