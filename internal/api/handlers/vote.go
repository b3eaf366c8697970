package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"digimun_backend/internal/models"
	"digimun_backend/internal/service"
)

// VoteHandler 處理投票的開始、投票與結束
type VoteHandler struct {
	voteService *service.VoteService
}

func NewVoteHandler(voteService *service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

type StartVoteInput struct {
	Topic   string   `json:"topic" binding:"required"`
	Type    string   `json:"type" binding:"required,oneof=procedural substantive"`
	Options []string `json:"options" binding:"required,min=1,unique,dive,required"`
}

type CastVoteInput struct {
	UserID string `json:"userId" binding:"required"`
	Vote   string `json:"vote" binding:"required"`
}

func (h *VoteHandler) StartVote(c *gin.Context) {
	var input StartVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	err := h.voteService.StartVote(c.Request.Context(), input.Topic, models.VoteKind(input.Type), input.Options)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "vote started"})
}

func (h *VoteHandler) CastVote(c *gin.Context) {
	var input CastVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	if err := h.voteService.CastVote(c.Request.Context(), input.UserID, input.Vote); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "vote cast"})
}

func (h *VoteHandler) EndVote(c *gin.Context) {
	if err := h.voteService.EndVote(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "vote ended"})
}
