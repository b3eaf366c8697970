package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"digimun_backend/internal/api/handlers"
	"digimun_backend/internal/service"
)

func SetupRoutes(r *gin.Engine, services *service.Services) {
	// 初始化 handlers
	sessionHandler := handlers.NewSessionHandler(services.Session)
	delegateHandler := handlers.NewDelegateHandler(services.Delegate)
	voteHandler := handlers.NewVoteHandler(services.Vote)

	// API 路由群組
	api := r.Group("/api")

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	// 基本的健康檢查
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	session := api.Group("/session")
	{
		// 會議狀態
		session.GET("/current", sessionHandler.GetSession)     // 完整狀態快照
		session.PATCH("/current", sessionHandler.UpdateSession) // 主席更新狀態 / 設定
		session.PATCH("/speakers", sessionHandler.UpdateSpeakers)

		// 代表
		session.POST("/join", delegateHandler.Join)
		session.GET("/delegates/:userId", delegateHandler.GetDelegate)
		session.POST("/mark", delegateHandler.Mark)

		// 聊天與紙條
		session.POST("/chat", sessionHandler.SendMessage)
		session.POST("/chits", sessionHandler.SendChit)

		// 投票
		vote := session.Group("/vote")
		{
			vote.POST("/start", voteHandler.StartVote)
			vote.POST("/cast", voteHandler.CastVote)
			vote.POST("/end", voteHandler.EndVote)
		}
	}
}
