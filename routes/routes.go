package routes

import (
	"MoodLogGo/controllers"
	"MoodLogGo/middleware"
	"MoodLogGo/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册全部路由，返回 ChatController 供优雅关闭时等待后台任务
func RegisterRoutes(r *gin.Engine, aiService *services.AIService, flowService *services.MoodFlowService, crisisService *services.CrisisService) *controllers.ChatController {
	authController := controllers.AuthController{}
	chatController := controllers.NewChatController(aiService)
	diaryController := controllers.NewDiaryController(flowService)
	crisisController := controllers.NewCrisisController(crisisService)
	moodController := controllers.MoodController{}
	syncController := controllers.SyncController{}
	userController := controllers.UserController{}
	linkController := controllers.LinkController{}

	// 公开路由（无需认证）
	public := r.Group("/api/v1")
	{
		public.POST("/auth/guest", authController.GuestLogin)
	}

	// 需要认证的路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware()) // 应用认证中间件
	{
		// 日记流程接口
		private.POST("/diary/start", diaryController.StartEntry)
		private.POST("/diary/mood", diaryController.SelectMood)
		private.POST("/diary/analyze", diaryController.Analyze)
		private.POST("/diary/accept", diaryController.AcceptAnalysis)
		private.POST("/diary/reject", diaryController.RejectAnalysis)
		private.POST("/diary/answer", diaryController.AnswerQuestion)
		private.POST("/diary/discard", diaryController.DiscardCheck)

		// 危机评估接口
		private.POST("/crisis/assess", crisisController.Assess)

		// Chat 相关接口
		private.POST("/chat", chatController.SendMessage)

		// 同步接口
		private.POST("/sync/moods", moodController.SyncMoods)
		private.GET("/sync/updates", syncController.GetUpdates)

		// 用户与绑定接口
		private.GET("/user", userController.GetUser)
		private.POST("/link/redeem", linkController.RedeemLinkCode)
	}

	// 内部路由组（仅限服务器内部调用）
	internal := r.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware()) // 添加内部认证中间件
	{
		internal.GET("/link/generate", linkController.CreateLinkCode)
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	return chatController
}
