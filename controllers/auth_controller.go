package controllers

import (
	"MoodLogGo/config"
	"MoodLogGo/models"
	"MoodLogGo/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthController 认证控制器
type AuthController struct{}

// GuestLoginRequest 访客登录请求结构体
type GuestLoginRequest struct {
	Username string `json:"username"`
}

// GuestLogin 访客登录，创建用户并签发JWT
// 第三方登录由托管认证服务负责，不在本服务内实现
func (ac *AuthController) GuestLogin(c *gin.Context) {
	// 请求体可为空，用户名可选
	var req GuestLoginRequest
	_ = c.ShouldBindJSON(&req)

	username := req.Username
	if username == "" {
		username = "invitado"
	}

	user := models.User{
		ID:        utils.GenerateID(),
		Username:  username,
		Provider:  "guest",
		Role:      models.RolePatient,
		CreatedAt: time.Now(),
	}

	if err := config.DB.Create(&user).Error; err != nil {
		config.Logger.Errorw("用户创建失败",
			"error", err,
			"provider", "guest",
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "用户创建失败"})
		return
	}

	// 生成JWT
	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "令牌生成失败"})
		return
	}

	config.Logger.Infow("访客用户创建成功",
		"userID", user.ID,
		"username", user.Username,
	)

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"role":     user.Role,
		},
	})
}
