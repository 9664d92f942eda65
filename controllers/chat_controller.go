package controllers

import (
	"MoodLogGo/config"
	"MoodLogGo/models"
	"MoodLogGo/services"
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ChatController 医生人格对话接口
type ChatController struct {
	aiService *services.AIService
	wg        sync.WaitGroup // 摘要协程计数
}

func NewChatController(aiService *services.AIService) *ChatController {
	return &ChatController{
		aiService: aiService,
	}
}

// 会话摘要在Redis中的保存时长
const summaryTTL = 7 * 24 * time.Hour

// SendMessage handles chat requests from clients
func (c *ChatController) SendMessage(ctx *gin.Context) {
	// 获取用户信息
	uid, exists := ctx.Get("uid")
	if !exists {
		config.Logger.Errorw("未获取到用户ID")
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	var chatRequest models.ChatRequest
	if err := ctx.ShouldBindJSON(&chatRequest); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	var persona services.AIPersona
	switch chatRequest.Persona {
	case "mateo":
		persona = services.MateoPersona
	default:
		persona = services.SerenaPersona
	}

	// 生成会话 ID
	sessionID := fmt.Sprintf("%s_%s", uid, persona)

	// 从 Redis 中获取对话历史总结，取不到按空历史处理
	historySummary, err := config.RedisClient.Get(ctx, sessionID).Result()
	if err != nil {
		config.Logger.Debugw("未获取到对话历史总结",
			"error", err,
			"sessionID", sessionID,
			"uid", uid,
		)
	}

	// 设置流式响应头
	ctx.Header("Content-Type", "text/event-stream")
	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("Access-Control-Allow-Origin", "*")
	ctx.Header("X-Accel-Buffering", "no") // 禁用 Nginx 缓冲

	// 使用请求上下文，客户端断开时会被取消，生成协程随之退出
	stream, err := c.aiService.GeneratePersonaResponse(
		ctx.Request.Context(),
		persona,
		chatRequest.Message,
		historySummary,
		uid.(string),
	)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process chat: " + err.Error(),
		})
		return
	}

	// 发送流式响应
	var fullResponse strings.Builder
	for chunk := range stream {
		_, err := ctx.Writer.Write([]byte(chunk))
		if err != nil {
			log.Printf("Write error: %v", err)
			return
		}
		ctx.Writer.Flush() // 确保每个块都被立即发送
		fullResponse.WriteString(chunk)
	}

	// 在协程中更新会话摘要
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		sumCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		dialogue := fmt.Sprintf("Usuario: %s\nDoctor: %s", chatRequest.Message, fullResponse.String())
		summary, err := c.aiService.GenerateSummary(sumCtx, dialogue, historySummary)
		if err != nil {
			config.Logger.Errorw("生成会话摘要失败",
				"error", err,
				"sessionID", sessionID,
			)
			return
		}

		if err := config.RedisClient.Set(sumCtx, sessionID, summary, summaryTTL).Err(); err != nil {
			config.Logger.Errorw("保存会话摘要失败",
				"error", err,
				"sessionID", sessionID,
			)
		}
	}()
}

// 添加 Wait 方法用于优雅关闭
func (c *ChatController) Wait() {
	c.wg.Wait()
}
