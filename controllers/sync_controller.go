package controllers

import (
	"MoodLogGo/config"
	"MoodLogGo/models"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type SyncController struct{}

// GetUpdates 获取自上次同步以来的更新
func (sc *SyncController) GetUpdates(c *gin.Context) {
	// 获取用户ID
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	// 获取上次同步时间
	lastSyncDateStr := c.Query("lastSyncDate")
	var lastSyncDate time.Time
	var err error

	if lastSyncDateStr != "" {
		lastSyncDate, err = time.Parse(time.RFC3339, lastSyncDateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的时间格式"})
			return
		}
	} else {
		// 如果没有提供上次同步时间，则使用很久以前的时间
		lastSyncDate = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}

	// 计算一个月前的时间
	oneMonthAgo := time.Now().AddDate(0, -1, 0)

	// 查询心情记录更新
	var moods []models.MoodRecord
	if err := config.DB.Where("user_id = ? AND last_modified > ? AND last_modified > ? AND status = 0",
		uid, lastSyncDate, oneMonthAgo).Find(&moods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取心情记录更新失败"})
		return
	}

	moodResponses := make([]models.MoodResponse, len(moods))
	for i, mood := range moods {
		moodResponses[i] = models.MoodResponse{
			ID:           mood.ID,
			Mood:         mood.Mood,
			Description:  mood.Description,
			Activities:   mood.Activities,
			Energy:       mood.Energy,
			Stress:       mood.Stress,
			SleepHours:   mood.SleepHours,
			Emotion:      mood.Emotion,
			Sentiment:    mood.Sentiment,
			RecordDate:   mood.RecordDate,
			LastModified: mood.LastModified,
		}
	}

	// 返回响应
	c.JSON(http.StatusOK, models.SyncUpdatesResponse{
		Moods: moodResponses,
	})
}
