package controllers

import (
	"MoodLogGo/config"
	"MoodLogGo/models"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type MoodController struct{}

// SyncMoods 处理心情记录同步（离线客户端批量上传）
func (mc *MoodController) SyncMoods(c *gin.Context) {
	var moods []models.SyncMoodsRequest
	if err := c.ShouldBindJSON(&moods); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	// 获取用户ID
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	// 开启事务
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 更新或创建心情记录
	for _, moodReq := range moods {
		moodReq.ConvertToUTC()
		mood := models.MoodRecord{
			ID:           moodReq.ID,
			Mood:         moodReq.Mood,
			Description:  moodReq.Description,
			Activities:   moodReq.Activities,
			Energy:       moodReq.Energy,
			Stress:       moodReq.Stress,
			SleepHours:   moodReq.SleepHours,
			RecordDate:   moodReq.RecordDate,
			LastModified: moodReq.LastModified,
			UserID:       uid.(string),
		}

		// 检查是否存在同ID心情记录
		var existingMood models.MoodRecord
		if err := tx.Where("id = ?", mood.ID).First(&existingMood).Error; err == nil {
			// 如果存在，比较 lastModified 时间戳
			if mood.LastModified.After(existingMood.LastModified) {
				// 如果新数据更晚，更新心情记录
				mood.LastModified = time.Now()
				if err := tx.Save(&mood).Error; err != nil {
					tx.Rollback()
					c.JSON(http.StatusInternalServerError, gin.H{"error": "心情记录同步失败"})
					return
				}
			} else {
				// 如果旧数据更晚，忽略新数据
				continue
			}
		} else {
			// 如果不存在，创建新心情记录
			mood.LastModified = time.Now()
			if err := tx.Create(&mood).Error; err != nil {
				tx.Rollback()
				c.JSON(http.StatusInternalServerError, gin.H{"error": "心情记录同步失败"})
				return
			}
		}
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "心情记录同步失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "心情记录同步成功"})
}
