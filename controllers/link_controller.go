package controllers

import (
	"MoodLogGo/config"
	"MoodLogGo/models"
	"MoodLogGo/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LinkController 心理医生与患者绑定码接口
type LinkController struct{}

// CreateLinkCode 为心理医生创建绑定码（内部接口）
func (lc *LinkController) CreateLinkCode(c *gin.Context) {
	psychologistID := c.Query("psychologist_id")
	if psychologistID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少心理医生ID"})
		return
	}

	// 校验目标用户确实是心理医生
	var psychologist models.User
	if err := config.DB.Where("id = ? AND role = ?", psychologistID, models.RolePsychologist).
		First(&psychologist).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "心理医生不存在"})
		return
	}

	code := models.GenerateLinkCode()

	// 确保生成的码未被占用
	var existing models.LinkCode
	for config.DB.Where("code = ?", code).First(&existing).Error == nil {
		code = models.GenerateLinkCode()
	}

	linkCode := models.LinkCode{
		ID:             utils.GenerateID(),
		Code:           code,
		PsychologistID: psychologistID,
		CreatedAt:      time.Now(),
	}

	// 保存到数据库
	if err := config.DB.Create(&linkCode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "创建绑定码失败"})
		return
	}

	config.Logger.Infow("创建绑定码",
		"psychologistID", psychologistID,
		"code", linkCode.Code,
	)

	c.JSON(http.StatusOK, gin.H{
		"code":      linkCode.Code,
		"createdAt": linkCode.CreatedAt,
	})
}

// RedeemLinkCode 患者兑换绑定码，与心理医生建立绑定
func (lc *LinkController) RedeemLinkCode(c *gin.Context) {
	var req models.RedeemLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求"})
		return
	}

	// 获取用户ID
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未认证用户"})
		return
	}

	// 查找绑定码
	var linkCode models.LinkCode
	if err := config.DB.Where("code = ?", req.Code).First(&linkCode).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "绑定码不存在"})
		return
	}

	// 检查是否已使用
	if linkCode.UsedAt != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "绑定码已使用"})
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", uid).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "用户不存在"})
		return
	}

	if user.PsychologistID != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "已绑定心理医生"})
		return
	}

	// 更新绑定码状态
	now := time.Now()
	linkCode.UsedAt = &now
	linkCode.PatientID = &user.ID

	// 开启事务
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// 绑定患者与心理医生
	if err := tx.Model(&user).Update("psychologist_id", linkCode.PsychologistID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "绑定失败"})
		return
	}

	// 更新绑定码状态
	if err := tx.Save(&linkCode).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "更新绑定码状态失败"})
		return
	}

	// 提交事务
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "绑定失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "绑定成功",
		"psychologistId": linkCode.PsychologistID,
	})
}
