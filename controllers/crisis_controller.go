package controllers

import (
	"MoodLogGo/config"
	"MoodLogGo/models"
	"MoodLogGo/services"
	"MoodLogGo/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CrisisController 危机评估接口
type CrisisController struct {
	crisis *services.CrisisService
}

func NewCrisisController(crisis *services.CrisisService) *CrisisController {
	return &CrisisController{
		crisis: crisis,
	}
}

// 行为趋势与社交检查使用的历史记录条数
const crisisHistoryLimit = 10

// Assess 对上报的健康指标做危机评估
func (cc *CrisisController) Assess(c *gin.Context) {
	uid, exists := c.Get("uid")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户ID"})
		return
	}

	var req models.CrisisAssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// 查询最近的心情记录作为行为趋势依据，查不到也不阻塞评估
	var history []models.MoodRecord
	if err := config.DB.Where("user_id = ? AND status = 0", uid).
		Order("record_date desc").
		Limit(crisisHistoryLimit).
		Find(&history).Error; err != nil {
		config.Logger.Errorw("获取历史心情记录失败", "error", err, "uid", uid)
		history = nil
	}

	assessment := cc.crisis.Assess(req, history)

	// 落库最新评估结果，失败只记录日志
	record := models.CrisisAssessmentRecord{
		ID:          utils.GenerateID(),
		UserID:      uid.(string),
		OverallRisk: string(assessment.OverallRisk),
		Score:       assessment.AssessmentScore,
		Confidence:  assessment.Confidence,
		SignalCount: len(assessment.Signals),
		CreatedAt:   time.Now().UTC(),
	}
	if err := config.DB.Create(&record).Error; err != nil {
		config.Logger.Errorw("危机评估记录保存失败", "error", err, "uid", uid)
	}

	if assessment.OverallRisk == models.RiskCritical || assessment.OverallRisk == models.RiskHigh {
		config.Logger.Warnw("检测到高风险评估",
			"uid", uid,
			"risk", assessment.OverallRisk,
			"score", assessment.AssessmentScore,
			"signals", len(assessment.Signals),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"assessment": assessment,
	})
}
