package controllers

import (
	"MoodLogGo/config"
	"MoodLogGo/models"
	"MoodLogGo/services"
	"MoodLogGo/utils"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// DiaryController 日记流程控制器的HTTP入口
// 服务端不保存进行中的条目：客户端每次提交完整快照，服务端应用一步后返回新快照
type DiaryController struct {
	flow *services.MoodFlowService
}

func NewDiaryController(flow *services.MoodFlowService) *DiaryController {
	return &DiaryController{
		flow: flow,
	}
}

// StartEntry 提交日记文本，创建新条目
func (dc *DiaryController) StartEntry(c *gin.Context) {
	var req models.StartDiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := dc.flow.StartEntry(c.Request.Context(), req.Text)
	c.JSON(http.StatusOK, models.DiaryStepResponse{
		Entry: entry,
		Step:  dc.flow.GetCurrentStep(entry),
	})
}

// SelectMood 显式选择心情，完成条目并持久化
func (dc *DiaryController) SelectMood(c *gin.Context) {
	var req models.SelectMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := dc.flow.SelectMood(req.Entry, req.Mood)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recordID, err := dc.persistCompleted(c, entry, req.Metrics)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "心情记录保存失败"})
		return
	}

	c.JSON(http.StatusOK, models.DiaryStepResponse{
		Entry:    entry,
		Step:     dc.flow.GetCurrentStep(entry),
		RecordID: recordID,
	})
}

// Analyze 跳过选择器，调用分类器
func (dc *DiaryController) Analyze(c *gin.Context) {
	var req models.AnalyzeDiaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := dc.flow.SkipToAnalysis(c.Request.Context(), req.Entry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.DiaryStepResponse{
		Entry: entry,
		Step:  dc.flow.GetCurrentStep(entry),
	})
}

// AcceptAnalysis 接受AI结论，完成条目并持久化
func (dc *DiaryController) AcceptAnalysis(c *gin.Context) {
	var req models.AcceptAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := dc.flow.AcceptAnalysis(req.Entry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recordID, err := dc.persistCompleted(c, entry, req.Metrics)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "心情记录保存失败"})
		return
	}

	c.JSON(http.StatusOK, models.DiaryStepResponse{
		Entry:    entry,
		Step:     dc.flow.GetCurrentStep(entry),
		RecordID: recordID,
	})
}

// RejectAnalysis 拒绝AI结论，生成追问并返回鼓励语
func (dc *DiaryController) RejectAnalysis(c *gin.Context) {
	var req models.RejectAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, message, err := dc.flow.RejectAnalysis(req.Entry)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.DiaryStepResponse{
		Entry:    entry,
		Step:     dc.flow.GetCurrentStep(entry),
		Question: dc.flow.CurrentQuestion(entry),
		Message:  message,
	})
}

// AnswerQuestion 回答当前追问；最后一题回答后条目可能完成并持久化
func (dc *DiaryController) AnswerQuestion(c *gin.Context) {
	var req models.AnswerQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := dc.flow.AnswerQuestion(req.Entry, req.Answer)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp := models.DiaryStepResponse{
		Entry:    entry,
		Step:     dc.flow.GetCurrentStep(entry),
		Question: dc.flow.CurrentQuestion(entry),
	}

	if entry.IsComplete {
		recordID, err := dc.persistCompleted(c, entry, req.Metrics)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "心情记录保存失败"})
			return
		}
		resp.RecordID = recordID
	} else if resp.Step == models.StepFallbackQuestions && resp.Question == "" {
		// 所有追问回答完但一个数字都没解析出来，条目保持未完成
		resp.Message = "No pudimos calcular tu estado de ánimo, intenta responder con un número del 1 al 5."
	}

	c.JSON(http.StatusOK, resp)
}

// DiscardCheck 判断条目是否可放弃
func (dc *DiaryController) DiscardCheck(c *gin.Context) {
	var req models.DiscardCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shouldDiscard": dc.flow.ShouldDiscardEntry(req.Entry),
	})
}

// persistCompleted 将完成的条目落库为 MoodRecord
func (dc *DiaryController) persistCompleted(c *gin.Context, entry models.DiaryEntry, metrics *models.WellnessMetrics) (string, error) {
	uid := c.GetString("uid")
	if uid == "" {
		return "", fmt.Errorf("未获取到用户ID")
	}

	record := models.MoodRecord{
		ID:                    utils.GenerateID(),
		UserID:                uid,
		Mood:                  entry.FinalMood,
		Description:           entry.Text,
		HasExplicitMood:       entry.HasExplicitMood,
		AIAnalysisUsed:        entry.AIAnalysis != nil,
		FallbackQuestionsUsed: len(entry.FallbackQuestions) > 0,
		RecordDate:            entry.Timestamp,
		LastModified:          time.Now().UTC(),
	}
	if entry.AIAnalysis != nil {
		record.Emotion = entry.AIAnalysis.Emotion
		record.Sentiment = string(entry.AIAnalysis.Sentiment)
		record.Confidence = entry.AIAnalysis.Confidence
	}
	if metrics != nil {
		record.Energy = metrics.Energy
		record.Stress = metrics.Stress
		record.SleepHours = metrics.SleepHours
		record.Activities = strings.Join(metrics.Activities, ",")
	}

	if err := config.DB.Create(&record).Error; err != nil {
		config.Logger.Errorw("心情记录保存失败",
			"error", err,
			"uid", uid,
		)
		return "", err
	}

	config.Logger.Infow("心情记录已保存",
		"recordID", record.ID,
		"uid", uid,
		"mood", record.Mood,
	)
	return record.ID, nil
}
