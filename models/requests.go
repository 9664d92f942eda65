package models

import (
	"fmt"
	"time"
)

// WellnessMetrics 结构化健康指标，随日记完成或危机评估一起上报
type WellnessMetrics struct {
	Energy     int      `json:"energy"`     // 1-10，0 表示未填写
	Stress     int      `json:"stress"`     // 1-10，0 表示未填写
	SleepHours float64  `json:"sleepHours"` // 0 表示未填写
	Activities []string `json:"activities"`
	Emotions   []string `json:"emotions"`
}

// StartDiaryRequest 开始日记流程请求
type StartDiaryRequest struct {
	Text string `json:"text" binding:"required,max=500"`
}

// SelectMoodRequest 显式选择心情请求
type SelectMoodRequest struct {
	Entry   DiaryEntry       `json:"entry" binding:"required"`
	Mood    int              `json:"mood" binding:"required,min=1,max=5"`
	Metrics *WellnessMetrics `json:"metrics"`
}

// AnalyzeDiaryRequest 跳过选择、请求AI分析
type AnalyzeDiaryRequest struct {
	Entry DiaryEntry `json:"entry" binding:"required"`
}

// AcceptAnalysisRequest 接受AI分析结论
type AcceptAnalysisRequest struct {
	Entry   DiaryEntry       `json:"entry" binding:"required"`
	Metrics *WellnessMetrics `json:"metrics"`
}

// RejectAnalysisRequest 拒绝AI分析结论，进入追问环节
type RejectAnalysisRequest struct {
	Entry DiaryEntry `json:"entry" binding:"required"`
}

// AnswerQuestionRequest 回答当前追问请求
type AnswerQuestionRequest struct {
	Entry   DiaryEntry       `json:"entry" binding:"required"`
	Answer  string           `json:"answer" binding:"required"`
	Metrics *WellnessMetrics `json:"metrics"`
}

// DiscardCheckRequest 放弃条目前的确认检查
// 快照允许为全零值，此时判定为不可放弃
type DiscardCheckRequest struct {
	Entry DiaryEntry `json:"entry"`
}

// CrisisAssessRequest 危机评估请求
type CrisisAssessRequest struct {
	Mood       int      `json:"mood" binding:"required,min=1,max=5"`
	Energy     int      `json:"energy"`
	Stress     int      `json:"stress"`
	SleepHours float64  `json:"sleepHours"`
	Notes      string   `json:"notes"`
	Activities []string `json:"activities"`
	Emotions   []string `json:"emotions"`
}

// Validate 校验危机评估请求中的可选数值范围
func (r *CrisisAssessRequest) Validate() error {
	if r.Energy < 0 || r.Energy > 10 {
		return fmt.Errorf("invalid energy, must be between 0 and 10")
	}
	if r.Stress < 0 || r.Stress > 10 {
		return fmt.Errorf("invalid stress, must be between 0 and 10")
	}
	if r.SleepHours < 0 || r.SleepHours > 24 {
		return fmt.Errorf("invalid sleepHours, must be between 0 and 24")
	}
	return nil
}

// SyncMoodsRequest 心情记录同步请求结构体
type SyncMoodsRequest struct {
	ID           string    `json:"id" binding:"required"`
	Mood         int       `json:"mood" binding:"required,min=1,max=5"`
	Description  string    `json:"description"`
	Activities   string    `json:"activities"`
	Energy       int       `json:"energy"`
	Stress       int       `json:"stress"`
	SleepHours   float64   `json:"sleepHours"`
	RecordDate   time.Time `json:"recordDate"`
	LastModified time.Time `json:"lastModified"`
}

// 添加时区转换方法
func (r *SyncMoodsRequest) ConvertToUTC() {
	r.RecordDate = r.RecordDate.UTC()
	r.LastModified = r.LastModified.UTC()
}

// RedeemLinkRequest 患者兑换绑定码请求
type RedeemLinkRequest struct {
	Code string `json:"code" binding:"required,len=4"`
}

// ChatRequest 人格对话请求
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
	Persona string `json:"persona"` // serena, mateo
}
