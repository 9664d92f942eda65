package models

import "time"

// DiaryStep 日记流程当前步骤
type DiaryStep string

const (
	StepDiary             DiaryStep = "diary"
	StepMoodSelection     DiaryStep = "mood_selection"
	StepAIAnalysis        DiaryStep = "ai_analysis"
	StepFallbackQuestions DiaryStep = "fallback_questions"
	StepComplete          DiaryStep = "complete"
)

// Sentiment 情感倾向
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// AIAnalysis 日记文本的情感分析结果
type AIAnalysis struct {
	Emotion     string    `json:"emotion"`
	Confidence  int       `json:"confidence"` // 0-100
	Sentiment   Sentiment `json:"sentiment"`
	CanConclude bool      `json:"canConclude"`
}

// DiaryEntry 进行中的日记条目快照（完成前不持久化）
// 每个流程步骤都基于上一个快照生成新快照，FinalMood 一旦写入不再修改
type DiaryEntry struct {
	Text                 string      `json:"text"`
	Timestamp            time.Time   `json:"timestamp"`
	HasExplicitMood      bool        `json:"hasExplicitMood"`
	ExplicitMood         int         `json:"explicitMood,omitempty"` // 1-5，仅在 HasExplicitMood 时有效
	AIAnalysis           *AIAnalysis `json:"aiAnalysis,omitempty"`
	FallbackQuestions    []string    `json:"fallbackQuestions,omitempty"`
	CurrentQuestionIndex *int        `json:"currentQuestionIndex,omitempty"`
	UserResponses        []string    `json:"userResponses,omitempty"`
	FinalMood            int         `json:"finalMood,omitempty"` // 1-5，完成后不可变
	IsComplete           bool        `json:"isComplete"`
}
