package models

import "time"

// DiaryStepResponse 流程步骤响应：返回新的条目快照和当前步骤
type DiaryStepResponse struct {
	Entry    DiaryEntry `json:"entry"`
	Step     DiaryStep  `json:"step"`
	Question string     `json:"question,omitempty"` // 当前追问（处于 fallback_questions 时）
	Message  string     `json:"message,omitempty"`  // 鼓励语等附加提示
	RecordID string     `json:"recordId,omitempty"` // 完成后持久化记录的ID
}

// SyncUpdatesResponse 同步更新响应结构体
type SyncUpdatesResponse struct {
	Moods []MoodResponse `json:"moods"`
}

// MoodResponse 心情记录响应结构体
type MoodResponse struct {
	ID           string    `json:"id"`
	Mood         int       `json:"mood"`
	Description  string    `json:"description"`
	Activities   string    `json:"activities"`
	Energy       int       `json:"energy"`
	Stress       int       `json:"stress"`
	SleepHours   float64   `json:"sleepHours"`
	Emotion      string    `json:"emotion"`
	Sentiment    string    `json:"sentiment"`
	RecordDate   time.Time `json:"recordDate"`
	LastModified time.Time `json:"lastModified"`
}

// UserResponse 用户响应结构体
type UserResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Avatar         string  `json:"avatar"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	PsychologistID *string `json:"psychologistId,omitempty"`
}
