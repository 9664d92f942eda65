package models

import "time"

// MoodRecord 已完成的心情记录模型
type MoodRecord struct {
	ID                    string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID                string    `gorm:"type:varchar(50);index" json:"user_id"`
	Mood                  int       `json:"mood"` // 1-5
	Description           string    `gorm:"type:text" json:"description"`
	Activities            string    `gorm:"type:text" json:"activities"` // 逗号分隔的活动标签
	Energy                int       `json:"energy"`                      // 1-10
	Stress                int       `json:"stress"`                      // 1-10
	SleepHours            float64   `json:"sleepHours"`
	Emotion               string    `gorm:"type:varchar(50)" json:"emotion"`
	Sentiment             string    `gorm:"type:varchar(20)" json:"sentiment"`
	Confidence            int       `json:"confidence"`
	HasExplicitMood       bool      `json:"hasExplicitMood"`
	AIAnalysisUsed        bool      `json:"aiAnalysisUsed"`
	FallbackQuestionsUsed bool      `json:"fallbackQuestionsUsed"`
	Status                int       `gorm:"type:int" json:"status"` // 0: 正常 1: 删除
	RecordDate            time.Time `json:"recordDate"`
	LastModified          time.Time `json:"lastModified"`
}
