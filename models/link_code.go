package models

import (
	"math/rand"
	"time"
)

// LinkCode 心理医生与患者的绑定码
type LinkCode struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	Code           string     `gorm:"type:varchar(4);uniqueIndex" json:"code"`
	PsychologistID string     `gorm:"type:varchar(50);index" json:"psychologist_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UsedAt         *time.Time `json:"used_at"`
	PatientID      *string    `gorm:"index" json:"patient_id"`
}

// GenerateLinkCode 生成4位随机绑定码
func GenerateLinkCode() string {
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // 去掉容易混淆的字符
	const codeLength = 4
	rand.Seed(time.Now().UnixNano())
	code := make([]byte, codeLength)
	for i := range code {
		code[i] = charset[rand.Intn(len(charset))]
	}
	return string(code)
}
