package models

import (
	"time"
)

// 用户角色
const (
	RolePatient      = "patient"
	RolePsychologist = "psychologist"
)

// User 用户模型
type User struct {
	ID             string     `gorm:"type:varchar(50);primaryKey" json:"id"`
	Username       string     `gorm:"type:varchar(100)" json:"username"`
	Email          string     `gorm:"type:varchar(100)" json:"email"`
	CreatedAt      time.Time  `json:"createdAt"`
	Avatar         string     `gorm:"type:varchar(255)" json:"avatar"`
	LastLogin      *time.Time `json:"last_login,omitempty"`
	Provider       string     `gorm:"type:varchar(50)" json:"provider"`
	Role           string     `gorm:"type:varchar(20);default:patient" json:"role"`
	PsychologistID *string    `gorm:"type:varchar(50);index" json:"psychologistId,omitempty"` // 已绑定的心理医生
	IsTestUser     bool       `gorm:"default:false" json:"isTestUser"`
}

func (u *User) GetDisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
