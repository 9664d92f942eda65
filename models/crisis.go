package models

import "time"

// CrisisSignalType 危机信号类型
type CrisisSignalType string

const (
	SignalMood       CrisisSignalType = "mood"
	SignalBehavioral CrisisSignalType = "behavioral"
	SignalSocial     CrisisSignalType = "social"
	SignalPhysical   CrisisSignalType = "physical"
	SignalVerbal     CrisisSignalType = "verbal"
)

// CrisisSeverity 危机信号严重程度，按 low < medium < high < critical 排序
type CrisisSeverity string

const (
	SeverityLow      CrisisSeverity = "low"
	SeverityMedium   CrisisSeverity = "medium"
	SeverityHigh     CrisisSeverity = "high"
	SeverityCritical CrisisSeverity = "critical"
)

// Score 严重程度对应的评估分值
func (s CrisisSeverity) Score() int {
	switch s {
	case SeverityCritical:
		return 10
	case SeverityHigh:
		return 7
	case SeverityMedium:
		return 4
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// CrisisRiskLevel 整体风险等级
type CrisisRiskLevel string

const (
	RiskLow      CrisisRiskLevel = "low"
	RiskMedium   CrisisRiskLevel = "medium"
	RiskHigh     CrisisRiskLevel = "high"
	RiskCritical CrisisRiskLevel = "critical"
)

// CrisisSignal 单条危机信号，生成后不可变
type CrisisSignal struct {
	SignalType           CrisisSignalType       `json:"signalType"`
	Severity             CrisisSeverity         `json:"severity"`
	Description          string                 `json:"description"`
	DetectedAt           time.Time              `json:"detectedAt"`
	InterventionRequired bool                   `json:"interventionRequired"`
	Metadata             map[string]interface{} `json:"metadata,omitempty"`
}

// CrisisAssessment 危机评估结果，聚合全部信号
type CrisisAssessment struct {
	Signals          []CrisisSignal  `json:"signals"`
	OverallRisk      CrisisRiskLevel `json:"overallRisk"`
	AssessmentScore  int             `json:"assessmentScore"`
	Confidence       int             `json:"confidence"` // 0-100
	Recommendations  []string        `json:"recommendations"`
	ImmediateActions []string        `json:"immediateActions"`
	AssessedAt       time.Time       `json:"assessedAt"`
}

// CrisisAssessmentRecord 持久化的危机评估记录
type CrisisAssessmentRecord struct {
	ID          string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID      string    `gorm:"type:varchar(50);index" json:"user_id"`
	OverallRisk string    `gorm:"type:varchar(20)" json:"overallRisk"`
	Score       int       `json:"score"`
	Confidence  int       `json:"confidence"`
	SignalCount int       `json:"signalCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (CrisisAssessmentRecord) TableName() string {
	return "crisis_assessments"
}
