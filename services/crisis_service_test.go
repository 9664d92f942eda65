package services_test

import (
	"testing"

	"MoodLogGo/models"
	"MoodLogGo/services"
)

func TestAssessNoSignals(t *testing.T) {
	svc := services.NewCrisisService()

	assessment := svc.Assess(models.CrisisAssessRequest{
		Mood:       4,
		Energy:     7,
		SleepHours: 8,
	}, nil)

	if len(assessment.Signals) != 0 {
		t.Errorf("signals = %d, want 0", len(assessment.Signals))
	}
	if assessment.OverallRisk != models.RiskLow {
		t.Errorf("OverallRisk = %s, want low", assessment.OverallRisk)
	}
	if assessment.AssessmentScore != 0 {
		t.Errorf("AssessmentScore = %d, want 0", assessment.AssessmentScore)
	}
	if assessment.Confidence != 0 {
		t.Errorf("Confidence = %d, want 0", assessment.Confidence)
	}
	if len(assessment.Recommendations) == 0 {
		t.Error("low risk still carries base recommendations")
	}
	if len(assessment.ImmediateActions) != 0 {
		t.Errorf("ImmediateActions = %v, want empty", assessment.ImmediateActions)
	}
}

func TestCriticalSignalForcesCriticalRisk(t *testing.T) {
	svc := services.NewCrisisService()

	// 单条 critical 信号（分值10 < 20）也必须判定为 critical
	assessment := svc.Assess(models.CrisisAssessRequest{
		Mood:  3,
		Notes: "últimamente siento que no quiero vivir",
	}, nil)

	if len(assessment.Signals) != 1 {
		t.Fatalf("signals = %d, want 1", len(assessment.Signals))
	}
	sig := assessment.Signals[0]
	if sig.Severity != models.SeverityCritical {
		t.Errorf("Severity = %s, want critical", sig.Severity)
	}
	if sig.SignalType != models.SignalVerbal {
		t.Errorf("SignalType = %s, want verbal", sig.SignalType)
	}
	if !sig.InterventionRequired {
		t.Error("InterventionRequired = false, want true")
	}
	if assessment.OverallRisk != models.RiskCritical {
		t.Errorf("OverallRisk = %s, want critical", assessment.OverallRisk)
	}
	if assessment.AssessmentScore != 10 {
		t.Errorf("AssessmentScore = %d, want 10", assessment.AssessmentScore)
	}
	// 10*1信号 + 15*1critical
	if assessment.Confidence != 25 {
		t.Errorf("Confidence = %d, want 25", assessment.Confidence)
	}
	if len(assessment.ImmediateActions) == 0 {
		t.Error("critical risk must carry immediate actions")
	}
}

func TestScoreAggregationMediumRisk(t *testing.T) {
	svc := services.NewCrisisService()

	// mood=2 (medium, 4分) + 睡眠不足5小时 (medium, 4分) = 8分 → medium
	assessment := svc.Assess(models.CrisisAssessRequest{
		Mood:       2,
		SleepHours: 4.5,
	}, nil)

	if len(assessment.Signals) != 2 {
		t.Fatalf("signals = %d, want 2", len(assessment.Signals))
	}
	if assessment.AssessmentScore != 8 {
		t.Errorf("AssessmentScore = %d, want 8", assessment.AssessmentScore)
	}
	if assessment.OverallRisk != models.RiskMedium {
		t.Errorf("OverallRisk = %s, want medium", assessment.OverallRisk)
	}
}

func TestMoodExtremeHighSignal(t *testing.T) {
	svc := services.NewCrisisService()

	assessment := svc.Assess(models.CrisisAssessRequest{Mood: 1}, nil)

	if len(assessment.Signals) != 1 {
		t.Fatalf("signals = %d, want 1", len(assessment.Signals))
	}
	if assessment.Signals[0].Severity != models.SeverityHigh {
		t.Errorf("Severity = %s, want high", assessment.Signals[0].Severity)
	}
	if assessment.OverallRisk != models.RiskHigh {
		t.Errorf("OverallRisk = %s, want high", assessment.OverallRisk)
	}
}

func TestBehavioralTrendRequiresHistory(t *testing.T) {
	svc := services.NewCrisisService()

	shortHistory := []models.MoodRecord{{Mood: 1}, {Mood: 1}}
	assessment := svc.Assess(models.CrisisAssessRequest{Mood: 3}, shortHistory)
	if len(assessment.Signals) != 0 {
		t.Errorf("signals with 2 history points = %d, want 0", len(assessment.Signals))
	}

	// 最近3条全部 <=2 → behavioral high
	lowHistory := []models.MoodRecord{{Mood: 2}, {Mood: 1}, {Mood: 2}}
	assessment = svc.Assess(models.CrisisAssessRequest{Mood: 3}, lowHistory)
	if len(assessment.Signals) != 1 {
		t.Fatalf("signals = %d, want 1", len(assessment.Signals))
	}
	if assessment.Signals[0].SignalType != models.SignalBehavioral {
		t.Errorf("SignalType = %s, want behavioral", assessment.Signals[0].SignalType)
	}
	if assessment.Signals[0].Severity != models.SeverityHigh {
		t.Errorf("Severity = %s, want high", assessment.Signals[0].Severity)
	}
}

func TestDecliningTrendSignal(t *testing.T) {
	svc := services.NewCrisisService()

	// 最新在前：2 < 3 < 4 为持续下滑
	history := []models.MoodRecord{{Mood: 2}, {Mood: 3}, {Mood: 4}}
	assessment := svc.Assess(models.CrisisAssessRequest{Mood: 3}, history)

	if len(assessment.Signals) != 1 {
		t.Fatalf("signals = %d, want 1", len(assessment.Signals))
	}
	if assessment.Signals[0].Severity != models.SeverityMedium {
		t.Errorf("Severity = %s, want medium", assessment.Signals[0].Severity)
	}
}

func TestHistoryBoostsConfidence(t *testing.T) {
	svc := services.NewCrisisService()

	history := []models.MoodRecord{{Mood: 4}, {Mood: 4}, {Mood: 4}, {Mood: 4}, {Mood: 4}}
	assessment := svc.Assess(models.CrisisAssessRequest{Mood: 1}, history)

	// 10*1信号 + 20历史加成
	if assessment.Confidence != 30 {
		t.Errorf("Confidence = %d, want 30", assessment.Confidence)
	}
}

func TestSocialIsolationSignal(t *testing.T) {
	svc := services.NewCrisisService()

	assessment := svc.Assess(models.CrisisAssessRequest{
		Mood:  2,
		Notes: "me siento aislada, sin ganas de salir",
	}, nil)

	var social *models.CrisisSignal
	for i := range assessment.Signals {
		if assessment.Signals[i].SignalType == models.SignalSocial {
			social = &assessment.Signals[i]
		}
	}
	if social == nil {
		t.Fatal("no social signal emitted")
	}
	// 情绪低落时孤立信号升级为 high
	if social.Severity != models.SeverityHigh {
		t.Errorf("Severity = %s, want high", social.Severity)
	}
}

func TestSleepEnergyDeterioration(t *testing.T) {
	svc := services.NewCrisisService()

	assessment := svc.Assess(models.CrisisAssessRequest{
		Mood:       3,
		Energy:     2,
		SleepHours: 3,
	}, nil)

	if len(assessment.Signals) != 1 {
		t.Fatalf("signals = %d, want 1", len(assessment.Signals))
	}
	sig := assessment.Signals[0]
	if sig.SignalType != models.SignalPhysical || sig.Severity != models.SeverityHigh {
		t.Errorf("got %s/%s, want physical/high", sig.SignalType, sig.Severity)
	}

	// 未填写睡眠时不产生体征信号
	assessment = svc.Assess(models.CrisisAssessRequest{Mood: 3, Energy: 2}, nil)
	if len(assessment.Signals) != 0 {
		t.Errorf("signals without sleep data = %d, want 0", len(assessment.Signals))
	}
}

func TestSeverityScores(t *testing.T) {
	tests := []struct {
		severity models.CrisisSeverity
		want     int
	}{
		{models.SeverityCritical, 10},
		{models.SeverityHigh, 7},
		{models.SeverityMedium, 4},
		{models.SeverityLow, 1},
		{models.CrisisSeverity("unknown"), 0},
	}
	for _, tt := range tests {
		if got := tt.severity.Score(); got != tt.want {
			t.Errorf("%s.Score() = %d, want %d", tt.severity, got, tt.want)
		}
	}
}
