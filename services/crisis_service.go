package services

import (
	"strings"
	"time"

	"MoodLogGo/models"
)

// crisisPattern 文本危机模式：固定关键词表 + 固定严重程度
type crisisPattern struct {
	name     string
	severity models.CrisisSeverity
	keywords []string
}

// 五类命名危机模式（西班牙语关键词）
var crisisPatterns = []crisisPattern{
	{
		name:     "ideación suicida",
		severity: models.SeverityCritical,
		keywords: []string{"suicid", "quitarme la vida", "no quiero vivir", "acabar con todo", "desaparecer para siempre"},
	},
	{
		name:     "autolesión",
		severity: models.SeverityCritical,
		keywords: []string{"cortarme", "hacerme daño", "lastimarme", "autolesion", "autolesión"},
	},
	{
		name:     "ataque de pánico",
		severity: models.SeverityHigh,
		keywords: []string{"ataque de pánico", "no puedo respirar", "corazón acelerado", "me ahogo", "pánico"},
	},
	{
		name:     "espiral depresiva",
		severity: models.SeverityHigh,
		keywords: []string{"sin esperanza", "nada tiene sentido", "no valgo nada", "todo está mal", "vacío total"},
	},
	{
		name:     "abuso de sustancias",
		severity: models.SeverityMedium,
		keywords: []string{"beber para olvidar", "emborracharme", "drogas", "pastillas para dormir todo"},
	},
}

// 孤立相关关键词（社交信号）
var isolationKeywords = []string{"solo", "sola", "aislado", "aislada", "nadie me entiende", "sin amigos", "no quiero ver a nadie"}

// 按风险等级固定的建议与即时行动清单
var riskRecommendations = map[models.CrisisRiskLevel][]string{
	models.RiskLow: {
		"Mantener la rutina de registro diario de ánimo",
		"Practicar actividades que generen bienestar",
	},
	models.RiskMedium: {
		"Aumentar la frecuencia de registro de ánimo",
		"Practicar técnicas de relajación y respiración",
		"Hablar con una persona de confianza sobre cómo te sientes",
	},
	models.RiskHigh: {
		"Contactar a tu psicólogo vinculado lo antes posible",
		"Evitar pasar largos periodos en soledad",
		"Establecer una red de apoyo cercana",
	},
	models.RiskCritical: {
		"Buscar atención profesional inmediata",
		"No permanecer solo; contactar a un familiar o amigo ahora",
		"Acudir a un servicio de urgencias si los pensamientos se intensifican",
	},
}

var riskImmediateActions = map[models.CrisisRiskLevel][]string{
	models.RiskLow:    {},
	models.RiskMedium: {"Programar una revisión de ánimo en las próximas 24 horas"},
	models.RiskHigh: {
		"Notificar al psicólogo vinculado",
		"Activar contacto de emergencia personal",
	},
	models.RiskCritical: {
		"Llamar a la línea de atención en crisis (escucha 24h)",
		"Notificar al psicólogo vinculado de inmediato",
		"Compartir ubicación con un contacto de confianza",
	},
}

// CrisisService 基于结构化健康指标的规则式危机评估器
// 五个子检查无条件运行，缺失的可选字段视为无信号，绝不抛错
type CrisisService struct{}

func NewCrisisService() *CrisisService {
	return &CrisisService{}
}

// Assess 对一次上报的健康指标做完整危机评估
// history 为该用户最近的心情记录，按时间倒序（最新在前）；为空时跳过趋势类检查
func (s *CrisisService) Assess(req models.CrisisAssessRequest, history []models.MoodRecord) models.CrisisAssessment {
	now := time.Now().UTC()

	var signals []models.CrisisSignal
	signals = append(signals, s.checkMoodExtremes(req, now)...)
	signals = append(signals, s.checkBehavioralTrend(history, now)...)
	signals = append(signals, s.checkCrisisKeywords(req.Notes, now)...)
	signals = append(signals, s.checkSocialIsolation(req, now)...)
	signals = append(signals, s.checkSleepEnergy(req, now)...)

	score := 0
	criticalCount := 0
	hasHigh := false
	for _, sig := range signals {
		score += sig.Severity.Score()
		switch sig.Severity {
		case models.SeverityCritical:
			criticalCount++
		case models.SeverityHigh:
			hasHigh = true
		}
	}

	// 风险判定按顺序求值，命中即止
	var risk models.CrisisRiskLevel
	switch {
	case criticalCount > 0 || score >= 20:
		risk = models.RiskCritical
	case hasHigh || score >= 15:
		risk = models.RiskHigh
	case score >= 8:
		risk = models.RiskMedium
	default:
		risk = models.RiskLow
	}

	confidence := 10 * len(signals)
	if confidence > 40 {
		confidence = 40
	}
	if len(history) >= 5 {
		confidence += 20
	}
	confidence += 15 * criticalCount
	if confidence > 100 {
		confidence = 100
	}

	return models.CrisisAssessment{
		Signals:          signals,
		OverallRisk:      risk,
		AssessmentScore:  score,
		Confidence:       confidence,
		Recommendations:  riskRecommendations[risk],
		ImmediateActions: riskImmediateActions[risk],
		AssessedAt:       now,
	}
}

// checkMoodExtremes 心情极端值检查
func (s *CrisisService) checkMoodExtremes(req models.CrisisAssessRequest, now time.Time) []models.CrisisSignal {
	var signals []models.CrisisSignal
	switch req.Mood {
	case 1:
		signals = append(signals, models.CrisisSignal{
			SignalType:           models.SignalMood,
			Severity:             models.SeverityHigh,
			Description:          "Estado de ánimo en el mínimo de la escala",
			DetectedAt:           now,
			InterventionRequired: true,
			Metadata:             map[string]interface{}{"mood": req.Mood},
		})
	case 2:
		signals = append(signals, models.CrisisSignal{
			SignalType:  models.SignalMood,
			Severity:    models.SeverityMedium,
			Description: "Estado de ánimo muy bajo",
			DetectedAt:  now,
			Metadata:    map[string]interface{}{"mood": req.Mood},
		})
	}
	return signals
}

// checkBehavioralTrend 行为趋势检查，至少需要3条历史记录
func (s *CrisisService) checkBehavioralTrend(history []models.MoodRecord, now time.Time) []models.CrisisSignal {
	if len(history) < 3 {
		return nil
	}

	recent := history[:3]
	allVeryLow := true
	for _, r := range recent {
		if r.Mood > 2 {
			allVeryLow = false
			break
		}
	}
	// history 最新在前，recent[0] 最新
	declining := recent[0].Mood < recent[1].Mood && recent[1].Mood < recent[2].Mood

	switch {
	case allVeryLow:
		return []models.CrisisSignal{{
			SignalType:           models.SignalBehavioral,
			Severity:             models.SeverityHigh,
			Description:          "Ánimo muy bajo sostenido en los últimos registros",
			DetectedAt:           now,
			InterventionRequired: true,
			Metadata:             map[string]interface{}{"moods": []int{recent[0].Mood, recent[1].Mood, recent[2].Mood}},
		}}
	case declining:
		return []models.CrisisSignal{{
			SignalType:  models.SignalBehavioral,
			Severity:    models.SeverityMedium,
			Description: "Tendencia descendente del ánimo",
			DetectedAt:  now,
			Metadata:    map[string]interface{}{"moods": []int{recent[0].Mood, recent[1].Mood, recent[2].Mood}},
		}}
	}
	return nil
}

// checkCrisisKeywords 自由文本的危机模式匹配，每个命中模式产生一条信号
func (s *CrisisService) checkCrisisKeywords(notes string, now time.Time) []models.CrisisSignal {
	if notes == "" {
		return nil
	}
	lower := strings.ToLower(notes)

	var signals []models.CrisisSignal
	for _, pattern := range crisisPatterns {
		for _, kw := range pattern.keywords {
			if strings.Contains(lower, kw) {
				signals = append(signals, models.CrisisSignal{
					SignalType:           models.SignalVerbal,
					Severity:             pattern.severity,
					Description:          "Patrón detectado en el texto: " + pattern.name,
					DetectedAt:           now,
					InterventionRequired: pattern.severity == models.SeverityCritical || pattern.severity == models.SeverityHigh,
					Metadata:             map[string]interface{}{"pattern": pattern.name, "keyword": kw},
				})
				break
			}
		}
	}
	return signals
}

// checkSocialIsolation 社交孤立检查
func (s *CrisisService) checkSocialIsolation(req models.CrisisAssessRequest, now time.Time) []models.CrisisSignal {
	if req.Notes == "" {
		return nil
	}
	lower := strings.ToLower(req.Notes)

	matched := ""
	for _, kw := range isolationKeywords {
		if strings.Contains(lower, kw) {
			matched = kw
			break
		}
	}
	if matched == "" {
		return nil
	}

	severity := models.SeverityMedium
	if req.Mood > 0 && req.Mood <= 2 {
		severity = models.SeverityHigh
	}
	return []models.CrisisSignal{{
		SignalType:           models.SignalSocial,
		Severity:             severity,
		Description:          "Indicadores de aislamiento social en el texto",
		DetectedAt:           now,
		InterventionRequired: severity == models.SeverityHigh,
		Metadata:             map[string]interface{}{"keyword": matched, "mood": req.Mood},
	}}
}

// checkSleepEnergy 睡眠与精力恶化检查，未填写（零值）的字段不产生信号
func (s *CrisisService) checkSleepEnergy(req models.CrisisAssessRequest, now time.Time) []models.CrisisSignal {
	if req.SleepHours <= 0 {
		return nil
	}

	if req.SleepHours < 4 && req.Energy > 0 && req.Energy <= 3 {
		return []models.CrisisSignal{{
			SignalType:           models.SignalPhysical,
			Severity:             models.SeverityHigh,
			Description:          "Sueño insuficiente con energía muy baja",
			DetectedAt:           now,
			InterventionRequired: true,
			Metadata:             map[string]interface{}{"sleepHours": req.SleepHours, "energy": req.Energy},
		}}
	}
	if req.SleepHours < 5 {
		return []models.CrisisSignal{{
			SignalType:  models.SignalPhysical,
			Severity:    models.SeverityMedium,
			Description: "Deterioro del patrón de sueño",
			DetectedAt:  now,
			Metadata:    map[string]interface{}{"sleepHours": req.SleepHours},
		}}
	}
	return nil
}
