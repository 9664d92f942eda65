package services

import (
	"context"
	"strings"

	"MoodLogGo/models"
)

// 情感关键词表（西班牙语）
var (
	positiveKeywords = []string{
		"feliz", "contento", "alegre", "genial", "bien", "tranquilo",
		"agradecido", "motivado", "emocionado", "optimista", "relajado",
		"orgulloso", "esperanza", "sonreír", "disfruté", "maravilloso",
	}
	negativeKeywords = []string{
		"triste", "mal", "ansioso", "ansiedad", "deprimido", "cansado",
		"estresado", "preocupado", "miedo", "enojado", "frustrado",
		"solo", "llorar", "agotado", "nervioso", "horrible",
	}
	neutralKeywords = []string{
		"normal", "regular", "igual", "rutina", "trabajo", "día común",
		"nada especial", "tranquila", "común",
	}
)

// SentimentService 基于关键词与阈值的文本情感分类器
// 无内部状态，全部规则来自上面的静态词表
type SentimentService struct{}

func NewSentimentService() *SentimentService {
	return &SentimentService{}
}

// AnalyzeText 对日记文本做确定性情感分析
// 匹配规则：对小写化文本做逐词子串匹配（不做分词边界处理），每个命中词计1次
func (s *SentimentService) AnalyzeText(text string) models.AIAnalysis {
	lower := strings.ToLower(text)

	posHits := countKeywordHits(lower, positiveKeywords)
	negHits := countKeywordHits(lower, negativeKeywords)
	neuHits := countKeywordHits(lower, neutralKeywords)
	totalHits := posHits + negHits + neuHits

	// 平局归为中性
	var sentiment models.Sentiment
	switch {
	case posHits > negHits && posHits > neuHits:
		sentiment = models.SentimentPositive
	case negHits > posHits && negHits > neuHits:
		sentiment = models.SentimentNegative
	default:
		sentiment = models.SentimentNeutral
	}

	// 置信度下限40，上限95
	confidence := 40 + 8*totalHits
	if confidence > 95 {
		confidence = 95
	}

	// 单个强关键词不足以下结论，两个条件缺一不可
	canConclude := confidence >= 70 && totalHits >= 2

	return models.AIAnalysis{
		Emotion:     emotionLabel(sentiment, totalHits),
		Confidence:  confidence,
		Sentiment:   sentiment,
		CanConclude: canConclude,
	}
}

// AnalyzeDiaryText 实现 TextAnalyzer 接口，关键词路径不依赖外部服务
func (s *SentimentService) AnalyzeDiaryText(_ context.Context, text string) models.AIAnalysis {
	return s.AnalyzeText(text)
}

// MoodFromAnalysis 由分析结果推导 1-5 心情分
// confidence = 40 + 8*hits（95封顶只在 hits>=7 时生效），因此 confidence>=64 等价于 hits>=3
func MoodFromAnalysis(a models.AIAnalysis) int {
	strong := a.Confidence >= 64
	switch a.Sentiment {
	case models.SentimentPositive:
		if strong {
			return 5
		}
		return 4
	case models.SentimentNegative:
		if strong {
			return 1
		}
		return 2
	default:
		return 3
	}
}

func countKeywordHits(lowerText string, keywords []string) int {
	hits := 0
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			hits++
		}
	}
	return hits
}

// emotionLabel 情绪标签映射
func emotionLabel(sentiment models.Sentiment, totalHits int) string {
	switch sentiment {
	case models.SentimentPositive:
		if totalHits >= 3 {
			return "Felicidad"
		}
		return "Tranquilidad"
	case models.SentimentNegative:
		if totalHits >= 3 {
			return "Tristeza"
		}
		return "Ansiedad"
	default:
		return "Calma"
	}
}
