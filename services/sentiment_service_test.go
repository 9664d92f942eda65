package services_test

import (
	"testing"

	"MoodLogGo/models"
	"MoodLogGo/services"
)

func TestAnalyzeTextNoKeywords(t *testing.T) {
	svc := services.NewSentimentService()

	a := svc.AnalyzeText("xyzzy qwerty")

	if a.Confidence != 40 {
		t.Errorf("Confidence = %d, want 40", a.Confidence)
	}
	if a.CanConclude {
		t.Error("CanConclude = true, want false")
	}
	if a.Sentiment != models.SentimentNeutral {
		t.Errorf("Sentiment = %s, want neutral", a.Sentiment)
	}
	if a.Emotion != "Calma" {
		t.Errorf("Emotion = %s, want Calma", a.Emotion)
	}
}

func TestAnalyzeTextConcludesPositive(t *testing.T) {
	svc := services.NewSentimentService()

	// feliz, contento, genial, alegre: 4 个正向命中
	a := svc.AnalyzeText("Hoy me siento feliz y contento, fue un momento genial y estuve alegre")

	if a.Sentiment != models.SentimentPositive {
		t.Errorf("Sentiment = %s, want positive", a.Sentiment)
	}
	if a.Confidence != 72 {
		t.Errorf("Confidence = %d, want 72", a.Confidence)
	}
	if !a.CanConclude {
		t.Error("CanConclude = false, want true")
	}
	if a.Emotion != "Felicidad" {
		t.Errorf("Emotion = %s, want Felicidad", a.Emotion)
	}
}

func TestAnalyzeTextConfidenceClamp(t *testing.T) {
	svc := services.NewSentimentService()

	// 7 个正向命中，40+8*7=96 应被钳位到 95
	a := svc.AnalyzeText("feliz contento alegre genial bien tranquilo agradecido")

	if a.Confidence != 95 {
		t.Errorf("Confidence = %d, want 95", a.Confidence)
	}
	if !a.CanConclude {
		t.Error("CanConclude = false, want true")
	}
}

func TestAnalyzeTextTieResolvesToNeutral(t *testing.T) {
	svc := services.NewSentimentService()

	// feliz 与 triste 各 1 次，平局归中性
	a := svc.AnalyzeText("estoy feliz pero también triste")

	if a.Sentiment != models.SentimentNeutral {
		t.Errorf("Sentiment = %s, want neutral", a.Sentiment)
	}
}

func TestAnalyzeTextWeakNegative(t *testing.T) {
	svc := services.NewSentimentService()

	a := svc.AnalyzeText("me siento mal")

	if a.Sentiment != models.SentimentNegative {
		t.Errorf("Sentiment = %s, want negative", a.Sentiment)
	}
	if a.Confidence != 48 {
		t.Errorf("Confidence = %d, want 48", a.Confidence)
	}
	if a.CanConclude {
		t.Error("CanConclude = true, want false")
	}
	if a.Emotion != "Ansiedad" {
		t.Errorf("Emotion = %s, want Ansiedad", a.Emotion)
	}
}

func TestMoodFromAnalysis(t *testing.T) {
	tests := []struct {
		name     string
		analysis models.AIAnalysis
		want     int
	}{
		{"正向强命中", models.AIAnalysis{Sentiment: models.SentimentPositive, Confidence: 72}, 5},
		{"正向弱命中", models.AIAnalysis{Sentiment: models.SentimentPositive, Confidence: 56}, 4},
		{"负向强命中", models.AIAnalysis{Sentiment: models.SentimentNegative, Confidence: 72}, 1},
		{"负向弱命中", models.AIAnalysis{Sentiment: models.SentimentNegative, Confidence: 48}, 2},
		{"中性", models.AIAnalysis{Sentiment: models.SentimentNeutral, Confidence: 95}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.MoodFromAnalysis(tt.analysis); got != tt.want {
				t.Errorf("MoodFromAnalysis() = %d, want %d", got, tt.want)
			}
		})
	}
}
