package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"MoodLogGo/config"
	"MoodLogGo/models"
	"MoodLogGo/services"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

func init() {
	config.Logger = zap.NewNop().Sugar()
}

// fakeModel 返回预设响应或错误，流式调用时逐块回放 chunks
type fakeModel struct {
	response *llms.ContentResponse
	err      error
	chunks   []string
}

func (f *fakeModel) GenerateContent(ctx context.Context, _ []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}

	opts := llms.CallOptions{}
	for _, opt := range options {
		opt(&opts)
	}
	if opts.StreamingFunc != nil {
		for _, chunk := range f.chunks {
			if err := opts.StreamingFunc(ctx, []byte(chunk)); err != nil {
				return nil, err
			}
		}
	}
	return f.response, nil
}

func (f *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", f.err
}

func newAITestService(model llms.Model) *services.AIService {
	client := &services.DeepseekClient{DsChat: model}
	return services.NewAIService(client, services.NewSentimentService())
}

func TestAnalyzeDiaryTextParsesModelOutput(t *testing.T) {
	model := &fakeModel{response: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		Content: "[[JSON_START]]\n{\"emotion\": \"Tristeza\", \"confidence\": 78, \"sentiment\": \"negative\"}\n[[JSON_END]]",
	}}}}
	svc := newAITestService(model)

	got := svc.AnalyzeDiaryText(context.Background(), "hoy perdí a mi perro")

	if got.Emotion != "Tristeza" {
		t.Errorf("Emotion = %s, want Tristeza", got.Emotion)
	}
	if got.Confidence != 78 {
		t.Errorf("Confidence = %d, want 78", got.Confidence)
	}
	if got.Sentiment != models.SentimentNegative {
		t.Errorf("Sentiment = %s, want negative", got.Sentiment)
	}
	if !got.CanConclude {
		t.Error("CanConclude = false, want true at confidence 78")
	}
}

func TestAnalyzeDiaryTextFallsBackOnModelError(t *testing.T) {
	text := "me siento mal"
	svc := newAITestService(&fakeModel{err: errors.New("connection refused")})

	got := svc.AnalyzeDiaryText(context.Background(), text)

	want := services.NewSentimentService().AnalyzeText(text)
	if got != want {
		t.Errorf("AnalyzeDiaryText() = %+v, want keyword fallback %+v", got, want)
	}
}

func TestAnalyzeDiaryTextFallsBackOnEmptyResponse(t *testing.T) {
	text := "me siento mal"
	svc := newAITestService(&fakeModel{response: &llms.ContentResponse{}})

	got := svc.AnalyzeDiaryText(context.Background(), text)

	want := services.NewSentimentService().AnalyzeText(text)
	if got != want {
		t.Errorf("AnalyzeDiaryText() = %+v, want keyword fallback %+v", got, want)
	}
}

func TestAnalyzeDiaryTextFallsBackOnUnmarkedOutput(t *testing.T) {
	// 没有JSON标记的纯文本输出应被拒绝并退回关键词路径
	text := "me siento mal"
	model := &fakeModel{response: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		Content: "La entrada refleja tristeza con una confianza de 80.",
	}}}}
	svc := newAITestService(model)

	got := svc.AnalyzeDiaryText(context.Background(), text)

	want := services.NewSentimentService().AnalyzeText(text)
	if got != want {
		t.Errorf("AnalyzeDiaryText() = %+v, want keyword fallback %+v", got, want)
	}
}

func TestAnalyzeDiaryTextFallsBackOnInvalidSentiment(t *testing.T) {
	text := "me siento mal"
	model := &fakeModel{response: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		Content: "[[JSON_START]]{\"emotion\": \"Calma\", \"confidence\": 50, \"sentiment\": \"contento\"}[[JSON_END]]",
	}}}}
	svc := newAITestService(model)

	got := svc.AnalyzeDiaryText(context.Background(), text)

	want := services.NewSentimentService().AnalyzeText(text)
	if got != want {
		t.Errorf("AnalyzeDiaryText() = %+v, want keyword fallback %+v", got, want)
	}
}

func TestGeneratePersonaResponseUnblocksOnCancel(t *testing.T) {
	model := &fakeModel{
		chunks:   []string{"Hola", ", gracias", " por", " compartir", " esto."},
		response: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "Hola"}}},
	}
	svc := newAITestService(model)

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := svc.GeneratePersonaResponse(ctx, services.SerenaPersona, "hola", "", "u1")
	if err != nil {
		t.Fatalf("GeneratePersonaResponse failed: %v", err)
	}

	// 只消费第一块就放弃，模拟客户端断开
	<-stream
	cancel()

	done := make(chan struct{})
	go func() {
		svc.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("生成协程在上下文取消后未退出")
	}
}
