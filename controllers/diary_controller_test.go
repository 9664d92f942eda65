package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"MoodLogGo/controllers"
	"MoodLogGo/models"
	"MoodLogGo/services"

	"github.com/gin-gonic/gin"
)

// stubAnalyzer 满足流程控制器的依赖，放弃检查不会调用它
type stubAnalyzer struct{}

func (stubAnalyzer) AnalyzeDiaryText(_ context.Context, _ string) models.AIAnalysis {
	return models.AIAnalysis{}
}

func newDiscardRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	dc := controllers.NewDiaryController(services.NewMoodFlowService(stubAnalyzer{}, nil))
	r := gin.New()
	r.POST("/diary/discard", dc.DiscardCheck)
	return r
}

func postDiscard(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/diary/discard", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestDiscardCheckAcceptsEmptyEntry(t *testing.T) {
	r := newDiscardRouter()

	// 全零快照也要能判定，结果为不可放弃
	w := postDiscard(t, r, `{"entry":{}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"shouldDiscard":false`) {
		t.Errorf("body = %s, want shouldDiscard false", w.Body.String())
	}
}

func TestDiscardCheckFreshEntryDiscardable(t *testing.T) {
	r := newDiscardRouter()

	w := postDiscard(t, r, `{"entry":{"text":"hola!"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"shouldDiscard":true`) {
		t.Errorf("body = %s, want shouldDiscard true", w.Body.String())
	}
}
