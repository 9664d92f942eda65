package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"time"

	"MoodLogGo/models"
)

// TextAnalyzer 日记文本分析器
// AI 路径（LLM）和关键词路径都实现该接口，失败兜底在实现内部完成
type TextAnalyzer interface {
	AnalyzeDiaryText(ctx context.Context, text string) models.AIAnalysis
}

// 追问题库，追问环节从中随机抽取 min(3, 题库大小) 条
var fallbackQuestionPool = []string{
	"Del 1 al 5, ¿qué tan bien te sientes ahora mismo?",
	"Del 1 al 5, ¿cuánta energía tuviste hoy?",
	"Del 1 al 5, ¿qué tan tranquilo te sientes?",
	"Del 1 al 5, ¿qué tan satisfecho estás con tu día?",
	"Del 1 al 5, ¿qué tan conectado te sentiste con otras personas hoy?",
	"Del 1 al 5, ¿qué tan bien dormiste anoche?",
}

// 拒绝AI结论后展示的鼓励语，纯展示用途，不影响状态
var motivationalMessages = []string{
	"Está bien no tener todo claro, vamos paso a paso.",
	"Tus emociones son válidas, gracias por tomarte este momento.",
	"Conocerte mejor también toma tiempo, lo estás haciendo bien.",
	"Cada registro cuenta, sigue así.",
}

var firstIntPattern = regexp.MustCompile(`\d+`)

const fallbackQuestionCount = 3

// MoodFlowService 日记流程控制器
// 驱动单条日记经过 选择/AI分析/追问 直到得到最终心情分
// 每一步都返回新的快照，不修改传入的条目
type MoodFlowService struct {
	analyzer TextAnalyzer
	rng      *rand.Rand
}

// NewMoodFlowService 创建流程控制器，rng 为空时使用时间种子
func NewMoodFlowService(analyzer TextAnalyzer, rng *rand.Rand) *MoodFlowService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &MoodFlowService{
		analyzer: analyzer,
		rng:      rng,
	}
}

// StartEntry 用户提交日记文本，创建新条目
// 分类器立即可下结论时直接进入 ai_analysis，否则停在 mood_selection
func (s *MoodFlowService) StartEntry(ctx context.Context, text string) models.DiaryEntry {
	entry := models.DiaryEntry{
		Text:      text,
		Timestamp: time.Now().UTC(),
	}

	analysis := s.analyzer.AnalyzeDiaryText(ctx, text)
	if analysis.CanConclude {
		entry.AIAnalysis = &analysis
	}
	return entry
}

// GetCurrentStep 从条目快照推导当前步骤，自上而下按优先级判定
func (s *MoodFlowService) GetCurrentStep(entry models.DiaryEntry) models.DiaryStep {
	switch {
	case entry.IsComplete:
		return models.StepComplete
	case entry.HasExplicitMood:
		return models.StepComplete
	case len(entry.FallbackQuestions) > 0 && entry.CurrentQuestionIndex != nil:
		return models.StepFallbackQuestions
	case entry.AIAnalysis != nil:
		return models.StepAIAnalysis
	case len(entry.Text) > 0:
		return models.StepMoodSelection
	default:
		return models.StepDiary
	}
}

// SelectMood 用户显式选择 1-5 心情，跳过分类器直接完成
func (s *MoodFlowService) SelectMood(entry models.DiaryEntry, mood int) (models.DiaryEntry, error) {
	if entry.IsComplete {
		return entry, fmt.Errorf("la entrada ya está completa")
	}
	if mood < 1 || mood > 5 {
		return entry, fmt.Errorf("el estado de ánimo debe estar entre 1 y 5")
	}

	entry.HasExplicitMood = true
	entry.ExplicitMood = mood
	return finalize(entry, mood), nil
}

// SkipToAnalysis 用户跳过选择器，调用分类器并进入 ai_analysis
func (s *MoodFlowService) SkipToAnalysis(ctx context.Context, entry models.DiaryEntry) (models.DiaryEntry, error) {
	if entry.IsComplete {
		return entry, fmt.Errorf("la entrada ya está completa")
	}

	analysis := s.analyzer.AnalyzeDiaryText(ctx, entry.Text)
	entry.AIAnalysis = &analysis
	return entry, nil
}

// AcceptAnalysis 用户接受AI结论，用推导出的心情分完成条目
func (s *MoodFlowService) AcceptAnalysis(entry models.DiaryEntry) (models.DiaryEntry, error) {
	if entry.IsComplete {
		return entry, fmt.Errorf("la entrada ya está completa")
	}
	if entry.AIAnalysis == nil {
		return entry, fmt.Errorf("no hay análisis para aceptar")
	}
	return finalize(entry, MoodFromAnalysis(*entry.AIAnalysis)), nil
}

// RejectAnalysis 用户拒绝AI结论，抽取追问并返回一条鼓励语
func (s *MoodFlowService) RejectAnalysis(entry models.DiaryEntry) (models.DiaryEntry, string, error) {
	if entry.IsComplete {
		return entry, "", fmt.Errorf("la entrada ya está completa")
	}
	if entry.AIAnalysis == nil {
		return entry, "", fmt.Errorf("no hay análisis para rechazar")
	}

	entry.FallbackQuestions = s.drawQuestions()
	idx := 0
	entry.CurrentQuestionIndex = &idx
	entry.UserResponses = nil
	return entry, s.MotivationalMessage(), nil
}

// AnswerQuestion 记录当前追问的回答并推进游标
// 回答完最后一题后，对可解析的数字回答取平均并四舍五入得到最终心情分；
// 一个数字都解析不出时条目保持未完成
func (s *MoodFlowService) AnswerQuestion(entry models.DiaryEntry, answer string) (models.DiaryEntry, error) {
	if entry.IsComplete {
		return entry, fmt.Errorf("la entrada ya está completa")
	}
	if len(entry.FallbackQuestions) == 0 || entry.CurrentQuestionIndex == nil {
		return entry, fmt.Errorf("no hay pregunta activa")
	}
	if *entry.CurrentQuestionIndex >= len(entry.FallbackQuestions) {
		return entry, fmt.Errorf("no hay pregunta activa")
	}

	responses := append(append([]string{}, entry.UserResponses...), answer)
	next := *entry.CurrentQuestionIndex + 1
	entry.UserResponses = responses
	entry.CurrentQuestionIndex = &next

	if next < len(entry.FallbackQuestions) {
		return entry, nil
	}

	// 所有追问已回答，取数字回答的平均
	sum, count := 0, 0
	for _, r := range responses {
		if v, ok := parseFirstInt(r); ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return entry, nil
	}

	mood := int(math.Round(float64(sum) / float64(count)))
	return finalize(entry, clampMood(mood)), nil
}

// ShouldDiscardEntry 判断条目是否可放弃（需用户确认）
// 仅当条目有文本但未取得任何心情信号、且追问尚无任何回答时允许放弃
func (s *MoodFlowService) ShouldDiscardEntry(entry models.DiaryEntry) bool {
	if entry.IsComplete {
		return false
	}
	if len(entry.Text) == 0 {
		return false
	}
	if entry.HasExplicitMood {
		return false
	}
	if entry.AIAnalysis != nil && entry.AIAnalysis.CanConclude {
		return false
	}
	return len(entry.UserResponses) == 0
}

// MotivationalMessage 从固定鼓励语池中均匀随机选一条
func (s *MoodFlowService) MotivationalMessage() string {
	return motivationalMessages[s.rng.Intn(len(motivationalMessages))]
}

// CurrentQuestion 返回当前待回答的追问，没有时返回空串
func (s *MoodFlowService) CurrentQuestion(entry models.DiaryEntry) string {
	if len(entry.FallbackQuestions) == 0 || entry.CurrentQuestionIndex == nil {
		return ""
	}
	idx := *entry.CurrentQuestionIndex
	if idx < 0 || idx >= len(entry.FallbackQuestions) {
		return ""
	}
	return entry.FallbackQuestions[idx]
}

// drawQuestions 无放回地随机抽取追问
func (s *MoodFlowService) drawQuestions() []string {
	pool := make([]string, len(fallbackQuestionPool))
	copy(pool, fallbackQuestionPool)
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	n := fallbackQuestionCount
	if len(pool) < n {
		n = len(pool)
	}
	return pool[:n]
}

// finalize 写入最终心情分并标记完成，FinalMood 由此写入且仅写入一次
func finalize(entry models.DiaryEntry, mood int) models.DiaryEntry {
	entry.FinalMood = mood
	entry.IsComplete = true
	return entry
}

// parseFirstInt 提取回答中出现的第一个整数
func parseFirstInt(answer string) (int, bool) {
	match := firstIntPattern.FindString(answer)
	if match == "" {
		return 0, false
	}
	v, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return v, true
}

func clampMood(mood int) int {
	if mood < 1 {
		return 1
	}
	if mood > 5 {
		return 5
	}
	return mood
}
