package services

import (
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// DeepseekClient 通过OpenAI兼容接口访问Deepseek
// 人格对话走流式输出，日记分析在prompt里约定JSON标记，这里不强制response_format
type DeepseekClient struct {
	DsChat llms.Model
}

func NewDeepseekClient(apiKey, apiEndpoint string) (*DeepseekClient, error) {
	v3, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(apiEndpoint),
		openai.WithModel("deepseek/deepseek-v3"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Deepseek client: %w", err)
	}

	return &DeepseekClient{
		DsChat: v3,
	}, nil
}
