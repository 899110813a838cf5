package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"
)

// ChatClient 文本生成入口
type ChatClient interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// GeminiClient 走 Gemini 的 OpenAI 兼容端点
type GeminiClient struct {
	client *openai.Client
	model  string
}

func NewGeminiClient(apiKey, baseURL, model string) *GeminiClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &GeminiClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (g *GeminiClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
