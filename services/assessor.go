package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/LovationAdmin/stress-api/utils"

	openai "github.com/sashabaranov/go-openai"
)

// ============================================================================
// NARRATIVE ASSESSMENT - text-generation service
// One chat completion per call, no retry.
// ============================================================================

const (
	textGenerationServiceName = "text-generation service"
	assessorSystemPrompt      = "You are a helpful assistant."
)

// NarrativeAssessor returns a free-text assessment for a prompt.
type NarrativeAssessor interface {
	Assess(ctx context.Context, prompt string) (string, error)
}

type OpenAIAssessorConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// OpenAIAssessor calls an OpenAI-compatible chat completions endpoint.
type OpenAIAssessor struct {
	client    *openai.Client
	model     string
	maxTokens int
}

func NewOpenAIAssessor(cfg OpenAIAssessorConfig) *OpenAIAssessor {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	model := cfg.Model
	if model == "" {
		model = "gpt-4.1"
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 200
	}

	return &OpenAIAssessor{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (a *OpenAIAssessor) Assess(ctx context.Context, prompt string) (string, error) {
	utils.SafeDebug("[Assessor] prompt: %s", prompt)

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: assessorSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: a.maxTokens,
	})
	if err != nil {
		return "", &UpstreamError{
			Service:    textGenerationServiceName,
			StatusCode: upstreamStatus(err),
			Err:        err,
		}
	}

	if len(resp.Choices) == 0 {
		return "", &UpstreamError{
			Service:    textGenerationServiceName,
			StatusCode: http.StatusOK,
			Err:        errors.New("response contains no choices"),
		}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)

	utils.Log().Info().
		Str("model", resp.Model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("[Assessor] completion received")
	utils.SafeDebug("[Assessor] raw response: %s", text)

	return text, nil
}

// upstreamStatus extracts the HTTP status carried by a go-openai error.
func upstreamStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
