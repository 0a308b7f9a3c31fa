package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
)

// ==================== 配置 ====================

// AIConfig OpenAI 服务配置
type AIConfig struct {
	ApiKey  string
	BaseURL string
	Timeout time.Duration
	Debug   bool
}

// ==================== Chat Completions 协议 ====================

// ChatMessage 对话消息
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest /v1/chat/completions 请求体
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

// ChatChoice 单个候选；Message 可能缺失
type ChatChoice struct {
	Index        int          `json:"index"`
	Message      *ChatMessage `json:"message"`
	FinishReason string       `json:"finish_reason"`
}

// ChatUsage token 用量
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse /v1/chat/completions 响应体
type ChatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   ChatUsage    `json:"usage"`
}

type openAIErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// ChatProvider 远端文本生成接口
type ChatProvider interface {
	CreateChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

// ==================== 服务 ====================

// AIService OpenAI chat completions 客户端，进程内构建一次
type AIService struct {
	Config *AIConfig
	client *resty.Client
}

// NewAIService 创建 OpenAI 服务
func NewAIService(cfg *AIConfig) *AIService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	client := resty.New().
		SetDebug(cfg.Debug).
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.ApiKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "Garden-Designer/1.0")

	return &AIService{
		Config: cfg,
		client: client,
	}
}

// CreateChatCompletion 调用一次，不重试
func (s *AIService) CreateChatCompletion(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	var result ChatResponse
	var apiErr openAIErrorBody

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&apiErr).
		Post("/v1/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}

	if resp.IsError() {
		msg := apiErr.Error.Message
		if msg == "" {
			msg = snippet(resp.String(), 200)
		}
		return nil, &ProviderError{StatusCode: resp.StatusCode(), Message: msg}
	}

	return &result, nil
}

// ==================== 工具函数 ====================

// snippet 按字节截断，不切开多字节字符
func snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
