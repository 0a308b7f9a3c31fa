package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"garden_designer/internal/garden"
	"garden_designer/internal/model"
	"garden_designer/internal/repository"
	"garden_designer/pkg/reqctx"
)

// ==================== 错误分类 ====================

// ProviderError 远端返回的错误状态
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("openai API error [%d]: %s", e.StatusCode, e.Message)
}

// 三个检查点共用 ErrMalformedResponse，便于统一映射
var (
	ErrMalformedResponse = errors.New("malformed provider response")
	ErrNoChoices         = fmt.Errorf("%w: no response generated", ErrMalformedResponse)
	ErrNoContent         = fmt.Errorf("%w: invalid response format", ErrMalformedResponse)
	ErrEmptyContent      = fmt.Errorf("%w: empty response", ErrMalformedResponse)
)

// 返回给用户的固定文案
const (
	MsgInvalidAPIKey = "Invalid OpenAI API key. Please check your configuration."
	MsgRateLimited   = "OpenAI API rate limit exceeded. Please try again later."
	MsgGenerateFail  = "Failed to generate garden layout. Please try again."
)

// StatusFor 把错误映射为 HTTP 状态码和用户可见文案
func StatusFor(err error) (int, string) {
	var vErr *garden.ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, vErr.Message
	}

	var pErr *ProviderError
	if errors.As(err, &pErr) {
		switch pErr.StatusCode {
		case http.StatusUnauthorized:
			return http.StatusUnauthorized, MsgInvalidAPIKey
		case http.StatusTooManyRequests:
			return http.StatusTooManyRequests, MsgRateLimited
		}
	}

	return http.StatusInternalServerError, MsgGenerateFail
}

// ==================== 配置 ====================

// LayoutConfig 采样参数
type LayoutConfig struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// ==================== 服务 ====================

// LayoutService 布局生成服务，无状态
type LayoutService struct {
	provider ChatProvider // nil 表示占位模式
	cfg      *LayoutConfig
	logRepo  repository.GenerationLogRepository
	logger   *zap.Logger
}

// NewLayoutService provider 与 logRepo 均可为 nil
func NewLayoutService(cfg *LayoutConfig, provider ChatProvider, logRepo repository.GenerationLogRepository, logger *zap.Logger) *LayoutService {
	if cfg == nil {
		cfg = &LayoutConfig{}
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-3.5-turbo"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1000
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &LayoutService{
		provider: provider,
		cfg:      cfg,
		logRepo:  logRepo,
		logger:   logger,
	}
}

// PlaceholderMode 是否未配置凭证
func (s *LayoutService) PlaceholderMode() bool {
	return s.provider == nil
}

// Generate 校验 -> 占位 或 调用远端 -> 提取文本
func (s *LayoutService) Generate(ctx context.Context, req garden.LayoutRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	start := time.Now()
	entry := &model.GenerationLog{
		RequestID:  reqctx.RequestID(ctx),
		Beds2x2:    req.Beds.Beds2x2,
		Beds4x4:    req.Beds.Beds4x4,
		Beds4x8:    req.Beds.Beds4x8,
		Vegetables: strings.Join(req.Vegetables, ", "),
	}

	if s.provider == nil {
		entry.Mode = model.GenerationModePlaceholder
		s.record(ctx, entry, start, nil)
		return garden.PlaceholderLayout(req), nil
	}

	entry.Mode = model.GenerationModeProvider
	entry.ModelName = s.cfg.Model

	resp, err := s.provider.CreateChatCompletion(ctx, &ChatRequest{
		Model: s.cfg.Model,
		Messages: []ChatMessage{
			{Role: "system", Content: garden.SystemPrompt},
			{Role: "user", Content: garden.BuildPrompt(req)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		s.logger.Error("生成花园布局失败",
			zap.String("request_id", entry.RequestID),
			zap.Error(err))
		s.record(ctx, entry, start, err)
		return "", err
	}

	entry.InputTokens = resp.Usage.PromptTokens
	entry.OutputTokens = resp.Usage.CompletionTokens

	layout, err := ExtractLayout(resp)
	if err != nil {
		s.logger.Error("远端响应格式异常",
			zap.String("request_id", entry.RequestID),
			zap.String("response_id", resp.ID),
			zap.Error(err))
		s.record(ctx, entry, start, err)
		return "", err
	}

	s.record(ctx, entry, start, nil)
	return layout, nil
}

// ExtractLayout 取第一条候选的文本
func ExtractLayout(resp *ChatResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	choice := resp.Choices[0]
	if choice.Message == nil || choice.Message.Content == "" {
		return "", ErrNoContent
	}

	layout := strings.TrimSpace(choice.Message.Content)
	if layout == "" {
		return "", ErrEmptyContent
	}
	return layout, nil
}

// record 写生成日志，失败只打印不影响响应
func (s *LayoutService) record(ctx context.Context, entry *model.GenerationLog, start time.Time, cause error) {
	if s.logRepo == nil {
		return
	}

	entry.DurationMs = time.Since(start).Milliseconds()
	entry.Status = model.GenerationStatusSuccess
	entry.HTTPStatus = http.StatusOK
	if cause != nil {
		entry.Status = model.GenerationStatusFailed
		entry.HTTPStatus, _ = StatusFor(cause)
		entry.ErrorMsg = snippet(cause.Error(), 1000)
	}

	if err := s.logRepo.Create(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Warn("写入生成日志失败", zap.Error(err))
	}
}

// Usage 统计最近 days 天的用量
func (s *LayoutService) Usage(ctx context.Context, days int) (*repository.UsageStats, []repository.DailyUsageStats, error) {
	if s.logRepo == nil {
		return nil, nil, ErrLogDisabled
	}
	if days <= 0 {
		days = 7
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	total, err := s.logRepo.GetUsage(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("query usage: %w", err)
	}
	daily, err := s.logRepo.GetDailyUsage(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("query daily usage: %w", err)
	}
	return total, daily, nil
}

// ErrLogDisabled 未配置生成日志
var ErrLogDisabled = errors.New("generation log is not configured")
