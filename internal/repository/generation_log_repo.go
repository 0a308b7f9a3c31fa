package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"garden_designer/internal/model"
)

// ==================== 仓储接口 ====================

// GenerationLogRepository 生成日志仓储接口
type GenerationLogRepository interface {
	Create(ctx context.Context, log *model.GenerationLog) error
	GetByID(ctx context.Context, id int64) (*model.GenerationLog, error)

	// 统计查询
	GetUsage(ctx context.Context, startTime, endTime time.Time) (*UsageStats, error)
	GetDailyUsage(ctx context.Context, startDate, endDate time.Time) ([]DailyUsageStats, error)

	// 清理
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// ==================== 统计结构 ====================

// UsageStats 用量统计
type UsageStats struct {
	TotalCalls        int64   `json:"total_calls"`
	PlaceholderCalls  int64   `json:"placeholder_calls"`
	ProviderCalls     int64   `json:"provider_calls"`
	TotalInputTokens  int64   `json:"total_input_tokens"`
	TotalOutputTokens int64   `json:"total_output_tokens"`
	AvgDurationMs     float64 `json:"avg_duration_ms"`
	SuccessCount      int64   `json:"success_count"`
	FailedCount       int64   `json:"failed_count"`
}

// DailyUsageStats 每日用量统计
type DailyUsageStats struct {
	Date              string `json:"date"`
	TotalCalls        int64  `json:"total_calls"`
	FailedCount       int64  `json:"failed_count"`
	TotalInputTokens  int64  `json:"total_input_tokens"`
	TotalOutputTokens int64  `json:"total_output_tokens"`
}

// ==================== 仓储实现 ====================

type generationLogRepo struct {
	db *gorm.DB
}

// NewGenerationLogRepository 创建生成日志仓储
func NewGenerationLogRepository(db *gorm.DB) GenerationLogRepository {
	return &generationLogRepo{db: db}
}

func (r *generationLogRepo) Create(ctx context.Context, log *model.GenerationLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *generationLogRepo) GetByID(ctx context.Context, id int64) (*model.GenerationLog, error) {
	var log model.GenerationLog
	if err := r.db.WithContext(ctx).First(&log, id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *generationLogRepo) GetUsage(ctx context.Context, startTime, endTime time.Time) (*UsageStats, error) {
	var stats UsageStats

	query := r.db.WithContext(ctx).Model(&model.GenerationLog{})
	if !startTime.IsZero() {
		query = query.Where("created_at >= ?", startTime)
	}
	if !endTime.IsZero() {
		query = query.Where("created_at <= ?", endTime)
	}

	err := query.Select(`
		COUNT(*) as total_calls,
		COALESCE(SUM(CASE WHEN mode = 'placeholder' THEN 1 ELSE 0 END), 0) as placeholder_calls,
		COALESCE(SUM(CASE WHEN mode = 'provider' THEN 1 ELSE 0 END), 0) as provider_calls,
		COALESCE(SUM(input_tokens), 0) as total_input_tokens,
		COALESCE(SUM(output_tokens), 0) as total_output_tokens,
		COALESCE(AVG(duration_ms), 0) as avg_duration_ms,
		COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0) as success_count,
		COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) as failed_count
	`).Scan(&stats).Error

	return &stats, err
}

func (r *generationLogRepo) GetDailyUsage(ctx context.Context, startDate, endDate time.Time) ([]DailyUsageStats, error) {
	var stats []DailyUsageStats

	err := r.db.WithContext(ctx).Model(&model.GenerationLog{}).
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Select(`
			DATE(created_at) as date,
			COUNT(*) as total_calls,
			COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0) as failed_count,
			COALESCE(SUM(input_tokens), 0) as total_input_tokens,
			COALESCE(SUM(output_tokens), 0) as total_output_tokens
		`).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&stats).Error

	return stats, err
}

func (r *generationLogRepo) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", before).Delete(&model.GenerationLog{})
	return result.RowsAffected, result.Error
}
