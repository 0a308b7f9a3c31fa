package dto

import "garden_designer/internal/repository"

// GenerationStatsResp 生成用量统计
type GenerationStatsResp struct {
	Days  int                          `json:"days"`
	Total *repository.UsageStats       `json:"total"`
	Daily []repository.DailyUsageStats `json:"daily"`
}
