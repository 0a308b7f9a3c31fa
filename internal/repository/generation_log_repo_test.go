package repository

import (
	"context"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"garden_designer/internal/model"
)

func setupGenerationLogTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.GenerationLog{}); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	return db
}

func TestGenerationLogRepo_CreateAndGet(t *testing.T) {
	repo := NewGenerationLogRepository(setupGenerationLogTestDB(t))
	ctx := context.Background()

	log := &model.GenerationLog{
		RequestID:    "req-1",
		Beds2x2:      2,
		Beds4x8:      1,
		Vegetables:   "Tomatoes, Basil",
		Mode:         model.GenerationModeProvider,
		ModelName:    "gpt-3.5-turbo",
		InputTokens:  320,
		OutputTokens: 640,
		DurationMs:   1800,
		Status:       model.GenerationStatusSuccess,
		HTTPStatus:   200,
	}
	if err := repo.Create(ctx, log); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if log.ID == 0 {
		t.Fatal("ID 应该被自动分配")
	}

	found, err := repo.GetByID(ctx, log.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if found.RequestID != "req-1" || found.Vegetables != "Tomatoes, Basil" {
		t.Errorf("found = %+v", found)
	}

	if _, err := repo.GetByID(ctx, 9999); err == nil {
		t.Error("不存在的记录应返回错误")
	}
}

func TestGenerationLogRepo_GetUsage(t *testing.T) {
	repo := NewGenerationLogRepository(setupGenerationLogTestDB(t))
	ctx := context.Background()

	logs := []*model.GenerationLog{
		{Mode: model.GenerationModeProvider, InputTokens: 100, OutputTokens: 50, DurationMs: 1000, Status: model.GenerationStatusSuccess},
		{Mode: model.GenerationModeProvider, InputTokens: 200, OutputTokens: 150, DurationMs: 3000, Status: model.GenerationStatusSuccess},
		{Mode: model.GenerationModeProvider, DurationMs: 500, Status: model.GenerationStatusFailed, ErrorMsg: "rate limit"},
		{Mode: model.GenerationModePlaceholder, DurationMs: 0, Status: model.GenerationStatusSuccess},
	}
	for _, log := range logs {
		if err := repo.Create(ctx, log); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	stats, err := repo.GetUsage(ctx, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("GetUsage() error = %v", err)
	}

	if stats.TotalCalls != 4 {
		t.Errorf("TotalCalls = %d, want 4", stats.TotalCalls)
	}
	if stats.ProviderCalls != 3 {
		t.Errorf("ProviderCalls = %d, want 3", stats.ProviderCalls)
	}
	if stats.PlaceholderCalls != 1 {
		t.Errorf("PlaceholderCalls = %d, want 1", stats.PlaceholderCalls)
	}
	if stats.TotalInputTokens != 300 {
		t.Errorf("TotalInputTokens = %d, want 300", stats.TotalInputTokens)
	}
	if stats.TotalOutputTokens != 200 {
		t.Errorf("TotalOutputTokens = %d, want 200", stats.TotalOutputTokens)
	}
	if stats.SuccessCount != 3 || stats.FailedCount != 1 {
		t.Errorf("Success/Failed = %d/%d, want 3/1", stats.SuccessCount, stats.FailedCount)
	}
	if stats.AvgDurationMs != 1125 {
		t.Errorf("AvgDurationMs = %v, want 1125", stats.AvgDurationMs)
	}
}

func TestGenerationLogRepo_GetDailyUsage(t *testing.T) {
	db := setupGenerationLogTestDB(t)
	repo := NewGenerationLogRepository(db)
	ctx := context.Background()

	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)

	repo.Create(ctx, &model.GenerationLog{Mode: model.GenerationModeProvider, InputTokens: 10, Status: model.GenerationStatusSuccess})
	repo.Create(ctx, &model.GenerationLog{Mode: model.GenerationModeProvider, InputTokens: 20, Status: model.GenerationStatusFailed})

	old := &model.GenerationLog{Mode: model.GenerationModePlaceholder, Status: model.GenerationStatusSuccess}
	repo.Create(ctx, old)
	db.Model(old).UpdateColumn("created_at", yesterday)

	stats, err := repo.GetDailyUsage(ctx, now.Add(-48*time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetDailyUsage() error = %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("天数 = %d, want 2", len(stats))
	}

	var total int64
	for _, day := range stats {
		total += day.TotalCalls
	}
	if total != 3 {
		t.Errorf("总调用数 = %d, want 3", total)
	}
}

func TestGenerationLogRepo_DeleteBefore(t *testing.T) {
	db := setupGenerationLogTestDB(t)
	repo := NewGenerationLogRepository(db)
	ctx := context.Background()

	fresh := &model.GenerationLog{Mode: model.GenerationModePlaceholder, Status: model.GenerationStatusSuccess}
	stale := &model.GenerationLog{Mode: model.GenerationModePlaceholder, Status: model.GenerationStatusSuccess}
	repo.Create(ctx, fresh)
	repo.Create(ctx, stale)
	db.Model(stale).UpdateColumn("created_at", time.Now().Add(-40*24*time.Hour))

	deleted, err := repo.DeleteBefore(ctx, time.Now().Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	if _, err := repo.GetByID(ctx, fresh.ID); err != nil {
		t.Errorf("新记录不应被删除: %v", err)
	}
}
