package task

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// LogPurger 生成日志清理接口
type LogPurger interface {
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// LogCleanupTask 定时删除超过保留期的生成日志
type LogCleanupTask struct {
	repo          LogPurger
	retentionDays int
	Cron          *cron.Cron
	logger        *zap.Logger
	now           func() time.Time
}

// NewLogCleanupTask retentionDays <= 0 时按 30 天处理
func NewLogCleanupTask(repo LogPurger, retentionDays int, logger *zap.Logger) *LogCleanupTask {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogCleanupTask{
		repo:          repo,
		retentionDays: retentionDays,
		Cron:          cron.New(cron.WithSeconds()), // 支持秒级控制
		logger:        logger,
		now:           time.Now,
	}
}

// Start 启动定时任务
func (t *LogCleanupTask) Start() error {
	// 策略：每天凌晨 3 点清理一次
	_, err := t.Cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		t.Execute(ctx)
	})
	if err != nil {
		return fmt.Errorf("无法启动日志清理任务: %w", err)
	}

	t.Cron.Start()
	t.logger.Info("生成日志清理任务已启动", zap.Int("retention_days", t.retentionDays))
	return nil
}

// Stop 停止并等待正在执行的任务
func (t *LogCleanupTask) Stop() {
	<-t.Cron.Stop().Done()
}

// Execute 执行一次清理
func (t *LogCleanupTask) Execute(ctx context.Context) int64 {
	before := t.now().AddDate(0, 0, -t.retentionDays)

	deleted, err := t.repo.DeleteBefore(ctx, before)
	if err != nil {
		t.logger.Error("[LogCleanup] 清理失败", zap.Error(err))
		return 0
	}

	if deleted > 0 {
		t.logger.Info("[LogCleanup] 清理完成",
			zap.Int64("deleted", deleted),
			zap.Time("before", before))
	}
	return deleted
}
