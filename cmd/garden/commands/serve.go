package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"garden_designer/internal/config"
	"garden_designer/internal/controller"
	"garden_designer/internal/middleware"
	"garden_designer/internal/model"
	"garden_designer/internal/repository"
	"garden_designer/internal/router"
	"garden_designer/internal/service"
	"garden_designer/internal/task"
	"garden_designer/pkg/database"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the layout generation HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := initDependencies(cfg, logger)
		if err != nil {
			return err
		}
		defer deps.Close()

		if cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}
		r := router.SetupRouter(deps.Controllers, router.Options{
			Logger:   logger,
			Limiter:  middleware.NewCooldownLimiter(),
			Cooldown: cfg.RateLimit.Interval,
		})
		return startServer(r, cfg.Server.Port, logger)
	},
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	LogRepo     repository.GenerationLogRepository // 未配置 DSN 时为 nil
	Layout      *service.LayoutService
	Controllers *router.Controllers
	cleanup     *task.LogCleanupTask
}

// Close 停止定时任务
func (d *Dependencies) Close() {
	if d.cleanup != nil {
		d.cleanup.Stop()
	}
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{}

	// -------- 生成日志 (可选) --------
	if cfg.Database.DSN != "" {
		db, err := database.InitDB(cfg.Database.DSN, !cfg.IsProduction(), &model.GenerationLog{})
		if err != nil {
			return nil, err
		}
		deps.LogRepo = repository.NewGenerationLogRepository(db)

		deps.cleanup = task.NewLogCleanupTask(deps.LogRepo, cfg.Database.RetentionDays, logger)
		if err := deps.cleanup.Start(); err != nil {
			return nil, err
		}
	} else {
		logger.Info("未配置 GENERATION_LOG_DSN，生成日志已关闭")
	}

	// -------- AI 服务 --------
	// 未配置凭证时 provider 保持 nil 接口值，服务进入占位模式
	var provider service.ChatProvider
	if cfg.HasProviderCredential() {
		provider = service.NewAIService(&service.AIConfig{
			ApiKey:  cfg.OpenAI.ApiKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Timeout: cfg.OpenAI.Timeout,
			Debug:   verbose,
		})
	} else {
		logger.Warn("未配置 OPENAI_API_KEY，布局接口返回占位说明")
	}

	deps.Layout = service.NewLayoutService(&service.LayoutConfig{
		Model:       cfg.OpenAI.Model,
		MaxTokens:   cfg.OpenAI.MaxTokens,
		Temperature: cfg.OpenAI.Temperature,
	}, provider, deps.LogRepo, logger)

	// -------- Controller 层 --------
	deps.Controllers = &router.Controllers{
		Layout: controller.NewLayoutController(deps.Layout, logger),
	}
	return deps, nil
}

// ==================== 服务启动 ====================

// startServer 启动服务，收到退出信号后优雅关闭
func startServer(r *gin.Engine, port string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info("服务已退出")
	return nil
}
