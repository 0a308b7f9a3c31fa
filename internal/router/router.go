package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"garden_designer/internal/controller"
	"garden_designer/internal/middleware"

	_ "garden_designer/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Layout *controller.LayoutController
}

// Options 路由级配置
type Options struct {
	Logger   *zap.Logger
	Limiter  *middleware.CooldownLimiter
	Cooldown time.Duration // 0 表示不限流
}

// SetupRouter 创建引擎并注册全局中间件
func SetupRouter(ctls *Controllers, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestLogger(opts.Logger),
		middleware.CORS(),
	)

	InitRoutes(r, ctls, opts)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctls *Controllers, opts Options) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	{
		// 所有方法都进入同一个处理器，由它返回预检/405
		api.Any("/generate-garden-layout",
			middleware.GenerateCooldown(opts.Limiter, opts.Cooldown),
			ctls.Layout.Handle,
		)

		// GET /api/generation-stats?days=7
		api.GET("/generation-stats", ctls.Layout.Stats)
	}
}
