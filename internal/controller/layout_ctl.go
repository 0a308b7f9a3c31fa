package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"garden_designer/internal/api/dto"
	"garden_designer/internal/repository"
	"garden_designer/internal/service"
)

// 固定文案
const (
	MsgMethodNotAllowed = "POST Method not allowed"
	MsgInvalidBody      = "Invalid request body."
	MsgLogDisabled      = "Generation log is not enabled."
	MsgStatsFailed      = "Failed to load generation stats."
)

type LayoutController struct {
	layoutService *service.LayoutService
	logger        *zap.Logger
}

func NewLayoutController(layoutService *service.LayoutService, logger *zap.Logger) *LayoutController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LayoutController{layoutService: layoutService, logger: logger}
}

// Handle 按方法分发：OPTIONS 预检、POST 生成，其余 405
func (h *LayoutController) Handle(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusOK)
	case http.MethodPost:
		h.Generate(c)
	default:
		c.JSON(http.StatusMethodNotAllowed, dto.ErrorResp{Error: MsgMethodNotAllowed})
	}
}

// Generate 生成花园布局
// @Summary 生成花园布局
// @Description 根据苗床数量和蔬菜选择生成布局文本；未配置 OPENAI_API_KEY 时返回占位说明
// @Tags Layout
// @Accept json
// @Produce json
// @Param request body dto.GenerateLayoutReq true "苗床与蔬菜"
// @Success 200 {object} dto.GenerateLayoutResp
// @Failure 400 {object} dto.ErrorResp "参数错误"
// @Failure 401 {object} dto.ErrorResp "OpenAI 密钥无效"
// @Failure 429 {object} dto.ErrorResp "OpenAI 限流"
// @Failure 500 {object} dto.ErrorResp "生成失败"
// @Router /api/generate-garden-layout [post]
func (h *LayoutController) Generate(c *gin.Context) {
	var req dto.GenerateLayoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("请求体解析失败", zap.Error(err))
		c.JSON(http.StatusBadRequest, dto.ErrorResp{Error: MsgInvalidBody})
		return
	}

	layoutReq, convErr := req.ToDomain()
	// 蔬菜为空时交给服务返回蔬菜提示，与苗床数量是否合法无关
	if convErr != nil && len(layoutReq.Vegetables) > 0 {
		h.logger.Debug("苗床数量非法", zap.Error(convErr))
		c.JSON(http.StatusBadRequest, dto.ErrorResp{Error: MsgInvalidBody})
		return
	}

	layout, err := h.layoutService.Generate(c.Request.Context(), layoutReq)
	if err != nil {
		status, msg := service.StatusFor(err)
		c.JSON(status, dto.ErrorResp{Error: msg})
		return
	}

	c.JSON(http.StatusOK, dto.GenerateLayoutResp{Layout: layout})
}

// Stats 生成用量统计
// @Summary 生成用量统计
// @Description 最近 N 天的调用次数、token 用量与每日明细；需配置 GENERATION_LOG_DSN
// @Tags Layout
// @Produce json
// @Param days query int false "天数 (默认7)"
// @Success 200 {object} dto.GenerationStatsResp
// @Failure 404 {object} dto.ErrorResp "未开启生成日志"
// @Failure 500 {object} dto.ErrorResp "查询失败"
// @Router /api/generation-stats [get]
func (h *LayoutController) Stats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	if days <= 0 {
		days = 7
	}

	total, daily, err := h.layoutService.Usage(c.Request.Context(), days)
	if err != nil {
		if errors.Is(err, service.ErrLogDisabled) {
			c.JSON(http.StatusNotFound, dto.ErrorResp{Error: MsgLogDisabled})
			return
		}
		h.logger.Error("查询生成统计失败", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.ErrorResp{Error: MsgStatsFailed})
		return
	}

	if daily == nil {
		daily = []repository.DailyUsageStats{}
	}
	c.JSON(http.StatusOK, dto.GenerationStatsResp{Days: days, Total: total, Daily: daily})
}
