package gardenapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"garden_designer/internal/garden"
)

// LayoutPath 布局生成接口路径
const LayoutPath = "/api/generate-garden-layout"

// msgDefaultFailure 服务端未返回 error 字段时使用
const msgDefaultFailure = "Failed to generate garden layout"

// errMissingLayout 2xx 响应里没有可用的 layout 字段
var errMissingLayout = errors.New("response carries no layout")

// ResolveEndpoint 启动时根据部署环境选出完整地址，只解析一次
func ResolveEndpoint(production bool, productionBase, developmentBase string) string {
	base := developmentBase
	if production {
		base = productionBase
	}
	return strings.TrimRight(base, "/") + LayoutPath
}

type layoutPayload struct {
	Beds2x2            int      `json:"beds2x2"`
	Beds4x4            int      `json:"beds4x4"`
	Beds4x8            int      `json:"beds4x8"`
	SelectedVegetables []string `json:"selectedVegetables"`
}

type layoutResp struct {
	Layout string `json:"layout"`
}

type errorResp struct {
	Error string `json:"error"`
}

// Client 布局请求客户端
type Client struct {
	endpoint string
	http     *resty.Client
	logger   *zap.Logger
}

// NewClient 创建一个配置好超时与 UA 的 Resty 客户端
func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	hc := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "Garden-Designer/1.0")

	return &Client{
		endpoint: endpoint,
		http:     hc,
		logger:   logger,
	}
}

// Endpoint 当前使用的地址
func (c *Client) Endpoint() string {
	return c.endpoint
}

// RequestLayout 总是返回可展示的文本
// 网络失败或非 2xx 时在本地合成兜底布局，末行附带错误信息
func (c *Client) RequestLayout(ctx context.Context, beds garden.BedSelection, vegetables []string) string {
	req := garden.LayoutRequest{Beds: beds, Vegetables: vegetables}

	layout, err := c.call(ctx, req)
	if err != nil {
		c.logger.Warn("调用布局服务失败，使用兜底布局",
			zap.String("endpoint", c.endpoint),
			zap.Error(err))
		return garden.FallbackLayout(req, err)
	}
	return layout
}

func (c *Client) call(ctx context.Context, req garden.LayoutRequest) (string, error) {
	var ok layoutResp
	var fail errorResp

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(layoutPayload{
			Beds2x2:            req.Beds.Beds2x2,
			Beds4x4:            req.Beds.Beds4x4,
			Beds4x8:            req.Beds.Beds4x8,
			SelectedVegetables: req.Vegetables,
		}).
		SetResult(&ok).
		SetError(&fail).
		Post(c.endpoint)
	if err != nil {
		return "", err
	}

	if !resp.IsSuccess() {
		if fail.Error != "" {
			return "", errors.New(fail.Error)
		}
		return "", errors.New(msgDefaultFailure)
	}

	// 非 JSON (如 HTML 首页) 时 resty 不解析结果，同样视为失败
	if ok.Layout == "" {
		return "", fmt.Errorf("%w (status %d, content-type %q)",
			errMissingLayout, resp.StatusCode(), resp.Header().Get("Content-Type"))
	}
	return ok.Layout, nil
}
