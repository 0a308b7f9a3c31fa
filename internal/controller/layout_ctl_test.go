package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garden_designer/internal/api/dto"
	"garden_designer/internal/model"
	"garden_designer/internal/repository"
	"garden_designer/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==================== 测试辅助 ====================

type stubProvider struct {
	resp  *service.ChatResponse
	err   error
	calls int
}

func (s *stubProvider) CreateChatCompletion(context.Context, *service.ChatRequest) (*service.ChatResponse, error) {
	s.calls++
	return s.resp, s.err
}

// brokenLogRepo 所有查询都失败的生成日志仓储
type brokenLogRepo struct {
	err error
}

func (b *brokenLogRepo) Create(context.Context, *model.GenerationLog) error { return b.err }

func (b *brokenLogRepo) GetByID(context.Context, int64) (*model.GenerationLog, error) {
	return nil, b.err
}

func (b *brokenLogRepo) GetUsage(context.Context, time.Time, time.Time) (*repository.UsageStats, error) {
	return nil, b.err
}

func (b *brokenLogRepo) GetDailyUsage(context.Context, time.Time, time.Time) ([]repository.DailyUsageStats, error) {
	return nil, b.err
}

func (b *brokenLogRepo) DeleteBefore(context.Context, time.Time) (int64, error) { return 0, b.err }

func setupLayoutRouter(provider service.ChatProvider) *gin.Engine {
	return setupLayoutRouterWithLog(provider, nil)
}

func setupLayoutRouterWithLog(provider service.ChatProvider, logRepo repository.GenerationLogRepository) *gin.Engine {
	svc := service.NewLayoutService(nil, provider, logRepo, nil)
	ctl := NewLayoutController(svc, nil)

	r := gin.New()
	r.Use(gin.Recovery())
	api := r.Group("/api")
	{
		api.Any("/generate-garden-layout", ctl.Handle)
		api.GET("/generation-stats", ctl.Stats)
	}
	return r
}

func postLayout(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/generate-garden-layout", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	var resp dto.ErrorResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

// ==================== 测试用例 ====================

func TestLayoutController_Options(t *testing.T) {
	r := setupLayoutRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/generate-garden-layout", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestLayoutController_MethodNotAllowed(t *testing.T) {
	r := setupLayoutRouter(nil)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete, http.MethodPatch} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, "/api/generate-garden-layout", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code, method)
		assert.Equal(t, MsgMethodNotAllowed, decodeError(t, w), method)
	}
}

func TestLayoutController_Validation(t *testing.T) {
	provider := &stubProvider{}
	r := setupLayoutRouter(provider)

	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"空蔬菜", `{"beds2x2":3,"beds4x4":2,"selectedVegetables":[]}`, "Please select at least one vegetable."},
		{"缺少蔬菜字段", `{"beds4x8":1}`, "Please select at least one vegetable."},
		{"无苗床", `{"selectedVegetables":["Corn"]}`, "Please select at least one bed."},
		{"苗床全为 0", `{"beds2x2":0,"beds4x4":0,"beds4x8":0,"selectedVegetables":["Corn"]}`, "Please select at least one bed."},
		{"非法 JSON", `{"beds2x2":`, MsgInvalidBody},
		{"负数", `{"beds2x2":-1,"selectedVegetables":["Corn"]}`, MsgInvalidBody},
		{"类型错误", `{"beds2x2":"two","selectedVegetables":["Corn"]}`, MsgInvalidBody},
		{"小数", `{"beds2x2":1.5,"selectedVegetables":["Corn"]}`, MsgInvalidBody},
		{"负数且无蔬菜", `{"beds2x2":-1,"selectedVegetables":[]}`, "Please select at least one vegetable."},
		{"小数且无蔬菜", `{"beds2x2":1.5,"selectedVegetables":[]}`, "Please select at least one vegetable."},
		{"类型错误且无蔬菜", `{"beds4x4":"two"}`, "Please select at least one vegetable."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postLayout(r, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, w))
		})
	}

	assert.Equal(t, 0, provider.calls)
}

func TestLayoutController_Placeholder(t *testing.T) {
	r := setupLayoutRouter(nil)

	w := postLayout(r, `{"beds2x2":2,"beds4x4":0,"beds4x8":1,"selectedVegetables":["Tomatoes","Basil"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.GenerateLayoutResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	for _, want := range []string{"2 bed(s) 2x2 feet", "1 bed(s) 4x8 feet", "Tomatoes", "Basil", "OPENAI_API_KEY"} {
		assert.Contains(t, resp.Layout, want)
	}
}

func TestLayoutController_ProviderOutcomes(t *testing.T) {
	ok := &service.ChatResponse{Choices: []service.ChatChoice{{Message: &service.ChatMessage{Content: " Plan text "}}}}

	tests := []struct {
		name       string
		provider   *stubProvider
		wantStatus int
		wantBody   string
	}{
		{"成功", &stubProvider{resp: ok}, http.StatusOK, `{"layout":"Plan text"}`},
		{"401", &stubProvider{err: &service.ProviderError{StatusCode: 401}}, http.StatusUnauthorized, `{"error":"` + service.MsgInvalidAPIKey + `"}`},
		{"429", &stubProvider{err: &service.ProviderError{StatusCode: 429}}, http.StatusTooManyRequests, `{"error":"` + service.MsgRateLimited + `"}`},
		{"无候选", &stubProvider{resp: &service.ChatResponse{}}, http.StatusInternalServerError, `{"error":"` + service.MsgGenerateFail + `"}`},
		{"无内容", &stubProvider{resp: &service.ChatResponse{Choices: []service.ChatChoice{{}}}}, http.StatusInternalServerError, `{"error":"` + service.MsgGenerateFail + `"}`},
		{"空白内容", &stubProvider{resp: &service.ChatResponse{Choices: []service.ChatChoice{{Message: &service.ChatMessage{Content: "  "}}}}}, http.StatusInternalServerError, `{"error":"` + service.MsgGenerateFail + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupLayoutRouter(tt.provider)
			w := postLayout(r, `{"beds4x4":1,"selectedVegetables":["Kale"]}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Equal(t, 1, tt.provider.calls)
		})
	}
}

func TestLayoutController_StatsDisabled(t *testing.T) {
	r := setupLayoutRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/generation-stats", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, MsgLogDisabled, decodeError(t, w))
}

func TestLayoutController_StatsQueryFailureHidesCause(t *testing.T) {
	repo := &brokenLogRepo{err: errors.New(`pq: relation "generation_logs" does not exist`)}
	r := setupLayoutRouterWithLog(nil, repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/generation-stats?days=3", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, MsgStatsFailed, decodeError(t, w))
	assert.NotContains(t, w.Body.String(), "generation_logs")
}
