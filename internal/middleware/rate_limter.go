package middleware

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 生成限流中间件 ====================

// GenerateCooldown 按客户端 IP 限制布局生成频率
// 只作用于 POST，预检请求不受影响；interval 为 0 时直接放行
func GenerateCooldown(limiter *CooldownLimiter, interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if interval <= 0 || limiter == nil || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		result := limiter.Check(ClientKey(c.ClientIP()), interval)
		if !result.Allowed {
			retryAfter := int(math.Ceil(result.RetryAfter.Seconds()))
			c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": formatRetryMessage(retryAfter),
			})
			return
		}

		c.Next()
	}
}

// ==================== 辅助函数 ====================

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(seconds int) string {
	return fmt.Sprintf("Too many layout requests, please retry in %d seconds.", seconds)
}
