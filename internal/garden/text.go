package garden

import (
	"fmt"
	"strings"
)

// ==================== 提示词 ====================

// SystemPrompt 固定的 system 角色
const SystemPrompt = "You are an expert gardener and landscape designer specializing in vegetable gardens. " +
	"Provide practical, detailed advice for garden layouts with specific spacing and companion planting recommendations."

// BuildPrompt 生成 user 角色的提示词
func BuildPrompt(req LayoutRequest) string {
	return fmt.Sprintf(`Please design a vegetable garden layout with the following specifications:
- Total beds: %d
- Bed configuration: %s
- Vegetables to include: %s

Please provide a detailed layout plan including:
1. How to arrange the vegetables in each bed size
2. Specific spacing recommendations for each bed size
3. Companion planting suggestions
4. Seasonal considerations
5. A simple visual representation or layout description

Format the response in a clear, organized manner that would be helpful for a gardener.

Consider that:
- 2x2 feet beds are best for herbs and small plants
- 4x4 feet beds work well for medium plants and companion planting
- 4x8 feet beds are ideal for larger plants like tomatoes and corn`,
		req.Beds.Total(),
		strings.Join(req.Beds.Summary(), ", "),
		strings.Join(req.Vegetables, ", "),
	)
}

// ==================== 占位 & 兜底文案 ====================

// CredentialEnv 服务端读取的凭证环境变量
const CredentialEnv = "OPENAI_API_KEY"

// PlaceholderLayout 未配置凭证时返回的说明文本
func PlaceholderLayout(req LayoutRequest) string {
	return fmt.Sprintf(`Garden Layout Generator

Your Selection:
- Beds: %s
- Vegetables: %s

To get personalized garden layouts, set the %s environment variable for the layout service and restart it.`,
		strings.Join(req.Beds.Summary(), ", "),
		strings.Join(req.Vegetables, ", "),
		CredentialEnv,
	)
}

// FallbackLayout 客户端调用失败时本地合成的布局，末行附带错误信息
func FallbackLayout(req LayoutRequest, cause error) string {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}

	return fmt.Sprintf(`Garden Layout Plan (Fallback):

Bed Configuration: %d total bed(s)
- %s

Vegetable Selection: %s

Layout Recommendations:
- Place taller plants (like tomatoes) on the north side to avoid shading shorter plants
- Group companion plants together (e.g., tomatoes with basil, carrots with onions)
- Leave adequate spacing between plants for proper growth
- Consider succession planting for continuous harvests

NOTE: API connection failed. This is a fallback response. Error: %s`,
		req.Beds.Total(),
		strings.Join(req.Beds.Summary(), "\n- "),
		strings.Join(req.Vegetables, ", "),
		msg,
	)
}
