package model

// GenerationLog 布局生成调用日志
type GenerationLog struct {
	BaseModel

	RequestID string `gorm:"size:64;index;comment:请求ID" json:"request_id"`

	// 用户选择
	Beds2x2    int    `gorm:"default:0;comment:2x2苗床数" json:"beds2x2"`
	Beds4x4    int    `gorm:"default:0;comment:4x4苗床数" json:"beds4x4"`
	Beds4x8    int    `gorm:"default:0;comment:4x8苗床数" json:"beds4x8"`
	Vegetables string `gorm:"size:1024;comment:蔬菜(逗号分隔)" json:"vegetables"`

	// 调用信息
	Mode      string `gorm:"size:32;index;comment:模式(placeholder/provider)" json:"mode"`
	ModelName string `gorm:"size:64;comment:模型名称" json:"model_name"`

	// 用量统计
	InputTokens  int `gorm:"default:0;comment:输入token数" json:"input_tokens"`
	OutputTokens int `gorm:"default:0;comment:输出token数" json:"output_tokens"`

	DurationMs int64 `gorm:"comment:耗时(毫秒)" json:"duration_ms"`

	// 状态
	Status     string `gorm:"size:32;index;default:success;comment:状态(success/failed)" json:"status"`
	HTTPStatus int    `gorm:"comment:返回给前端的状态码" json:"http_status"`
	ErrorMsg   string `gorm:"size:1024;comment:错误信息" json:"error_msg,omitempty"`
}

func (GenerationLog) TableName() string {
	return "generation_logs"
}

// ==================== 模式常量 ====================

const (
	GenerationModePlaceholder = "placeholder"
	GenerationModeProvider    = "provider"
)

// ==================== 状态常量 ====================

const (
	GenerationStatusSuccess = "success"
	GenerationStatusFailed  = "failed"
)
