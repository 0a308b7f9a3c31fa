package dto

import (
	"encoding/json"
	"errors"
	"math"

	"garden_designer/internal/garden"
)

// ErrInvalidBedCount 苗床数量不是非负整数
var ErrInvalidBedCount = errors.New("invalid bed count")

// GenerateLayoutReq 布局生成请求，缺省的苗床数量按 0 处理
// 苗床数量延后解析，蔬菜校验先于数量校验
type GenerateLayoutReq struct {
	Beds2x2            json.RawMessage `json:"beds2x2" swaggertype:"integer" example:"2"`
	Beds4x4            json.RawMessage `json:"beds4x4" swaggertype:"integer" example:"0"`
	Beds4x8            json.RawMessage `json:"beds4x8" swaggertype:"integer" example:"1"`
	SelectedVegetables []string        `json:"selectedVegetables" example:"Tomatoes,Lettuce"`
}

// ToDomain 转换为领域请求
// 数量非法时返回 ErrInvalidBedCount，此时 Beds 为零值但 Vegetables 保留
func (r GenerateLayoutReq) ToDomain() (garden.LayoutRequest, error) {
	req := garden.LayoutRequest{Vegetables: r.SelectedVegetables}

	counts := []json.RawMessage{r.Beds2x2, r.Beds4x4, r.Beds4x8}
	for i, size := range garden.BedSizes {
		n, err := parseBedCount(counts[i])
		if err != nil {
			return garden.LayoutRequest{Vegetables: r.SelectedVegetables}, err
		}
		if err := req.Beds.Set(size, n); err != nil {
			return garden.LayoutRequest{Vegetables: r.SelectedVegetables}, ErrInvalidBedCount
		}
	}
	return req, nil
}

// parseBedCount 接受 null/缺省 (0) 和整数值的 JSON 数字，如 2 或 2.0
func parseBedCount(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, ErrInvalidBedCount
	}
	if f < 0 || f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, ErrInvalidBedCount
	}
	return int(f), nil
}

// GenerateLayoutResp 布局生成结果
type GenerateLayoutResp struct {
	Layout string `json:"layout"`
}

// ErrorResp 统一错误体
type ErrorResp struct {
	Error string `json:"error"`
}
