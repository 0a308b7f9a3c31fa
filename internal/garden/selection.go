package garden

import (
	"fmt"
	"sort"
)

// ==================== 苗床选择 ====================

// BedSelection 三种尺寸的苗床数量，零值即全部为 0
type BedSelection struct {
	Beds2x2 int `json:"beds2x2"`
	Beds4x4 int `json:"beds4x4"`
	Beds4x8 int `json:"beds4x8"`
}

// Count 获取指定尺寸的数量
func (b BedSelection) Count(size BedSize) int {
	switch size {
	case BedSize2x2:
		return b.Beds2x2
	case BedSize4x4:
		return b.Beds4x4
	case BedSize4x8:
		return b.Beds4x8
	}
	return 0
}

// Set 设置指定尺寸的数量
func (b *BedSelection) Set(size BedSize, n int) error {
	if n < 0 {
		return fmt.Errorf("bed count must be non-negative, got %d", n)
	}
	switch size {
	case BedSize2x2:
		b.Beds2x2 = n
	case BedSize4x4:
		b.Beds4x4 = n
	case BedSize4x8:
		b.Beds4x8 = n
	default:
		return fmt.Errorf("unknown bed size %q", size)
	}
	return nil
}

// Total 苗床总数
func (b BedSelection) Total() int {
	return b.Beds2x2 + b.Beds4x4 + b.Beds4x8
}

// Summary 非零尺寸的描述，如 "2 bed(s) 2x2 feet"
func (b BedSelection) Summary() []string {
	summary := make([]string, 0, len(BedSizes))
	for _, size := range BedSizes {
		if n := b.Count(size); n > 0 {
			summary = append(summary, fmt.Sprintf("%d bed(s) %s feet", n, size))
		}
	}
	return summary
}

// ==================== 布局请求 ====================

// LayoutRequest 一次布局生成的完整输入
type LayoutRequest struct {
	Beds       BedSelection
	Vegetables []string
}

// Validate 先校验蔬菜，再校验苗床
func (r LayoutRequest) Validate() error {
	if len(r.Vegetables) == 0 {
		return ErrNoVegetables
	}
	if r.Beds.Beds2x2 < 0 || r.Beds.Beds4x4 < 0 || r.Beds.Beds4x8 < 0 {
		return ErrNegativeBeds
	}
	if r.Beds.Total() <= 0 {
		return ErrNoBeds
	}
	return nil
}

// SortByCatalog 按目录顺序排列，目录外的名字保持原顺序排在最后
func SortByCatalog(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := CatalogIndex(out[i]), CatalogIndex(out[j])
		if a < 0 {
			return false
		}
		if b < 0 {
			return true
		}
		return a < b
	})
	return out
}

// ==================== 校验错误 ====================

// ValidationError 用户输入不足
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrNoVegetables = &ValidationError{Message: "Please select at least one vegetable."}
	ErrNoBeds       = &ValidationError{Message: "Please select at least one bed."}
	ErrNegativeBeds = &ValidationError{Message: "Bed counts must not be negative."}
)
