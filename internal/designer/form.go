package designer

import (
	"context"
	"errors"
	"fmt"

	"garden_designer/internal/garden"
)

// LayoutRequester 布局请求客户端；实现方保证总是返回可展示文本
type LayoutRequester interface {
	RequestLayout(ctx context.Context, beds garden.BedSelection, vegetables []string) string
}

// ==================== 提交结果 ====================

// OutcomeKind 结果类型
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeSuccess
	OutcomeValidationError
	OutcomeTransportError
)

// Outcome 单次提交的结果，下次提交时被清空
type Outcome struct {
	Kind OutcomeKind
	Text string // 成功时为布局文本，否则为错误信息
}

// 表单提示文案
const (
	MsgSelectionRequired = "Please select at least one bed and one vegetable."
	MsgGenerateFailed    = "Failed to generate garden layout. Please try again."
)

var (
	ErrSelectionRequired = errors.New(MsgSelectionRequired)
	// ErrBusy 加载中按钮被禁用，不取消在途请求
	ErrBusy = errors.New("a layout request is already in progress")
)

// ==================== 表单状态 ====================

// Form 苗床数量与蔬菜选择，以及加载/结果状态
type Form struct {
	beds     garden.BedSelection
	selected map[string]bool
	loading  bool
	outcome  Outcome
}

// NewForm 所有数量默认为 0，未选蔬菜
func NewForm() *Form {
	return &Form{selected: make(map[string]bool)}
}

// SetBedCount 设置某一尺寸的数量
func (f *Form) SetBedCount(size garden.BedSize, value int) error {
	return f.beds.Set(size, value)
}

// BedCount 获取某一尺寸的数量
func (f *Form) BedCount(size garden.BedSize) int {
	return f.beds.Count(size)
}

// Beds 当前苗床选择
func (f *Form) Beds() garden.BedSelection {
	return f.beds
}

// ToggleVegetable 选中/取消
func (f *Form) ToggleVegetable(name string) {
	if f.selected[name] {
		delete(f.selected, name)
		return
	}
	f.selected[name] = true
}

// IsSelected 是否已选中
func (f *Form) IsSelected(name string) bool {
	return f.selected[name]
}

// SelectedVegetables 按目录顺序返回已选蔬菜
func (f *Form) SelectedVegetables() []string {
	names := make([]string, 0, len(f.selected))
	for name := range f.selected {
		names = append(names, name)
	}
	return garden.SortByCatalog(names)
}

// Loading 是否有在途请求
func (f *Form) Loading() bool {
	return f.loading
}

// Outcome 最近一次提交的结果
func (f *Form) Outcome() Outcome {
	return f.outcome
}

// Summary 总数与非零尺寸明细，如 "2 × 2x2 feet beds"
func (f *Form) Summary() (int, []string) {
	lines := make([]string, 0, len(garden.BedSizes))
	for _, size := range garden.BedSizes {
		if n := f.beds.Count(size); n > 0 {
			lines = append(lines, fmt.Sprintf("%d × %s feet beds", n, size))
		}
	}
	return f.beds.Total(), lines
}

// ==================== 提交流程 ====================

// Submit 校验并进入加载状态，返回待发送的请求
// 校验失败不发请求，结果记为 ValidationError
func (f *Form) Submit() (garden.LayoutRequest, error) {
	if f.loading {
		return garden.LayoutRequest{}, ErrBusy
	}

	req := garden.LayoutRequest{
		Beds:       f.beds,
		Vegetables: f.SelectedVegetables(),
	}
	if req.Beds.Total() == 0 || len(req.Vegetables) == 0 {
		f.outcome = Outcome{Kind: OutcomeValidationError, Text: MsgSelectionRequired}
		return garden.LayoutRequest{}, ErrSelectionRequired
	}

	f.loading = true
	f.outcome = Outcome{}
	return req, nil
}

// Complete 保存布局文本并退出加载状态
func (f *Form) Complete(layout string) {
	f.loading = false
	f.outcome = Outcome{Kind: OutcomeSuccess, Text: layout}
}

// Fail 保存错误信息并退出加载状态
func (f *Form) Fail(err error) {
	f.loading = false
	msg := MsgGenerateFailed
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	f.outcome = Outcome{Kind: OutcomeTransportError, Text: msg}
}

// Run 同步完成一次提交，供非交互场景使用
func (f *Form) Run(ctx context.Context, client LayoutRequester) Outcome {
	req, err := f.Submit()
	if err != nil {
		if errors.Is(err, ErrBusy) {
			return Outcome{Kind: OutcomeValidationError, Text: err.Error()}
		}
		return f.outcome
	}

	f.Complete(client.RequestLayout(ctx, req.Beds, req.Vegetables))
	return f.outcome
}
