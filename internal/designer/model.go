package designer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"garden_designer/internal/garden"
)

const (
	labelGenerate = "Generate Garden Layout"
	labelLoading  = "Designing Your Garden..."
)

// Renderer 把布局文本渲染成终端输出
type Renderer func(text string, width int) string

// layoutDoneMsg 请求完成
type layoutDoneMsg struct {
	layout string
}

// layoutFailedMsg 请求异常
type layoutFailedMsg struct {
	err error
}

// ==================== Model ====================

// Model 表单界面：苗床行、蔬菜行、提交按钮依次排列，光标在其间移动
type Model struct {
	form       *Form
	client     LayoutRequester
	ctx        context.Context
	logger     *zap.Logger
	vegetables []string
	cursor     int
	notice     string
	spinner    spinner.Model
	viewport   viewport.Model
	render     Renderer
	styles     Styles
	width      int
	height     int
}

// Option 可选配置
type Option func(*Model)

// WithRenderer 替换默认的 glamour 渲染
func WithRenderer(r Renderer) Option {
	return func(m *Model) { m.render = r }
}

// WithLogger 注入日志
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// WithContext 请求使用的上下文，程序退出时取消
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// NewModel 创建界面
func NewModel(client LayoutRequester, opts ...Option) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		form:       NewForm(),
		client:     client,
		ctx:        context.Background(),
		logger:     zap.NewNop(),
		vegetables: garden.Vegetables(),
		spinner:    sp,
		viewport:   viewport.New(80, 20),
		render:     MarkdownRenderer,
		styles:     DefaultStyles(),
		width:      80,
	}
	m.spinner.Style = m.styles.Spinner
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// MarkdownRenderer glamour 渲染，失败时原样输出
func MarkdownRenderer(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}

// PlainRenderer 按宽度折行输出
func PlainRenderer(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(text)
}

// Form 当前表单状态
func (m Model) Form() *Form {
	return m.form
}

// Notice 当前阻塞提示
func (m Model) Notice() string {
	return m.notice
}

func (m Model) Init() tea.Cmd {
	return nil
}

// 行布局: [0,3) 苗床，[3,3+len(veg)) 蔬菜，最后一行是按钮
func (m Model) rowCount() int {
	return len(garden.BedSizes) + len(m.vegetables) + 1
}

func (m Model) buttonRow() int {
	return m.rowCount() - 1
}

func (m Model) bedAt(row int) (garden.BedSize, bool) {
	if row >= 0 && row < len(garden.BedSizes) {
		return garden.BedSizes[row], true
	}
	return "", false
}

func (m Model) vegetableAt(row int) (string, bool) {
	i := row - len(garden.BedSizes)
	if i >= 0 && i < len(m.vegetables) {
		return m.vegetables[i], true
	}
	return "", false
}

// ==================== Update ====================

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeResult()
		return m, nil

	case layoutDoneMsg:
		m.form.Complete(msg.layout)
		m.setResult()
		return m, nil

	case layoutFailedMsg:
		m.logger.Error("布局请求异常", zap.Error(msg.err))
		m.form.Fail(msg.err)
		return m, nil

	case spinner.TickMsg:
		if !m.form.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// 提示框阻塞其它操作，任意键关闭
	if m.notice != "" {
		m.notice = ""
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j", "tab":
		if m.cursor < m.buttonRow() {
			m.cursor++
		}
	case "left", "h", "-":
		m.adjustBed(-1)
	case "right", "l", "+", "=":
		m.adjustBed(1)
	case " ", "x":
		if name, ok := m.vegetableAt(m.cursor); ok {
			m.form.ToggleVegetable(name)
		}
	case "enter":
		if m.cursor == m.buttonRow() {
			return m.submit()
		}
		if name, ok := m.vegetableAt(m.cursor); ok {
			m.form.ToggleVegetable(name)
		}
	case "g":
		return m.submit()
	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) adjustBed(delta int) {
	size, ok := m.bedAt(m.cursor)
	if !ok {
		return
	}
	n := m.form.BedCount(size) + delta
	if n < 0 || n > garden.MaxBedChoice {
		return
	}
	_ = m.form.SetBedCount(size, n)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	req, err := m.form.Submit()
	if err != nil {
		if errors.Is(err, ErrSelectionRequired) {
			m.notice = MsgSelectionRequired
		}
		// 加载中按钮禁用，忽略
		return m, nil
	}

	m.logger.Info("提交布局请求",
		zap.Int("total_beds", req.Beds.Total()),
		zap.Int("vegetables", len(req.Vegetables)),
	)
	return m, tea.Batch(m.spinner.Tick, m.requestCmd(req))
}

func (m Model) requestCmd(req garden.LayoutRequest) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = layoutFailedMsg{err: fmt.Errorf("layout request panicked: %v", r)}
			}
		}()
		if client == nil {
			return layoutFailedMsg{err: errors.New("layout client is not configured")}
		}
		return layoutDoneMsg{layout: client.RequestLayout(ctx, req.Beds, req.Vegetables)}
	}
}

func (m *Model) resultWidth() int {
	if m.width > 4 {
		return m.width - 4
	}
	return 76
}

func (m *Model) resizeResult() {
	m.viewport.Width = m.resultWidth()
	if m.height > 0 {
		h := m.height - lipgloss.Height(m.formView()) - 4
		if h < 8 {
			h = 8
		}
		m.viewport.Height = h
	}
	if m.form.Outcome().Kind == OutcomeSuccess {
		m.setResult()
	}
}

func (m *Model) setResult() {
	m.viewport.SetContent(m.render(m.form.Outcome().Text, m.resultWidth()))
	m.viewport.GotoTop()
}

// ==================== View ====================

func (m Model) View() string {
	if m.notice != "" {
		box := m.styles.Notice.Render(m.notice + "\n\n" + m.styles.Muted.Render("press any key"))
		if m.width > 0 && m.height > 0 {
			return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
		}
		return box
	}

	var sb strings.Builder
	sb.WriteString(m.formView())

	outcome := m.form.Outcome()
	switch outcome.Kind {
	case OutcomeTransportError:
		sb.WriteString("\n")
		sb.WriteString(m.styles.Error.Render(outcome.Text))
		sb.WriteString("\n")
	case OutcomeSuccess:
		sb.WriteString("\n")
		sb.WriteString(m.styles.Header.Render("Your Garden Layout"))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Result.Render(m.viewport.View()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("↑/↓ move • ←/→ beds • space toggle • enter generate • pgup/pgdown scroll • q quit"))
	return sb.String()
}

func (m Model) formView() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("AI Garden Layout Designer"))
	sb.WriteString("\n")

	sb.WriteString(m.styles.Header.Render("Select Your Raised Beds"))
	sb.WriteString("\n")
	for i, size := range garden.BedSizes {
		line := fmt.Sprintf("%s feet beds:  ◀ %2d ▶", size, m.form.BedCount(size))
		sb.WriteString(m.row(i, line))
	}

	total, lines := m.form.Summary()
	if total > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Header.Render("Your Garden Summary:"))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("Total beds: %d\n", total))
		for _, l := range lines {
			sb.WriteString("  • " + l + "\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Header.Render("Select Vegetables:"))
	sb.WriteString("\n")
	for i, name := range m.vegetables {
		row := len(garden.BedSizes) + i
		box := "[ ]"
		label := name
		if m.form.IsSelected(name) {
			box = "[x]"
			label = m.styles.Selected.Render(name)
		}
		sb.WriteString(m.row(row, box+" "+label))
	}

	sb.WriteString("\n")
	cursor := "  "
	if m.cursor == m.buttonRow() {
		cursor = m.styles.Cursor.Render("> ")
	}
	if m.form.Loading() {
		sb.WriteString(cursor + m.styles.Disabled.Render(m.spinner.View()+" "+labelLoading))
	} else {
		sb.WriteString(cursor + m.styles.Button.Render(labelGenerate))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (m Model) row(i int, content string) string {
	if i == m.cursor {
		return m.styles.Cursor.Render("> ") + content + "\n"
	}
	return "  " + content + "\n"
}
