package designer

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garden_designer/internal/garden"
)

func newTestModel(client LayoutRequester) Model {
	return NewModel(client, WithRenderer(func(text string, _ int) string { return text }))
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(k)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

// drain 执行 Cmd 并把布局结果消息回灌给 Model
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			inner := c()
			switch inner.(type) {
			case layoutDoneMsg, layoutFailedMsg:
				next, _ := m.Update(inner)
				m = next.(Model)
			}
		}
		return m
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModel_AdjustBedCounts(t *testing.T) {
	m := newTestModel(nil)

	m, _ = press(t, m, keyRight, keyRight, keyRight, keyLeft)
	assert.Equal(t, 2, m.Form().BedCount(garden.BedSize2x2))

	// 不低于 0
	m, _ = press(t, m, keyDown, keyLeft)
	assert.Equal(t, 0, m.Form().BedCount(garden.BedSize4x4))

	// 不超过上限
	for i := 0; i < garden.MaxBedChoice+3; i++ {
		m, _ = press(t, m, keyRight)
	}
	assert.Equal(t, garden.MaxBedChoice, m.Form().BedCount(garden.BedSize4x4))
}

func TestModel_ToggleVegetables(t *testing.T) {
	m := newTestModel(nil)

	// 光标移到第一个蔬菜 Tomatoes
	m, _ = press(t, m, keyDown, keyDown, keyDown, keySpace)
	assert.True(t, m.Form().IsSelected("Tomatoes"))

	m, _ = press(t, m, keyDown, runes("x"))
	assert.Equal(t, []string{"Tomatoes", "Lettuce"}, m.Form().SelectedVegetables())

	m, _ = press(t, m, keyUp, keySpace)
	assert.Equal(t, []string{"Lettuce"}, m.Form().SelectedVegetables())

	// 苗床行上的空格无效
	m, _ = press(t, m, keyUp, keyUp, keyUp, keyUp, keySpace)
	assert.Equal(t, []string{"Lettuce"}, m.Form().SelectedVegetables())
}

func TestModel_SubmitWithoutSelectionShowsNotice(t *testing.T) {
	client := &fakeRequester{reply: "PLAN"}
	m := newTestModel(client)

	m, cmd := press(t, m, runes("g"))
	assert.Nil(t, cmd)
	assert.Equal(t, MsgSelectionRequired, m.Notice())
	assert.Contains(t, m.View(), MsgSelectionRequired)
	assert.Equal(t, 0, client.calls)

	// 任意键关闭提示，且该按键不生效
	m, _ = press(t, m, keyRight)
	assert.Empty(t, m.Notice())
	assert.Equal(t, 0, m.Form().BedCount(garden.BedSize2x2))
}

func TestModel_SubmitFlow(t *testing.T) {
	client := &fakeRequester{reply: "GARDEN PLAN"}
	m := newTestModel(client)

	m, _ = press(t, m, keyRight, keyDown, keyDown, keyDown, keySpace)
	m, cmd := press(t, m, runes("g"))

	require.NotNil(t, cmd)
	assert.True(t, m.Form().Loading())
	assert.Contains(t, m.View(), labelLoading)
	assert.NotContains(t, m.View(), labelGenerate)

	// 加载中再次提交被忽略
	m, again := press(t, m, runes("g"))
	assert.Nil(t, again)

	m = drain(t, m, cmd)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, 1, client.beds.Beds2x2)
	assert.Equal(t, []string{"Tomatoes"}, client.vegetables)

	assert.False(t, m.Form().Loading())
	assert.Equal(t, Outcome{Kind: OutcomeSuccess, Text: "GARDEN PLAN"}, m.Form().Outcome())
	view := m.View()
	assert.Contains(t, view, "Your Garden Layout")
	assert.Contains(t, view, "GARDEN PLAN")
	assert.Contains(t, view, labelGenerate)
}

func TestModel_EnterOnButtonSubmits(t *testing.T) {
	client := &fakeRequester{reply: "PLAN"}
	m := newTestModel(client)
	require.NoError(t, m.Form().SetBedCount(garden.BedSize4x8, 1))
	m.Form().ToggleVegetable("Corn")

	for i := 0; i < m.rowCount(); i++ {
		m, _ = press(t, m, keyDown)
	}
	m, cmd := press(t, m, keyEnter)
	require.True(t, m.Form().Loading())

	m = drain(t, m, cmd)
	assert.Equal(t, "PLAN", m.Form().Outcome().Text)
}

func TestModel_MissingClientFails(t *testing.T) {
	m := newTestModel(nil)
	require.NoError(t, m.Form().SetBedCount(garden.BedSize2x2, 1))
	m.Form().ToggleVegetable("Beans")

	m, cmd := press(t, m, runes("g"))
	m = drain(t, m, cmd)

	assert.Equal(t, OutcomeTransportError, m.Form().Outcome().Kind)
	assert.False(t, m.Form().Loading())
	assert.Contains(t, m.View(), "not configured")
}

func TestModel_SummaryView(t *testing.T) {
	m := newTestModel(nil)
	assert.NotContains(t, m.View(), "Total beds")

	m, _ = press(t, m, keyRight, keyRight, keyDown, keyDown, keyRight)
	view := m.View()
	assert.Contains(t, view, "Total beds: 3")
	assert.Contains(t, view, "2 × 2x2 feet beds")
	assert.Contains(t, view, "1 × 4x8 feet beds")
	assert.False(t, strings.Contains(view, "× 4x4"), "零数量尺寸不出现在汇总")
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(nil, WithContext(context.Background()))
	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
