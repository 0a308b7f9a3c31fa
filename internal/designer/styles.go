package designer

import "github.com/charmbracelet/lipgloss"

// Styles 界面样式
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style
	Notice   lipgloss.Style
	Error    lipgloss.Style
	Spinner  lipgloss.Style
	Result   lipgloss.Style
}

// DefaultStyles 默认配色
func DefaultStyles() Styles {
	green := lipgloss.Color("#2E7D32")
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(green).MarginBottom(1),
		Header:   lipgloss.NewStyle().Bold(true).Underline(true),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F9A825")).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(green),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Button:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(green).Padding(0, 2),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD")).Background(lipgloss.Color("241")).Padding(0, 2),
		Notice: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F9A825")).
			Padding(1, 3),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#C62828")).Bold(true),
		Spinner: lipgloss.NewStyle().Foreground(green),
		Result:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(green),
	}
}
