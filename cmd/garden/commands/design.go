package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"garden_designer/internal/designer"
	"garden_designer/pkg/gardenapi"
)

var endpointOverride string

var designCmd = &cobra.Command{
	Use:   "design",
	Short: "Open the interactive garden form",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := endpointOverride
		if endpoint == "" {
			endpoint = gardenapi.ResolveEndpoint(cfg.IsProduction(),
				cfg.Client.ProductionBaseURL, cfg.Client.DevelopmentBaseURL)
		}

		// 终端界面占用 stdout，日志只保留错误
		uiLogger := logger.WithOptions(zap.IncreaseLevel(zap.ErrorLevel))
		client := gardenapi.NewClient(endpoint, cfg.Client.Timeout, uiLogger)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		m := designer.NewModel(client,
			designer.WithContext(ctx),
			designer.WithLogger(uiLogger),
		)
		_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return err
	},
}

func init() {
	designCmd.Flags().StringVar(&endpointOverride, "endpoint", "", "Full layout endpoint URL (overrides environment-based selection)")
}
