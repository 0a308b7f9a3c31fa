package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"garden_designer/internal/config"
)

var (
	cfgFile string
	verbose bool

	// 由 PersistentPreRunE 填充
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "garden",
	Short: "Garden layout designer",
	Long: `garden 提供布局生成服务和终端表单两个入口。

  garden serve    启动 HTTP 服务
  garden design   打开终端表单并请求布局`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := NewLogger(cfg.Log.Level, verbose, cfg.IsProduction())
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute 运行根命令
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (yaml/json/toml); environment variables take precedence")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(designCmd)
}

// NewLogger 生产环境输出 JSON，其余输出彩色控制台格式
func NewLogger(level string, verbose, production bool) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	zc := zap.NewDevelopmentConfig()
	if production {
		zc = zap.NewProductionConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}
