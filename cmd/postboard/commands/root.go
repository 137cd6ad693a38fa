package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yungbote/postboard-backend/internal/app"
	"github.com/yungbote/postboard-backend/internal/platform/envutil"
	"github.com/yungbote/postboard-backend/internal/platform/logger"
)

var (
	// Global flags
	configFile string
	logMode    string
)

var rootCmd = &cobra.Command{
	Use:   "postboard",
	Short: "Postboard publishing backend",
	Long: `Postboard serves the post publishing API: authors create, edit and
delete their own posts and attach existing tags to them.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (overrides CONFIG_FILE)")
	rootCmd.PersistentFlags().StringVar(&logMode, "log-mode", "", "development or production (overrides LOG_MODE)")

	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

// bootstrap builds the logger and loads configuration for any subcommand.
func bootstrap() (*logger.Logger, app.Config, error) {
	if configFile != "" {
		if err := os.Setenv("CONFIG_FILE", configFile); err != nil {
			return nil, app.Config{}, err
		}
	}
	mode := logMode
	if mode == "" {
		mode = envutil.String("LOG_MODE", "development")
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, app.Config{}, fmt.Errorf("init logger: %w", err)
	}
	cfg, err := app.LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, app.Config{}, fmt.Errorf("load config: %w", err)
	}
	return log, cfg, nil
}
