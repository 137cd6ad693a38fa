package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yungbote/postboard-backend/internal/app"
	"github.com/yungbote/postboard-backend/internal/data/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long: `Run AutoMigrate for users, tags, posts and the post_tag join table.

Examples:
  postboard migrate
  DB_DRIVER=sqlite SQLITE_PATH=dev.db postboard migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, cfg, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		svc, err := app.OpenDB(log, cfg)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer svc.Close()

		if err := db.AutoMigrateAll(svc.DB().WithContext(cmd.Context())); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		log.Info("schema up to date", "driver", cfg.DB.Driver)
		return nil
	},
}
