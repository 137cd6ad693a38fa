package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yungbote/postboard-backend/internal/services"
)

var (
	tokenUser string
	tokenName string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development access token",
	Long: `Sign an access token with the configured JWT secret.

Examples:
  postboard token --name ann
  postboard token --user 7d0f0e2c-4c1b-4d35-9f31-0d2f7a1f9b10 --name ann`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, cfg, err := bootstrap()
		if err != nil {
			return err
		}
		defer log.Sync()

		userID := uuid.New()
		if tokenUser != "" {
			if userID, err = uuid.Parse(tokenUser); err != nil {
				return fmt.Errorf("invalid --user: %w", err)
			}
		}
		identity, err := services.NewIdentityService(log, nil, services.IdentityConfig{
			SecretKey: cfg.JWT.SecretKey,
			Issuer:    cfg.JWT.Issuer,
			AccessTTL: cfg.AccessTTL(),
		})
		if err != nil {
			return err
		}
		token, err := identity.IssueToken(userID, tokenName)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user: %s\ntoken: %s\n", userID, token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User id (random when empty)")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "Display name carried in the token")
}
