package cli

import (
	"github.com/spf13/cobra"

	"github.com/graphport/graphport/pkg/client"
	"github.com/graphport/graphport/pkg/session"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the upload service and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			if username != "" {
				cfg.Username = username
			}
			if password != "" {
				cfg.Password = password
			}

			store, err := session.NewFileStore("")
			if err != nil {
				return err
			}
			defer store.Close()

			c := client.New(cfg, store)
			if _, err := c.Login(ctx); err != nil {
				return err
			}

			printSuccess("logged in to %s", cfg.Server)
			printDetail("session stored in %s", store.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "account username (overrides config)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (overrides config)")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			store, err := session.NewFileStore("")
			if err != nil {
				return err
			}
			defer store.Close()

			if err := client.New(cfg, store).Logout(ctx); err != nil {
				return err
			}
			printSuccess("logged out of %s", cfg.Server)
			return nil
		},
	}
}
