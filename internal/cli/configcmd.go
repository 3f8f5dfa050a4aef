package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/graphport/graphport/pkg/config"
)

// newConfigCmd creates the config inspection command.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the resolved configuration",
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

// newConfigShowCmd creates the "config show" subcommand.
func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration with secrets redacted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd.Context())
			if err != nil {
				return err
			}

			printKeyValue("protocol", cfg.Protocol)
			printKeyValue("server", cfg.Server)
			if cfg.ClientProtocolHostname != "" {
				printKeyValue("view base", cfg.ClientProtocolHostname)
			}
			printKeyValue("api version", strconv.Itoa(cfg.APIVersion))
			printKeyValue("key", redact(cfg.Key))
			printKeyValue("username", cfg.Username)
			printKeyValue("password", redact(cfg.Password))
			if cfg.DatasetPrefix != "" {
				printKeyValue("prefix", cfg.DatasetPrefix)
			}
			if cfg.SkipCertificateValidation {
				printWarning("TLS certificate validation is disabled")
			}
			return nil
		},
	}
}

// newConfigPathCmd creates the "config path" subcommand.
func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Context().Value(configPathKey).(string)
			if path == "" {
				path = config.DefaultPath()
			}
			if path == "" {
				return fmt.Errorf("cannot resolve a config path")
			}
			fmt.Println(path)
			return nil
		},
	}
}

// redact hides a secret while showing whether it is set.
func redact(s string) string {
	if s == "" {
		return "(unset)"
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", 6) + s[len(s)-2:]
}
