package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iola1999/AssppWeb/internal/auth"
	"github.com/iola1999/AssppWeb/internal/config"
	"github.com/iola1999/AssppWeb/internal/store"
	"github.com/iola1999/AssppWeb/internal/store/sqlite"
	"github.com/iola1999/AssppWeb/internal/tui"
)

var (
	// version is set via ldflags at build time.
	version = "dev"
	cfgFile string

	// jsonFlag enables JSON output for all commands.
	jsonFlag bool
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "asspp",
		Short:   "Apple account manager",
		Long:    "Manage saved Apple store accounts: add, re-authenticate with 2FA, and move them between machines via clipboard import/export.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			authenticator := newAuthenticator(cfg)
			return tui.Run(db, authenticator, cfg.UI.ShowSecrets)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("asspp %s\n", version))
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	root.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output in JSON format")
	root.AddCommand(newAccountCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newExportCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// openDB creates the data directory and opens the SQLite database.
func openDB() (*sqlite.DB, error) {
	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "asspp.db")
	db, err := sqlite.New(dbPath, store.NewKeyringSecretStore())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// loadConfig loads the application configuration from the config file.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.toml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newAuthenticator(cfg *config.Config) *auth.Client {
	return auth.NewClient(cfg.Auth.Endpoint, cfg.Auth.PodEndpoint, cfg.AuthTimeout())
}
