package cmd

import (
	"github.com/spf13/cobra"

	"github.com/firefly-engineering/profilectl/internal/app"
	"github.com/firefly-engineering/profilectl/internal/config"
	"github.com/firefly-engineering/profilectl/internal/errors"
	"github.com/firefly-engineering/profilectl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	dataDir    string
	configDir  string
)

var rootCmd = &cobra.Command{
	Use:   "profilectl",
	Short: "Terminal profile management CLI",
	Long: `profilectl manages terminal profiles: named sets of properties such as
the command to run, the working directory, the color scheme and the font.

Profiles inherit unset properties from a parent profile and ultimately from
a built-in fallback. They are stored as INI files under the data directory;
legacy desktop-entry profiles are read as well.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Stdout = cmd.OutOrStdout()
		logging.Stderr = cmd.ErrOrStderr()
		logging.Setup(verbose, jsonOutput, cmd.ErrOrStderr())
		return initApp()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Writable data directory (default $"+config.EnvDataDir+" or XDG data home)")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Settings directory (default $"+config.EnvConfigDir+" or XDG config home)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// initApp builds app.Default unless one is already installed and no path
// flag asks for a different layout.
func initApp() error {
	if app.Default != nil && dataDir == "" && configDir == "" {
		return nil
	}

	p := config.DefaultPaths()
	if dataDir != "" {
		rest := p.DataDirs[1:]
		p = config.NewPaths(dataDir, p.ConfigDir, rest...)
	}
	if configDir != "" {
		p.ConfigDir = configDir
	}

	a, err := app.New(app.WithPaths(p))
	if err != nil {
		return errors.ConfigError("failed to initialize", err)
	}
	app.SetDefault(a)
	return nil
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
)
