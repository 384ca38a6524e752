package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carbongpt/internal/config"
	"carbongpt/internal/logging"
)

var (
	configPath string

	appConfig *config.AppConfig
	logger    *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "carbongpt",
	Short: "Grounded question answering over carbon certification standards",
	Long: `carbongpt answers questions about carbon credit certification standards
(VCS, Gold Standard, CDM and related documents) using retrieval over an
indexed document corpus. Answers quote the standards verbatim and name
the documents they came from.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Absent .env files are fine; variables may come from the shell.
		_ = godotenv.Load()

		var err error
		if configPath != "" {
			appConfig, err = config.Load(configPath)
		} else {
			appConfig, _, err = config.LoadDefault()
		}
		if err != nil {
			return err
		}
		if err := appConfig.Validate(); err != nil {
			return err
		}
		logger, err = logging.New(appConfig.Logging.Level, appConfig.Logging.File)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(updateCmd)
}
