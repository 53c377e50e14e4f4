package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"db-shuttle/internal/logger"
)

var (
	logLevel  string
	logFormat string
	log       zerolog.Logger
)

var RootCmd = &cobra.Command{
	Use:   "db-shuttle",
	Short: "Stream tables between database engines, masking sensitive fields on the way",
	Long: `
     _ _               _           _   _   _
  __| | |__        ___| |__  _   _| |_| |_| | ___
 / _` + "`" + ` | '_ \ _____/ __| '_ \| | | | __| __| |/ _ \
| (_| | |_) |_____\__ \ | | | |_| | |_| |_| |  __/
 \__,_|_.__/      |___/_| |_|\__,_|\__|\__|_|\___|

DB SHUTTLE - Cross-Engine Table Migrator & Anonymizer
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = logger.New(os.Stderr, viper.GetString("log.level"), viper.GetString("log.format"))
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (console, json)")

	viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", RootCmd.PersistentFlags().Lookup("log-format"))
	viper.AutomaticEnv()
}
