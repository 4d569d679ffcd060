package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nmedina/wardload/internal/config"
)

var (
	cfg     config.Config
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "wardload",
	Short: "Ward roster CSV → Postgres patient importer",
	Long: "Reads ward roster spreadsheet exports (local CSV file or share URL) and\n" +
		"reconciles them into the Postgres patient store in two phases: validate,\n" +
		"then commit.",
}

func init() {
	_ = godotenv.Load()

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.DSN, "dsn", os.Getenv("DATABASE_URL"), "Postgres connection string (or set DATABASE_URL)")
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfgFile, "config", "", "Optional YAML config file")
}

// loadConfigFile merges the optional YAML config before a subcommand runs.
func loadConfigFile() error {
	if cfgFile == "" {
		return nil
	}
	return cfg.LoadFromFile(cfgFile)
}
