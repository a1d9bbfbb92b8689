package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// InvoiceDir is the directory scanned for invoice PDFs.
	InvoiceDir string
	// BankStatementPath is the statement PDF parsed on a bank rescan.
	BankStatementPath string

	// RateLimit is a limiter format string such as "100-M" (100 per minute).
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("INVOICE_DIR", "./facturas")
	viper.SetDefault("BANK_STATEMENT_PATH", "./estado_de_cuenta.pdf")
	viper.SetDefault("RATE_LIMIT", "300-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.InvoiceDir = viper.GetString("INVOICE_DIR")
	cfg.BankStatementPath = viper.GetString("BANK_STATEMENT_PATH")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
