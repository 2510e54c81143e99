package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Graph   GraphConfig
	Lists   ListsConfig
	Recalc  RecalcConfig
	MongoDB MongoDBConfig
	Ledger  LedgerConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// GraphConfig contains credentials and endpoints for the Microsoft Graph API
// that fronts the SharePoint site.
type GraphConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	BaseURL      string
	LoginURL     string
	Scope        string
	SiteHost     string
	SitePath     string
}

// ListsConfig names the SharePoint lists the service reads and writes.
type ListsConfig struct {
	Batches     string
	LabourLines string
}

// RecalcConfig holds scheduler settings for periodic recalculation.
type RecalcConfig struct {
	CronSchedule string
	WindowDays   int
	WriteLabour  bool
}

// MongoDBConfig holds settings for the calculation snapshot archive.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// LedgerConfig holds settings for the optional Google Sheets operations
// ledger. Leaving SpreadsheetID empty disables the ledger.
type LedgerConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	SheetRange      string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Graph: GraphConfig{
			TenantID:     os.Getenv("TENANT_ID"),
			ClientID:     os.Getenv("CLIENT_ID"),
			ClientSecret: os.Getenv("CLIENT_SECRET"),
			BaseURL:      getenvWithDefault("GRAPH_BASE_URL", "https://graph.microsoft.com/v1.0"),
			LoginURL:     getenvWithDefault("GRAPH_LOGIN_URL", "https://login.microsoftonline.com"),
			Scope:        getenvWithDefault("GRAPH_SCOPE", "https://graph.microsoft.com/.default"),
			SiteHost:     os.Getenv("SP_HOST"),
			SitePath:     os.Getenv("SP_SITE_PATH"),
		},
		Lists: ListsConfig{
			Batches:     getenvWithDefault("SP_LIST_P_BATCHES", "P_Batches"),
			LabourLines: getenvWithDefault("SP_LIST_P_LABOURLINES", "P_LabourLines"),
		},
		Recalc: RecalcConfig{
			CronSchedule: getenvWithDefault("RECALC_CRON_SCHEDULE", "0 20 * * *"),
			WindowDays:   getenvIntWithDefault("RECALC_WINDOW_DAYS", 7),
			WriteLabour:  getenvBoolWithDefault("RECALC_WRITE_LABOUR", true),
		},
		MongoDB: MongoDBConfig{
			URI:    os.Getenv("MONGODB_URI"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "batchcost"),
		},
		Ledger: LedgerConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("LEDGER_SPREADSHEET_ID"),
			SheetRange:      getenvWithDefault("LEDGER_SHEET_RANGE", "Ledger!A:P"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Graph.TenantID == "":
		return errors.New("TENANT_ID must be provided")
	case c.Graph.ClientID == "":
		return errors.New("CLIENT_ID must be provided")
	case c.Graph.ClientSecret == "":
		return errors.New("CLIENT_SECRET must be provided")
	case c.Graph.SiteHost == "":
		return errors.New("SP_HOST must be provided")
	case c.Graph.SitePath == "":
		return errors.New("SP_SITE_PATH must be provided")
	}

	if c.Graph.BaseURL == "" || c.Graph.LoginURL == "" {
		return errors.New("GRAPH_BASE_URL and GRAPH_LOGIN_URL must not be empty")
	}

	if c.Lists.Batches == "" {
		return errors.New("SP_LIST_P_BATCHES must not be empty")
	}

	if c.Lists.LabourLines == "" {
		return errors.New("SP_LIST_P_LABOURLINES must not be empty")
	}

	if c.Recalc.CronSchedule == "" {
		return errors.New("RECALC_CRON_SCHEDULE must be provided")
	}

	if c.Recalc.WindowDays <= 0 {
		return errors.New("RECALC_WINDOW_DAYS must be positive")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}

	if c.Ledger.SpreadsheetID != "" && c.Ledger.CredentialsPath == "" {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH must be provided when LEDGER_SPREADSHEET_ID is set")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvIntWithDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBoolWithDefault(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
