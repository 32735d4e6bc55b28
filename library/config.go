package library

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config carries the runtime settings of the catalog manager.
type Config struct {
	DataFile    string `envconfig:"LIBRARY_DATA_FILE" default:"library_Alexandria.json"`
	LoanDays    int    `envconfig:"LIBRARY_LOAN_DAYS" default:"14"`
	BorrowLimit int    `envconfig:"LIBRARY_BORROW_LIMIT" default:"7"`
	LogLevel    string `envconfig:"LIBRARY_LOG_LEVEL" default:"info"`
}

// NewConfig reads config from the environment, honoring a local .env file
// when present.
func NewConfig() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process config: %w", err)
	}
	return cfg, nil
}
