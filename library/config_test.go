package library

import (
	"os"
	"testing"
)

func TestConfigDefaults(t *testing.T) {
	for _, key := range []string{"LIBRARY_DATA_FILE", "LIBRARY_LOAN_DAYS", "LIBRARY_BORROW_LIMIT", "LIBRARY_LOG_LEVEL"} {
		t.Setenv(key, "") // register restore, then clear for real
		os.Unsetenv(key)
	}

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.DataFile != "library_Alexandria.json" {
		t.Fatalf("unexpected data file default: %q", cfg.DataFile)
	}
	if cfg.LoanDays != 14 || cfg.BorrowLimit != 7 {
		t.Fatalf("unexpected loan defaults: %d days, limit %d", cfg.LoanDays, cfg.BorrowLimit)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level default: %q", cfg.LogLevel)
	}
}

func TestConfigOverrides(t *testing.T) {
	t.Setenv("LIBRARY_DATA_FILE", "/tmp/cat.json")
	t.Setenv("LIBRARY_LOAN_DAYS", "30")
	t.Setenv("LIBRARY_BORROW_LIMIT", "3")
	t.Setenv("LIBRARY_LOG_LEVEL", "debug")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.DataFile != "/tmp/cat.json" || cfg.LoanDays != 30 || cfg.BorrowLimit != 3 || cfg.LogLevel != "debug" {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}
