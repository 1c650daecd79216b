package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LowStockThreshold != 20 {
		t.Errorf("LowStockThreshold = %d, want 20", cfg.LowStockThreshold)
	}
	if cfg.MaxResumeAttempts != 3 {
		t.Errorf("MaxResumeAttempts = %d, want 3", cfg.MaxResumeAttempts)
	}
	if cfg.TaxIDPrefix != "RO" {
		t.Errorf("TaxIDPrefix = %q, want RO", cfg.TaxIDPrefix)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "15")
	t.Setenv("MAX_RESUME_ATTEMPTS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LowStockThreshold != 15 {
		t.Errorf("LowStockThreshold = %d, want 15", cfg.LowStockThreshold)
	}
	if cfg.MaxResumeAttempts != 5 {
		t.Errorf("MaxResumeAttempts = %d, want 5", cfg.MaxResumeAttempts)
	}
}
