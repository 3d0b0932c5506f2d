package config

import "testing"

func TestLoadDoesNotInjectWeakAuthDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")

	cfg := Load()
	if cfg.AuthSecret != "" {
		t.Fatalf("expected empty AUTH_SECRET when unset, got %q", cfg.AuthSecret)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DASHBOARD_TTL_SECONDS", "ACCESS_TOKEN_TTL_MINUTES", "LOW_STOCK_THRESHOLD_KG", "INACTIVE_AFTER_DAYS", "DIGEST_CRON_SCHEDULE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.DashboardTTLSeconds != 30 {
		t.Fatalf("expected default dashboard TTL 30, got %d", cfg.DashboardTTLSeconds)
	}
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("expected default token TTL 480, got %d", cfg.AccessTokenTTLMinutes)
	}
	if cfg.LowStockThresholdKg != 15 {
		t.Fatalf("expected default low-stock threshold 15, got %v", cfg.LowStockThresholdKg)
	}
	if cfg.InactiveAfterDays != 14 {
		t.Fatalf("expected default inactive window 14, got %d", cfg.InactiveAfterDays)
	}
	if cfg.DigestCronSchedule != "0 20 * * *" {
		t.Fatalf("unexpected default digest schedule %q", cfg.DigestCronSchedule)
	}
}

func TestLoadRejectsNonsenseNumbers(t *testing.T) {
	t.Setenv("DASHBOARD_TTL_SECONDS", "-5")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "bogus")
	t.Setenv("LOW_STOCK_THRESHOLD_KG", "0")
	t.Setenv("INACTIVE_AFTER_DAYS", "0")

	cfg := Load()
	if cfg.DashboardTTLSeconds != 30 {
		t.Fatalf("negative TTL must fall back to 30, got %d", cfg.DashboardTTLSeconds)
	}
	if cfg.AccessTokenTTLMinutes != 480 {
		t.Fatalf("unparsable token TTL must fall back to 480, got %d", cfg.AccessTokenTTLMinutes)
	}
	if cfg.LowStockThresholdKg != 15 {
		t.Fatalf("zero threshold must fall back to 15, got %v", cfg.LowStockThresholdKg)
	}
	if cfg.InactiveAfterDays != 14 {
		t.Fatalf("zero inactive window must fall back to 14, got %d", cfg.InactiveAfterDays)
	}
}

func TestAddress(t *testing.T) {
	cfg := Config{Port: "9090"}
	if got := cfg.Address(); got != ":9090" {
		t.Fatalf("expected :9090, got %q", got)
	}
}
