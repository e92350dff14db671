package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/herbveda")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.OTPLength != 6 || cfg.OTPMaxAttempts != 5 {
		t.Fatalf("OTP policy = %d digits, %d attempts", cfg.OTPLength, cfg.OTPMaxAttempts)
	}
	if cfg.OTPTTL != 10*time.Minute {
		t.Fatalf("OTPTTL = %v", cfg.OTPTTL)
	}
	if cfg.ResetTokenTTL != 15*time.Minute {
		t.Fatalf("ResetTokenTTL = %v", cfg.ResetTokenTTL)
	}
	if len(cfg.AllowOrigins) != 1 || cfg.AllowOrigins[0] != "*" {
		t.Fatalf("AllowOrigins = %v", cfg.AllowOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/herbveda")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("OTP_LENGTH", "8")
	t.Setenv("OTP_TTL", "3m")
	t.Setenv("ALLOW_ORIGINS", " http://localhost:5173 , https://herbandveda.example ")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Fatalf("Port = %q", cfg.Port)
	}
	if cfg.OTPLength != 8 {
		t.Fatalf("OTPLength = %d", cfg.OTPLength)
	}
	if cfg.OTPTTL != 3*time.Minute {
		t.Fatalf("OTPTTL = %v", cfg.OTPTTL)
	}
	want := []string{"http://localhost:5173", "https://herbandveda.example"}
	if len(cfg.AllowOrigins) != len(want) {
		t.Fatalf("AllowOrigins = %v", cfg.AllowOrigins)
	}
	for i := range want {
		if cfg.AllowOrigins[i] != want[i] {
			t.Fatalf("AllowOrigins[%d] = %q, want %q", i, cfg.AllowOrigins[i], want[i])
		}
	}
}

func TestHelpersFallBackOnGarbage(t *testing.T) {
	if got := positiveInt("not-a-number", 7); got != 7 {
		t.Fatalf("positiveInt = %d", got)
	}
	if got := positiveInt("-2", 7); got != 7 {
		t.Fatalf("positiveInt(-2) = %d", got)
	}
	if got := duration("soon", time.Minute); got != time.Minute {
		t.Fatalf("duration = %v", got)
	}
	if got := splitAndTrim(" , , "); len(got) != 1 || got[0] != "*" {
		t.Fatalf("splitAndTrim = %v", got)
	}
}
