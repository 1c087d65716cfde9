package cliparse

import "testing"

func TestParseFlagsDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DATABASE_TYPE", "")
	t.Setenv("ORGANIZER_KEY_SALT", "")
	t.Setenv("SHARE_SLUG_SALT", "")

	cfg, err := ParseFlags([]string{
		"-d", "postgres://localhost/squarepool",
		"-organizer-salt", "s1",
		"-slug-salt", "s2",
	})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 4180 {
		t.Errorf("default port = %d, want 4180", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("default database type = %q, want postgres", cfg.DatabaseType)
	}
}

func TestParseFlagsRequiredSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ORGANIZER_KEY_SALT", "")
	t.Setenv("SHARE_SLUG_SALT", "")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("expected error without database URL")
	}

	if _, err := ParseFlags([]string{"-d", "postgres://x"}); err == nil {
		t.Error("expected error without organizer key salt")
	}

	if _, err := ParseFlags([]string{"-d", "postgres://x", "-organizer-salt", "s"}); err == nil {
		t.Error("expected error without slug salt")
	}
}

func TestParseFlagsEnvFallback(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_URL", "postgres://env-db")
	t.Setenv("DATABASE_TYPE", "sqlite")
	t.Setenv("ORGANIZER_KEY_SALT", "env-org-salt")
	t.Setenv("SHARE_SLUG_SALT", "env-slug-salt")

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://env-db" {
		t.Errorf("database URL = %q", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("database type = %q, want sqlite", cfg.DatabaseType)
	}
	if cfg.OrganizerKeySalt != "env-org-salt" || cfg.ShareSlugSalt != "env-slug-salt" {
		t.Error("salts not read from environment")
	}
}

func TestParseFlagsPrecedence(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATABASE_URL", "postgres://env-db")
	t.Setenv("ORGANIZER_KEY_SALT", "env-salt")
	t.Setenv("SHARE_SLUG_SALT", "env-salt")

	cfg, err := ParseFlags([]string{"-p", "4321", "-d", "postgres://flag-db"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}
	if cfg.Port != 4321 {
		t.Errorf("flag port should win, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://flag-db" {
		t.Errorf("flag database URL should win, got %q", cfg.DatabaseURL)
	}
}

func TestParseFlagsInvalidValues(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("DATABASE_URL", "postgres://x")
	t.Setenv("ORGANIZER_KEY_SALT", "s")
	t.Setenv("SHARE_SLUG_SALT", "s")

	if _, err := ParseFlags(nil); err == nil {
		t.Error("expected error for non-numeric PORT")
	}

	t.Setenv("PORT", "4180")
	if _, err := ParseFlags([]string{"-t", "mongodb"}); err == nil {
		t.Error("expected error for unsupported database type")
	}
}
