package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestApplyDotEnvKeepsExistingVariables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	contents := "FT_TEST_NEW=from-file\nFT_TEST_EXISTING=from-file\n# comment\nexport FT_TEST_QUOTED=\"a b\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("FT_TEST_EXISTING", "from-env")
	t.Setenv("FT_TEST_NEW", "")
	os.Unsetenv("FT_TEST_NEW")
	t.Setenv("FT_TEST_QUOTED", "")
	os.Unsetenv("FT_TEST_QUOTED")

	loaded, skipped, err := applyDotEnv(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if loaded != 2 || skipped != 1 {
		t.Fatalf("expected loaded=2 skipped=1, got loaded=%d skipped=%d", loaded, skipped)
	}
	if got := os.Getenv("FT_TEST_EXISTING"); got != "from-env" {
		t.Fatalf("expected env value to win, got %q", got)
	}
	if got := os.Getenv("FT_TEST_NEW"); got != "from-file" {
		t.Fatalf("expected file value, got %q", got)
	}
	if got := os.Getenv("FT_TEST_QUOTED"); got != "a b" {
		t.Fatalf("expected unquoted value, got %q", got)
	}
}

func TestEnvHelpersFallback(t *testing.T) {
	t.Setenv("FT_TEST_INT", "abc")
	if got := getEnvInt("FT_TEST_INT", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}

	t.Setenv("FT_TEST_DURATION", "90s")
	if got := getEnvDuration("FT_TEST_DURATION", time.Second); got != 90*time.Second {
		t.Fatalf("expected 90s, got %s", got)
	}

	t.Setenv("FT_TEST_LIST", " a, ,b ")
	got := getEnvList("FT_TEST_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b], got %v", got)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{
		HTTPPort: "8080",
		Env:      "production",
		Quotes:   QuotesConfig{RunAfterHour: 19, TimeZone: "UTC"},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing jwt secret error")
	}

	cfg.Auth.JWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cfg.HTTPPort = "http"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected invalid port error")
	}
}

func TestGetDSN(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable", TimeZone: "UTC"}
	want := "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC"
	if got := cfg.GetDSN(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	cfg.DSN = "postgres://x"
	if got := cfg.GetDSN(); got != "postgres://x" {
		t.Fatalf("expected explicit dsn, got %q", got)
	}
}
