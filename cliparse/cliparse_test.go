// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
	"time"
)

func TestParseFlags_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseMongo {
		t.Errorf("expected mongo backend by default, got %s", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != "mongodb://localhost:27017/" {
		t.Errorf("expected local mongo URL, got %s", cfg.DatabaseURL)
	}
	if cfg.DatabaseName != "pollconnect" {
		t.Errorf("expected database pollconnect, got %s", cfg.DatabaseName)
	}
	if cfg.SessionLifetime != 24*time.Hour {
		t.Errorf("expected 24h session lifetime, got %s", cfg.SessionLifetime)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_TYPE", "postgres")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("SHARE_BASE_URL", "https://polls.example.com")
	os.Setenv("SESSION_LIFETIME", "2h")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabasePostgres {
		t.Errorf("expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.ShareBaseURL != "https://polls.example.com" {
		t.Errorf("unexpected share URL %s", cfg.ShareBaseURL)
	}
	if cfg.SessionLifetime != 2*time.Hour {
		t.Errorf("expected 2h, got %s", cfg.SessionLifetime)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_TYPE", "postgres")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-t", "sqlite", "-d", "file:test.db"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite {
		t.Errorf("CLI should override env: expected sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	defer os.Clearenv()

	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad port env", map[string]string{"PORT": "abc"}, nil},
		{"port out of range", nil, []string{"-p", "70000"}},
		{"unknown backend", nil, []string{"-t", "redis"}},
		{"sql backend without URL", nil, []string{"-t", "postgres"}},
		{"bad session lifetime", map[string]string{"SESSION_LIFETIME": "forever"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
