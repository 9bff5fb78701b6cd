package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
server:
  mode: debug
jwt:
  secret: short
  expire_hours: 2
storage:
  type: local
  local_path: `+filepath.Join(dir, "uploads")+`
quiz:
  max_time_limit: 240
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.JWT.ExpireTime != 2*time.Hour {
		t.Fatalf("ExpireTime = %v, want 2h", cfg.JWT.ExpireTime)
	}
	if cfg.Quiz.MaxTimeLimit != 240 || cfg.Quiz.TitleMinLength != 3 || cfg.Quiz.TitleMaxLength != 100 {
		t.Fatalf("unexpected quiz policy: %+v", cfg.Quiz)
	}
	if cfg.Session.TTL() != 24*time.Hour {
		t.Fatalf("session TTL = %v, want 24h", cfg.Session.TTL())
	}
	if !strings.HasSuffix(cfg.ConfigPath, "config.yaml") {
		t.Fatalf("ConfigPath = %q", cfg.ConfigPath)
	}
	if _, err := os.Stat(filepath.Join(dir, "uploads")); err != nil {
		t.Fatalf("local storage dir not created: %v", err)
	}
}

func TestQuizConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     QuizConfig
		wantErr bool
	}{
		{"defaults", QuizConfig{TitleMinLength: 3, TitleMaxLength: 100, MaxTimeLimit: 180, MinOptions: 1}, false},
		{"max below min", QuizConfig{TitleMinLength: 10, TitleMaxLength: 5, MaxTimeLimit: 180, MinOptions: 1}, true},
		{"zero time limit", QuizConfig{TitleMinLength: 3, TitleMaxLength: 100, MaxTimeLimit: 0, MinOptions: 1}, true},
		{"zero min options", QuizConfig{TitleMinLength: 3, TitleMaxLength: 100, MaxTimeLimit: 180, MinOptions: 0}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
