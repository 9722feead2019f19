package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8089" {
		t.Errorf("Expected Port to be 8089, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Lineup.Budget != 150 {
		t.Errorf("Expected default budget to be 150, got %v", cfg.Lineup.Budget)
	}

	if cfg.Futebol.CampeonatoID != 10 {
		t.Errorf("Expected CampeonatoID to be 10, got %d", cfg.Futebol.CampeonatoID)
	}

	if cfg.Export.Sink != "file" {
		t.Errorf("Expected export sink to be file, got %s", cfg.Export.Sink)
	}

	if cfg.Redis.Enabled {
		t.Error("Expected Redis to be disabled by default")
	}

	if cfg.LLM.Enabled() {
		t.Error("Expected LLM to be disabled without OPENAI_API_KEY")
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("DEFAULT_BUDGET", "120.5")
	t.Setenv("DEFAULT_FORMATION", "1-4-4-2")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("LOG_LEVEL", "info")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Lineup.Budget != 120.5 {
		t.Errorf("Expected budget to be 120.5, got %v", cfg.Lineup.Budget)
	}

	if cfg.Lineup.Formation != "1-4-4-2" {
		t.Errorf("Expected formation to be 1-4-4-2, got %s", cfg.Lineup.Formation)
	}

	if !cfg.LLM.Enabled() || cfg.LLM.Temperature != 0.2 {
		t.Errorf("Expected LLM enabled with temperature 0.2, got %+v", cfg.LLM)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to be info, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	t.Setenv("ENV", "invalid")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when ENV is invalid, got nil")
	}
}

func TestValidateExportSink(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"unknown sink", map[string]string{"EXPORT_SINK": "gcs"}, true},
		{"postgres without url", map[string]string{"EXPORT_SINK": "postgres"}, true},
		{"postgres with url", map[string]string{"EXPORT_SINK": "postgres", "DATABASE_URL": "postgresql://u:p@localhost:5432/db"}, false},
		{"dynamodb without table", map[string]string{"EXPORT_SINK": "dynamodb"}, true},
		{"dynamodb with table", map[string]string{"EXPORT_SINK": "dynamodb", "DYNAMO_TABLE": "sensai"}, false},
		{"s3 without bucket", map[string]string{"EXPORT_SINK": "s3"}, true},
		{"s3 with bucket", map[string]string{"EXPORT_SINK": "s3", "S3_BUCKET": "sensai-data"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Unsetenv("DATABASE_URL")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNonPositiveBudget(t *testing.T) {
	t.Setenv("DEFAULT_BUDGET", "0")

	_, err := Load()
	if err == nil {
		t.Error("Expected error when DEFAULT_BUDGET is zero, got nil")
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "2h")

	duration := getEnvAsDuration("TEST_DURATION", "1h")
	expected := 2 * time.Hour

	if duration != expected {
		t.Errorf("Expected duration to be %v, got %v", expected, duration)
	}
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("TEST_INT", "100")

	value := getEnvAsInt("TEST_INT", 50)
	if value != 100 {
		t.Errorf("Expected value to be 100, got %d", value)
	}
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "not-a-number")

	value := getEnvAsFloat("TEST_FLOAT", 0.7)
	if value != 0.7 {
		t.Errorf("Expected fallback 0.7, got %v", value)
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL", "true")

	value := getEnvAsBool("TEST_BOOL", false)
	if value != true {
		t.Errorf("Expected value to be true, got %v", value)
	}
}
