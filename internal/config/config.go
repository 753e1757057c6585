package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kotashimizu/care-plan/internal/logger"
	"github.com/kotashimizu/care-plan/internal/utils"
)

// Config carries everything the server needs at startup. Values come from
// an optional YAML file first, then environment variables override.
type Config struct {
	Port    string `yaml:"port"`
	LogMode string `yaml:"log_mode"`

	OpenAI OpenAIConfig `yaml:"openai"`
	Export ExportConfig `yaml:"export"`

	CORSOrigins []string `yaml:"cors_origins"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	OrgID   string `yaml:"org_id"`
	BaseURL string `yaml:"base_url"`

	PlanModel    string `yaml:"plan_model"`
	OptionsModel string `yaml:"options_model"`
	QualityModel string `yaml:"quality_model"`

	// Per-call timeouts in seconds. Options generation is the longest
	// request.
	OptionsTimeoutSec int `yaml:"options_timeout_sec"`
	PlanTimeoutSec    int `yaml:"plan_timeout_sec"`
	QualityTimeoutSec int `yaml:"quality_timeout_sec"`
}

type ExportConfig struct {
	// FontPath points at a CJK TTF. When empty the vector export path
	// degrades to Helvetica plus domain-term transliteration.
	FontPath string  `yaml:"font_path"`
	Scale    float64 `yaml:"scale"`
	MarginMM float64 `yaml:"margin_mm"`
}

func defaults() Config {
	return Config{
		Port:    "8080",
		LogMode: "development",
		OpenAI: OpenAIConfig{
			BaseURL:           "https://api.openai.com",
			PlanModel:         "gpt-4o-mini",
			OptionsModel:      "gpt-4o-mini",
			QualityModel:      "gpt-4o",
			OptionsTimeoutSec: 45,
			PlanTimeoutSec:    35,
			QualityTimeoutSec: 20,
		},
		Export: ExportConfig{
			Scale:    2,
			MarginMM: 5,
		},
		CORSOrigins: []string{"http://localhost:3000"},
	}
}

// Load reads the YAML file named by CAREPLAN_CONFIG (if set) and applies
// environment overrides on top.
func Load(log *logger.Logger) (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CAREPLAN_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	}

	cfg.Port = utils.GetEnv("PORT", cfg.Port, log)
	cfg.LogMode = utils.GetEnv("LOG_MODE", cfg.LogMode, log)

	cfg.OpenAI.APIKey = utils.GetEnv("OPENAI_API_KEY", cfg.OpenAI.APIKey, nil)
	cfg.OpenAI.OrgID = utils.GetEnv("OPENAI_ORG_ID", cfg.OpenAI.OrgID, nil)
	cfg.OpenAI.BaseURL = utils.GetEnv("OPENAI_BASE_URL", cfg.OpenAI.BaseURL, log)
	cfg.OpenAI.PlanModel = utils.GetEnv("OPENAI_PLAN_MODEL", cfg.OpenAI.PlanModel, log)
	cfg.OpenAI.OptionsModel = utils.GetEnv("OPENAI_OPTIONS_MODEL", cfg.OpenAI.OptionsModel, log)
	cfg.OpenAI.QualityModel = utils.GetEnv("OPENAI_QUALITY_MODEL", cfg.OpenAI.QualityModel, log)
	cfg.OpenAI.OptionsTimeoutSec = utils.GetEnvAsInt("OPENAI_OPTIONS_TIMEOUT_SECONDS", cfg.OpenAI.OptionsTimeoutSec, log)
	cfg.OpenAI.PlanTimeoutSec = utils.GetEnvAsInt("OPENAI_PLAN_TIMEOUT_SECONDS", cfg.OpenAI.PlanTimeoutSec, log)
	cfg.OpenAI.QualityTimeoutSec = utils.GetEnvAsInt("OPENAI_QUALITY_TIMEOUT_SECONDS", cfg.OpenAI.QualityTimeoutSec, log)

	cfg.Export.FontPath = utils.GetEnv("EXPORT_FONT_PATH", cfg.Export.FontPath, log)

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if s := strings.TrimSpace(p); s != "" {
				cleaned = append(cleaned, s)
			}
		}
		if len(cleaned) > 0 {
			cfg.CORSOrigins = cleaned
		}
	}

	return cfg, nil
}
