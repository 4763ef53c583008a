package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables and file location consulted by Path and Load.
const (
	EnvConfigPath = "NEWSDIGEST_CONFIG"
	EnvAPIKey     = "NEWS_API_KEY"
	DefaultPath   = "newsdigest.yaml"
)

// ErrMissingAPIKey is returned when no NewsAPI credential is configured.
var ErrMissingAPIKey = errors.New("config: news_api.api_key is required (set NEWS_API_KEY env var)")

type Config struct {
	NewsAPI         NewsAPIConfig  `yaml:"news_api"`
	TopN            int            `yaml:"top_n"`
	DefaultLanguage string         `yaml:"default_language"`
	ExportDir       string         `yaml:"export_dir"`
	Summary         SummaryConfig  `yaml:"summary"`
	Entities        EntitiesConfig `yaml:"entities"`
	Log             LogConfig      `yaml:"log"`
}

type NewsAPIConfig struct {
	APIKey            string `yaml:"api_key"`
	BaseURL           string `yaml:"base_url"`
	PageSize          int    `yaml:"page_size"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
	MaxRetries        int    `yaml:"max_retries"`
}

type SummaryConfig struct {
	Sentences int `yaml:"sentences"`
	// StopWords is either a list of words or the single entry "english".
	StopWords []string `yaml:"stop_words"`
}

type EntitiesConfig struct {
	Labels []string `yaml:"labels"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values.
func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if val, ok := os.LookupEnv(varName); ok {
			return val
		}
		return match
	})
}

func setDefaults(cfg *Config) {
	if cfg.NewsAPI.APIKey == "" || envVarRegex.MatchString(cfg.NewsAPI.APIKey) {
		cfg.NewsAPI.APIKey = os.Getenv(EnvAPIKey)
	}
	if cfg.NewsAPI.BaseURL == "" {
		cfg.NewsAPI.BaseURL = "https://newsapi.org/v2/everything"
	}
	if cfg.NewsAPI.TimeoutSeconds == 0 {
		cfg.NewsAPI.TimeoutSeconds = 30
	}
	if cfg.TopN == 0 {
		cfg.TopN = 15
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "en"
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	if cfg.Summary.Sentences == 0 {
		cfg.Summary.Sentences = 3
	}
	if len(cfg.Entities.Labels) == 0 {
		cfg.Entities.Labels = []string{"PERSON", "ORGANIZATION", "ORG", "GPE"}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
}

func validate(cfg *Config) error {
	if cfg.NewsAPI.APIKey == "" {
		return ErrMissingAPIKey
	}
	if cfg.NewsAPI.PageSize < 0 || cfg.NewsAPI.PageSize > 100 {
		return fmt.Errorf("config: news_api.page_size must be between 0 and 100, got %d", cfg.NewsAPI.PageSize)
	}
	if cfg.NewsAPI.RequestsPerMinute < 0 {
		return fmt.Errorf("config: news_api.requests_per_minute must not be negative")
	}
	if cfg.NewsAPI.MaxRetries < 0 {
		return fmt.Errorf("config: news_api.max_retries must not be negative")
	}
	if cfg.TopN < 0 {
		return fmt.Errorf("config: top_n must be positive, got %d", cfg.TopN)
	}
	if cfg.Summary.Sentences < 0 {
		return fmt.Errorf("config: summary.sentences must be positive, got %d", cfg.Summary.Sentences)
	}
	return nil
}

// Path returns the config file location, honouring NEWSDIGEST_CONFIG.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the config file, expands environment variables, applies defaults,
// and validates the configuration. A missing file is not an error: the tool
// runs on defaults plus NEWS_API_KEY.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	default:
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
