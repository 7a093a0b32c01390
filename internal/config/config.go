package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/TypeTerrors/gonfig"
	"github.com/shouni/gemini-poem-kit/pkg/adapters"
	"github.com/shouni/gemini-poem-kit/pkg/domain"
	"github.com/shouni/gemini-poem-kit/pkg/imgutil"
)

const (
	BackendGenAI  = "genai"
	BackendOpenAI = "openai"

	DefaultPort       = "8080"
	DefaultModelName  = "gemini-2.5-flash"
	DefaultOpenAIName = "gpt-4o-mini"
	DefaultTimeout    = 60 * time.Second
	DefaultBodyLimit  = 8 * 1024 * 1024
)

type Config struct {
	API      ApiConfig      `yaml:"api"`
	Model    ModelConfig    `yaml:"model"`
	Gemini   GeminiConfig   `yaml:"gemini"`
	OpenAI   OpenAIConfig   `yaml:"openai"`
	Upload   UploadConfig   `yaml:"upload"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Log      LogConfig      `yaml:"log"`
}

type ApiConfig struct {
	Port           string `yaml:"port"`
	AllowedOrigins string `yaml:"allowedOrigins"`
	// BodyLimit はリクエストボディの上限バイト数。base64 の膨張分を含めて指定する。
	BodyLimit int `yaml:"bodyLimit"`
}

type ModelConfig struct {
	Backend     string   `yaml:"backend"`
	Name        string   `yaml:"name"`
	Temperature *float32 `yaml:"temperature"`
	Seed        *int64   `yaml:"seed"`
	Timeout     string   `yaml:"timeout"`
}

type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"apiKey"`
	BaseURL string `yaml:"baseURL"`
}

type UploadConfig struct {
	MaxBytes  int      `yaml:"maxBytes"`
	MIMETypes []string `yaml:"mimeTypes"`
}

type DefaultsConfig struct {
	Tone   string `yaml:"tone"`
	Length string `yaml:"length"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load は YAML 設定ファイルと .env を読み込み、デフォルト値を補ってから検証します。
// YAML 内の ${VAR} は環境変数で展開されます。.env が存在しない場合は無視されます。
func Load(path, envPath string) (Config, error) {
	if envPath == "" {
		envPath = ".env"
	}

	loaded, err := gonfig.Load[Config](
		gonfig.WithConfigFile(path),
		gonfig.WithDotenv(envPath),
	)
	if err != nil {
		return Config{}, fmt.Errorf("設定ファイルの読み込みに失敗しました (%s): %w", path, err)
	}

	cfg := Config{
		API:      loaded.API,
		Model:    loaded.Model,
		Gemini:   loaded.Gemini,
		OpenAI:   loaded.OpenAI,
		Upload:   loaded.Upload,
		Defaults: loaded.Defaults,
		Log:      loaded.Log,
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyDefaults は未設定の項目にデフォルト値を入れます。
func (c *Config) ApplyDefaults() {
	if c.API.Port == "" {
		c.API.Port = DefaultPort
	}
	if c.API.AllowedOrigins == "" {
		c.API.AllowedOrigins = "*"
	}
	if c.API.BodyLimit <= 0 {
		c.API.BodyLimit = DefaultBodyLimit
	}

	c.Model.Backend = strings.ToLower(strings.TrimSpace(c.Model.Backend))
	if c.Model.Backend == "" {
		c.Model.Backend = BackendGenAI
	}
	if c.Model.Name == "" {
		if c.Model.Backend == BackendOpenAI {
			c.Model.Name = DefaultOpenAIName
		} else {
			c.Model.Name = DefaultModelName
		}
	}

	if c.Upload.MaxBytes <= 0 {
		c.Upload.MaxBytes = imgutil.DefaultMaxBytes
	}
	if len(c.Upload.MIMETypes) == 0 {
		c.Upload.MIMETypes = append([]string(nil), imgutil.DefaultMIMETypes...)
	}

	if strings.TrimSpace(c.Defaults.Tone) == "" {
		c.Defaults.Tone = domain.DefaultTone
	}
	if c.Defaults.Length == "" {
		c.Defaults.Length = string(domain.DefaultLength)
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate は設定の整合性を検証し、問題をまとめて返します。
func (c Config) Validate() error {
	var errs []error

	switch c.Model.Backend {
	case BackendGenAI:
		if c.Gemini.APIKey == "" {
			errs = append(errs, fmt.Errorf("gemini.apiKey is required for backend %q", BackendGenAI))
		}
	case BackendOpenAI:
		if c.OpenAI.APIKey == "" {
			errs = append(errs, fmt.Errorf("openai.apiKey is required for backend %q", BackendOpenAI))
		}
	default:
		errs = append(errs, fmt.Errorf("model.backend must be %q or %q, got %q", BackendGenAI, BackendOpenAI, c.Model.Backend))
	}

	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}
	if t := c.Model.Temperature; t != nil && (*t < 0 || *t > 2) {
		errs = append(errs, fmt.Errorf("model.temperature must be between 0 and 2, got %v", *t))
	}
	if _, err := domain.ParsePoemLength(c.Defaults.Length); err != nil {
		errs = append(errs, fmt.Errorf("defaults.length: %w", err))
	}
	if c.API.BodyLimit < c.Upload.MaxBytes {
		errs = append(errs, fmt.Errorf("api.bodyLimit (%d) must not be smaller than upload.maxBytes (%d)", c.API.BodyLimit, c.Upload.MaxBytes))
	}

	return errors.Join(errs...)
}

// Timeout はモデル呼び出し1回あたりの上限時間を返します。
func (c Config) Timeout() (time.Duration, error) {
	if c.Model.Timeout == "" {
		return DefaultTimeout, nil
	}
	d, err := time.ParseDuration(c.Model.Timeout)
	if err != nil {
		return 0, fmt.Errorf("model.timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("model.timeout must not be negative, got %s", d)
	}
	return d, nil
}

// DefaultStyle は stylePreferences が省略されたときに使う文字列を返します。
func (c Config) DefaultStyle() string {
	return domain.StylePreferences(c.Defaults.Tone, domain.PoemLength(c.Defaults.Length))
}

func (c Config) UploadPolicy() imgutil.UploadPolicy {
	return imgutil.UploadPolicy{
		MaxBytes:  c.Upload.MaxBytes,
		MIMETypes: c.Upload.MIMETypes,
	}
}

func (c Config) BackendOptions() adapters.Options {
	return adapters.Options{
		Temperature: c.Model.Temperature,
		Seed:        c.Model.Seed,
	}
}
