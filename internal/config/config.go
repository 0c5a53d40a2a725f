package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultModel           = "qwen3-max"
	DefaultEndpoint        = "https://dashscope.aliyuncs.com/api/v1/services/aigc/text-generation/generation"
	DefaultTimeout         = 30 * time.Second
	DefaultTypewriterDelay = 30 * time.Millisecond

	// PlaceholderAPIKey is the value shipped in sample configs.
	PlaceholderAPIKey = "your_api_key_here"
)

var (
	ErrPlaceholderAPIKey = errors.New("DashScope API key is not configured")
)

type Config struct {
	DashScope  DashScopeConfig  `mapstructure:"dashscope"`
	Typewriter TypewriterConfig `mapstructure:"typewriter"`
}

type DashScopeConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model" validate:"required"`
	Endpoint string        `mapstructure:"endpoint" validate:"required,https_url"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// IsPlaceholderAPIKey reports whether the key was left unset or as the sample value.
func (c DashScopeConfig) IsPlaceholderAPIKey() bool {
	key := strings.TrimSpace(c.APIKey)
	return key == "" || strings.EqualFold(key, PlaceholderAPIKey)
}

// RequireAPIKey must be called before the first request is sent.
func (c DashScopeConfig) RequireAPIKey() error {
	if c.IsPlaceholderAPIKey() {
		return ErrPlaceholderAPIKey
	}
	return nil
}

type TypewriterConfig struct {
	Delay time.Duration `mapstructure:"delay" validate:"gte=0"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
	dotenvFile string
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/agrichat")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
		dotenvFile: ".env",
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	// Variables already present in the environment take precedence over .env
	if err := godotenv.Load(loader.dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", loader.dotenvFile, err)
	}

	v.SetDefault("dashscope.model", DefaultModel)
	v.SetDefault("dashscope.endpoint", DefaultEndpoint)
	v.SetDefault("dashscope.timeout", DefaultTimeout)
	v.SetDefault("typewriter.delay", DefaultTypewriterDelay)

	// Environment variables win over the config file
	if err := v.BindEnv("dashscope.api_key", "DASHSCOPE_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind DASHSCOPE_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("dashscope.model", "DASHSCOPE_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DASHSCOPE_MODEL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return nil, fmt.Errorf("validator.Struct() > %w", err)
		}
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
