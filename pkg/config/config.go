package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the service reads,
// e.g. RESUMERATER_GEMINI_API_KEY for gemini.api_key.
const EnvPrefix = "RESUMERATER"

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Rasterizer RasterizerConfig `mapstructure:"rasterizer"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Limits     LimitsConfig     `mapstructure:"limits"`
	RabbitMQ   RabbitMQConfig   `mapstructure:"rabbitmq"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         int           `mapstructure:"port" validate:"min=1,max=65535"`
	Host         string        `mapstructure:"host"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment" validate:"oneof=development staging production test"`
	LogLevel     string        `mapstructure:"log_level"`
}

// GeminiConfig configures the hosted multimodal model.
type GeminiConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model" validate:"required"`
	BaseURL string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// RasterizerConfig configures the pdftoppm invocation.
type RasterizerConfig struct {
	Binary string `mapstructure:"binary" validate:"required"`
	DPI    int    `mapstructure:"dpi" validate:"min=72,max=1200"`
}

// UploadConfig bounds what the upload endpoints accept.
type UploadConfig struct {
	MaxSize int64 `mapstructure:"max_size" validate:"gt=0"`
}

// LimitsConfig bounds resource use of the rating pipeline.
type LimitsConfig struct {
	// MaxConcurrent caps how many pipelines may rasterize/call the model at once.
	MaxConcurrent int `mapstructure:"max_concurrent" validate:"min=1"`
	// ModelRPS is the sustained model call rate; 0 disables limiting.
	ModelRPS float64 `mapstructure:"model_rps" validate:"gte=0"`
}

// RabbitMQConfig holds RabbitMQ connection configuration.
// An empty URL disables event publishing.
type RabbitMQConfig struct {
	URL            string        `mapstructure:"url"`
	Exchange       string        `mapstructure:"exchange" validate:"required_with=URL"`
	ReconnectDelay time.Duration `mapstructure:"reconnect_delay"`
	MaxRetries     int           `mapstructure:"max_retries"`
}

// Enabled reports whether events should be published.
func (c *RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}

// CORSConfig lists the browser origins allowed to call the JSON API.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var validate = validator.New()

// Validate checks field constraints and environment-specific requirements.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.Gemini.APIKey == "" {
		return errors.New(EnvPrefix + "_GEMINI_API_KEY must be set")
	}

	if c.Server.Environment == EnvProduction || c.Server.Environment == EnvStaging {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return errors.New("wildcard CORS origin not allowed in " + c.Server.Environment)
			}
		}
		if c.RabbitMQ.Enabled() && strings.Contains(c.RabbitMQ.URL, "localhost") {
			return errors.New(EnvPrefix + "_RABBITMQ_URL must be a non-localhost value in " + c.Server.Environment)
		}
	}

	return nil
}

// Load loads configuration from environment and config files with defaults applied.
// It does not validate; use LoadWithValidation in main().
func Load(serviceName string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/resumerater")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Server.Environment = strings.ToLower(cfg.Server.Environment)

	return &cfg, nil
}

// LoadWithValidation loads configuration and fails fast when it is unusable.
func LoadWithValidation(serviceName string) (*Config, error) {
	cfg, err := Load(serviceName)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults. Write timeout covers rasterization plus the model call.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 3*time.Minute)
	v.SetDefault("server.environment", EnvDevelopment)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("gemini.base_url", "")
	v.SetDefault("gemini.timeout", 90*time.Second)

	v.SetDefault("rasterizer.binary", "pdftoppm")
	v.SetDefault("rasterizer.dpi", 300)

	v.SetDefault("upload.max_size", 20<<20)

	v.SetDefault("limits.max_concurrent", 4)
	v.SetDefault("limits.model_rps", 1.0)

	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "rating.events")
	v.SetDefault("rabbitmq.reconnect_delay", 5*time.Second)
	v.SetDefault("rabbitmq.max_retries", 5)

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
}
