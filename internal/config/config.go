package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
		RateLimit      struct {
			RequestsPerSecond float64 `yaml:"requestsPerSecond"`
			Burst             int     `yaml:"burst"`
		} `yaml:"rateLimit"`
	} `yaml:"server"`

	Database DatabaseConfig `yaml:"database"`

	Logger LoggerConfig `yaml:"logger"`

	Artifacts struct {
		MapPath    string `yaml:"mapPath"`
		ReportPath string `yaml:"reportPath"`
	} `yaml:"artifacts"`

	Report ReportConfig `yaml:"report"`

	Minio struct {
		Enabled    bool   `yaml:"enabled"`
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`

	AI struct {
		Provider string `yaml:"provider"` // openai | local | none
		APIKey   string `yaml:"apiKey"`
		Model    string `yaml:"model"`
	} `yaml:"ai"`
}

const (
	AIProviderOpenAI = "openai"
	AIProviderLocal  = "local"
	AIProviderNone   = "none"
)

// DatabaseConfig selects the driver. sqlite3 uses Path, mysql/postgres use the host fields or DSN.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type LoggerConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ReportConfig struct {
	Converter  string        `yaml:"converter"` // chrome | wkhtmltopdf
	BinaryPath string        `yaml:"binaryPath"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads config.yaml. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.RateLimit.RequestsPerSecond == 0 {
		c.Server.RateLimit.RequestsPerSecond = 20
	}
	if c.Server.RateLimit.Burst == 0 {
		c.Server.RateLimit.Burst = 40
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite3"
	}
	if c.Database.Path == "" {
		c.Database.Path = "osint.db"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.Logger.Format == "" {
		c.Logger.Format = "json"
	}
	if c.Artifacts.MapPath == "" {
		c.Artifacts.MapPath = "static/heatmap.html"
	}
	if c.Artifacts.ReportPath == "" {
		c.Artifacts.ReportPath = "osint_report.pdf"
	}
	if c.Report.Converter == "" {
		c.Report.Converter = "chrome"
	}
	if c.Report.Timeout == 0 {
		c.Report.Timeout = 30 * time.Second
	}
	if c.AI.Provider == "" {
		c.AI.Provider = AIProviderOpenAI
	}
	if c.AI.Model == "" {
		c.AI.Model = "gpt-4o-mini"
	}
}

// Validate rejects unsupported driver and converter names.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Report.Converter {
	case "chrome", "wkhtmltopdf":
	default:
		return fmt.Errorf("unsupported report converter %q", c.Report.Converter)
	}
	switch c.AI.Provider {
	case AIProviderOpenAI, AIProviderLocal, AIProviderNone:
	default:
		return fmt.Errorf("unsupported ai provider %q", c.AI.Provider)
	}
	return nil
}

// DataSource builds the driver-specific connection string.
func (d DatabaseConfig) DataSource() string {
	if d.DSN != "" {
		return d.DSN
	}
	switch d.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
			d.User,
			d.Password,
			d.Host,
			d.Port,
			d.Name,
		)
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			d.Host, d.Port, d.User, d.Password, d.Name)
	default:
		return d.Path
	}
}
