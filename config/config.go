package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/fxjournal/internal/logger"
	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/render"
	"github.com/rustyeddy/fxjournal/storage"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces environment overrides, e.g. FXJOURNAL_STORAGE_TYPE.
const EnvPrefix = "FXJOURNAL"

// Config is the complete fxjournal configuration.
type Config struct {
	Storage    StorageConfig    `json:"storage" yaml:"storage" mapstructure:"storage"`
	Journal    JournalConfig    `json:"journal" yaml:"journal" mapstructure:"journal"`
	Calculator CalculatorConfig `json:"calculator" yaml:"calculator" mapstructure:"calculator"`
	Log        LogConfig        `json:"log" yaml:"log" mapstructure:"log"`
}

// StorageConfig selects the key/value backend holding the journal.
type StorageConfig struct {
	Type   string `json:"type" yaml:"type" mapstructure:"type"` // memory, file, sqlite or redis
	Dir    string `json:"dir,omitempty" yaml:"dir,omitempty" mapstructure:"dir"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty" mapstructure:"db_path"`

	Redis RedisConfig `json:"redis" yaml:"redis" mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr" mapstructure:"addr"`
	Password string `json:"password,omitempty" yaml:"password,omitempty" mapstructure:"password"`
	DB       int    `json:"db" yaml:"db" mapstructure:"db"`
	Prefix   string `json:"prefix" yaml:"prefix" mapstructure:"prefix"`
}

// JournalConfig contains journal parameters
type JournalConfig struct {
	Key    string `json:"key" yaml:"key" mapstructure:"key"`
	Format string `json:"format" yaml:"format" mapstructure:"format"` // default list format
}

// CalculatorConfig holds the calculator's starting values and limits.
type CalculatorConfig struct {
	AccountBalance float64 `json:"account_balance" yaml:"account_balance" mapstructure:"account_balance"`
	RiskPercentage float64 `json:"risk_percentage" yaml:"risk_percentage" mapstructure:"risk_percentage"`
	StopLossPips   float64 `json:"stop_loss_pips" yaml:"stop_loss_pips" mapstructure:"stop_loss_pips"`
	TakeProfitPips float64 `json:"take_profit_pips" yaml:"take_profit_pips" mapstructure:"take_profit_pips"`
	HighRiskPct    float64 `json:"high_risk_pct" yaml:"high_risk_pct" mapstructure:"high_risk_pct"`
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level" mapstructure:"level"`
	Development bool   `json:"development" yaml:"development" mapstructure:"development"`
}

// Options converts the storage section for storage.Open.
func (s StorageConfig) Options() storage.Options {
	return storage.Options{
		Type:          s.Type,
		Dir:           s.Dir,
		DBPath:        s.DBPath,
		RedisAddr:     s.Redis.Addr,
		RedisPassword: s.Redis.Password,
		RedisDB:       s.Redis.DB,
		RedisPrefix:   s.Redis.Prefix,
	}
}

// Load reads path (YAML or JSON, optional) over the defaults and then
// applies FXJOURNAL_* environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromFile is Load for a required file.
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is required")
	}
	return Load(path)
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("storage.type", d.Storage.Type)
	v.SetDefault("storage.dir", d.Storage.Dir)
	v.SetDefault("storage.db_path", d.Storage.DBPath)
	v.SetDefault("storage.redis.addr", d.Storage.Redis.Addr)
	v.SetDefault("storage.redis.password", d.Storage.Redis.Password)
	v.SetDefault("storage.redis.db", d.Storage.Redis.DB)
	v.SetDefault("storage.redis.prefix", d.Storage.Redis.Prefix)

	v.SetDefault("journal.key", d.Journal.Key)
	v.SetDefault("journal.format", d.Journal.Format)

	v.SetDefault("calculator.account_balance", d.Calculator.AccountBalance)
	v.SetDefault("calculator.risk_percentage", d.Calculator.RiskPercentage)
	v.SetDefault("calculator.stop_loss_pips", d.Calculator.StopLossPips)
	v.SetDefault("calculator.take_profit_pips", d.Calculator.TakeProfitPips)
	v.SetDefault("calculator.high_risk_pct", d.Calculator.HighRiskPct)

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case storage.TypeMemory:
	case storage.TypeFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir required for file storage")
		}
	case storage.TypeSQLite:
		if c.Storage.DBPath == "" {
			return fmt.Errorf("storage.db_path required for sqlite storage")
		}
	case storage.TypeRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr required for redis storage")
		}
	default:
		return fmt.Errorf("storage.type must be one of memory, file, sqlite, redis")
	}

	if c.Journal.Key == "" {
		return fmt.Errorf("journal.key is required")
	}
	if _, err := render.ByName(c.Journal.Format); err != nil {
		return fmt.Errorf("journal.format: %w", err)
	}

	if c.Calculator.AccountBalance <= 0 {
		return fmt.Errorf("calculator.account_balance must be positive")
	}
	if c.Calculator.RiskPercentage <= 0 || c.Calculator.RiskPercentage > 100 {
		return fmt.Errorf("calculator.risk_percentage must be between 0 and 100")
	}
	if c.Calculator.StopLossPips <= 0 {
		return fmt.Errorf("calculator.stop_loss_pips must be positive")
	}
	if c.Calculator.TakeProfitPips <= 0 {
		return fmt.Errorf("calculator.take_profit_pips must be positive")
	}
	if c.Calculator.HighRiskPct <= 0 {
		return fmt.Errorf("calculator.high_risk_pct must be positive")
	}

	if !logger.ValidLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Type:   storage.TypeFile,
			Dir:    defaultDataDir(),
			DBPath: filepath.Join(defaultDataDir(), "fxjournal.sqlite"),
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "fxjournal:",
			},
		},
		Journal: JournalConfig{
			Key:    journal.StorageKey,
			Format: render.FormatTable,
		},
		Calculator: CalculatorConfig{
			AccountBalance: 10000,
			RiskPercentage: 2,
			StopLossPips:   50,
			TakeProfitPips: 150,
			HighRiskPct:    5,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "fxjournal")
	}
	return "./.fxjournal"
}
