package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
	Bot      BotConfig      `mapstructure:"bot"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Twitter  TwitterConfig  `mapstructure:"twitter"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	DedupTTL time.Duration `mapstructure:"dedup_ttl"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// BotConfig holds the tipping rules and bot identity.
type BotConfig struct {
	Currency          string `mapstructure:"currency"`
	CurrencyName      string `mapstructure:"currency_name"`
	CurrencySymbol    string `mapstructure:"currency_symbol"`
	MinTip            string `mapstructure:"min_tip"`
	BotAccount        string `mapstructure:"bot_account"`
	Status            string `mapstructure:"status"` // normal, maintenance
	MinTxConfirmation int    `mapstructure:"min_tx_confirmation"`
	DonationEpsilon   string `mapstructure:"donation_epsilon"`
	MaxWorkers        int64  `mapstructure:"max_workers"`
	ExplorerURL       string `mapstructure:"explorer_url"`
	HelpURL           string `mapstructure:"help_url"`
	DefaultLocale     string `mapstructure:"default_locale"`
}

// MinTipAmount parses MinTip as an exact decimal.
func (b BotConfig) MinTipAmount() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(b.MinTip)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bot.min_tip %q: %w", b.MinTip, err)
	}
	return d, nil
}

// Epsilon parses DonationEpsilon as an exact decimal.
func (b BotConfig) Epsilon() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(b.DonationEpsilon)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bot.donation_epsilon %q: %w", b.DonationEpsilon, err)
	}
	return d, nil
}

// WalletConfig points at the wallet daemon's JSON-RPC endpoint.
type WalletConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"` // 0 = no timeout
	Decimals int32         `mapstructure:"decimals"`
}

// URL returns the JSON-RPC endpoint.
func (w WalletConfig) URL() string {
	return fmt.Sprintf("http://%s:%d", w.Host, w.Port)
}

type TelegramConfig struct {
	Token       string `mapstructure:"token"`
	BotID       string `mapstructure:"bot_id"`
	BotName     string `mapstructure:"bot_name"`
	SecretToken string `mapstructure:"secret_token"`
	APIBase     string `mapstructure:"api_base"`
}

type TwitterConfig struct {
	ConsumerSecret string `mapstructure:"consumer_secret"`
	BearerToken    string `mapstructure:"bearer_token"`
	BotID          string `mapstructure:"bot_id"`
	BotName        string `mapstructure:"bot_name"`
	APIBase        string `mapstructure:"api_base"`
}

// AdminConfig configures the operator API. An empty PasswordHash disables it.
type AdminConfig struct {
	Username     string        `mapstructure:"username"`
	PasswordHash string        `mapstructure:"password_hash"` // argon2id encoded
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTExpiry    time.Duration `mapstructure:"jwt_expiry"`
	JWTIssuer    string        `mapstructure:"jwt_issuer"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: TIPBOT_.
// Nested keys use underscore: TIPBOT_DATABASE_HOST, TIPBOT_BOT_STATUS, etc.
// A .env file in the working directory is loaded first if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := newViper(path)

	// Read config file (not required - env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	return decode(v)
}

func newViper(path string) *viper.Viper {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3003)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "tipbot")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.dedup_ttl", "48h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("bot.currency", "nano")
	v.SetDefault("bot.currency_name", "Nano")
	v.SetDefault("bot.currency_symbol", "NANO")
	v.SetDefault("bot.min_tip", "0.00001")
	v.SetDefault("bot.bot_account", "tipbot")
	v.SetDefault("bot.status", "normal")
	v.SetDefault("bot.min_tx_confirmation", 6)
	v.SetDefault("bot.donation_epsilon", "0.00001")
	// 0 leaves concurrent settlements uncapped.
	v.SetDefault("bot.max_workers", 0)
	v.SetDefault("bot.default_locale", "en")
	v.SetDefault("wallet.host", "127.0.0.1")
	v.SetDefault("wallet.port", 8332)
	v.SetDefault("wallet.timeout", "0s")
	v.SetDefault("wallet.decimals", 8)
	v.SetDefault("telegram.api_base", "https://api.telegram.org")
	v.SetDefault("twitter.api_base", "https://api.twitter.com")
	v.SetDefault("admin.username", "admin")
	v.SetDefault("admin.jwt_expiry", "12h")
	v.SetDefault("admin.jwt_issuer", "tipbot")

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: TIPBOT_DATABASE_HOST -> database.host
	v.SetEnvPrefix("TIPBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if _, err := cfg.Bot.MinTipAmount(); err != nil {
		return nil, err
	}
	if _, err := cfg.Bot.Epsilon(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
