package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultListenAddr = ":3000"
	DefaultDatabase   = "shopdash.db"
)

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	TLS      bool   `mapstructure:"tls"`
	CertFile string `mapstructure:"certFile"`
	KeyFile  string `mapstructure:"keyFile"`
	CAFile   string `mapstructure:"caFile"`
}

type MailConfig struct {
	Backend string     `mapstructure:"backend"` // "smtp" or "log"
	From    string     `mapstructure:"from"`
	SMTP    SMTPConfig `mapstructure:"smtp"`
}

type Config struct {
	Debug      bool   `mapstructure:"debug"`
	ListenAddr string `mapstructure:"listenAddr"`
	// TrustProxyHeaders makes X-Forwarded-Proto decide cookie Secure; only
	// enable behind a TLS-terminating proxy you control.
	TrustProxyHeaders bool           `mapstructure:"trustProxyHeaders"`
	Database          DatabaseConfig `mapstructure:"database"`
	Mail              MailConfig     `mapstructure:"mail"`
}

func (c *Config) Sanitize() error {
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabase
	}
	if c.Mail.Backend == "" {
		c.Mail.Backend = "log"
	}
	return nil
}

func LoadConfig(filename string) (*Config, error) {
	viper.SetConfigFile(filename)
	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Sanitize(); err != nil {
		return nil, err
	}
	return &config, nil
}
