package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type PaymentConfig struct {
	Env          string `yaml:"env" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	PaymentDB    `yaml:"payment_db"`
	LogConfig    `yaml:"log_config"`
	Wompi        `yaml:"wompi"`
	KafkaService `yaml:"kafka-service"`
	SMTP         `yaml:"smtp"`
}

type HTTPServer struct {
	Host            string        `yaml:"host" env-default:"0.0.0.0"`
	Port            string        `yaml:"port" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type PaymentDB struct {
	Dsn            string `yaml:"dsn" env:"PAYMENT_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

// Wompi holds the payment-link processor settings. BaseURL selects sandbox
// or production; the events secret signs webhook callbacks and must never
// ship in the YAML file itself.
type Wompi struct {
	BaseURL         string        `yaml:"base_url"`
	CheckoutBaseURL string        `yaml:"checkout_base_url"`
	APIKey          string        `yaml:"api_key" env:"WOMPI_API_KEY"`
	EventsSecret    string        `yaml:"events_secret" env:"WOMPI_EVENTS_SECRET"`
	RedirectURL     string        `yaml:"redirect_url"`
	Currency        string        `yaml:"currency" env-default:"COP"`
	Timeout         time.Duration `yaml:"timeout" env-default:"10s"`
}

type KafkaService struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	Topic   string `yaml:"topic" env-default:"payment-events"`
	Enabled bool   `yaml:"enabled" env-default:"false"`
}

type SMTP struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port" env-default:"587"`
	From     string `yaml:"from"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	Enabled  bool   `yaml:"enabled" env-default:"false"`
}

func MustLoad() *PaymentConfig {

	// Processing env config variable and file
	configPath := os.Getenv("PAYMENT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("PAYMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg PaymentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
