// Package config предоставляет структуры и функцию для парсинга и загрузки
// конфига. Конфиг строится один раз при старте процесса и передается в
// компоненты явно, оркестрация не читает глобальное состояние.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	LeadsFile  string `yaml:"leads_file" env:"LEADS_FILE" env-default:"leads.csv"`
	HTTPServer `yaml:"http_server"`
	Processor  `yaml:"processor"`
	Payments   `yaml:"payments"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"ADDRESS_HTTP" env-default:":4242"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Processor структура с учетными данными платёжного провайдера.
// SecretKey обязателен: без него процесс не должен начинать
// обслуживание трафика.
type Processor struct {
	SecretKey string        `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	Timeout   time.Duration `yaml:"timeout" env-default:"30s"`
}

// Payments структура с вариантами поведения платёжных потоков,
// выбираемыми для конкретного развертывания.
type Payments struct {
	DefaultCurrency string `yaml:"default_currency" env:"DEFAULT_CURRENCY" env-default:"usd"`
	// AllowEmaillessCharge разрешает разовый платеж без email.
	// По умолчанию email обязателен, как и раньше.
	AllowEmaillessCharge bool `yaml:"allow_emailless_charge"`
	// SubscriptionConfirmMode: "client" — подтверждение на стороне клиента
	// по токену, "server" — привязка способа оплаты и подтверждение на
	// стороне сервиса.
	SubscriptionConfirmMode string `yaml:"subscription_confirm_mode" env-default:"client"`
}

// MustLoad функция для загрузки конфига, завершает процесс при отсутствии
// файла конфига или учетных данных провайдера.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if cfg.Processor.SecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is not set")
	}
	return &cfg
}

// String печатает конфиг без учетных данных провайдера.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"LeadsFile: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Processor:\n"+
			"  SecretKeySet: %t\n"+
			"  Timeout: %s\n"+
			"Payments:\n"+
			"  DefaultCurrency: %s\n"+
			"  AllowEmaillessCharge: %t\n"+
			"  SubscriptionConfirmMode: %s\n",
		c.Env,
		c.LeadsFile,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.SecretKey != "",
		c.Processor.Timeout,
		c.DefaultCurrency,
		c.AllowEmaillessCharge,
		c.SubscriptionConfirmMode,
	)
}
