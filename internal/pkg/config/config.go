package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, store credentials, etc.)
// - default: Values common across all environments (timezone, timeout, etc.)
// -----------------------------------------------------------------------------

type Config struct {
	Server     ServerConfig
	CORS       CORSConfig
	Log        LogConfig
	Storehouse StorehouseConfig
	Redis      RedisConfig
	Catalog    CatalogConfig
	Checkout   CheckoutConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

// StorehouseConfig points at the versioned file host that holds the CSV
// documents (catalog, promotions, coupons and the order ledger).
type StorehouseConfig struct {
	BaseURL        string `envconfig:"STOREHOUSE_BASE_URL" default:"https://api.github.com"`
	Repository     string `envconfig:"STOREHOUSE_REPOSITORY" required:"true"`
	Branch         string `envconfig:"STOREHOUSE_BRANCH" default:"main"`
	Token          string `envconfig:"STOREHOUSE_TOKEN" required:"true"`
	ProductsPath   string `envconfig:"STOREHOUSE_PRODUCTS_PATH" default:"data/produtos.csv"`
	PromotionsPath string `envconfig:"STOREHOUSE_PROMOTIONS_PATH" default:"data/promocoes.csv"`
	CouponsPath    string `envconfig:"STOREHOUSE_COUPONS_PATH" default:"data/cupons.csv"`
	OrdersPath     string `envconfig:"STOREHOUSE_ORDERS_PATH" default:"data/pedidos.csv"`
}

type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CatalogConfig struct {
	// Civil timezone used for coupon expiry (day granularity) and order timestamps.
	TimeZone string        `envconfig:"CATALOG_TIMEZONE" default:"America/Sao_Paulo"`
	CacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
}

type CheckoutConfig struct {
	StoreName      string `envconfig:"CHECKOUT_STORE_NAME" default:"Vitrine"`
	WhatsAppNumber string `envconfig:"CHECKOUT_WHATSAPP_NUMBER" required:"true"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-Session-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Session-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"America/Sao_Paulo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"-10800"` // -3*60*60
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Location resolves the configured civil timezone, falling back to a fixed
// UTC-3 zone when the tz database is not available in the runtime image.
func (c *CatalogConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.FixedZone("-03", -3*60*60)
	}
	return loc
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Storehouse: StorehouseConfig{
			BaseURL:        "http://localhost:18080",
			Repository:     "acme/loja-dados",
			Branch:         "main",
			Token:          "test-token",
			ProductsPath:   "data/produtos.csv",
			PromotionsPath: "data/promocoes.csv",
			CouponsPath:    "data/cupons.csv",
			OrdersPath:     "data/pedidos.csv",
		},
		Redis: RedisConfig{
			Enabled: false,
		},
		Catalog: CatalogConfig{
			TimeZone: "America/Sao_Paulo",
			CacheTTL: time.Minute,
		},
		Checkout: CheckoutConfig{
			StoreName:      "Vitrine",
			WhatsAppNumber: "5511999990000",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "America/Sao_Paulo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: -10800,
		},
	}
}
