package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config agrupa la configuración del conector (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	AvaTax   AvaTaxConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Platform PlatformConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string `validate:"required,oneof=development staging production test"`
	Name     string `validate:"required"`
	LogLevel string `validate:"omitempty,oneof=trace debug info warn error"`
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL    string
	Host           string
	Port           int `validate:"min=1,max=65535"`
	User           string
	Password       string
	DBName         string
	SSLMode        string `validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MigrateOnStart bool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN connection string con URL encoding para caracteres especiales en la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string `validate:"required,min=16"`
	Expiration int    `validate:"min=1"` // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int `validate:"min=1,max=65535"`
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AvaTaxConfig credenciales globales; cada tienda puede sobrescribirlas en avatax_store_config.
type AvaTaxConfig struct {
	URL         string `validate:"omitempty,url"`
	AccountID   string
	LicenseKey  string
	CompanyCode string
	Timeout     time.Duration
	Timezone    string
	Locale      string
}

// RedisConfig backend opcional para la bandera de error.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int `validate:"min=0,max=15"`
}

// NATSConfig consumidor de eventos de facturación. URL vacía desactiva el consumidor.
type NATSConfig struct {
	URL     string
	Queue   string
	Subject string
}

// PlatformConfig datos de la plataforma de comercio integrada.
type PlatformConfig struct {
	Version          string // decide la variante del historial de la orden
	ErrorFlagBackend string `validate:"oneof=postgres redis"`
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, AVATAX_URL, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "avatax-connector"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL:    getString(v, "DATABASE_URL", ""),
			Host:           getString(v, "DB_HOST", "localhost"),
			Port:           getInt(v, "DB_PORT", 5432),
			User:           getString(v, "DB_USER", "postgres"),
			Password:       getString(v, "DB_PASSWORD", ""),
			DBName:         getString(v, "DB_NAME", "avatax_connector"),
			SSLMode:        getString(v, "DB_SSLMODE", "disable"),
			MigrateOnStart: getBool(v, "MIGRATE_ON_START", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "avatax-connector"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		AvaTax: AvaTaxConfig{
			URL:         getString(v, "AVATAX_URL", "https://sandbox-rest.avatax.com"),
			AccountID:   getString(v, "AVATAX_ACCOUNT_ID", ""),
			LicenseKey:  getString(v, "AVATAX_LICENSE_KEY", ""),
			CompanyCode: getString(v, "AVATAX_COMPANY_CODE", "DEFAULT"),
			Timeout:     time.Duration(getInt(v, "AVATAX_TIMEOUT_SECONDS", 30)) * time.Second,
			Timezone:    getString(v, "AVATAX_TIMEZONE", "UTC"),
			Locale:      getString(v, "AVATAX_LOCALE", "en_US"),
		},
		Redis: RedisConfig{
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		NATS: NATSConfig{
			URL:     getString(v, "NATS_URL", ""),
			Queue:   getString(v, "NATS_QUEUE", "avatax-connector"),
			Subject: getString(v, "NATS_SUBJECT", "sales.documents.>"),
		},
		Platform: PlatformConfig{
			Version:          getString(v, "PLATFORM_VERSION", ""),
			ErrorFlagBackend: getString(v, "ERROR_FLAG_BACKEND", "postgres"),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate aplica las reglas de los tags `validate`.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config inválida: %w", err)
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
