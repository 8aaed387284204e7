package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	Theme        ThemeConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FERMEDIRECT_APP_ENV" required:"true"`
	Port         string `envconfig:"FERMEDIRECT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FERMEDIRECT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FERMEDIRECT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FERMEDIRECT_DB_DSN"`
	Driver string `envconfig:"FERMEDIRECT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FERMEDIRECT_DB_HOST"`
	LegacyPort     int    `envconfig:"FERMEDIRECT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FERMEDIRECT_DB_USER"`
	LegacyPassword string `envconfig:"FERMEDIRECT_DB_PASSWORD"`
	LegacyName     string `envconfig:"FERMEDIRECT_DB_NAME"`
	LegacySSLMode  string `envconfig:"FERMEDIRECT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FERMEDIRECT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FERMEDIRECT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FERMEDIRECT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FERMEDIRECT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FERMEDIRECT_REDIS_URL" required:"true"`
	Password     string        `envconfig:"FERMEDIRECT_REDIS_PASSWORD"`
	DB           int           `envconfig:"FERMEDIRECT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FERMEDIRECT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FERMEDIRECT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FERMEDIRECT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FERMEDIRECT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FERMEDIRECT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"FERMEDIRECT_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"FERMEDIRECT_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"FERMEDIRECT_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"FERMEDIRECT_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FERMEDIRECT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FERMEDIRECT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FERMEDIRECT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FERMEDIRECT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FERMEDIRECT_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"FERMEDIRECT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"FERMEDIRECT_AUTO_MIGRATE" default:"false"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"FERMEDIRECT_CART_TTL" default:"720h"`
}

type CheckoutConfig struct {
	WhatsAppNumber string `envconfig:"FERMEDIRECT_CHECKOUT_WHATSAPP_NUMBER"`
	TelegramHandle string `envconfig:"FERMEDIRECT_CHECKOUT_TELEGRAM_HANDLE"`
}

type ThemeConfig struct {
	RefreshInterval time.Duration `envconfig:"FERMEDIRECT_THEME_REFRESH_INTERVAL" default:"15s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"FERMEDIRECT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
