package configuration

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/sitecms/pkg/logging"
)

const Production = "production"

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	BlobDriverFS     = "fs"
	BlobDriverMemory = "memory"
	BlobDriverS3     = "s3"

	MailDriverLog = "log"
	MailDriverSES = "ses"

	SessionStorePostgres = "postgres"
	SessionStoreRedis    = "redis"
)

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

// LoadEnv loads the env files that exist in the working directory, falling back
// to the nearest directory containing go.mod. Returns the number of files loaded.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if fs.FileExists(file) {
			existing = append(existing, file)
		}
	}

	if len(existing) == 0 {
		if wd, err := os.Getwd(); err == nil {
			if root, ok := findGoModRoot(wd); ok {
				for _, file := range envFiles {
					candidate := filepath.Join(root, file)
					if fs.FileExists(candidate) {
						existing = append(existing, candidate)
					}
				}
			}
		}
	}

	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

func findGoModRoot(start string) (string, bool) {
	dir := start
	for {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"sitecms"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type StoreOptions struct {
	// postgres or memory
	Driver string `env:"STORE_DRIVER" envDefault:"postgres"`
	// postgres or redis
	Sessions string `env:"SESSION_STORE" envDefault:"postgres"`
	RedisURL string `env:"REDIS_URL" envDefault:"localhost:6379"`
	// How long an admin reorder waits for a concurrent reorder on the same scope.
	LockTimeout time.Duration `env:"REORDER_LOCK_TIMEOUT" envDefault:"5s"`
}

type StorageOptions struct {
	Driver      string        `env:"BLOB_DRIVER" envDefault:"fs"`
	UploadsPath string        `env:"UPLOADS_PATH" envDefault:"static/uploads"`
	S3Bucket    string        `env:"S3_BUCKET"`
	S3Region    string        `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint  string        `env:"S3_ENDPOINT"`
	S3Prefix    string        `env:"S3_PREFIX" envDefault:"uploads/"`
	PresignTTL  time.Duration `env:"S3_PRESIGN_TTL" envDefault:"15m"`
}

type MailOptions struct {
	Driver   string `env:"MAIL_DRIVER" envDefault:"log"`
	From     string `env:"MAIL_FROM" envDefault:"no-reply@localhost"`
	NotifyTo string `env:"MAIL_NOTIFY_TO" envDefault:"hello@localhost"`
}

// AWSOptions are shared by the S3 blob driver and the SES mailer. Empty keys
// fall back to the default credential chain.
type AWSOptions struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
}

type AdminOptions struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

type LokiOptions struct {
	URL     string `env:"LOKI_URL"`
	AppName string `env:"LOKI_APP_NAME" envDefault:"sitecms"`
	LogPath string `env:"LOG_PATH" envDefault:"./logs/app.log"`
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"sitecms"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

type RateLimitOptions struct {
	Enabled   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	GlobalRPS int    `env:"RATE_LIMIT_GLOBAL_RPS" envDefault:"1000"`
	Storage   string `env:"RATE_LIMIT_STORAGE" envDefault:"memory"` // memory or redis
	RedisURL  string `env:"RATE_LIMIT_REDIS_URL"`
}

// Validate checks the rate limit configuration for errors
func (r *RateLimitOptions) Validate() error {
	if r.GlobalRPS < 0 {
		return fmt.Errorf("rate limit GlobalRPS must be non-negative, got %d", r.GlobalRPS)
	}
	if r.GlobalRPS > 1000000 {
		return fmt.Errorf("rate limit GlobalRPS too high, maximum is 1,000,000, got %d", r.GlobalRPS)
	}
	if r.Storage != "memory" && r.Storage != "redis" {
		return fmt.Errorf("rate limit Storage must be 'memory' or 'redis', got '%s'", r.Storage)
	}
	if r.Storage == "redis" && r.RedisURL == "" {
		return fmt.Errorf("rate limit RedisURL is required when Storage is 'redis'")
	}
	return nil
}

type Configuration struct {
	Database      DatabaseOptions
	Store         StoreOptions
	Storage       StorageOptions
	Mail          MailOptions
	AWS           AWSOptions
	Admin         AdminOptions
	Loki          LokiOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions
	RateLimit     RateLimitOptions

	ServerPort       int           `env:"PORT" envDefault:"3200"`
	SessionDuration  time.Duration `env:"SESSION_DURATION" envDefault:"720h"`
	GoAppEnvironment string        `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress    string        `env:"-"`
	Domain           string        `env:"DOMAIN" envDefault:"localhost"`
	Origin           string        `env:"ORIGIN" envDefault:"http://localhost:3200"`
	CorsOrigins      []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	MaxUploadSize    int64         `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`
	MaxUploadMemory  int64         `env:"MAX_UPLOAD_MEMORY" envDefault:"10485760"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"error"`
	// Looked up on every request; a random uuidv4 is generated when absent.
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	// Falls back to request.RemoteAddr when absent.
	RealIPHeader string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`
	SidCookieKey string `env:"SID_COOKIE_KEY" envDefault:"sid"`

	// Ops endpoints guard (/health, /debug/prometheus). Enforced only in production.
	OpsGuardEnabled       bool   `env:"OPS_GUARD_ENABLED" envDefault:"true"`
	OpsGuardCIDRs         string `env:"OPS_GUARD_CIDRS" envDefault:""`
	OpsGuardToken         string `env:"OPS_GUARD_TOKEN" envDefault:""`
	OpsGuardBasicAuthUser string `env:"OPS_GUARD_BASIC_AUTH_USER" envDefault:""`
	OpsGuardBasicAuthPass string `env:"OPS_GUARD_BASIC_AUTH_PASS" envDefault:""`

	logFile io.Closer
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func (c *Configuration) Scheme() string {
	if c.GoAppEnvironment == Production { // assume 'https' on production mode
		return "https"
	}
	return "http"
}

// UsesMemoryStore reports whether collections live in process memory instead of Postgres.
func (c *Configuration) UsesMemoryStore() bool {
	return c.Store.Driver == StoreDriverMemory
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.Loki.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	c.Database.Opts = c.Database.ConnectionString()
	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}

	if os.Getenv("ORIGIN") == "" {
		// Only development origins carry the port.
		if c.GoAppEnvironment == "development" {
			c.Origin = fmt.Sprintf("%s://%s:%d", c.Scheme(), c.Domain, c.ServerPort)
		} else {
			c.Origin = fmt.Sprintf("%s://%s", c.Scheme(), c.Domain)
		}
	}
	return nil
}

// Validate normalizes driver names and rejects unknown values.
func (c *Configuration) Validate() error {
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit configuration error: %w", err)
	}

	var err error
	if c.Store.Driver, err = oneOf("STORE_DRIVER", c.Store.Driver, StoreDriverPostgres, StoreDriverMemory); err != nil {
		return err
	}
	if c.Store.Sessions, err = oneOf("SESSION_STORE", c.Store.Sessions, SessionStorePostgres, SessionStoreRedis); err != nil {
		return err
	}
	if c.Storage.Driver, err = oneOf("BLOB_DRIVER", c.Storage.Driver, BlobDriverFS, BlobDriverMemory, BlobDriverS3); err != nil {
		return err
	}
	if c.Mail.Driver, err = oneOf("MAIL_DRIVER", c.Mail.Driver, MailDriverLog, MailDriverSES); err != nil {
		return err
	}

	if c.Storage.Driver == BlobDriverS3 && strings.TrimSpace(c.Storage.S3Bucket) == "" {
		return fmt.Errorf("S3_BUCKET is required when BLOB_DRIVER=s3")
	}
	if c.Store.LockTimeout <= 0 {
		return fmt.Errorf("REORDER_LOCK_TIMEOUT must be positive, got %s", c.Store.LockTimeout)
	}
	return nil
}

func oneOf(name, value string, allowed ...string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid %s=%q (expected %s)", name, value, strings.Join(allowed, "|"))
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
