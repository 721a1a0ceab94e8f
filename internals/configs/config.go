package configs

import (
	"context"
	"errors"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

const (
	DriverFirestore = "firestore"
	DriverMongo     = "mongo"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
)

type Config struct {
	AppEnv   string
	Port     string
	LogLevel string

	StoreDriver string

	// Firestore
	FirebaseServiceAccountB64 string
	FirebaseProjectID         string

	// MongoDB
	MongoURI      string
	MongoDatabase string

	// Postgres
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	SQLitePath string

	// CDN
	CDNUploadURL  string
	CDNToken      string
	ImageMaxWidth int

	CORSAllowOrigins string
	RequestTimeout   time.Duration

	// TrustedProxies: IP/CIDR proxy di depan app. Kosong berarti
	// X-Forwarded-For diabaikan dan limiter memakai IP peer.
	TrustedProxies []string
}

// =======================
// ENV LOADER
// =======================

// LoadEnv reads .env (outside Railway) and returns the process configuration.
// Missing values fall back to defaults; Validate reports what is unusable.
func LoadEnv() *Config {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		// absent .env is fine, system env is used instead
		_ = godotenv.Load()
	}

	return &Config{
		AppEnv:   GetEnv("APP_ENV", "development"),
		Port:     GetEnv("PORT", "3000"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),

		StoreDriver: strings.ToLower(GetEnv("STORE_DRIVER", DriverSQLite)),

		FirebaseServiceAccountB64: GetEnv("FIREBASE_SERVICE_ACCOUNT_BASE64"),
		FirebaseProjectID:         GetEnv("FIREBASE_PROJECT_ID"),

		MongoURI:      GetEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: GetEnv("MONGO_DATABASE", "kelurahan"),

		DBUser:     GetEnv("DB_USER"),
		DBPassword: GetEnv("DB_PASSWORD"),
		DBHost:     GetEnv("DB_HOST", "localhost"),
		DBPort:     GetEnv("DB_PORT", "5432"),
		DBName:     GetEnv("DB_NAME"),
		DBSSLMode:  GetEnv("DB_SSLMODE", "require"),

		SQLitePath: GetEnv("SQLITE_PATH", "kelurahan.db"),

		CDNUploadURL:  firstEnv("CDN_UPLOAD_URL", "NEXT_PUBLIC_CDN_UPLOAD_URL"),
		CDNToken:      firstEnv("CDN_TOKEN", "NEXT_PUBLIC_CDN_TOKEN"),
		ImageMaxWidth: GetEnvInt("IMAGE_MAX_WIDTH", 0),

		CORSAllowOrigins: GetEnv("CORS_ALLOW_ORIGINS", "*"),
		RequestTimeout:   GetEnvDuration("REQUEST_TIMEOUT", 5*time.Second),

		TrustedProxies: GetEnvList("TRUSTED_PROXIES"),
	}
}

// Validate checks that the selected store driver has what it needs. CDN
// settings are not checked here: upload reports them per request.
func (c *Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverFirestore:
		if c.FirebaseServiceAccountB64 == "" {
			errs = append(errs, errors.New("FIREBASE_SERVICE_ACCOUNT_BASE64 belum diset"))
		}
	case DriverMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			errs = append(errs, errors.New("MONGO_URI dan MONGO_DATABASE wajib diisi"))
		}
	case DriverPostgres:
		if c.DBUser == "" || c.DBName == "" {
			errs = append(errs, errors.New("DB_USER dan DB_NAME wajib diisi"))
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH wajib diisi"))
		}
	default:
		errs = append(errs, errors.New("STORE_DRIVER tidak dikenal: "+c.StoreDriver))
	}
	if c.ImageMaxWidth < 0 {
		errs = append(errs, errors.New("IMAGE_MAX_WIDTH tidak boleh negatif"))
	}
	for _, p := range c.TrustedProxies {
		if err := checkProxy(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// checkProxy menolak entri selain IP/CIDR, juga rentang catch-all.
func checkProxy(p string) error {
	if ip := net.ParseIP(p); ip != nil {
		if ip.IsUnspecified() {
			return errors.New("TRUSTED_PROXIES tidak boleh " + p)
		}
		return nil
	}
	_, n, err := net.ParseCIDR(p)
	if err != nil {
		return errors.New("TRUSTED_PROXIES bukan IP/CIDR: " + p)
	}
	if ones, _ := n.Mask.Size(); ones == 0 {
		return errors.New("TRUSTED_PROXIES tidak boleh " + p)
	}
	return nil
}

// BehindProxy melaporkan apakah X-Forwarded-For boleh dipakai untuk IP klien.
func (c *Config) BehindProxy() bool {
	return len(c.TrustedProxies) > 0
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(strings.TrimSpace(GetEnv(key)))
	if err != nil {
		return defaultValue
	}
	return v
}

func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(GetEnv(key)))
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

// GetEnvList memecah nilai dipisah koma, entri kosong dibuang.
func GetEnvList(key string) []string {
	var out []string
	for _, v := range strings.Split(GetEnv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

// =======================
// GORM LOGGER CUSTOM
// =======================
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
	log           *zap.Logger
}

func NewGormLogger(log *zap.Logger) gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
		log:           log.Named("gorm"),
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.log.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.log.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.log.Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("file", utils.FileWithLineNum()),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}

	switch {
	case err != nil && !errors.Is(err, gormLogger.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		l.log.Error("query failed", append(fields, zap.Error(err))...)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		l.log.Warn("slow sql", fields...)
	case l.LogLevel >= gormLogger.Info:
		l.log.Debug("query", fields...)
	}
}
