package configs

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config dibaca sekali di startup lalu di-pass ke komponen yang butuh.
type Config struct {
	Env     string
	AppName string
	Port    string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBSSLMode  string

	JWTSecret string

	OSSEndpoint      string
	OSSAccessKey     string
	OSSSecretKey     string
	OSSSecurityToken string
	OSSBucket        string
	OSSPublicBase    string
	MaxUploadBytes   int64
	SignedURLTTL     time.Duration

	SendgridAPIKey string
	MailFromName   string
	MailFromEmail  string

	RollbarToken string
	CodeVersion  string

	TenantCacheTTL time.Duration

	CronTrashReaper        string
	CronNotificationPurge  string
	CronPeriodRollover     string
	TrashRetentionDays     int
	NotificationRetentDays int
	ReaperDryRun           bool

	SeedDemoTenant bool
	SeedDemoFile   string
}

var conf = viper.New()

// LoadEnv: .env (kalau ada) → viper AutomaticEnv + default.
func LoadEnv() *Config {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	}

	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("APP_ENV", "development")
	conf.SetDefault("APP_NAME", "SchoolHub")
	conf.SetDefault("PORT", "3000")
	conf.SetDefault("DB_PORT", "5432")
	conf.SetDefault("DB_SSLMODE", "require")
	conf.SetDefault("STORAGE_MAX_UPLOAD_BYTES", int64(20*1024*1024))
	conf.SetDefault("STORAGE_SIGNED_URL_TTL", 15*time.Minute)
	conf.SetDefault("MAIL_FROM_NAME", "SchoolHub")
	conf.SetDefault("MAIL_FROM_EMAIL", "noreply@localhost")
	conf.SetDefault("TENANT_CACHE_TTL", 5*time.Minute)
	conf.SetDefault("CRON_TRASH_REAPER", "15 2 * * *")
	conf.SetDefault("CRON_NOTIFICATION_PURGE", "30 2 * * *")
	conf.SetDefault("CRON_PERIOD_ROLLOVER", "5 0 * * *")
	conf.SetDefault("TRASH_RETENTION_DAYS", 30)
	conf.SetDefault("NOTIFICATION_RETENTION_DAYS", 90)
	conf.SetDefault("DRY_RUN", false)
	conf.SetDefault("SEED_DEMO_TENANT", false)
	conf.SetDefault("SEED_DEMO_FILE", "internals/seeds/data_demo_tenant.json")
	conf.AutomaticEnv()

	cfg := &Config{
		Env:     strings.ToLower(conf.GetString("APP_ENV")),
		AppName: conf.GetString("APP_NAME"),
		Port:    conf.GetString("PORT"),

		DBUser:     conf.GetString("DB_USER"),
		DBPassword: conf.GetString("DB_PASSWORD"),
		DBHost:     conf.GetString("DB_HOST"),
		DBPort:     conf.GetString("DB_PORT"),
		DBName:     conf.GetString("DB_NAME"),
		DBSSLMode:  conf.GetString("DB_SSLMODE"),

		JWTSecret: strings.TrimSpace(conf.GetString("JWT_SECRET")),

		OSSEndpoint:      strings.TrimSpace(conf.GetString("ALI_OSS_ENDPOINT")),
		OSSAccessKey:     strings.TrimSpace(conf.GetString("ALI_OSS_ACCESS_KEY")),
		OSSSecretKey:     strings.TrimSpace(conf.GetString("ALI_OSS_SECRET_KEY")),
		OSSSecurityToken: strings.TrimSpace(conf.GetString("ALI_OSS_SECURITY_TOKEN")),
		OSSBucket:        strings.TrimSpace(conf.GetString("ALI_OSS_BUCKET")),
		OSSPublicBase:    strings.TrimSpace(conf.GetString("ALI_OSS_PUBLIC_BASE")),
		MaxUploadBytes:   conf.GetInt64("STORAGE_MAX_UPLOAD_BYTES"),
		SignedURLTTL:     conf.GetDuration("STORAGE_SIGNED_URL_TTL"),

		SendgridAPIKey: strings.TrimSpace(conf.GetString("SENDGRID_API_KEY")),
		MailFromName:   conf.GetString("MAIL_FROM_NAME"),
		MailFromEmail:  conf.GetString("MAIL_FROM_EMAIL"),

		RollbarToken: strings.TrimSpace(conf.GetString("ROLLBAR_TOKEN")),
		CodeVersion:  conf.GetString("CODE_VERSION"),

		TenantCacheTTL: conf.GetDuration("TENANT_CACHE_TTL"),

		CronTrashReaper:        conf.GetString("CRON_TRASH_REAPER"),
		CronNotificationPurge:  conf.GetString("CRON_NOTIFICATION_PURGE"),
		CronPeriodRollover:     conf.GetString("CRON_PERIOD_ROLLOVER"),
		TrashRetentionDays:     conf.GetInt("TRASH_RETENTION_DAYS"),
		NotificationRetentDays: conf.GetInt("NOTIFICATION_RETENTION_DAYS"),
		ReaperDryRun:           conf.GetBool("DRY_RUN"),

		SeedDemoTenant: conf.GetBool("SEED_DEMO_TENANT"),
		SeedDemoFile:   conf.GetString("SEED_DEMO_FILE"),
	}

	if cfg.JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
	if cfg.OSSBucket == "" {
		log.Println("⚠️ ALI_OSS_BUCKET belum diset, fitur storage nonaktif")
	}
	return cfg
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// OSSEnabled: semua kredensial minimum tersedia.
func (c *Config) OSSEnabled() bool {
	return c.OSSEndpoint != "" && c.OSSAccessKey != "" && c.OSSSecretKey != "" && c.OSSBucket != ""
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
