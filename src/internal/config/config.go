package config

import (
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Configuration struct {
	Logs     LogsSettings     `mapstructure:"logs"`
	App      Application      `mapstructure:"app"`
	Database Database         `mapstructure:"database"`
	Queue    QueueConfig      `mapstructure:"queue"`
	Redis    Redis            `mapstructure:"redis"`
	Security SecuritySettings `mapstructure:"security"`
	Server   ServerSettings   `mapstructure:"server"`
	Search   SearchConfig     `mapstructure:"search"`
	Cache    CacheConfig      `mapstructure:"cache"`
	External ExternalServices `mapstructure:"external"`
	Jobs     JobsConfig       `mapstructure:"jobs"`
}

type LogsSettings struct {
	Level            string `mapstructure:"level"`
	Path             string `mapstructure:"log-path"`
	EnableJSONOutput bool   `mapstructure:"enable-json-output"`
}

type Application struct {
	Name     string `mapstructure:"name"`
	Timeout  int    `mapstructure:"timeout"`
	Version  string `mapstructure:"version"`
	HostLink string `mapstructure:"host-link"`
}

type Database struct {
	Url         string      `mapstructure:"url"`
	DbName      string      `mapstructure:"dbname"`
	Collections Collections `mapstructure:"collections"`
	Timeout     int         `mapstructure:"timeout"`
}

type Collections struct {
	Users        string `mapstructure:"users"`
	Sessions     string `mapstructure:"sessions"`
	AccessLogs   string `mapstructure:"access-logs"`
	APIKeys      string `mapstructure:"api-keys"`
	FeatureFlags string `mapstructure:"feature-flags"`
	SystemConfig string `mapstructure:"system-config"`
}

type SearchConfig struct {
	MinQueryLimit int `mapstructure:"min-query-limit"`
	MaxQueryLimit int `mapstructure:"max-query-limit"`
}

type QueueConfig struct {
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

type RabbitMQConfig struct {
	Url             string `mapstructure:"url"`
	Exchange        string `mapstructure:"exchange"`
	ExchangeType    string `mapstructure:"exchange-type"`
	AuditRoutingKey string `mapstructure:"audit-routing-key"`
	PrefetchCount   int    `mapstructure:"prefetch-count"`
	ReconnectDelay  int    `mapstructure:"reconnect-delay"`
	Timeout         int    `mapstructure:"timeout"`
	PrefetchSize    int    `mapstructure:"prefetch-size"`
	Global          bool   `mapstructure:"global"`
	Durable         bool   `mapstructure:"durable"`
	AutoDelete      bool   `mapstructure:"auto-delete"`
	Internal        bool   `mapstructure:"internal"`
	NoWait          bool   `mapstructure:"no-wait"`
}

type Redis struct {
	Url      string `mapstructure:"url"`
	Password string `mapstructure:"password"`
	Db       int    `mapstructure:"db"`
}

type SecuritySettings struct {
	JwtKey              string `mapstructure:"jwt-key"`
	CsrfTokenTTLMinutes int    `mapstructure:"csrf-token-ttl-minutes"`
}

type ServerSettings struct {
	Port         string `mapstructure:"port"`
	Mode         string `mapstructure:"mode"`
	ReadTimeout  int    `mapstructure:"read-timeout"`
	WriteTimeout int    `mapstructure:"write-timeout"`
	IdleTimeout  int    `mapstructure:"idle-timeout"`
}

type CacheConfig struct {
	ExpirationMinutes        int    `mapstructure:"expiration-minutes"`
	SessionExpirationMinutes int    `mapstructure:"session-expiration-minutes"`
	AnalyticsKey             string `mapstructure:"analytics-key"`
	AnalyticsExpirationMins  int    `mapstructure:"analytics-expiration-minutes"`
}

type ExternalServices struct {
	AuthService AuthServiceConfig `mapstructure:"auth-service"`
}

type AuthServiceConfig struct {
	URL     string `mapstructure:"url"`
	Timeout int    `mapstructure:"timeout"`
}

type JobsConfig struct {
	CsrfRefreshMinutes        int `mapstructure:"csrf-refresh-minutes"`
	SuspiciousIntervalSeconds int `mapstructure:"suspicious-interval-seconds"`
	MetricsTickSeconds        int `mapstructure:"metrics-tick-seconds"`
}

func Load() *Configuration {
	cfg := read()
	logrus.Info("Configuration loaded")

	// Override with environment variables
	mongoUri := os.Getenv("MONGODB_URL")
	if mongoUri != "" {
		cfg.Database.Url = mongoUri
	}

	dbName := os.Getenv("DB_NAME")
	if dbName != "" {
		cfg.Database.DbName = dbName
	}

	redisUrl := os.Getenv("REDIS_URL")
	if redisUrl != "" {
		cfg.Redis.Url = redisUrl
	}

	redisDB := os.Getenv("REDIS_DB")
	if redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			cfg.Redis.Db = db
		}
	}

	rabbitmqUrl := os.Getenv("RABBITMQ_URL")
	if rabbitmqUrl != "" {
		cfg.Queue.RabbitMQ.Url = rabbitmqUrl
	}

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey != "" {
		cfg.Security.JwtKey = jwtKey
	}

	authServiceUrl := os.Getenv("AUTH_SERVICE_URL")
	if authServiceUrl != "" {
		cfg.External.AuthService.URL = authServiceUrl
	}

	return cfg
}

func read() *Configuration {
	viper.SetConfigFile("src/internal/config/cfg.yml")
	viper.AutomaticEnv()
	viper.SetConfigType("yml")

	var config Configuration

	err := viper.ReadInConfig()
	if err != nil {
		logrus.Panicf("Error reading config file, %s", err)
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		logrus.Panicf("Error unmarshalling config file, %s", err)
	}

	return &config
}
