package config

import (
	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"crewup"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string   `envconfig:"CREWUP_ADDRESS" default:":3443"`
	MetricsAddress  string   `envconfig:"CREWUP_METRICS_ADDRESS" default:":8080"`
	BaseUrl         string   `envconfig:"CREWUP_BASE_URL" default:"https://localhost:3443"`
	LogLevel        string   `envconfig:"CREWUP_LOG_LEVEL" default:"info"`
	CorsOrigins     []string `envconfig:"CREWUP_CORS_ORIGINS" default:"https://app.crewup.work,http://localhost:19006"`
	MigrationFolder string   `envconfig:"CREWUP_MIGRATIONS_FOLDER" default:""`
	SweepInterval   string   `envconfig:"CREWUP_SWEEP_INTERVAL" default:"1m"`
	Redis           redisConfig
	S3              s3Config
	Auth            Auth
}

type redisConfig struct {
	Address  string `envconfig:"CREWUP_REDIS_ADDRESS" default:""`
	Password string `envconfig:"CREWUP_REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"CREWUP_REDIS_DB" default:"0"`
}

type s3Config struct {
	Endpoint  string `envconfig:"CREWUP_S3_ENDPOINT" default:""`
	Bucket    string `envconfig:"CREWUP_S3_BUCKET" default:"crewup-media"`
	AccessKey string `envconfig:"CREWUP_S3_ACCESS_KEY" default:""`
	SecretKey string `envconfig:"CREWUP_S3_SECRET_KEY" default:""`
	UseSSL    bool   `envconfig:"CREWUP_S3_USE_SSL" default:"false"`
}

type Auth struct {
	AuthenticationType string `envconfig:"CREWUP_AUTH" default:""`
	JwtSigningKey      string `envconfig:"CREWUP_JWT_SIGNING_KEY" default:""`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}
