package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is shared by both binaries; each one reads the sections it needs.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret      string `env:"JWT_SECRET"`
	JWTExpireHours int    `env:"JWT_EXPIRE_HOURS, default=24"`
	BcryptCost     int    `env:"BCRYPT_COST, default=12"`

	Password PasswordConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Auth     AuthServiceConfig
	S3       S3Config
}

type PasswordConfig struct {
	MinLength  int  `env:"PASSWORD_MIN_LENGTH, default=8"`
	Complexity bool `env:"PASSWORD_COMPLEXITY, default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=awsomeshop"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AuthServiceConfig configures the products service's trust boundary: where
// to verify tokens and how long to wait before failing closed.
type AuthServiceConfig struct {
	URL     string        `env:"AUTH_SERVICE_URL, default=http://localhost:8080"`
	Timeout time.Duration `env:"AUTH_SERVICE_TIMEOUT, default=5s"`
}

type S3Config struct {
	Bucket          string `env:"S3_BUCKET, default=awsomeshop-products"`
	Region          string `env:"AWS_REGION, default=us-east-1"`
	Endpoint        string `env:"S3_ENDPOINT"` // set for S3-compatible stores
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	MaxUploadBytes  int64  `env:"MAX_UPLOAD_BYTES, default=5242880"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
