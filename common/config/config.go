package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	AWS      AWSConfig
	DynamoDB DynamoDBConfig
	Server   ServerConfig
	NATS     NATSConfig
	Redis    RedisConfig
	Booking  BookingConfig
	Media    MediaConfig
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

type DynamoDBConfig struct {
	TableName        string
	MaxRetries       int
	ReadCapacity     int64
	WriteCapacity    int64
	UseLocalEndpoint bool
}

type ServerConfig struct {
	HTTPPort    int
	Environment string
	LogLevel    string
}

type NATSConfig struct {
	URL                  string
	MaxReconnect         int
	ReconnectWaitSeconds int
	TimeoutSeconds       int
}

type RedisConfig struct {
	Address  string
	Password string
}

type BookingConfig struct {
	WindowDays              int
	AvailabilityCacheTTLSec int
	SweepHourUTC            int
}

type MediaConfig struct {
	StoragePath     string
	BaseURL         string
	ThumbnailWidth  int
	ThumbnailHeight int
	MaxUploadBytes  int64
}

func Load(configPath string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath(configPath)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PLAYFIELD")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
