package config

import (
	"github.com/IBM/sarama"
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
	Name     string `envconfig:"DB_NAME" default:"reviews"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address         string `envconfig:"REVIEW_PLANNER_ADDRESS" default:":3443"`
	MetricsAddress  string `envconfig:"REVIEW_PLANNER_METRICS_ADDRESS" default:":8080"`
	BaseUrl         string `envconfig:"REVIEW_PLANNER_BASE_URL" default:"https://localhost:3443"`
	LogLevel        string `envconfig:"REVIEW_PLANNER_LOG_LEVEL" default:"info"`
	Kafka           kafkaConfig
	MigrationFolder string `envconfig:"REVIEW_PLANNER_MIGRATIONS_FOLDER" default:""`
}

type kafkaConfig struct {
	Brokers  []string            `envconfig:"REVIEW_PLANNER_KAFKA_BROKERS" default:""`
	Topic    string              `envconfig:"REVIEW_PLANNER_KAFKA_TOPIC" default:""`
	Version  sarama.KafkaVersion `envconfig:"REVIEW_PLANNER_KAFKA_VERSION" default:""`
	ClientID string              `envconfig:"REVIEW_PLANNER_KAFKA_CLIENT_ID" default:""`

	SaramaConfig *sarama.Config
}

// NewDefault returns a configuration backed by an in-memory sqlite
// database, used by tests.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			// shared cache keeps the schema visible across pooled connections
			Name: "file::memory:?cache=shared",
		},
		Service: &svcConfig{
			Address:        "localhost:3443",
			MetricsAddress: "localhost:8080",
			BaseUrl:        "http://localhost:3443",
			LogLevel:       "info",
		},
	}
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
