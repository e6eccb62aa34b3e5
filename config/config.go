package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Server  ServerConfig  `yaml:"server"`
	Sync    SyncConfig    `yaml:"sync"`
	Retry   RetryConfig   `yaml:"retry"`
	Modules ModulesConfig `yaml:"modules"`
	Kafka   KafkaConfig   `yaml:"kafka"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// SyncConfig controls the reconciliation sweep against the upstream modules.
type SyncConfig struct {
	// Enabled gates both the startup sweep and the periodic one.
	Enabled bool `yaml:"enabled"`

	// IntervalSeconds is the delay between sweeps.
	IntervalSeconds int `yaml:"interval_seconds"`

	// PullRatePerSecond caps upstream requests during a sweep.
	// 0 or less means no limit.
	PullRatePerSecond float64 `yaml:"pull_rate_per_second"`
}

// RetryConfig bounds the ingestion retry loop. Backoff starts at
// BaseDelayMillis and doubles on each attempt.
type RetryConfig struct {
	MaxAttempts     int `yaml:"max_attempts"`
	BaseDelayMillis int `yaml:"base_delay_millis"`
}

// ModulesConfig holds base URLs of the upstream systems of record.
type ModulesConfig struct {
	FuenteURL string `yaml:"fuente_url"`
	PdIURL    string `yaml:"pdi_url"`
}

type KafkaConfig struct {
	GroupID             string `yaml:"group_id"`
	TopicHechos         string `yaml:"topic_hechos"`
	TopicPdIs           string `yaml:"topic_pdis"`
	TopicSolicitudes    string `yaml:"topic_solicitudes"`
	ConsumerConcurrency int    `yaml:"consumer_concurrency"`
}

func (s SyncConfig) Interval() time.Duration {
	if s.IntervalSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(s.IntervalSeconds) * time.Second
}

func (r RetryConfig) BaseDelay() time.Duration {
	if r.BaseDelayMillis <= 0 {
		return time.Second
	}
	return time.Duration(r.BaseDelayMillis) * time.Millisecond
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	config = &c

	initLogger(c.Logging.Level)
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// MongoURI reads the connection string from the environment so credentials
// stay out of config.yaml.
func MongoURI() string {
	return os.Getenv("MONGO_URI")
}

func MongoDBName() string {
	v := os.Getenv("MONGO_DB_NAME")
	if v == "" {
		v = "busqueda"
	}
	return v
}

func KafkaBrokers() string {
	return os.Getenv("KAFKA_BOOTSTRAP_SERVERS")
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
