package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Mux      MuxConfig      `mapstructure:"mux"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Workflow WorkflowConfig `mapstructure:"workflow"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	HTTPPort    string `mapstructure:"http_port"`
	GRPCPort    string `mapstructure:"grpc_port"`
	MetricsPort string `mapstructure:"metrics_port"`
	CORSOrigins string `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Debug    bool   `mapstructure:"debug"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// MuxConfig 视频处理服务（Mux 兼容 API）
type MuxConfig struct {
	BaseURL          string        `mapstructure:"base_url"`
	ImageBaseURL     string        `mapstructure:"image_base_url"`
	StreamBaseURL    string        `mapstructure:"stream_base_url"`
	TokenID          string        `mapstructure:"token_id"`
	TokenSecret      string        `mapstructure:"token_secret"`
	WebhookSecret    string        `mapstructure:"webhook_secret"`
	WebhookTolerance time.Duration `mapstructure:"webhook_tolerance"`
	CORSOrigin       string        `mapstructure:"cors_origin"`
}

type StorageConfig struct {
	Driver          string `mapstructure:"driver"` // minio | s3
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	PublicBaseURL   string `mapstructure:"public_base_url"`
}

type WorkflowConfig struct {
	Broker       string `mapstructure:"broker"` // kafka | amqp | none
	KafkaBrokers string `mapstructure:"kafka_brokers"`
	KafkaTopic   string `mapstructure:"kafka_topic"`
	KafkaGroupID string `mapstructure:"kafka_group_id"`
	AMQPURL      string `mapstructure:"amqp_url"`
	AMQPQueue    string `mapstructure:"amqp_queue"`
	Retries      int    `mapstructure:"retries"`
	RunWorker    bool   `mapstructure:"run_worker"`
}

type OpenAIConfig struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	Model      string `mapstructure:"model"`
	ImageModel string `mapstructure:"image_model"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

var bindings = map[string]string{
	"server.http_port":          "HTTP_PORT",
	"server.grpc_port":          "GRPC_PORT",
	"server.metrics_port":       "METRICS_PORT",
	"server.cors_origins":       "CORS_ORIGINS",
	"database.host":             "DB_HOST",
	"database.port":             "DB_PORT",
	"database.user":             "DB_USER",
	"database.password":         "DB_PASSWORD",
	"database.dbname":           "DB_NAME",
	"database.sslmode":          "DB_SSLMODE",
	"database.debug":            "DB_DEBUG",
	"auth.jwt_secret":           "JWT_SECRET",
	"auth.issuer":               "JWT_ISSUER",
	"mux.base_url":              "MUX_BASE_URL",
	"mux.image_base_url":        "MUX_IMAGE_BASE_URL",
	"mux.stream_base_url":       "MUX_STREAM_BASE_URL",
	"mux.token_id":              "MUX_TOKEN_ID",
	"mux.token_secret":          "MUX_TOKEN_SECRET",
	"mux.webhook_secret":        "MUX_WEBHOOK_SECRET",
	"mux.webhook_tolerance":     "MUX_WEBHOOK_TOLERANCE",
	"mux.cors_origin":           "MUX_CORS_ORIGIN",
	"storage.driver":            "STORAGE_DRIVER",
	"storage.endpoint":          "STORAGE_ENDPOINT",
	"storage.access_key_id":     "STORAGE_ACCESS_KEY",
	"storage.secret_access_key": "STORAGE_SECRET_KEY",
	"storage.use_ssl":           "STORAGE_USE_SSL",
	"storage.bucket":            "STORAGE_BUCKET",
	"storage.region":            "STORAGE_REGION",
	"storage.public_base_url":   "STORAGE_PUBLIC_BASE_URL",
	"workflow.broker":           "WORKFLOW_BROKER",
	"workflow.kafka_brokers":    "KAFKA_BROKERS",
	"workflow.kafka_topic":      "KAFKA_TOPIC",
	"workflow.kafka_group_id":   "KAFKA_GROUP_ID",
	"workflow.amqp_url":         "AMQP_URL",
	"workflow.amqp_queue":       "AMQP_QUEUE",
	"workflow.retries":          "WORKFLOW_RETRIES",
	"workflow.run_worker":       "WORKFLOW_RUN_WORKER",
	"openai.api_key":            "OPENAI_API_KEY",
	"openai.base_url":           "OPENAI_BASE_URL",
	"openai.model":              "OPENAI_MODEL",
	"openai.image_model":        "OPENAI_IMAGE_MODEL",
	"log.level":                 "LOG_LEVEL",
}

func LoadConfig() (*Config, error) {
	// .env 可选
	_ = godotenv.Load()

	v := viper.New()

	// 设置默认值
	v.SetDefault("server.http_port", "8080")
	v.SetDefault("server.grpc_port", "50051")
	v.SetDefault("server.metrics_port", "2112")
	v.SetDefault("server.cors_origins", "*")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("mux.base_url", "https://api.mux.com")
	v.SetDefault("mux.image_base_url", "https://image.mux.com")
	v.SetDefault("mux.stream_base_url", "https://stream.mux.com")
	v.SetDefault("mux.webhook_tolerance", 5*time.Minute)
	v.SetDefault("mux.cors_origin", "*")
	v.SetDefault("storage.driver", "minio")
	v.SetDefault("storage.bucket", "arktube-thumbnails")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("workflow.broker", "kafka")
	v.SetDefault("workflow.kafka_topic", "video.workflow")
	v.SetDefault("workflow.kafka_group_id", "arktube-workflow")
	v.SetDefault("workflow.amqp_queue", "video.workflow")
	v.SetDefault("workflow.retries", 3)
	v.SetDefault("workflow.run_worker", true)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.image_model", "dall-e-3")
	v.SetDefault("log.level", "info")

	v.AutomaticEnv()

	// 绑定环境变量
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate 检查必需的配置
func (c *Config) Validate() error {
	if c.Mux.WebhookSecret == "" {
		return errors.New("MUX_WEBHOOK_SECRET is not set")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	switch c.Storage.Driver {
	case "minio", "s3":
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Workflow.Broker {
	case "kafka", "amqp", "none":
	default:
		return fmt.Errorf("unknown workflow broker %q", c.Workflow.Broker)
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// Origins 拆分逗号分隔的 CORS 来源
func (c *ServerConfig) Origins() []string {
	return splitList(c.CORSOrigins)
}

// Brokers 拆分逗号分隔的 Kafka 地址
func (c *WorkflowConfig) Brokers() []string {
	return splitList(c.KafkaBrokers)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
