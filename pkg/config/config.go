package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	AWSRegion string `envconfig:"AWS_REGION" default:"eu-central-1"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	ProductTableName string `envconfig:"PRODUCT_TABLE_NAME" default:"products-table"`
	OrderTableName   string `envconfig:"ORDER_TABLE_NAME" default:"orders-table"`

	RedisAddr       string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD" default:""`
	ConversationTTL time.Duration `envconfig:"CONVERSATION_TTL" default:"24h"`

	OpenAIAPIKey   string `envconfig:"OPENAI_API_KEY"`
	OpenAIModel    string `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAIEndpoint string `envconfig:"OPENAI_ENDPOINT" default:"https://api.openai.com/v1/chat/completions"`

	RegistryBaseURL   string `envconfig:"REGISTRY_BASE_URL" default:"http://localhost:8081"`
	InvoiceServiceURL string `envconfig:"INVOICE_SERVICE_URL" default:"http://localhost:8082"`

	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:""`

	SellerName  string `envconfig:"SELLER_NAME" default:"Stocbot SRL"`
	SellerTaxID string `envconfig:"SELLER_TAX_ID" default:"RO00000000"`

	LowStockThreshold int    `envconfig:"LOW_STOCK_THRESHOLD" default:"20"`
	TaxIDPrefix       string `envconfig:"TAX_ID_PREFIX" default:"RO"`
	MaxResumeAttempts int    `envconfig:"MAX_RESUME_ATTEMPTS" default:"3"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
