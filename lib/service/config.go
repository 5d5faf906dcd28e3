package service

type Config struct {
	DatabaseUri             string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	SentryDSN               string  `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	DatadogAgentUrl         string  `envconfig:"DATADOG_AGENT_URL"`
	LogFilePath             string  `envconfig:"LOG_FILE_PATH"`
	Host                    string  `envconfig:"HOST" default:"localhost:3000"`
	Port                    int     `envconfig:"PORT" default:"3000"`
	OperatorToken           string  `envconfig:"OPERATOR_TOKEN"`
	DefaultRateLimit        int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit         int     `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit          int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus        bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort          int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	WebhookUrl              string  `envconfig:"WEBHOOK_URL"`
	RabbitMQUri             string  `envconfig:"RABBITMQ_URI"`
	RabbitMQEventExchange   string  `envconfig:"RABBITMQ_EVENT_EXCHANGE" default:"invoicehub_event"`
	StripeRefundEndpoint    string  `envconfig:"STRIPE_REFUND_ENDPOINT" default:"https://api.stripe.com/v1/refunds"`
	StripeProviderCode      string  `envconfig:"STRIPE_PROVIDER_CODE" default:"stripe"`
	GatewayTimeout          int     `envconfig:"GATEWAY_TIMEOUT" default:"30"` // seconds
	DefaultCurrency         string  `envconfig:"DEFAULT_CURRENCY" default:"EUR"`
	ServiceProductCode      string  `envconfig:"SERVICE_PRODUCT_CODE" default:"reservation_service"`
	PaymentLinkBaseUrl      string  `envconfig:"PAYMENT_LINK_BASE_URL" default:"http://localhost:3000/payment/pay"`
	// Days an invoice stays refundable. Read by the external scheduling
	// collaborator through the settings endpoint, not by this service.
	InvoiceDaysToRefund int `envconfig:"INVOICE_DAYS_TO_REFUND" default:"14"`
}
