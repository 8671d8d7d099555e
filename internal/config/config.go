package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr       string
	ServiceName    string
	ServiceVersion string
	Environment    string
	LogLevel       string

	TracingEnabled   bool
	OTLPEndpoint     string
	OTLPProtocol     string
	OTLPInsecure     bool
	TraceSampleRatio float64

	MetricsAPIKey       string
	ShutdownTimeoutSecs int
}

// IsDevelopment reports whether the service runs with developer-friendly defaults.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev" || c.Environment == "local"
}

func Load() *Config {
	cfg := &Config{
		MetricsAPIKey: os.Getenv("METRICS_API_KEY"),
	}

	cfg.HTTPAddr = strings.TrimSpace(os.Getenv("HTTP_ADDR"))
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.ServiceName = strings.TrimSpace(os.Getenv("SERVICE_NAME"))
	if cfg.ServiceName == "" {
		cfg.ServiceName = "traced-greeter"
	}

	cfg.ServiceVersion = strings.TrimSpace(os.Getenv("SERVICE_VERSION"))
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}

	cfg.Environment = strings.ToLower(strings.TrimSpace(os.Getenv("ENVIRONMENT")))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.TracingEnabled = !strings.EqualFold(strings.TrimSpace(os.Getenv("TRACING_ENABLED")), "false")

	cfg.OTLPEndpoint = strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	if cfg.OTLPEndpoint == "" {
		cfg.OTLPEndpoint = "localhost:4317"
	}

	cfg.OTLPProtocol = strings.ToLower(strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_PROTOCOL")))
	if cfg.OTLPProtocol == "" {
		cfg.OTLPProtocol = "grpc"
	}
	if cfg.OTLPProtocol != "grpc" && cfg.OTLPProtocol != "http" {
		log.Printf("Warning: unsupported OTEL_EXPORTER_OTLP_PROTOCOL=%q, defaulting to grpc", cfg.OTLPProtocol)
		cfg.OTLPProtocol = "grpc"
	}

	cfg.OTLPInsecure = !strings.EqualFold(strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE")), "false")

	cfg.TraceSampleRatio = 1.0
	if v := strings.TrimSpace(os.Getenv("TRACE_SAMPLE_RATIO")); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 && n <= 1 {
			cfg.TraceSampleRatio = n
		} else {
			log.Printf("Warning: invalid TRACE_SAMPLE_RATIO=%q, sampling every trace", v)
		}
	}

	if cfg.MetricsAPIKey == "" {
		log.Println("Warning: METRICS_API_KEY not set, /metrics is unauthenticated")
	}

	cfg.ShutdownTimeoutSecs = 5
	if v := strings.TrimSpace(os.Getenv("SHUTDOWN_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ShutdownTimeoutSecs = n
		}
	}

	return cfg
}
