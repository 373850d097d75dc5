package cfg

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type ProviderConfig struct {
	BaseURL string
	APIKey  string
	APIHost string
}

type ObservabilityConfig struct {
	OTLPEndpoint string
	ServiceName  string
	Environment  string
}

type Config struct {
	AppEnv           string
	AppPort          string
	RedisConfig      RedisConfig
	ProviderConfig   ProviderConfig
	LocationDataPath string
	Observability    ObservabilityConfig
}

func Load() (*Config, error) {
	var errs []error

	err := godotenv.Load()
	if err != nil {
		return nil, errors.New("failed load cfg: " + err.Error())
	}

	appEnv := mustEnv("APP_ENV", &errs)
	appPort := mustEnv("APP_PORT", &errs)

	redisHost := mustEnv("REDIS_HOST", &errs)
	redisPort := mustEnv("REDIS_PORT", &errs)
	redisPassword := mustEnv("REDIS_PASSWORD", &errs)

	providerBaseURL := mustEnv("PROVIDER_BASE_URL", &errs)
	providerAPIKey := mustEnv("PROVIDER_API_KEY", &errs)
	providerAPIHost := mustEnv("PROVIDER_API_HOST", &errs)

	locationDataPath := mustEnv("LOCATION_DATA_PATH", &errs)

	otlpEndpoint := mustEnv("OTLP_ENDPOINT", &errs)
	serviceName := mustEnv("OTEL_SERVICE_NAME", &errs)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Config{
		AppEnv:  appEnv,
		AppPort: appPort,
		RedisConfig: RedisConfig{
			Host:     redisHost,
			Port:     redisPort,
			Password: redisPassword,
		},
		ProviderConfig: ProviderConfig{
			BaseURL: providerBaseURL,
			APIKey:  providerAPIKey,
			APIHost: providerAPIHost,
		},
		LocationDataPath: locationDataPath,
		Observability: ObservabilityConfig{
			OTLPEndpoint: otlpEndpoint,
			ServiceName:  serviceName,
			Environment:  appEnv,
		},
	}, nil
}

func mustEnv(key string, errs *[]error) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		*errs = append(*errs, errors.New("missing env: "+key))
	}
	return value
}
