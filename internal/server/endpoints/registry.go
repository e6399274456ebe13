package endpoints

import (
	"github.com/Aayushman-oss/nutriscan-ai/internal/api"
	"github.com/Aayushman-oss/nutriscan-ai/internal/config"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	ConfigManager *config.Manager
	// SwaggerHost is the host:port advertised in swagger.json.
	SwaggerHost string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},

		// Scan endpoints
		&AnalyzeEndpoint{},
		&AlternativesEndpoint{},

		// Prompt endpoints
		&ListPromptsEndpoint{},
		&GetPromptEndpoint{},

		// Contract endpoints
		&ListSchemasEndpoint{},
		&GetSchemaEndpoint{},

		// Settings endpoints
		&ListSettingsEndpoint{ConfigManager: cfg.ConfigManager},
		&GetSettingEndpoint{ConfigManager: cfg.ConfigManager},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{Host: cfg.SwaggerHost},
		&SwaggerUIEndpoint{},
	}
}
