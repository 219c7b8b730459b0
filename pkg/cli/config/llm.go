package config

import "github.com/urfave/cli/v3"

// LLM holds summarizer LLM configuration
type LLM struct {
	Provider        string
	APIKey          string `masq:"secret"`
	Model           string
	GeminiProjectID string
	GeminiLocation  string
}

// Flags returns CLI flags for LLM configuration
func (c *LLM) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "llm-provider",
			Usage:       "LLM provider (openai, gemini, claude)",
			Value:       "openai",
			Destination: &c.Provider,
			Sources:     cli.EnvVars("HERALD_LLM_PROVIDER"),
		},
		&cli.StringFlag{
			Name:        "llm-api-key",
			Usage:       "API key for the LLM provider (openai, claude)",
			Destination: &c.APIKey,
			Sources:     cli.EnvVars("HERALD_LLM_API_KEY", "OPENAI_API_KEY"),
		},
		&cli.StringFlag{
			Name:        "llm-model",
			Usage:       "Model name (provider default when empty)",
			Destination: &c.Model,
			Sources:     cli.EnvVars("HERALD_LLM_MODEL"),
		},
		&cli.StringFlag{
			Name:        "gemini-project-id",
			Usage:       "Google Cloud Project ID for the gemini provider",
			Destination: &c.GeminiProjectID,
			Sources:     cli.EnvVars("HERALD_GEMINI_PROJECT_ID"),
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Vertex AI location/region",
			Value:       "us-central1",
			Destination: &c.GeminiLocation,
			Sources:     cli.EnvVars("HERALD_GEMINI_LOCATION"),
		},
	}
}
