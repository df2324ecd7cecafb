package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string         `yaml:"addr"`
	JWTSecret     string         `yaml:"jwt_secret"`
	APITimeout    time.Duration  `yaml:"timeout"`
	DatabasePath  string         `yaml:"database_path"`
	TokenDuration time.Duration  `yaml:"token_duration"`
	Matching      MatchingConfig `yaml:"matching"`
	Copilot       CopilotConfig  `yaml:"copilot"`
}

// MatchingConfig holds the candidate ranking policy knobs. Zero values fall
// back to the engine defaults (min score 50, result limit 20, pool 50).
type MatchingConfig struct {
	MinScore      int `yaml:"min_score"`
	ResultLimit   int `yaml:"result_limit"`
	CandidatePool int `yaml:"candidate_pool"`
}

// CopilotConfig configures the founder copilot's Ollama backend.
type CopilotConfig struct {
	BaseURL                 string        `yaml:"base_url"`
	Model                   string        `yaml:"model"`
	Timeout                 time.Duration `yaml:"timeout"`
	Retries                 int           `yaml:"retries"`
	Backoff                 time.Duration `yaml:"backoff"`
	CircuitFailureThreshold int           `yaml:"circuit_failure_threshold"`
	CircuitReset            time.Duration `yaml:"circuit_reset"`
}

func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 24 * time.Hour

	cfg := &Config{
		Addr:          getEnv("COFOUNDRY_ADDR", ":8080"),
		JWTSecret:     getEnv("COFOUNDRY_JWT_SECRET", "supersecretkey"),
		APITimeout:    apiTimeout,
		DatabasePath:  getEnv("COFOUNDRY_DATABASE_PATH", "cofoundry.db"),
		TokenDuration: tokenDuration,
		Matching: MatchingConfig{
			MinScore:      50,
			ResultLimit:   20,
			CandidatePool: 50,
		},
		Copilot: CopilotConfig{
			BaseURL:                 getEnv("COFOUNDRY_OLLAMA_URL", "http://localhost:11434"),
			Model:                   "llama3.2",
			Timeout:                 60 * time.Second,
			Retries:                 2,
			Backoff:                 500 * time.Millisecond,
			CircuitFailureThreshold: 5,
			CircuitReset:            30 * time.Second,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
