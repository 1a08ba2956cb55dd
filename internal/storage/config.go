package storage

// Config is the application configuration, loaded from YAML.
type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Ollama struct {
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
	} `yaml:"ollama"`

	Temperatures struct {
		Themes   float64 `yaml:"themes"`
		Grouping float64 `yaml:"grouping"`
	} `yaml:"temperatures,omitempty"`

	Curation struct {
		// Offline skips all model calls; grouping uses the
		// deterministic fallback and themes stay default.
		Offline bool `yaml:"offline"`
	} `yaml:"curation,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Database.Path = "./edition.db"
	cfg.Ollama.BaseURL = "http://localhost:11434"
	cfg.Ollama.Model = "llama3"
	cfg.Temperatures.Themes = 0.5
	cfg.Temperatures.Grouping = 0.3
	return cfg
}
