package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Settings is the program configuration. The two project settings are
// required; everything else has a usable default.
type Settings struct {
	// ProjectEndpoint is the OpenAI-compatible base URL of the hosted
	// project, e.g. "https://my-project.services.ai.example.com/v1".
	ProjectEndpoint string `mapstructure:"project_endpoint" yaml:"project_endpoint"`
	// ModelDeployment is the deployment name sent with every request.
	ModelDeployment string `mapstructure:"model_deployment" yaml:"model_deployment"`

	APIKey         string `mapstructure:"api_key" yaml:"api_key"`
	DataPath       string `mapstructure:"data_path" yaml:"data_path"`
	RowCap         int    `mapstructure:"row_cap" yaml:"row_cap"`
	HTTPTimeoutSec int    `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	ListenAddr     string `mapstructure:"listen_addr" yaml:"listen_addr"`
	UploadDir      string `mapstructure:"upload_dir" yaml:"upload_dir"`
	LogFile        string `mapstructure:"log_file" yaml:"log_file"`
}

// Load reads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A ".env" file next to the
// working directory is folded into the environment first, mirroring the
// dotenv convention this tool grew up with.
func Load(cfgFile string) (*Settings, error) {
	// best-effort: a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("FOUNDRY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("project_endpoint", "")
	v.SetDefault("model_deployment", "")
	v.SetDefault("api_key", "")
	v.SetDefault("data_path", "")
	v.SetDefault("row_cap", 300)
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("upload_dir", filepath.Join("data", "uploads"))
	v.SetDefault("log_file", filepath.Join("logs", "foundry-agent.log"))

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".foundry-agent")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &s, nil
}

// Validate reports the fatal startup error for missing required
// settings. Callers must not enter any request loop when it fails.
func (s *Settings) Validate() error {
	var missing []string
	if strings.TrimSpace(s.ProjectEndpoint) == "" {
		missing = append(missing, "project_endpoint (FOUNDRY_PROJECT_ENDPOINT)")
	}
	if strings.TrimSpace(s.ModelDeployment) == "" {
		missing = append(missing, "model_deployment (FOUNDRY_MODEL_DEPLOYMENT)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Save writes the settings to cfgFile, or to
// ~/.foundry-agent/config.yaml when cfgFile is empty.
func Save(s *Settings, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".foundry-agent")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ResolveDataPath picks the data file for console mode: the explicit
// setting if present, otherwise data.xlsx then data.txt next to the
// program.
func (s *Settings) ResolveDataPath() string {
	if s.DataPath != "" {
		return s.DataPath
	}
	for _, cand := range []string{"data.xlsx", "data.txt"} {
		if _, err := os.Stat(cand); err == nil {
			return cand
		}
	}
	return "data.txt"
}
