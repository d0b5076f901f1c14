package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"sigs.k8s.io/yaml"

	"selectsearch/internal/domain"
)

// Source kinds
const (
	SourceStatic  = "static"
	SourceCatalog = "catalog"
	SourceRemote  = "remote"
)

var validate = validator.New()

// Config represents the demo host configuration
type Config struct {
	Version       int                  `toml:"version" json:"version"`
	Title         string               `toml:"title" json:"title"`
	Multiple      bool                 `toml:"multiple" json:"multiple"`
	Height        int                  `toml:"height" json:"height" validate:"gte=0"` // visible rows, 0 = fit terminal
	DefaultOption *domain.Option       `toml:"default_option,omitempty" json:"defaultOption,omitempty"`
	Search        *domain.SearchConfig `toml:"search,omitempty" json:"search,omitempty"`
	Options       []domain.Option      `toml:"options,omitempty" json:"options,omitempty" validate:"dive"`
	Source        SourceSettings       `toml:"source" json:"source"`
	Catalog       []domain.Option      `toml:"catalog,omitempty" json:"catalog,omitempty" validate:"dive"`
}

// SourceSettings selects where fetched options come from
type SourceSettings struct {
	Kind           string `toml:"kind" json:"kind" validate:"oneof=static catalog remote"`
	PerPage        int    `toml:"per_page" json:"perPage" validate:"gte=0"`
	URL            string `toml:"url,omitempty" json:"url,omitempty" validate:"required_if=Kind remote"`
	TimeoutSeconds int    `toml:"timeout_seconds" json:"timeoutSeconds" validate:"gte=0"`
	LatencyMillis  int    `toml:"latency_ms" json:"latencyMs" validate:"gte=0"` // simulated catalog latency
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "selectsearch", "config.toml"),
	}
}

// Load loads the configuration from the user config directory, falling back
// to the default configuration when no file exists
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the user config directory
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads and validates configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		return ParseYAML(data)
	}
	return Parse(data)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = toml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Parse decodes, defaults and validates a TOML document
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return finish(&cfg)
}

// ParseYAML decodes, defaults and validates a YAML document. Keys follow the
// JSON field names (defaultOption, perPage, ...).
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Source.Kind == "" {
		switch {
		case len(c.Options) > 0:
			c.Source.Kind = SourceStatic
		case c.Source.URL != "":
			c.Source.Kind = SourceRemote
		default:
			c.Source.Kind = SourceCatalog
		}
	}
}

// Validate checks the configuration against its struct rules
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	messages := make([]string, 0, len(valErrs))
	for _, ve := range valErrs {
		messages = append(messages, ve.Namespace()+": "+formatValidationError(ve))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(messages, "; "))
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "required_if":
		return fmt.Sprintf("required when %s", ve.Param())
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	default:
		return "failed on " + ve.Tag()
	}
}

// DefaultConfig returns a sample configuration backed by the built-in catalog
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Title:   "Pick a country",
		DefaultOption: &domain.Option{
			Value: "__default__",
			Name:  "select something",
		},
		Search: &domain.SearchConfig{
			Placeholder: "Country name",
			AutoApply:   true,
		},
		Source: SourceSettings{
			Kind:    SourceCatalog,
			PerPage: 8,
		},
		Catalog: []domain.Option{
			{Value: "AR", Name: "Argentina"},
			{Value: "BO", Name: "Bolivia"},
			{Value: "BR", Name: "Brazil"},
			{Value: "CL", Name: "Chile"},
			{Value: "CO", Name: "Colombia"},
			{Value: "EC", Name: "Ecuador"},
			{Value: "GY", Name: "Guyana"},
			{Value: "PY", Name: "Paraguay"},
			{Value: "PE", Name: "Peru"},
			{Value: "SR", Name: "Suriname"},
			{Value: "UY", Name: "Uruguay"},
			{Value: "VE", Name: "Venezuela"},
		},
	}
}
