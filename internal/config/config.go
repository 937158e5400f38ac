package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the sift configuration.
type Config struct {
	Format          string        `yaml:"format" json:"format" validate:"oneof=text json markdown sarif github"`
	FailOn          string        `yaml:"failOn" json:"failOn" validate:"oneof=none info warning error"`
	CommentFormat   string        `yaml:"commentFormat" json:"commentFormat" validate:"oneof=plain markdown"`
	Include         []string      `yaml:"include" json:"include"`
	Exclude         []string      `yaml:"exclude" json:"exclude"`
	StripPrefix     string        `yaml:"stripPrefix,omitempty" json:"stripPrefix,omitempty"`
	RulesFile       string        `yaml:"rulesFile,omitempty" json:"rulesFile,omitempty"`
	DefaultSeverity string        `yaml:"defaultSeverity" json:"defaultSeverity" validate:"oneof=ignore info warning error"`
	MaxComments     int           `yaml:"maxComments" json:"maxComments" validate:"gte=0"`
	Score           ScoreConfig   `yaml:"score" json:"score"`
	Privacy         PrivacyConfig `yaml:"privacy" json:"privacy"`
	MetricsFile     string        `yaml:"metricsFile,omitempty" json:"metricsFile,omitempty"`
	LogLevel        string        `yaml:"logLevel" json:"logLevel" validate:"oneof=panic fatal error warn warning info debug trace"`
}

// ScoreConfig selects how a finished review is scored.
type ScoreConfig struct {
	Strategy string `yaml:"strategy" json:"strategy" validate:"oneof=noscore always-pass pass-if-empty pass-if-no-errors"`
	Label    string `yaml:"label" json:"label" validate:"required"`
	Pass     int    `yaml:"pass" json:"pass"`
	Fail     int    `yaml:"fail" json:"fail"`
}

// PrivacyConfig controls privacy/redaction behavior.
type PrivacyConfig struct {
	RedactSecrets bool     `yaml:"redactSecrets" json:"redactSecrets"`
	RedactPaths   []string `yaml:"redactPaths,omitempty" json:"redactPaths,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Format:          "text",
		FailOn:          "none",
		CommentFormat:   "plain",
		Include:         []string{"**/*"},
		Exclude:         []string{"vendor/**", "**/*.gen.go", "**/dist/**"},
		DefaultSeverity: "warning",
		Score: ScoreConfig{
			Strategy: "noscore",
			Label:    "Code-Review",
			Pass:     1,
			Fail:     -1,
		},
		Privacy: PrivacyConfig{
			RedactSecrets: true,
			RedactPaths:   []string{"**/.env", "**/*secrets*", "**/secrets/**"},
		},
		LogLevel: "warn",
	}
}

// ConfigDir returns the platform-appropriate config directory for sift.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sift"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "sift"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "sift"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "sift"), nil
	default:
		return filepath.Join(home, ".config", "sift"), nil
	}
}

// ConfigPath returns the full path to the default config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// resolvePath returns path, or the default config path when path is empty.
func resolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return ConfigPath()
}

// LoadFile reads the config file at path (default location when empty) over
// the built-in defaults. A missing file yields the defaults and no error.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	path, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}
	if err := mergeFile(&cfg, path); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile decodes the YAML file over cfg. Keys absent from the file keep
// their current value.
func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Save writes the config to path (default location when empty).
func Save(cfg Config, path string) error {
	path, err := resolvePath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(path string, overrides map[string]string) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKeys maps environment variables onto config keys understood by SetField.
var envKeys = []struct {
	env string
	key string
}{
	{"SIFT_FORMAT", "format"},
	{"SIFT_FAIL_ON", "failOn"},
	{"SIFT_SCORE_STRATEGY", "score.strategy"},
	{"SIFT_LOG_LEVEL", "logLevel"},
	{"SIFT_STRIP_PREFIX", "stripPrefix"},
	{"SIFT_METRICS_FILE", "metricsFile"},
}

func mergeEnv(cfg *Config) error {
	for _, e := range envKeys {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, e.key, v); err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return fmt.Errorf("flag %s: %w", key, err)
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
// List values are comma-separated.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "format":
		cfg.Format = value
	case "failOn":
		cfg.FailOn = value
	case "commentFormat":
		cfg.CommentFormat = value
	case "include":
		cfg.Include = splitList(value)
	case "exclude":
		cfg.Exclude = splitList(value)
	case "stripPrefix":
		cfg.StripPrefix = value
	case "rulesFile":
		cfg.RulesFile = value
	case "defaultSeverity":
		cfg.DefaultSeverity = value
	case "maxComments":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxComments must be an integer: %w", err)
		}
		cfg.MaxComments = n
	case "score.strategy":
		cfg.Score.Strategy = value
	case "score.label":
		cfg.Score.Label = value
	case "score.pass":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("score.pass must be an integer: %w", err)
		}
		cfg.Score.Pass = n
	case "score.fail":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("score.fail must be an integer: %w", err)
		}
		cfg.Score.Fail = n
	case "privacy.redactSecrets":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("privacy.redactSecrets must be a boolean: %w", err)
		}
		cfg.Privacy.RedactSecrets = b
	case "privacy.redactPaths":
		cfg.Privacy.RedactPaths = splitList(value)
	case "metricsFile":
		cfg.MetricsFile = value
	case "logLevel":
		cfg.LogLevel = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their YAML key so errors match what users type.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks cfg against the allowed values of each key.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		switch fe.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: %q is not one of [%s]", field, fe.Value(), fe.Param()))
		case "required":
			msgs = append(msgs, fmt.Sprintf("%s: must be set", field))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s=%s", field, fe.Tag(), fe.Param()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
