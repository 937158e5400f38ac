package analyzer

import (
	"fmt"
	"os"
	"slices"

	"github.com/dshills/sift/internal/review"
	"gopkg.in/yaml.v3"
)

// Rules is a rules pack loaded from --rules. YAML or JSON.
type Rules struct {
	SeverityOverrides map[string]string `yaml:"severityOverrides,omitempty" json:"severityOverrides,omitempty"`
	Ignore            []string          `yaml:"ignore,omitempty" json:"ignore,omitempty"`
}

// LoadRules loads a rules file from disk. Returns nil Rules and nil error if path is empty.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	for id, sev := range rules.SeverityOverrides {
		if _, ok := review.ParseSeverity(sev); !ok {
			return nil, fmt.Errorf("rules file: rule %s has unknown severity %q", id, sev)
		}
	}
	return &rules, nil
}

func (r *Rules) ignored(rule string) bool {
	if r == nil || rule == "" {
		return false
	}
	return slices.Contains(r.Ignore, rule)
}

func (r *Rules) override(rule string) (review.Severity, bool) {
	if r == nil || rule == "" {
		return "", false
	}
	sev, ok := r.SeverityOverrides[rule]
	if !ok {
		return "", false
	}
	return review.ParseSeverity(sev)
}
