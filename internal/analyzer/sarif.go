package analyzer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/dshills/sift/internal/review"
)

// SARIF v2.1.0, reduced to what a review needs.

type sarifLog struct {
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name  string      `json:"name"`
	Rules []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID            string             `json:"id"`
	DefaultConfig sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex *int            `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifMessage struct {
	Text     string `json:"text"`
	Markdown string `json:"markdown"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           sarifRegion           `json:"region"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

// ParseSARIF reads a SARIF log. Each result contributes one violation per
// location; results without a location are skipped.
func ParseSARIF(r io.Reader, opts Options) (*review.Result, error) {
	var doc sarifLog
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding SARIF: %w", err)
	}
	var entries []entry
	for _, run := range doc.Runs {
		ruleLevels := make(map[string]string, len(run.Tool.Driver.Rules))
		for _, rule := range run.Tool.Driver.Rules {
			ruleLevels[rule.ID] = rule.DefaultConfig.Level
		}
		for _, res := range run.Results {
			ruleID := res.RuleID
			if ruleID == "" && res.RuleIndex != nil && *res.RuleIndex >= 0 && *res.RuleIndex < len(run.Tool.Driver.Rules) {
				ruleID = run.Tool.Driver.Rules[*res.RuleIndex].ID
			}
			level := res.Level
			if level == "" {
				level = ruleLevels[ruleID]
			}
			if level == "" {
				// SARIF's default level.
				level = "warning"
			}
			msg := res.Message.Text
			if msg == "" {
				msg = res.Message.Markdown
			}
			for _, loc := range res.Locations {
				entries = append(entries, entry{
					path:     unescapeURI(loc.PhysicalLocation.ArtifactLocation.URI),
					line:     loc.PhysicalLocation.Region.StartLine,
					rule:     ruleID,
					severity: level,
					message:  msg,
				})
			}
		}
	}
	return build(entries, opts), nil
}

// unescapeURI percent-decodes an artifact URI so it compares equal to a
// plain file name. Malformed escapes are kept as written.
func unescapeURI(uri string) string {
	p, err := url.PathUnescape(uri)
	if err != nil {
		return uri
	}
	return p
}
