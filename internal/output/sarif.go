package output

import (
	"io"

	"github.com/dshills/sift/internal/review"
)

// SARIFWriter outputs review comments in SARIF v2.1.0 format.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, report *review.Report) error {
	return writeJSON(w, buildSARIF(report), "SARIF")
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Results     []sarifResult     `json:"results"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
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

// sarifInvocation carries review problems as tool notifications.
type sarifInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level   string       `json:"level"`
	Message sarifMessage `json:"message"`
}

func buildSARIF(report *review.Report) sarifLog {
	results := []sarifResult{}
	used := make(map[review.Severity]bool)

	for _, f := range report.Files {
		for _, c := range f.Comments {
			used[c.Severity()] = true
			results = append(results, sarifResult{
				RuleID:  ruleID(c.Severity()),
				Level:   severityToLevel(c.Severity()),
				Message: sarifMessage{Text: c.Message()},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysicalLocation{
						ArtifactLocation: sarifArtifactLocation{URI: f.Path},
						Region:           sarifRegion{StartLine: c.Line()},
					},
				}},
			})
		}
	}

	// Rules in stable severity order
	rules := []sarifRule{}
	for _, sev := range review.Severities {
		if !used[sev] {
			continue
		}
		rules = append(rules, sarifRule{
			ID:               ruleID(sev),
			Name:             string(sev),
			ShortDescription: sarifMessage{Text: "Analyzer " + string(sev)},
			DefaultConfig:    sarifDefaultConfig{Level: severityToLevel(sev)},
		})
	}

	run := sarifRun{
		Tool: sarifTool{
			Driver: sarifDriver{
				Name:           "sift",
				Version:        report.Version,
				InformationURI: "https://github.com/dshills/sift",
				Rules:          rules,
			},
		},
		Results: results,
	}
	if len(report.Problems) > 0 {
		inv := sarifInvocation{ExecutionSuccessful: false}
		for _, p := range report.Problems {
			inv.ToolExecutionNotifications = append(inv.ToolExecutionNotifications, sarifNotification{
				Level:   "error",
				Message: sarifMessage{Text: p},
			})
		}
		run.Invocations = []sarifInvocation{inv}
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs:    []sarifRun{run},
	}
}

func ruleID(s review.Severity) string {
	return "sift/" + string(s)
}

// severityToLevel maps review severity to SARIF level.
func severityToLevel(s review.Severity) string {
	switch s {
	case review.SeverityError:
		return "error"
	case review.SeverityWarning:
		return "warning"
	case review.SeverityInfo:
		return "note"
	default:
		return "none"
	}
}
