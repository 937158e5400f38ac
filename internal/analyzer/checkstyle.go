package analyzer

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/dshills/sift/internal/review"
)

type checkstyleReport struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Files   []checkstyleFile `xml:"file"`
}

type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

type checkstyleError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

// ParseCheckstyle reads a checkstyle XML report.
func ParseCheckstyle(r io.Reader, opts Options) (*review.Result, error) {
	var report checkstyleReport
	if err := xml.NewDecoder(r).Decode(&report); err != nil {
		return nil, fmt.Errorf("decoding checkstyle XML: %w", err)
	}
	var entries []entry
	for _, f := range report.Files {
		for _, e := range f.Errors {
			entries = append(entries, entry{
				path:     f.Name,
				line:     e.Line,
				rule:     e.Source,
				severity: e.Severity,
				message:  e.Message,
			})
		}
	}
	return build(entries, opts), nil
}
