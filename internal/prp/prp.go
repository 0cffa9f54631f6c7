// Package prp validates PRP (Product Requirement Prompt) documents:
// the planning markdown files under PRPs/ that describe a feature before
// any code is written.
//
// A PRP is structurally complete when it carries the six required
// sections, and passes quality scoring when it references the project's
// package manager, container setup, and validation commands. The scoring
// model is deliberately blunt: it catches PRPs written without ever
// looking at how the project is actually built and run.
package prp

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RequiredSections are the markdown headings every PRP must contain,
// in canonical order.
var RequiredSections = []string{
	"## Goal",
	"## Why",
	"## What",
	"## All Needed Context",
	"## Implementation Blueprint",
	"## Validation Loop",
}

// Scoring weights. A PRP starts at BaseScore and earns points for each
// marker; it is valid when the total reaches the workspace threshold
// (default 8, see workspace.DefaultMinScore).
const (
	BaseScore          = 5
	PackageManagerBump = 2
	ContainerBump      = 2
	ValidationBump     = 1
)

// Status is a PRP's lifecycle phase.
type Status string

const (
	// StatusBacklog marks PRPs parked under a backlog/ directory.
	StatusBacklog Status = "backlog"
	// StatusDraft marks PRPs still missing required sections.
	StatusDraft Status = "draft"
	// StatusReady marks structurally complete PRPs.
	StatusReady Status = "ready"
)

// Report is the validation result for one PRP document. Its JSON shape
// is the hook protocol's output contract.
type Report struct {
	Valid           bool     `json:"valid"`
	Score           int      `json:"score,omitempty"`
	MissingSections []string `json:"missing_sections,omitempty"`
	HasPnpm         bool     `json:"has_pnpm"`
	HasDocker       bool     `json:"has_docker"`
	HasValidation   bool     `json:"has_validation"`
	Status          Status   `json:"status,omitempty"`
	Path            string   `json:"path,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// Validate scores a PRP's content against the given threshold.
// Missing sections short-circuit: a PRP without its skeleton is invalid
// regardless of score, and the score is not reported.
func Validate(content string, minScore int) Report {
	report := Report{Status: StatusReady}

	for _, section := range RequiredSections {
		if !strings.Contains(content, section) {
			report.MissingSections = append(report.MissingSections, section)
		}
	}
	if len(report.MissingSections) > 0 {
		report.Status = StatusDraft
		return report
	}

	report.HasPnpm = strings.Contains(content, "pnpm")
	report.HasDocker = strings.Contains(content, "docker-compose") || strings.Contains(content, "Docker")
	report.HasValidation = strings.Contains(content, "pnpm lint") || strings.Contains(content, "pytest")

	report.Score = BaseScore
	if report.HasPnpm {
		report.Score += PackageManagerBump
	}
	if report.HasDocker {
		report.Score += ContainerBump
	}
	if report.HasValidation {
		report.Score += ValidationBump
	}
	report.Valid = report.Score >= minScore

	return report
}

// ValidateFile validates the PRP at path. A missing or unreadable file
// produces an invalid report, not a Go error; the hook protocol must
// always emit a JSON result.
func ValidateFile(path string, minScore int) Report {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Report{Path: path, Error: "PRP file not found"}
		}
		return Report{Path: path, Error: err.Error()}
	}

	report := Validate(string(data), minScore)
	report.Path = path
	if underBacklog(path) {
		report.Status = StatusBacklog
	}
	return report
}

// ValidateDir validates every *.md under dir, sorted by path. The
// ai_docs/ subdirectory is skipped: it holds curated reference material,
// not PRPs. Command definitions under a commands/ subdirectory are
// skipped for the same reason.
func ValidateDir(dir string, minScore int) ([]Report, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			switch d.Name() {
			case "ai_docs", "commands":
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".md") && !strings.EqualFold(d.Name(), "README.md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}
	sort.Strings(paths)

	reports := make([]Report, 0, len(paths))
	for _, path := range paths {
		reports = append(reports, ValidateFile(path, minScore))
	}
	return reports, nil
}

// underBacklog reports whether any path element is a backlog directory.
func underBacklog(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "backlog" {
			return true
		}
	}
	return false
}
