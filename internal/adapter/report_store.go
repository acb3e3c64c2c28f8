package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "docsleuth.dev/pkg/docsleuth/internal/model"
)

// ObjectReport is the persisted form of one checked definition.
type ObjectReport struct {
	Name   string        `yaml:"name"`
	Kind   string        `yaml:"kind"`
	Link   string        `yaml:"link"`
	Errors []m.Violation `yaml:"errors"`
}

// Report is the persisted form of a whole run.
type Report struct {
	Checked int            `yaml:"checked"`
	Flagged int            `yaml:"flagged"`
	Objects []ObjectReport `yaml:"objects"`
}

// ReportStore persists run results so CI jobs can archive or diff them.
type ReportStore interface {
	SaveResult(path m.Path, result *m.RunResult) error
	LoadReport(path m.Path) (*Report, error)
}

// YAMLReportStore stores reports as YAML files.
type YAMLReportStore struct{}

// NewYAMLReportStore constructs a YAMLReportStore.
func NewYAMLReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveResult writes the run result to path as YAML.
func (s *YAMLReportStore) SaveResult(path m.Path, result *m.RunResult) error {
	report := Report{
		Checked: result.Checked,
		Flagged: result.Flagged,
		Objects: make([]ObjectReport, 0, len(result.Results)),
	}

	for _, entry := range result.Results {
		report.Objects = append(report.Objects, ObjectReport{
			Name:   entry.Definition.Name,
			Kind:   string(entry.Definition.Kind),
			Link:   entry.Definition.Link(),
			Errors: entry.Violations,
		})
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

// LoadReport reads a previously saved report.
func (s *YAMLReportStore) LoadReport(path m.Path) (*Report, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read report %s: %w", path, err)
	}

	var report Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report %s: %w", path, err)
	}

	return &report, nil
}
