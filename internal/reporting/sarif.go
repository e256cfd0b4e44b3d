package reporting

import (
	"encoding/json"
	"io"

	"github.com/triage-ai/mcplint/internal/engine"
	"github.com/triage-ai/mcplint/internal/rules"
)

// Minimal SARIF 2.1.0 document model, enough for code-scanning ingestion.

type sarifLog struct {
	Schema  string     `json:"$schema"`
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
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string            `json:"id"`
	Name             string            `json:"name,omitempty"`
	ShortDescription sarifText         `json:"shortDescription"`
	HelpURI          string            `json:"helpUri,omitempty"`
	Properties       map[string]string `json:"properties,omitempty"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifLocation struct {
	LogicalLocations []sarifLogicalLocation `json:"logicalLocations"`
}

type sarifLogicalLocation struct {
	Name               string `json:"name"`
	FullyQualifiedName string `json:"fullyQualifiedName"`
}

// sarifLevel maps issue severities onto the three SARIF levels.
var sarifLevel = map[rules.Severity]string{
	rules.SeverityError:      "error",
	rules.SeverityWarning:    "warning",
	rules.SeveritySuggestion: "note",
}

// WriteSARIF renders the result as a SARIF 2.1.0 log with one run. Every
// registered rule is declared in the driver so viewers can resolve rule
// metadata even for IDs with no findings.
func WriteSARIF(w io.Writer, result *engine.ValidationResult, reg *rules.Registry) error {
	driver := sarifDriver{
		Name:           "mcplint",
		Version:        result.Metadata.EngineVersion,
		InformationURI: "https://github.com/triage-ai/mcplint",
	}
	for _, r := range reg.All() {
		driver.Rules = append(driver.Rules, sarifRule{
			ID:               r.ID,
			ShortDescription: sarifText{Text: r.Description},
			HelpURI:          r.Documentation,
			Properties:       map[string]string{"category": string(r.Category)},
		})
	}

	results := make([]sarifResult, 0, len(result.Issues))
	for _, issue := range result.Issues {
		msg := issue.Message
		if issue.Suggestion != "" {
			msg += ". " + issue.Suggestion
		}
		results = append(results, sarifResult{
			RuleID:  issue.RuleID,
			Level:   sarifLevel[issue.Severity],
			Message: sarifText{Text: msg},
			Locations: []sarifLocation{{
				LogicalLocations: []sarifLogicalLocation{{
					Name:               issue.ToolName,
					FullyQualifiedName: issue.ToolName + issue.Path,
				}},
			}},
		})
	}

	log := sarifLog{
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool:    sarifTool{Driver: driver},
			Results: results,
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(log)
}
