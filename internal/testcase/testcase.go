// Package testcase defines the planned-interaction record shared by the
// generator and the execution engine, and the plan artifact on disk.
package testcase

import (
	"encoding/json"
	"fmt"
	"os"
)

// Body is an optional JSON request payload. A nil body means the case
// sends no payload.
type Body = map[string]any

// Kind distinguishes documented-success cases from boundary cases.
type Kind string

const (
	KindHappyPath Kind = "happy_path"
	KindEdgeCase  Kind = "edge_case"
)

// SkipAuthHeader is a sentinel key in Headers. It is never sent on the
// wire; its presence tells the engine to suppress the Authorization
// header for this case.
const SkipAuthHeader = "__skip_auth__"

// TestCase is one planned HTTP interaction. Path and query parameter
// values are pre-rendered strings; substitution at execution time is
// purely textual.
type TestCase struct {
	ID             string            `json:"id"`
	Type           Kind              `json:"type"`
	Method         string            `json:"method"`
	Path           string            `json:"path"`
	Description    string            `json:"description"`
	PathParams     map[string]string `json:"path_params"`
	QueryParams    map[string]string `json:"query_params"`
	Body           Body              `json:"body,omitempty"`
	Headers        map[string]string `json:"headers"`
	ExpectedStatus int               `json:"expected_status"`
	ExpectedFields []string          `json:"expected_fields"`
}

// SkipAuth reports whether the case carries the skip-auth sentinel.
func (tc TestCase) SkipAuth() bool {
	return tc.Headers[SkipAuthHeader] == "true"
}

// Summary is the machine-readable tally printed after generation.
type Summary struct {
	Total     int    `json:"total"`
	HappyPath int    `json:"happy_path"`
	EdgeCases int    `json:"edge_cases"`
	Output    string `json:"output,omitempty"`
}

// Summarize counts cases by kind.
func Summarize(cases []TestCase) Summary {
	s := Summary{Total: len(cases)}
	for _, tc := range cases {
		switch tc.Type {
		case KindHappyPath:
			s.HappyPath++
		case KindEdgeCase:
			s.EdgeCases++
		}
	}
	return s
}

// WritePlan persists the plan artifact: an ordered, human-diffable JSON
// array with one object per case.
func WritePlan(path string, cases []TestCase) error {
	data, err := json.MarshalIndent(cases, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal test plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write test plan: %w", err)
	}
	return nil
}

// ReadPlan loads a plan artifact, preserving case order.
func ReadPlan(path string) ([]TestCase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test plan: %w", err)
	}
	var cases []TestCase
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("failed to parse test plan: %w", err)
	}
	return cases, nil
}
