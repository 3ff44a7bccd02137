package runner

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/swagqa/swagqa-cli/internal/testcase"
)

// Result is the outcome of executing one test case. Results are created
// exactly once per case and never merged across runs.
type Result struct {
	Case testcase.TestCase `json:"-"`

	ID            string  `json:"id"`
	ActualStatus  int     `json:"actual_status"`
	ResponseBody  string  `json:"response_body"`
	Passed        bool    `json:"passed"`
	Notes         string  `json:"notes"`
	ScreenshotURL string  `json:"screenshot_url"`
	DurationMS    float64 `json:"duration_ms"`
}

// Record is one flattened row of the results artifact: the result fields
// plus the originating case's descriptive fields inlined, so reporting
// collaborators need only this file.
type Record struct {
	ID             string        `json:"id"`
	Passed         bool          `json:"passed"`
	ActualStatus   int           `json:"actual_status"`
	ExpectedStatus int           `json:"expected_status"`
	Description    string        `json:"description"`
	Type           testcase.Kind `json:"type"`
	Method         string        `json:"method"`
	Path           string        `json:"path"`
	ResponseBody   string        `json:"response_body"`
	Notes          string        `json:"notes"`
	ScreenshotURL  string        `json:"screenshot_url"`
	DurationMS     float64       `json:"duration_ms"`
}

// Record flattens the result for the artifact.
func (r Result) Record() Record {
	return Record{
		ID:             r.ID,
		Passed:         r.Passed,
		ActualStatus:   r.ActualStatus,
		ExpectedStatus: r.Case.ExpectedStatus,
		Description:    r.Case.Description,
		Type:           r.Case.Type,
		Method:         r.Case.Method,
		Path:           r.Case.Path,
		ResponseBody:   r.ResponseBody,
		Notes:          r.Notes,
		ScreenshotURL:  r.ScreenshotURL,
		DurationMS:     r.DurationMS,
	}
}

// Tally is the machine-readable run summary.
type Tally struct {
	Total  int    `json:"total"`
	Passed int    `json:"passed"`
	Failed int    `json:"failed"`
	Output string `json:"output,omitempty"`
}

// Count tallies a result sequence.
func Count(results []Result) Tally {
	t := Tally{Total: len(results)}
	for _, r := range results {
		if r.Passed {
			t.Passed++
		} else {
			t.Failed++
		}
	}
	return t
}

// WriteResults persists the results artifact in input order.
func WriteResults(path string, results []Result) error {
	records := make([]Record, 0, len(results))
	for _, r := range results {
		records = append(records, r.Record())
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}

// ReadRecords loads a results artifact, preserving order.
func ReadRecords(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse results: %w", err)
	}
	return records, nil
}
