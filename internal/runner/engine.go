// Package runner executes a test plan against a live target, one case at
// a time, and classifies every outcome.
package runner

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/swagqa/swagqa-cli/internal/auth"
	"github.com/swagqa/swagqa-cli/internal/infra/logger"
	"github.com/swagqa/swagqa-cli/internal/testcase"
)

const requestTimeout = 30 * time.Second

var (
	passMarker = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")).Render("PASS")
	failMarker = lipgloss.NewStyle().Foreground(lipgloss.Color("#FB7185")).Render("FAIL")
)

// Engine resolves test cases into HTTP requests and classifies the
// responses. Execution is strictly sequential, each case completes or
// fails before the next begins.
type Engine struct {
	baseURL  string
	provider auth.Provider
	client   *http.Client
	out      io.Writer
}

// NewEngine creates an engine for one run. A nil provider disables
// authentication entirely.
func NewEngine(baseURL string, provider auth.Provider) *Engine {
	if provider == nil {
		provider = &auth.NoAuth{}
	}
	return &Engine{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		provider: provider,
		client: &http.Client{
			Timeout: requestTimeout,
		},
		out: os.Stdout,
	}
}

// SetOutput redirects the per-case progress lines (default os.Stdout).
func (e *Engine) SetOutput(w io.Writer) {
	e.out = w
}

// Run executes every case in order and returns results in the same
// order. Transport failures are recorded as failed results, never
// propagated, so one unreachable case does not abort the rest.
func (e *Engine) Run(cases []testcase.TestCase) []Result {
	results := make([]Result, 0, len(cases))
	for _, tc := range cases {
		result := e.execute(tc)
		results = append(results, result)

		marker := passMarker
		if !result.Passed {
			marker = failMarker
		}
		fmt.Fprintf(e.out, "  %s %s: %s -> %d (expected %d) [%.1fms]\n",
			marker, tc.ID, tc.Description, result.ActualStatus, tc.ExpectedStatus, result.DurationMS)
	}
	return results
}

func (e *Engine) execute(tc testcase.TestCase) Result {
	req, err := e.buildRequest(tc)
	if err != nil {
		return Result{
			Case:   tc,
			ID:     tc.ID,
			Passed: false,
			Notes:  fmt.Sprintf("request error: %v", err),
		}
	}

	logger.Debug("executing test case",
		logger.String("id", tc.ID),
		logger.String("method", tc.Method),
		logger.String("url", req.URL.String()))

	start := time.Now()
	resp, err := e.client.Do(req)
	if err != nil {
		// The only outcome with no HTTP exchange: status 0, zero duration
		return Result{
			Case:   tc,
			ID:     tc.ID,
			Passed: false,
			Notes:  fmt.Sprintf("connection error: %v", err),
		}
	}
	duration := roundMillis(time.Since(start))
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{
			Case:         tc,
			ID:           tc.ID,
			ActualStatus: resp.StatusCode,
			Passed:       false,
			Notes:        fmt.Sprintf("failed to read response: %v", err),
			DurationMS:   duration,
		}
	}

	passed := resp.StatusCode == tc.ExpectedStatus
	notes := ""

	// Field presence only ever downgrades a status match
	if passed && len(tc.ExpectedFields) > 0 {
		if missing, ok := missingFields(raw, tc.ExpectedFields); !ok {
			passed = false
			notes = "response body is not valid JSON"
		} else if len(missing) > 0 {
			passed = false
			notes = "missing expected fields: " + strings.Join(missing, ", ")
		}
	}

	return Result{
		Case:         tc,
		ID:           tc.ID,
		ActualStatus: resp.StatusCode,
		ResponseBody: prettyBody(raw),
		Passed:       passed,
		Notes:        notes,
		DurationMS:   duration,
	}
}

func (e *Engine) buildRequest(tc testcase.TestCase) (*http.Request, error) {
	var body io.Reader
	if tc.Body != nil {
		encoded, err := json.Marshal(tc.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(tc.Method, e.baseURL+resolvePath(tc.Path, tc.PathParams), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if len(tc.QueryParams) > 0 {
		query := req.URL.Query()
		for name, value := range tc.QueryParams {
			query.Set(name, value)
		}
		req.URL.RawQuery = query.Encode()
	}

	req.Header.Set("Content-Type", "application/json")
	if !tc.SkipAuth() {
		if err := e.provider.Apply(req); err != nil {
			return nil, fmt.Errorf("failed to apply auth: %w", err)
		}
	}
	for name, value := range tc.Headers {
		if name == testcase.SkipAuthHeader {
			continue
		}
		req.Header.Set(name, value)
	}

	return req, nil
}

// resolvePath substitutes {name} placeholders textually. Placeholders
// with no matching parameter are left as literal text.
func resolvePath(path string, params map[string]string) string {
	for name, value := range params {
		path = strings.ReplaceAll(path, "{"+name+"}", value)
	}
	return path
}

// missingFields reports the expected top-level keys absent from a JSON
// object body. ok is false when the body is not valid JSON.
func missingFields(raw []byte, expected []string) ([]string, bool) {
	if !gjson.ValidBytes(raw) {
		return nil, false
	}

	present := map[string]bool{}
	gjson.ParseBytes(raw).ForEach(func(key, _ gjson.Result) bool {
		present[key.String()] = true
		return true
	})

	var missing []string
	for _, field := range expected {
		if !present[field] {
			missing = append(missing, field)
		}
	}
	return missing, true
}

// prettyBody returns the response pretty-printed when it parses as JSON,
// raw otherwise.
func prettyBody(raw []byte) string {
	if gjson.ValidBytes(raw) {
		return strings.TrimSuffix(string(pretty.Pretty(raw)), "\n")
	}
	return string(raw)
}

func roundMillis(d time.Duration) float64 {
	ms := float64(d.Microseconds()) / 1000
	return math.Round(ms*10) / 10
}
