// Package envcheck probes the pieces a QA run depends on: the container
// runtime, the backend health endpoint, and the API contract endpoint.
package envcheck

import (
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"time"

	"github.com/tidwall/gjson"
)

const probeTimeout = 5 * time.Second

const (
	StatusUp   = "UP"
	StatusDown = "DOWN"
)

// Status carries the three independent probe results. Docker is empty
// when the compose probe was not requested.
type Status struct {
	Docker         string `json:"docker,omitempty"`
	Backend        string `json:"backend"`
	Swagger        string `json:"swagger"`
	EndpointsCount int    `json:"endpoints_count,omitempty"`
}

// AllUp reports whether every probe that ran is up.
func (s Status) AllUp() bool {
	if s.Docker != "" && s.Docker != StatusUp {
		return false
	}
	return s.Backend == StatusUp && s.Swagger == StatusUp
}

// Options selects what to probe.
type Options struct {
	BaseURL       string
	OpenAPIPath   string
	DockerCompose bool
	ProjectRoot   string
}

// Checker runs the environment probes.
type Checker struct {
	client     *http.Client
	runCompose func(dir string, name string, args ...string) error
}

// New builds a Checker with the fixed probe timeout.
func New() *Checker {
	return &Checker{
		client: &http.Client{Timeout: probeTimeout},
		runCompose: func(dir string, name string, args ...string) error {
			cmd := exec.Command(name, args...)
			cmd.Dir = dir
			return cmd.Run()
		},
	}
}

// Check runs the requested probes. Probe failures land in the Status,
// never in an error: the caller decides via AllUp.
func (c *Checker) Check(opts Options) Status {
	status := Status{}

	if opts.DockerCompose {
		status.Docker = c.checkDocker(opts.ProjectRoot)
	}
	status.Backend = c.checkBackend(opts.BaseURL)
	status.Swagger, status.EndpointsCount = c.checkSwagger(opts.BaseURL, opts.OpenAPIPath)

	return status
}

func (c *Checker) checkDocker(projectRoot string) string {
	if projectRoot == "" {
		projectRoot = "."
	}
	if err := c.runCompose(projectRoot, "docker", "compose", "ps", "--format", "json"); err == nil {
		return StatusUp
	}
	// Older installs only ship the standalone binary
	if err := c.runCompose(projectRoot, "docker-compose", "ps"); err == nil {
		return StatusUp
	}
	return StatusDown
}

func (c *Checker) checkBackend(baseURL string) string {
	resp, err := c.client.Get(baseURL + "/health")
	if err != nil {
		return StatusDown
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusOK {
		return StatusUp
	}
	return fmt.Sprintf("STATUS_%d", resp.StatusCode)
}

func (c *Checker) checkSwagger(baseURL, openapiPath string) (string, int) {
	resp, err := c.client.Get(baseURL + openapiPath)
	if err != nil {
		return StatusDown, 0
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("STATUS_%d", resp.StatusCode), 0
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil || !gjson.ValidBytes(body) {
		return StatusDown, 0
	}

	count := 0
	gjson.GetBytes(body, "paths").ForEach(func(_, _ gjson.Result) bool {
		count++
		return true
	})
	return StatusUp, count
}
