// Package contract models the subset of an OpenAPI document the test
// generator needs: operations keyed by path and method, their parameters,
// request body presence, and the top-level properties of success responses.
package contract

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const fetchTimeout = 10 * time.Second

// Document is the parsed contract. Operations keep document order so
// generated case ids are stable for a given contract.
type Document struct {
	Version    string
	Operations []Operation
}

// Operation is one (method, path) pair within the contract.
type Operation struct {
	Method         string
	Path           string
	Summary        string
	Parameters     []Parameter
	HasRequestBody bool
	Responses      []Response
}

// Response is one documented response code with the top-level property
// names of its application/json schema, in document order.
type Response struct {
	Code       string
	Properties []string
}

// Parameter is one operation parameter (path or query).
type Parameter struct {
	Name     string
	In       string
	Required bool
	Schema   Schema
}

// Schema carries the schema attributes the heuristics look at. Optional
// attributes pair a value with an explicit presence flag; an absent
// attribute leaves the value at its zero and the flag false.
type Schema struct {
	Type       string
	Format     string
	Default    string
	HasDefault bool
	Minimum    float64
	HasMinimum bool
	Maximum    float64
	HasMaximum bool
}

// HasResponse reports whether the operation documents the given code.
func (o Operation) HasResponse(code string) bool {
	for _, r := range o.Responses {
		if r.Code == code {
			return true
		}
	}
	return false
}

// Response returns the documented response for a code, if present.
func (o Operation) Response(code string) (Response, bool) {
	for _, r := range o.Responses {
		if r.Code == code {
			return r, true
		}
	}
	return Response{}, false
}

// Params returns the operation's parameters for one location ("path" or
// "query"), in document order.
func (o Operation) Params(in string) []Parameter {
	var out []Parameter
	for _, p := range o.Parameters {
		if p.In == in {
			out = append(out, p)
		}
	}
	return out
}

// Param looks up a parameter by name and location.
func (o Operation) Param(in, name string) (Parameter, bool) {
	for _, p := range o.Parameters {
		if p.In == in && p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// Load reads a contract document from disk. YAML documents are converted
// to JSON first; everything else is parsed as JSON directly.
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract: %w", err)
	}
	return Parse(content)
}

// Fetch retrieves a contract document over HTTP.
func Fetch(url string) (*Document, error) {
	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contract: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch contract: status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract response: %w", err)
	}
	return Parse(content)
}

// Parse builds the Document from raw JSON or YAML bytes.
func Parse(content []byte) (*Document, error) {
	if !gjson.ValidBytes(content) {
		converted, err := yamlToJSON(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse contract (tried JSON and YAML): %w", err)
		}
		content = converted
	}

	root := gjson.ParseBytes(content)
	doc := &Document{
		Version:    root.Get("openapi").String(),
		Operations: []Operation{},
	}

	root.Get("paths").ForEach(func(path, methods gjson.Result) bool {
		methods.ForEach(func(method, details gjson.Result) bool {
			m := strings.ToUpper(method.String())
			if !isHTTPMethod(m) {
				return true
			}
			doc.Operations = append(doc.Operations, parseOperation(m, path.String(), details))
			return true
		})
		return true
	})

	return doc, nil
}

func parseOperation(method, path string, details gjson.Result) Operation {
	op := Operation{
		Method:         method,
		Path:           path,
		Summary:        details.Get("summary").String(),
		HasRequestBody: details.Get("requestBody").Exists(),
	}

	details.Get("parameters").ForEach(func(_, param gjson.Result) bool {
		op.Parameters = append(op.Parameters, Parameter{
			Name:     param.Get("name").String(),
			In:       param.Get("in").String(),
			Required: param.Get("required").Bool(),
			Schema:   parseSchema(param.Get("schema")),
		})
		return true
	})

	details.Get("responses").ForEach(func(code, resp gjson.Result) bool {
		response := Response{Code: code.String()}
		resp.Get("content.application/json.schema.properties").ForEach(func(name, _ gjson.Result) bool {
			response.Properties = append(response.Properties, name.String())
			return true
		})
		op.Responses = append(op.Responses, response)
		return true
	})

	return op
}

func parseSchema(schema gjson.Result) Schema {
	s := Schema{
		Type:   schema.Get("type").String(),
		Format: schema.Get("format").String(),
	}
	if def := schema.Get("default"); def.Exists() {
		s.Default = def.String()
		s.HasDefault = true
	}
	if min := schema.Get("minimum"); min.Exists() {
		s.Minimum = min.Float()
		s.HasMinimum = true
	}
	if max := schema.Get("maximum"); max.Exists() {
		s.Maximum = max.Float()
		s.HasMaximum = true
	}
	return s
}

func isHTTPMethod(s string) bool {
	methods := []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}
	return slices.Contains(methods, s)
}
