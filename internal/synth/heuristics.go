package synth

import (
	"strings"

	"github.com/google/uuid"

	"github.com/swagqa/swagqa-cli/internal/contract"
)

// Name-matching policy for the generated battery. Everything that decides
// which parameter gets which treatment lives here so the policy can be
// tested on its own.

// pageParamNames are the query parameter names recognized as a page index.
var pageParamNames = []string{"page", "page_number"}

// pageSizeParamNames are the query parameter names recognized as a page
// size limit.
var pageSizeParamNames = []string{"page_size", "per_page", "limit"}

// placeholderValue fills path parameters with no better heuristic.
const placeholderValue = "test-value"

// invalidIdentifier is syntactically broken on purpose, servers that
// validate identifier formats should reject it.
const invalidIdentifier = "not-a-valid-uuid"

// isIdentifierName reports whether a parameter name suggests an
// identifier (substring match on "id", case-insensitive).
func isIdentifierName(name string) bool {
	return strings.Contains(strings.ToLower(name), "id")
}

// isIdentifierParam reports whether a path parameter should receive a
// fresh identifier value: UUID-format schema or identifier-like name.
func isIdentifierParam(p contract.Parameter) bool {
	return p.Schema.Format == "uuid" || isIdentifierName(p.Name)
}

// identifierNames returns the identifier-like keys of a rendered path
// parameter map, the ones the not-found and invalid-identifier cases
// override.
func identifierNames(pathParams map[string]string) []string {
	var names []string
	for name := range pathParams {
		if isIdentifierName(name) {
			names = append(names, name)
		}
	}
	return names
}

// pageParamIn returns the first recognized page parameter present among
// the rendered query parameters. Recognition order follows
// pageParamNames, so the pick is deterministic.
func pageParamIn(queryParams map[string]string) (string, bool) {
	for _, name := range pageParamNames {
		if _, ok := queryParams[name]; ok {
			return name, true
		}
	}
	return "", false
}

// pageSizeParamIn returns the first recognized page-size parameter
// present among the rendered query parameters.
func pageSizeParamIn(queryParams map[string]string) (string, bool) {
	for _, name := range pageSizeParamNames {
		if _, ok := queryParams[name]; ok {
			return name, true
		}
	}
	return "", false
}

// freshIdentifier generates a random unique identifier string. This is
// the only randomness in generation: which cases fire is deterministic,
// only fresh identifier values vary.
func freshIdentifier() string {
	return uuid.NewString()
}
