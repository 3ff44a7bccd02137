package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swagqa/swagqa-cli/internal/contract"
	"github.com/swagqa/swagqa-cli/internal/testcase"
)

func mustParse(t *testing.T, content string) *contract.Document {
	t.Helper()
	doc, err := contract.Parse([]byte(content))
	require.NoError(t, err)
	return doc
}

const itemsContract = `{
  "paths": {
    "/api/v1/items/{item_id}": {
      "get": {
        "summary": "Get item",
        "parameters": [
          {"name": "item_id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}},
          {"name": "page_size", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 50}}
        ],
        "responses": {
          "200": {
            "content": {
              "application/json": {
                "schema": {"type": "object", "properties": {"id": {}, "name": {}}}
              }
            }
          }
        }
      }
    }
  }
}`

// Scenario pinned by the spec: one GET with a uuid path param and a
// bounded page_size yields exactly five cases.
func TestGenerateItemScenario(t *testing.T) {
	doc := mustParse(t, itemsContract)
	cases := New().Generate(doc, nil)
	require.Len(t, cases, 5)

	happy := cases[0]
	assert.Equal(t, "TC-001", happy.ID)
	assert.Equal(t, testcase.KindHappyPath, happy.Type)
	assert.Equal(t, "GET", happy.Method)
	assert.Equal(t, "/api/v1/items/{item_id}", happy.Path)
	assert.Equal(t, "Get item (success)", happy.Description)
	assert.Equal(t, 200, happy.ExpectedStatus)
	assert.Equal(t, []string{"id", "name"}, happy.ExpectedFields)
	assert.NotEmpty(t, happy.PathParams["item_id"])
	assert.Equal(t, "1", happy.QueryParams["page_size"])
	assert.Empty(t, happy.Headers)

	unauth := cases[1]
	assert.Equal(t, "TC-002", unauth.ID)
	assert.Equal(t, testcase.KindEdgeCase, unauth.Type)
	assert.Equal(t, 401, unauth.ExpectedStatus)
	assert.True(t, unauth.SkipAuth())

	notFound := cases[2]
	assert.Equal(t, 404, notFound.ExpectedStatus)
	assert.NotEqual(t, happy.PathParams["item_id"], notFound.PathParams["item_id"])

	invalid := cases[3]
	assert.Equal(t, 422, invalid.ExpectedStatus)
	assert.Equal(t, "not-a-valid-uuid", invalid.PathParams["item_id"])

	sizeExceeded := cases[4]
	assert.Equal(t, 422, sizeExceeded.ExpectedStatus)
	assert.Equal(t, "51", sizeExceeded.QueryParams["page_size"])
	assert.Contains(t, sizeExceeded.Description, "page size exceeded (51)")
}

func TestGenerateCaseCountWithoutIdentifiers(t *testing.T) {
	doc := mustParse(t, `{
	  "paths": {
	    "/api/v1/health": {
	      "get": {"summary": "Health", "responses": {"200": {"description": "ok"}}}
	    }
	  }
	}`)
	cases := New().Generate(doc, nil)

	// Happy path plus unauthenticated probe only
	require.Len(t, cases, 2)
	assert.Equal(t, testcase.KindHappyPath, cases[0].Type)
	assert.Equal(t, 401, cases[1].ExpectedStatus)
}

func TestGeneratePageLowerBound(t *testing.T) {
	doc := mustParse(t, `{
	  "paths": {
	    "/api/v1/projects": {
	      "get": {
	        "summary": "List projects",
	        "parameters": [
	          {"name": "page", "in": "query", "schema": {"type": "integer", "default": 1}}
	        ],
	        "responses": {"200": {"description": "ok"}}
	      }
	    }
	  }
	}`)
	cases := New().Generate(doc, nil)
	require.Len(t, cases, 3)

	lower := cases[2]
	assert.Equal(t, 422, lower.ExpectedStatus)
	assert.Equal(t, "0", lower.QueryParams["page"])
	// The happy-path value is untouched
	assert.Equal(t, "1", cases[0].QueryParams["page"])
}

func TestGenerateNoPageSizeCaseWithoutMaximum(t *testing.T) {
	doc := mustParse(t, `{
	  "paths": {
	    "/api/v1/projects": {
	      "get": {
	        "parameters": [
	          {"name": "limit", "in": "query", "schema": {"type": "integer"}}
	        ],
	        "responses": {"200": {"description": "ok"}}
	      }
	    }
	  }
	}`)
	cases := New().Generate(doc, nil)

	// No declared maximum means the upper-bound rule is skipped
	require.Len(t, cases, 2)
}

func TestGenerateIdsStrictlyIncreasingAcrossOperations(t *testing.T) {
	doc := mustParse(t, `{
	  "paths": {
	    "/a/{a_id}": {"get": {"responses": {"200": {"description": "ok"}}},
	                  "delete": {"responses": {"204": {"description": "gone"}}}},
	    "/b": {"post": {"responses": {"201": {"description": "created"}}}}
	  }
	}`)
	cases := New().Generate(doc, nil)

	seen := map[string]bool{}
	prev := ""
	for _, tc := range cases {
		assert.False(t, seen[tc.ID], "duplicate id %s", tc.ID)
		seen[tc.ID] = true
		assert.Greater(t, tc.ID, prev)
		prev = tc.ID
	}
	assert.Equal(t, "TC-001", cases[0].ID)
}

func TestGenerateFilters(t *testing.T) {
	doc := mustParse(t, `{
	  "paths": {
	    "/a": {"get": {"responses": {"200": {"description": "ok"}}},
	           "post": {"responses": {"201": {"description": "created"}}}},
	    "/b": {"get": {"responses": {"200": {"description": "ok"}}}}
	  }
	}`)

	// Path-only filter matches every method on that path
	cases := New().Generate(doc, ParseFilters([]string{"/a"}))
	require.Len(t, cases, 4)
	for _, tc := range cases {
		assert.Equal(t, "/a", tc.Path)
	}

	// Method filter is case-insensitive
	cases = New().Generate(doc, ParseFilters([]string{"post /a"}))
	require.Len(t, cases, 2)
	assert.Equal(t, "POST", cases[0].Method)

	// Non-matching filter selects nothing
	cases = New().Generate(doc, ParseFilters([]string{"GET /missing"}))
	assert.Empty(t, cases)
}

func TestGenerateAuthProbeOptOut(t *testing.T) {
	doc := mustParse(t, itemsContract)

	s := New()
	s.AuthProbe = false
	cases := s.Generate(doc, nil)

	require.Len(t, cases, 4)
	for _, tc := range cases {
		assert.NotEqual(t, 401, tc.ExpectedStatus)
	}
}

func TestExpectedSuccessStatusFallbacks(t *testing.T) {
	doc := mustParse(t, `{
	  "paths": {
	    "/only-errors": {
	      "post": {"responses": {"400": {"description": "bad"}}},
	      "delete": {"responses": {"400": {"description": "bad"}}},
	      "put": {"responses": {"400": {"description": "bad"}}}
	    }
	  }
	}`)

	statuses := map[string]int{}
	for _, tc := range New().Generate(doc, nil) {
		if tc.Type == testcase.KindHappyPath {
			statuses[tc.Method] = tc.ExpectedStatus
		}
	}
	assert.Equal(t, 201, statuses["POST"])
	assert.Equal(t, 204, statuses["DELETE"])
	assert.Equal(t, 200, statuses["PUT"])
}

func TestSynthesizeQueryParamOmission(t *testing.T) {
	doc := mustParse(t, `{
	  "paths": {
	    "/search": {
	      "get": {
	        "parameters": [
	          {"name": "q", "in": "query", "schema": {"type": "string"}},
	          {"name": "sort", "in": "query", "schema": {"type": "string", "default": "asc"}},
	          {"name": "offset", "in": "query", "schema": {"type": "integer", "minimum": 10}}
	        ],
	        "responses": {"200": {"description": "ok"}}
	      }
	    }
	  }
	}`)
	cases := New().Generate(doc, nil)
	happy := cases[0]

	// Non-integer params without a default stay out of the happy path
	_, hasQ := happy.QueryParams["q"]
	assert.False(t, hasQ)
	assert.Equal(t, "asc", happy.QueryParams["sort"])
	assert.Equal(t, "10", happy.QueryParams["offset"])
}
