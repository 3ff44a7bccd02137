package auth

import (
	"fmt"
	"net/http"
)

// Provider applies authentication to HTTP requests
type Provider interface {
	// Apply adds authentication to the request
	Apply(req *http.Request) error

	// Type returns the authentication type identifier
	Type() string

	// Validate checks if the configuration is valid
	Validate() error

	// Redact returns a copy with sensitive data hidden (for logging)
	Redact() Provider
}

// NoAuth represents no authentication
type NoAuth struct{}

func (n *NoAuth) Apply(req *http.Request) error {
	return nil
}

func (n *NoAuth) Type() string {
	return "none"
}

func (n *NoAuth) Validate() error {
	return nil
}

func (n *NoAuth) Redact() Provider {
	return n
}

// FromToken builds a provider from an optional bearer token. An empty
// token means no authentication. A "Bearer " prefix on the token is
// accepted and stripped, Apply re-adds the scheme.
func FromToken(token string) (Provider, error) {
	if token == "" {
		return &NoAuth{}, nil
	}
	bearer := NewBearerAuth(trimScheme(token))
	if err := bearer.Validate(); err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return bearer, nil
}

// RedactString hides sensitive data for logging
func RedactString(s string) string {
	if len(s) == 0 {
		return "<empty>"
	}
	if len(s) <= 8 {
		return "***"
	}
	return s[:4] + "***" + s[len(s)-4:]
}
