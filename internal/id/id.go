// Package id generates compact unique identifiers for client-side use.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Generate creates a prefixed unique ID using NanoID
// (e.g. "req-V1StGXR8_Z5jdHi6B-myT").
//
// Returns an error if the system has insufficient entropy for secure
// random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// RequestID returns a correlation ID for an outgoing API request. Falls back
// to a fixed placeholder when entropy is unavailable; correlation IDs are
// diagnostic only and must never fail a request.
func RequestID() string {
	id, err := Generate("req")
	if err != nil {
		return "req-unavailable"
	}
	return id
}
