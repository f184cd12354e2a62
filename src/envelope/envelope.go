// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package envelope parses the structured JSON payload of a skill webhook
// request far enough to hand the verification pipeline its claimed
// timestamp. Payloads are checked against an embedded JSON Schema first,
// so a body that is valid JSON but not shaped like a skill request is
// rejected before any field access.
package envelope

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed request_schema.json
var requestSchema []byte

var (
	// ErrMalformedEnvelope indicates the body is not valid JSON.
	ErrMalformedEnvelope = errors.New("envelope: body is not valid JSON")

	// ErrSchemaViolation indicates the body does not match the request envelope schema.
	ErrSchemaViolation = errors.New("envelope: body does not match request envelope schema")
)

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

// compiledSchema lazily compiles the embedded envelope schema exactly once.
func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(requestSchema))
	})
	return schema, schemaErr
}

// Envelope is the subset of the skill request payload the verifier needs.
type Envelope struct {
	Version string `json:"version"`
	Request struct {
		Type      string `json:"type"`
		RequestID string `json:"requestId"`
		Timestamp string `json:"timestamp"`
		Locale    string `json:"locale"`
	} `json:"request"`
}

// Parse validates body against the embedded envelope schema and decodes the
// fields the pipeline consumes. body is read, never mutated; signature
// verification elsewhere must still operate on the original bytes.
func Parse(body []byte) (*Envelope, error) {
	compiled, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("envelope: compiling embedded schema: %w", err)
	}

	result, err := compiled.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	if !result.Valid() {
		var reasons []string
		for _, desc := range result.Errors() {
			reasons = append(reasons, desc.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrSchemaViolation, strings.Join(reasons, "; "))
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
	}

	return &env, nil
}
